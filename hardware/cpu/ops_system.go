// This file is part of Gopher68K.
//
// Gopher68K is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher68K is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher68K.  If not, see <https://www.gnu.org/licenses/>.

package cpu

import (
	"github.com/redcrab/gopher68k/hardware/bus"
	"github.com/redcrab/gopher68k/hardware/cpu/instructions"
	"github.com/redcrab/gopher68k/hardware/cpu/registers"
	"github.com/redcrab/gopher68k/hardware/cpu/timing"
)

// registerSystem fills in the supervisor state instructions: the status
// register moves, the user stack pointer moves, TRAP, TRAPV, STOP, RESET,
// the explicit ILLEGAL opcode and, from the 68010 onwards, MOVEC and MOVES.
func registerSystem(d *dispatch, v Variant) {
	registerStatusMoves(d, v)
	registerUSPMoves(d)
	registerTraps(d)

	d.register(instructions.Definition{
		OpCode:    0x4e72,
		Operation: instructions.STOP,
		Size:      bus.Word,
		Src:       instructions.Immediate,
		Dst:       instructions.Implied,
		Cycles:    4,
		Effect:    instructions.Interrupt,
	}, func(mc *M68K) {
		if !mc.supervisor() {
			mc.raisePrivilege()
			return
		}
		sr := mc.fetchPC()
		if mc.aborted {
			return
		}
		mc.setSR(sr)
		mc.stopped = true
	})

	d.register(instructions.Definition{
		OpCode:    0x4e70,
		Operation: instructions.RESET,
		Src:       instructions.Implied,
		Dst:       instructions.Implied,
		Cycles:    132,
		Effect:    instructions.Interrupt,
	}, func(mc *M68K) {
		// asserts the external reset line for 124 cycles on real
		// hardware. the emulated bus has no devices to reset
		if !mc.supervisor() {
			mc.raisePrivilege()
		}
	})

	d.register(instructions.Definition{
		OpCode:    0x4afc,
		Operation: instructions.Illegal,
		Src:       instructions.Implied,
		Dst:       instructions.Implied,
		Cycles:    4,
		Effect:    instructions.Interrupt,
	}, func(mc *M68K) {
		mc.raiseIllegal(VecIllegal)
	})

	if v >= M68010 {
		registerMOVEC(d, v)
		registerMOVES(d)
	}
}

func registerStatusMoves(d *dispatch, v Variant) {
	for ea := uint16(0); ea < 64; ea++ {
		m := instructions.DecodeMode(ea>>3, ea&0x07)
		mode := m
		reg := int(ea & 0x07)

		if isDataAlterable(m) {
			base := 6
			if mode != instructions.DataRegister {
				base = 8
			}

			// MOVE from SR. unprivileged on the 68000, privileged from
			// the 68010 onwards
			priv := v >= M68010
			d.register(instructions.Definition{
				OpCode:    0x40c0 | ea,
				Operation: instructions.MOVEfromSR,
				Size:      bus.Word,
				Src:       instructions.Implied,
				Dst:       mode,
				Cycles:    base + timing.EACalc(mode, bus.Word),
				Effect:    instructions.Write,
			}, func(mc *M68K) {
				if priv && !mc.supervisor() {
					mc.raisePrivilege()
					return
				}
				dst := mc.resolveEA(mode, reg, bus.Word)
				mc.storeOperand(dst, uint32(mc.Reg.Status.Value()))
			})

			if v >= M68010 {
				d.register(instructions.Definition{
					OpCode:    0x42c0 | ea,
					Operation: instructions.MOVEfromCCR,
					Size:      bus.Word,
					Src:       instructions.Implied,
					Dst:       mode,
					Cycles:    base + timing.EACalc(mode, bus.Word),
					Effect:    instructions.Write,
				}, func(mc *M68K) {
					dst := mc.resolveEA(mode, reg, bus.Word)
					mc.storeOperand(dst, uint32(mc.Reg.Status.CCR()))
				})
			}
		}

		if isDataMode(m) {
			d.register(instructions.Definition{
				OpCode:    0x44c0 | ea,
				Operation: instructions.MOVEtoCCR,
				Size:      bus.Word,
				Src:       mode,
				Dst:       instructions.Implied,
				Cycles:    12 + timing.EACalc(mode, bus.Word),
				Effect:    instructions.Read,
			}, func(mc *M68K) {
				src := mc.resolveEA(mode, reg, bus.Word)
				val := mc.loadOperand(src)
				if mc.aborted {
					return
				}
				mc.setCCR(uint8(val))
			})

			d.register(instructions.Definition{
				OpCode:    0x46c0 | ea,
				Operation: instructions.MOVEtoSR,
				Size:      bus.Word,
				Src:       mode,
				Dst:       instructions.Implied,
				Cycles:    12 + timing.EACalc(mode, bus.Word),
				Effect:    instructions.Read,
			}, func(mc *M68K) {
				if !mc.supervisor() {
					mc.raisePrivilege()
					return
				}
				src := mc.resolveEA(mode, reg, bus.Word)
				val := mc.loadOperand(src)
				if mc.aborted {
					return
				}
				mc.setSR(uint16(val))
			})
		}
	}
}

// registerUSPMoves covers MOVE An,USP and MOVE USP,An: privileged access to
// the user stack pointer from supervisor mode.
func registerUSPMoves(d *dispatch) {
	for reg := uint16(0); reg < 8; reg++ {
		r := int(reg)

		d.register(instructions.Definition{
			OpCode:    0x4e60 | reg,
			Operation: instructions.MOVEtoUSP,
			Size:      bus.Long,
			Src:       instructions.AddressRegister,
			Dst:       instructions.Implied,
			Cycles:    4,
			Effect:    instructions.Write,
		}, func(mc *M68K) {
			if !mc.supervisor() {
				mc.raisePrivilege()
				return
			}
			_ = mc.Reg.SetValue(registers.USP, mc.Reg.A[r])
		})

		d.register(instructions.Definition{
			OpCode:    0x4e68 | reg,
			Operation: instructions.MOVEfromUSP,
			Size:      bus.Long,
			Src:       instructions.Implied,
			Dst:       instructions.AddressRegister,
			Cycles:    4,
			Effect:    instructions.Write,
		}, func(mc *M68K) {
			if !mc.supervisor() {
				mc.raisePrivilege()
				return
			}
			mc.Reg.A[r] = mc.Reg.Value(registers.USP)
		})
	}
}

func registerTraps(d *dispatch) {
	for n := uint16(0); n < 16; n++ {
		vector := uint8(VecTrap + n)

		d.register(instructions.Definition{
			OpCode:    0x4e40 | n,
			Operation: instructions.TRAP,
			Src:       instructions.Immediate,
			Dst:       instructions.Implied,
			Cycles:    4,
			Effect:    instructions.Interrupt,
		}, func(mc *M68K) {
			mc.trapException(vector, timing.ExceptionTrap)
		})
	}

	d.register(instructions.Definition{
		OpCode:    0x4e76,
		Operation: instructions.TRAPV,
		Src:       instructions.Implied,
		Dst:       instructions.Implied,
		Cycles:    4,
		Effect:    instructions.Interrupt,
	}, func(mc *M68K) {
		if mc.Reg.Status.Overflow {
			mc.trapException(VecTRAPV, timing.ExceptionTRAPV)
		}
	})
}

// movecRegister maps a MOVEC control register code to the register index.
// Returns NumRegisters for codes that do not exist on the variant.
func movecRegister(code uint16, v Variant) registers.Register {
	switch code {
	case 0x000:
		return registers.SFC
	case 0x001:
		return registers.DFC
	case 0x800:
		return registers.USP
	case 0x801:
		return registers.VBR
	}

	if v >= M68020 {
		switch code {
		case 0x002:
			return registers.CACR
		case 0x802:
			return registers.CAAR
		case 0x803:
			return registers.MSP
		case 0x804:
			return registers.ISP
		}
	}

	return registers.NumRegisters
}

func registerMOVEC(d *dispatch, v Variant) {
	for _, toControl := range []bool{false, true} {
		opcode := uint16(0x4e7a)
		if toControl {
			opcode = 0x4e7b
		}
		toCtrl := toControl
		variant := v

		d.register(instructions.Definition{
			OpCode:    opcode,
			Operation: instructions.MOVEC,
			Size:      bus.Long,
			Src:       instructions.Implied,
			Dst:       instructions.Implied,
			Cycles:    10,
			Effect:    instructions.Write,
		}, func(mc *M68K) {
			if !mc.supervisor() {
				mc.raisePrivilege()
				return
			}

			ext := mc.fetchPC()
			if mc.aborted {
				return
			}

			ctrl := movecRegister(ext&0x0fff, variant)
			if ctrl == registers.NumRegisters {
				mc.raiseIllegal(VecIllegal)
				return
			}

			gen := &mc.Reg.D[(ext>>12)&0x07]
			if ext&0x8000 == 0x8000 {
				gen = &mc.Reg.A[(ext>>12)&0x07]
			}

			if toCtrl {
				_ = mc.Reg.SetValue(ctrl, *gen)
			} else {
				*gen = mc.Reg.Value(ctrl)
			}
		})
	}
}

// registerMOVES covers MOVES: moves to and from the address space selected
// by the SFC/DFC registers. The emulated bus has a single address space so
// the function codes only select the register pair, not the access path.
func registerMOVES(d *dispatch) {
	for szF := uint16(0); szF < 3; szF++ {
		size := opSizes[szF]

		for ea := uint16(0); ea < 64; ea++ {
			m := instructions.DecodeMode(ea>>3, ea&0x07)
			if !isMemoryAlterable(m) {
				continue
			}
			mode := m
			reg := int(ea & 0x07)
			sz := size

			d.register(instructions.Definition{
				OpCode:    0x0e00 | szF<<6 | ea,
				Operation: instructions.MOVES,
				Size:      size,
				Src:       mode,
				Dst:       mode,
				Cycles:    18 + timing.EACalc(mode, size),
				Effect:    instructions.RMW,
			}, func(mc *M68K) {
				if !mc.supervisor() {
					mc.raisePrivilege()
					return
				}

				ext := mc.fetchPC()
				if mc.aborted {
					return
				}

				gen := &mc.Reg.D[(ext>>12)&0x07]
				addrReg := ext&0x8000 == 0x8000
				if addrReg {
					gen = &mc.Reg.A[(ext>>12)&0x07]
				}

				op := mc.resolveEA(mode, reg, sz)

				if ext&0x0800 == 0x0800 {
					// general register to memory
					mc.storeOperand(op, *gen)
					return
				}

				val := mc.loadOperand(op)
				if mc.aborted {
					return
				}
				if addrReg {
					*gen = sz.SignExtend(val)
					return
				}
				mask := sz.Mask()
				*gen = *gen&^mask | val&mask
			})
		}
	}
}
