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
	"github.com/redcrab/gopher68k/hardware/cpu/timing"
)

// registerMove fills in the MOVE family: MOVE, MOVEA, MOVEQ, LEA, PEA, EXG,
// SWAP, EXT, MOVEM and MOVEP.
func registerMove(d *dispatch, v Variant) {
	registerMOVE(d)
	registerMOVEQ(d)
	registerLEAPEA(d)
	registerEXG(d)
	registerSWAPEXT(d)
	registerMOVEM(d)
	registerMOVEP(d)
}

func registerMOVE(d *dispatch) {
	sizes := []struct {
		bits uint16
		size bus.Size
	}{
		{0x1000, bus.Byte},
		{0x3000, bus.Word},
		{0x2000, bus.Long},
	}

	for _, sz := range sizes {
		size := sz.size
		for src := uint16(0); src < 64; src++ {
			sm := instructions.DecodeMode(src>>3, src&0x07)
			if sm >= instructions.Implied {
				continue
			}
			if size == bus.Byte && sm == instructions.AddressRegister {
				continue
			}
			sreg := int(src & 0x07)

			for dst := uint16(0); dst < 64; dst++ {
				// destination field is written register-first
				dm := instructions.DecodeMode(dst&0x07, dst>>3)
				dreg := int(dst >> 3)

				opcode := sz.bits | dst<<6 | src

				if dm == instructions.AddressRegister {
					if size == bus.Byte {
						continue
					}
					d.register(instructions.Definition{
						OpCode:    opcode,
						Operation: instructions.MOVEA,
						Size:      size,
						Src:       sm,
						Dst:       dm,
						Cycles:    4 + timing.EACalc(sm, size),
						Effect:    instructions.Write,
					}, opMOVEA(sm, sreg, dreg, size))
					continue
				}

				if !isDataAlterable(dm) {
					continue
				}

				d.register(instructions.Definition{
					OpCode:    opcode,
					Operation: instructions.MOVE,
					Size:      size,
					Src:       sm,
					Dst:       dm,
					Cycles:    4 + timing.EACalc(sm, size) + timing.EACalc(dm, size),
					Effect:    instructions.Write,
				}, opMOVE(sm, sreg, dm, dreg, size))
			}
		}
	}
}

func opMOVE(sm instructions.AddressingMode, sreg int, dm instructions.AddressingMode, dreg int, size bus.Size) opFunc {
	return func(mc *M68K) {
		src := mc.resolveEA(sm, sreg, size)
		val := mc.loadOperand(src)
		if mc.aborted {
			return
		}
		dst := mc.resolveEA(dm, dreg, size)
		mc.storeOperand(dst, val)
		mc.flagsLogic(val, size)
	}
}

func opMOVEA(sm instructions.AddressingMode, sreg int, dreg int, size bus.Size) opFunc {
	return func(mc *M68K) {
		src := mc.resolveEA(sm, sreg, size)
		val := mc.loadOperand(src)
		if mc.aborted {
			return
		}
		// word moves to an address register sign extend. flags untouched
		mc.Reg.A[dreg] = size.SignExtend(val)
	}
}

func registerMOVEQ(d *dispatch) {
	for reg := uint16(0); reg < 8; reg++ {
		for data := uint16(0); data < 256; data++ {
			opcode := 0x7000 | reg<<9 | data
			dreg := int(reg)
			val := bus.Byte.SignExtend(uint32(data))

			d.register(instructions.Definition{
				OpCode:    opcode,
				Operation: instructions.MOVEQ,
				Size:      bus.Long,
				Src:       instructions.Immediate,
				Dst:       instructions.DataRegister,
				Cycles:    4,
				Effect:    instructions.Write,
			}, func(mc *M68K) {
				mc.Reg.D[dreg] = val
				mc.flagsLogic(val, bus.Long)
			})
		}
	}
}

func registerLEAPEA(d *dispatch) {
	for ea := uint16(0); ea < 64; ea++ {
		m := instructions.DecodeMode(ea>>3, ea&0x07)
		if !isControl(m) {
			continue
		}
		mode := m
		reg := int(ea & 0x07)

		for an := uint16(0); an < 8; an++ {
			areg := int(an)
			d.register(instructions.Definition{
				OpCode:    0x41c0 | an<<9 | ea,
				Operation: instructions.LEA,
				Size:      bus.Long,
				Src:       mode,
				Dst:       instructions.AddressRegister,
				Cycles:    timing.EACalc(mode, bus.Word),
				Effect:    instructions.Write,
			}, func(mc *M68K) {
				op := mc.resolveEA(mode, reg, bus.Long)
				if mc.aborted {
					return
				}
				mc.Reg.A[areg] = op.addr
			})
		}

		d.register(instructions.Definition{
			OpCode:    0x4840 | ea,
			Operation: instructions.PEA,
			Size:      bus.Long,
			Src:       mode,
			Dst:       instructions.Implied,
			Cycles:    8 + timing.EACalc(mode, bus.Word),
			Effect:    instructions.Write,
		}, func(mc *M68K) {
			op := mc.resolveEA(mode, reg, bus.Long)
			if mc.aborted {
				return
			}
			mc.pushLong(op.addr)
		})
	}
}

func registerEXG(d *dispatch) {
	for x := uint16(0); x < 8; x++ {
		for y := uint16(0); y < 8; y++ {
			rx := int(x)
			ry := int(y)

			d.register(instructions.Definition{
				OpCode:    0xc140 | x<<9 | y,
				Operation: instructions.EXG,
				Size:      bus.Long,
				Src:       instructions.DataRegister,
				Dst:       instructions.DataRegister,
				Cycles:    6,
				Effect:    instructions.Write,
			}, func(mc *M68K) {
				mc.Reg.D[rx], mc.Reg.D[ry] = mc.Reg.D[ry], mc.Reg.D[rx]
			})

			d.register(instructions.Definition{
				OpCode:    0xc148 | x<<9 | y,
				Operation: instructions.EXG,
				Size:      bus.Long,
				Src:       instructions.AddressRegister,
				Dst:       instructions.AddressRegister,
				Cycles:    6,
				Effect:    instructions.Write,
			}, func(mc *M68K) {
				mc.Reg.A[rx], mc.Reg.A[ry] = mc.Reg.A[ry], mc.Reg.A[rx]
			})

			d.register(instructions.Definition{
				OpCode:    0xc188 | x<<9 | y,
				Operation: instructions.EXG,
				Size:      bus.Long,
				Src:       instructions.DataRegister,
				Dst:       instructions.AddressRegister,
				Cycles:    6,
				Effect:    instructions.Write,
			}, func(mc *M68K) {
				mc.Reg.D[rx], mc.Reg.A[ry] = mc.Reg.A[ry], mc.Reg.D[rx]
			})
		}
	}
}

func registerSWAPEXT(d *dispatch) {
	for reg := uint16(0); reg < 8; reg++ {
		r := int(reg)

		d.register(instructions.Definition{
			OpCode:    0x4840 | reg,
			Operation: instructions.SWAP,
			Size:      bus.Long,
			Src:       instructions.DataRegister,
			Dst:       instructions.DataRegister,
			Cycles:    4,
			Effect:    instructions.RMW,
		}, func(mc *M68K) {
			v := mc.Reg.D[r]>>16 | mc.Reg.D[r]<<16
			mc.Reg.D[r] = v
			mc.flagsLogic(v, bus.Long)
		})

		d.register(instructions.Definition{
			OpCode:    0x4880 | reg,
			Operation: instructions.EXT,
			Size:      bus.Word,
			Src:       instructions.DataRegister,
			Dst:       instructions.DataRegister,
			Cycles:    4,
			Effect:    instructions.RMW,
		}, func(mc *M68K) {
			v := bus.Byte.SignExtend(mc.Reg.D[r])
			mc.Reg.D[r] = mc.Reg.D[r]&0xffff0000 | v&0xffff
			mc.flagsLogic(v, bus.Word)
		})

		d.register(instructions.Definition{
			OpCode:    0x48c0 | reg,
			Operation: instructions.EXT,
			Size:      bus.Long,
			Src:       instructions.DataRegister,
			Dst:       instructions.DataRegister,
			Cycles:    4,
			Effect:    instructions.RMW,
		}, func(mc *M68K) {
			v := bus.Word.SignExtend(mc.Reg.D[r])
			mc.Reg.D[r] = v
			mc.flagsLogic(v, bus.Long)
		})
	}
}

func registerMOVEM(d *dispatch) {
	sizes := []struct {
		bits uint16
		size bus.Size
	}{
		{0x0000, bus.Word},
		{0x0040, bus.Long},
	}

	for _, sz := range sizes {
		size := sz.size
		for ea := uint16(0); ea < 64; ea++ {
			m := instructions.DecodeMode(ea>>3, ea&0x07)
			mode := m
			reg := int(ea & 0x07)

			// registers to memory: control alterable or predecrement
			if isControlAlterable(m) || m == instructions.PreDecrement {
				d.register(instructions.Definition{
					OpCode:    0x4880 | sz.bits | ea,
					Operation: instructions.MOVEM,
					Size:      size,
					Src:       instructions.Implied,
					Dst:       mode,
					Cycles:    8 + timing.EACalc(mode, bus.Word),
					Effect:    instructions.Write,
				}, opMOVEMstore(mode, reg, size))
			}

			// memory to registers: control or postincrement
			if isControl(m) || m == instructions.PostIncrement {
				d.register(instructions.Definition{
					OpCode:    0x4c80 | sz.bits | ea,
					Operation: instructions.MOVEM,
					Size:      size,
					Src:       mode,
					Dst:       instructions.Implied,
					Cycles:    12 + timing.EACalc(mode, bus.Word),
					Effect:    instructions.Read,
				}, opMOVEMload(mode, reg, size))
			}
		}
	}
}

// movemReg returns a pointer to data register n for n < 8 and address
// register n-8 otherwise, matching the layout of the MOVEM mask word.
func (mc *M68K) movemReg(n int) *uint32 {
	if n < 8 {
		return &mc.Reg.D[n]
	}
	return &mc.Reg.A[n-8]
}

func opMOVEMstore(mode instructions.AddressingMode, reg int, size bus.Size) opFunc {
	perReg := 4
	if size == bus.Long {
		perReg = 8
	}

	return func(mc *M68K) {
		mask := mc.fetchPC()
		if mc.aborted {
			return
		}

		if mode == instructions.PreDecrement {
			// predecrement transfers run A7 down to D0 and the mask
			// bit order is reversed
			addr := mc.Reg.A[reg]
			for n := 0; n < 16; n++ {
				if mask&(1<<n) == 0 {
					continue
				}
				addr -= uint32(size)
				mc.write(size, addr, *mc.movemReg(15-n))
				if mc.aborted {
					return
				}
				mc.addCycles(perReg)
			}
			mc.Reg.A[reg] = addr
			return
		}

		op := mc.resolveEA(mode, reg, size)
		if mc.aborted {
			return
		}
		addr := op.addr
		for n := 0; n < 16; n++ {
			if mask&(1<<n) == 0 {
				continue
			}
			mc.write(size, addr, *mc.movemReg(n))
			if mc.aborted {
				return
			}
			addr += uint32(size)
			mc.addCycles(perReg)
		}
	}
}

func opMOVEMload(mode instructions.AddressingMode, reg int, size bus.Size) opFunc {
	perReg := 4
	if size == bus.Long {
		perReg = 8
	}

	return func(mc *M68K) {
		mask := mc.fetchPC()
		if mc.aborted {
			return
		}

		var addr uint32
		if mode == instructions.PostIncrement {
			addr = mc.Reg.A[reg]
		} else {
			op := mc.resolveEA(mode, reg, size)
			if mc.aborted {
				return
			}
			addr = op.addr
		}

		for n := 0; n < 16; n++ {
			if mask&(1<<n) == 0 {
				continue
			}
			v := mc.read(size, addr)
			if mc.aborted {
				return
			}
			// memory to register transfers always load a full 32
			// bit value, sign extended for word transfers
			*mc.movemReg(n) = size.SignExtend(v)
			addr += uint32(size)
			mc.addCycles(perReg)
		}

		if mode == instructions.PostIncrement {
			mc.Reg.A[reg] = addr
		}
	}
}

func registerMOVEP(d *dispatch) {
	for dn := uint16(0); dn < 8; dn++ {
		for an := uint16(0); an < 8; an++ {
			dreg := int(dn)
			areg := int(an)

			forms := []struct {
				opmode uint16
				size   bus.Size
				toMem  bool
				cycles int
			}{
				{0x0100, bus.Word, false, 16},
				{0x0140, bus.Long, false, 24},
				{0x0180, bus.Word, true, 16},
				{0x01c0, bus.Long, true, 24},
			}

			for _, f := range forms {
				size := f.size
				toMem := f.toMem

				d.register(instructions.Definition{
					OpCode:    0x0008 | dn<<9 | f.opmode | an,
					Operation: instructions.MOVEP,
					Size:      size,
					Src:       instructions.Displacement,
					Dst:       instructions.DataRegister,
					Cycles:    f.cycles,
					Effect:    instructions.RMW,
				}, func(mc *M68K) {
					disp := mc.fetchPC()
					if mc.aborted {
						return
					}
					addr := mc.Reg.A[areg] + bus.Word.SignExtend(uint32(disp))

					n := int(size)
					if toMem {
						v := mc.Reg.D[dreg]
						for i := 0; i < n; i++ {
							shift := uint(8 * (n - 1 - i))
							mc.write(bus.Byte, addr+uint32(i*2), v>>shift&0xff)
							if mc.aborted {
								return
							}
						}
						return
					}

					var v uint32
					for i := 0; i < n; i++ {
						v = v<<8 | mc.read(bus.Byte, addr+uint32(i*2))
						if mc.aborted {
							return
						}
					}
					mask := size.Mask()
					mc.Reg.D[dreg] = mc.Reg.D[dreg]&^mask | v&mask
				})
			}
		}
	}
}
