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

// registerFlow fills in the control flow instructions: the branches, jumps,
// subroutine calls and returns, and the stack frame pair LINK/UNLK.
func registerFlow(d *dispatch, v Variant) {
	registerBranches(d, v)
	registerDBcc(d)
	registerJumps(d)
	registerReturns(d, v)
	registerLinkage(d)

	d.register(instructions.Definition{
		OpCode:    0x4e71,
		Operation: instructions.NOP,
		Src:       instructions.Implied,
		Dst:       instructions.Implied,
		Cycles:    4,
		Effect:    instructions.Read,
	}, func(mc *M68K) {})
}

func registerBranches(d *dispatch, v Variant) {
	for cc := uint16(0); cc < 16; cc++ {
		for disp := uint16(0); disp < 256; disp++ {
			opcode := 0x6000 | cc<<8 | disp

			op := instructions.Bcc
			effect := instructions.Flow
			switch cc {
			case 0:
				op = instructions.BRA
			case 1:
				op = instructions.BSR
				effect = instructions.Subroutine
			}

			longDisp := disp == 0xff && v.scaledIndex()

			var size bus.Size
			var base int
			switch {
			case disp == 0x00:
				size = bus.Word
				base = 10
			case longDisp:
				size = bus.Long
				base = 10
			default:
				size = bus.Byte
				base = 8
			}
			if op == instructions.BRA {
				base = 10
			}
			if op == instructions.BSR {
				base = 18
			}

			cond := cc
			d8 := disp
			sz := size

			d.register(instructions.Definition{
				OpCode:    opcode,
				Operation: op,
				Size:      size,
				Src:       instructions.Immediate,
				Dst:       instructions.Implied,
				Cycles:    base,
				Effect:    effect,
			}, func(mc *M68K) {
				base := mc.Reg.PC

				var target uint32
				switch sz {
				case bus.Word:
					target = base + bus.Word.SignExtend(uint32(mc.fetchPC()))
				case bus.Long:
					target = base + mc.fetchPCLong()
				default:
					target = base + bus.Byte.SignExtend(uint32(d8))
				}
				if mc.aborted {
					return
				}

				switch cond {
				case 0: // BRA
					mc.Reg.PC = target
					mc.LastResult.BranchTaken = true
				case 1: // BSR
					mc.callDepth++
					mc.pushLong(mc.Reg.PC)
					mc.Reg.PC = target
				default:
					if mc.testCC(cond) {
						mc.Reg.PC = target
						mc.LastResult.BranchTaken = true
						if sz == bus.Byte {
							mc.addCycles(timing.BranchTaken)
						}
					} else if sz != bus.Byte {
						mc.addCycles(timing.BranchTaken)
					}
				}
			})
		}
	}
}

func registerDBcc(d *dispatch) {
	for cc := uint16(0); cc < 16; cc++ {
		for reg := uint16(0); reg < 8; reg++ {
			cond := cc
			r := int(reg)

			d.register(instructions.Definition{
				OpCode:    0x50c8 | cc<<8 | reg,
				Operation: instructions.DBcc,
				Size:      bus.Word,
				Src:       instructions.DataRegister,
				Dst:       instructions.Immediate,
				Cycles:    10,
				Effect:    instructions.Flow,
			}, func(mc *M68K) {
				base := mc.Reg.PC
				disp := bus.Word.SignExtend(uint32(mc.fetchPC()))
				if mc.aborted {
					return
				}

				if mc.testCC(cond) {
					mc.addCycles(2)
					return
				}

				cnt := uint16(mc.Reg.D[r]) - 1
				mc.Reg.D[r] = mc.Reg.D[r]&0xffff0000 | uint32(cnt)

				if cnt == 0xffff {
					// counter expired
					mc.addCycles(4)
					return
				}

				mc.Reg.PC = base + disp
				mc.LastResult.BranchTaken = true
			})
		}
	}
}

func registerJumps(d *dispatch) {
	for ea := uint16(0); ea < 64; ea++ {
		m := instructions.DecodeMode(ea>>3, ea&0x07)
		if !isControl(m) {
			continue
		}
		mode := m
		reg := int(ea & 0x07)

		d.register(instructions.Definition{
			OpCode:    0x4ec0 | ea,
			Operation: instructions.JMP,
			Src:       mode,
			Dst:       instructions.Implied,
			Cycles:    4 + timing.EACalc(mode, bus.Word),
			Effect:    instructions.Flow,
		}, func(mc *M68K) {
			op := mc.resolveEA(mode, reg, bus.Long)
			if mc.aborted {
				return
			}
			mc.Reg.PC = op.addr
		})

		d.register(instructions.Definition{
			OpCode:    0x4e80 | ea,
			Operation: instructions.JSR,
			Src:       mode,
			Dst:       instructions.Implied,
			Cycles:    12 + timing.EACalc(mode, bus.Word),
			Effect:    instructions.Subroutine,
		}, func(mc *M68K) {
			op := mc.resolveEA(mode, reg, bus.Long)
			if mc.aborted {
				return
			}
			mc.callDepth++
			mc.pushLong(mc.Reg.PC)
			mc.Reg.PC = op.addr
		})
	}
}

func registerReturns(d *dispatch, v Variant) {
	d.register(instructions.Definition{
		OpCode:    0x4e75,
		Operation: instructions.RTS,
		Src:       instructions.Implied,
		Dst:       instructions.Implied,
		Cycles:    16,
		Effect:    instructions.Subroutine,
	}, func(mc *M68K) {
		pc := mc.popLong()
		if mc.aborted {
			return
		}
		mc.callDepth--
		mc.Reg.PC = pc
	})

	d.register(instructions.Definition{
		OpCode:    0x4e77,
		Operation: instructions.RTR,
		Src:       instructions.Implied,
		Dst:       instructions.Implied,
		Cycles:    20,
		Effect:    instructions.Subroutine,
	}, func(mc *M68K) {
		ccr := mc.popWord()
		pc := mc.popLong()
		if mc.aborted {
			return
		}
		mc.setCCR(uint8(ccr))
		mc.callDepth--
		mc.Reg.PC = pc
	})

	d.register(instructions.Definition{
		OpCode:    0x4e73,
		Operation: instructions.RTE,
		Src:       instructions.Implied,
		Dst:       instructions.Implied,
		Cycles:    20,
		Effect:    instructions.Interrupt,
	}, func(mc *M68K) {
		if !mc.supervisor() {
			mc.raisePrivilege()
			return
		}

		sr := mc.popWord()
		pc := mc.popLong()
		if mc.aborted {
			return
		}

		if mc.Variant.hasFrameFormat() {
			fw := mc.popWord()
			if fw&0x8000 == 0x8000 {
				// short bus error frame: discard the fault address
				mc.popLong()
			}
			if mc.aborted {
				return
			}
		}

		mc.setSR(sr)
		mc.callDepth--
		mc.Reg.PC = pc
	})

	if v >= M68010 {
		d.register(instructions.Definition{
			OpCode:    0x4e74,
			Operation: instructions.RTD,
			Src:       instructions.Immediate,
			Dst:       instructions.Implied,
			Cycles:    16,
			Effect:    instructions.Subroutine,
		}, func(mc *M68K) {
			disp := bus.Word.SignExtend(uint32(mc.fetchPC()))
			pc := mc.popLong()
			if mc.aborted {
				return
			}
			mc.Reg.A[7] += disp
			mc.callDepth--
			mc.Reg.PC = pc
		})
	}
}

func registerLinkage(d *dispatch) {
	for reg := uint16(0); reg < 8; reg++ {
		r := int(reg)

		d.register(instructions.Definition{
			OpCode:    0x4e50 | reg,
			Operation: instructions.LINK,
			Size:      bus.Word,
			Src:       instructions.AddressRegister,
			Dst:       instructions.Immediate,
			Cycles:    16,
			Effect:    instructions.Write,
		}, func(mc *M68K) {
			disp := bus.Word.SignExtend(uint32(mc.fetchPC()))
			if mc.aborted {
				return
			}
			mc.pushLong(mc.Reg.A[r])
			if mc.aborted {
				return
			}
			mc.Reg.A[r] = mc.Reg.A[7]
			mc.Reg.A[7] += disp
		})

		d.register(instructions.Definition{
			OpCode:    0x4e58 | reg,
			Operation: instructions.UNLK,
			Src:       instructions.AddressRegister,
			Dst:       instructions.Implied,
			Cycles:    12,
			Effect:    instructions.Write,
		}, func(mc *M68K) {
			mc.Reg.A[7] = mc.Reg.A[r]
			v := mc.popLong()
			if mc.aborted {
				return
			}
			mc.Reg.A[r] = v
		})
	}
}
