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

// registerLogic fills in the bitwise instructions along with NOT, Scc and
// TAS, and the immediate-to-CCR/SR forms.
func registerLogic(d *dispatch, v Variant) {
	registerStandard(d, stdBinary{
		line: 0xc000, op: instructions.AND, alu: aluAND, store: true,
		eaToDn: true, dnToEA: true, dstClass: isMemoryAlterable,
	})
	registerStandard(d, stdBinary{
		line: 0x8000, op: instructions.OR, alu: aluOR, store: true,
		eaToDn: true, dnToEA: true, dstClass: isMemoryAlterable,
	})
	registerStandard(d, stdBinary{
		line: 0xb000, op: instructions.EOR, alu: aluEOR, store: true,
		dnToEA: true, dstClass: isDataAlterable,
	})

	registerImmediate(d, 0x0200, instructions.ANDI, aluAND, true, immCycles{8, 14, 12, 20})
	registerImmediate(d, 0x0000, instructions.ORI, aluOR, true, immCycles{8, 16, 12, 20})
	registerImmediate(d, 0x0a00, instructions.EORI, aluEOR, true, immCycles{8, 16, 12, 20})

	registerImmediateStatus(d)
	registerNOT(d)
	registerScc(d)
	registerTAS(d)
}

// registerImmediateStatus covers the six immediate operations on the
// condition code register and the status register. The SR forms are
// privileged.
func registerImmediateStatus(d *dispatch) {
	type form struct {
		opcode uint16
		op     instructions.Operation
		sr     bool
		apply  func(old, imm uint16) uint16
	}

	or := func(old, imm uint16) uint16 { return old | imm }
	and := func(old, imm uint16) uint16 { return old & imm }
	eor := func(old, imm uint16) uint16 { return old ^ imm }

	forms := []form{
		{0x003c, instructions.ORItoCCR, false, or},
		{0x007c, instructions.ORItoSR, true, or},
		{0x023c, instructions.ANDItoCCR, false, and},
		{0x027c, instructions.ANDItoSR, true, and},
		{0x0a3c, instructions.EORItoCCR, false, eor},
		{0x0a7c, instructions.EORItoSR, true, eor},
	}

	for _, f := range forms {
		ff := f
		size := bus.Byte
		if f.sr {
			size = bus.Word
		}

		d.register(instructions.Definition{
			OpCode:    f.opcode,
			Operation: f.op,
			Size:      size,
			Src:       instructions.Immediate,
			Dst:       instructions.Implied,
			Cycles:    20,
			Effect:    instructions.RMW,
		}, func(mc *M68K) {
			imm := mc.fetchPC()
			if mc.aborted {
				return
			}
			if ff.sr {
				if !mc.supervisor() {
					mc.raisePrivilege()
					return
				}
				mc.setSR(ff.apply(mc.Reg.Status.Value(), imm))
				return
			}
			mc.setCCR(uint8(ff.apply(uint16(mc.Reg.Status.CCR()), imm&0xff)))
		})
	}
}

func registerNOT(d *dispatch) {
	for szF := uint16(0); szF < 3; szF++ {
		size := opSizes[szF]

		for ea := uint16(0); ea < 64; ea++ {
			m := instructions.DecodeMode(ea>>3, ea&0x07)
			if !isDataAlterable(m) {
				continue
			}
			mode := m
			reg := int(ea & 0x07)
			sz := size

			base := 8
			switch {
			case mode == instructions.DataRegister:
				base = 4
				if size == bus.Long {
					base = 6
				}
			case size == bus.Long:
				base = 12
			}

			d.register(instructions.Definition{
				OpCode:    0x4600 | szF<<6 | ea,
				Operation: instructions.NOT,
				Size:      size,
				Src:       mode,
				Dst:       mode,
				Cycles:    base + timing.EACalc(mode, size),
				Effect:    instructions.RMW,
			}, func(mc *M68K) {
				dst := mc.resolveEA(mode, reg, sz)
				v := mc.loadOperand(dst)
				if mc.aborted {
					return
				}
				r := ^v & sz.Mask()
				mc.flagsLogic(r, sz)
				mc.storeOperand(dst, r)
			})
		}
	}
}

// registerScc covers the Scc family: set the destination byte to all ones
// if the condition holds, all zeroes otherwise. Condition codes unaffected.
func registerScc(d *dispatch) {
	for cc := uint16(0); cc < 16; cc++ {
		for ea := uint16(0); ea < 64; ea++ {
			m := instructions.DecodeMode(ea>>3, ea&0x07)
			if !isDataAlterable(m) {
				continue
			}
			mode := m
			reg := int(ea & 0x07)
			cond := cc

			base := 4
			if mode != instructions.DataRegister {
				base = 8
			}

			d.register(instructions.Definition{
				OpCode:    0x50c0 | cc<<8 | ea,
				Operation: instructions.Scc,
				Size:      bus.Byte,
				Src:       instructions.Implied,
				Dst:       mode,
				Cycles:    base + timing.EACalc(mode, bus.Byte),
				Effect:    instructions.Write,
			}, func(mc *M68K) {
				dst := mc.resolveEA(mode, reg, bus.Byte)
				var r uint32
				if mc.testCC(cond) {
					r = 0xff
					if mode == instructions.DataRegister {
						mc.addCycles(2)
					}
				}
				mc.storeOperand(dst, r)
			})
		}
	}
}

// registerTAS covers TAS: test the byte operand, then set its high bit.
// On real hardware this is an indivisible read-modify-write bus cycle; on
// the emulated bus the two halves are simply consecutive.
func registerTAS(d *dispatch) {
	for ea := uint16(0); ea < 64; ea++ {
		m := instructions.DecodeMode(ea>>3, ea&0x07)
		if !isDataAlterable(m) {
			continue
		}
		mode := m
		reg := int(ea & 0x07)

		base := 4
		if mode != instructions.DataRegister {
			base = 10
		}

		d.register(instructions.Definition{
			OpCode:    0x4ac0 | ea,
			Operation: instructions.TAS,
			Size:      bus.Byte,
			Src:       mode,
			Dst:       mode,
			Cycles:    base + timing.EACalc(mode, bus.Byte),
			Effect:    instructions.RMW,
		}, func(mc *M68K) {
			dst := mc.resolveEA(mode, reg, bus.Byte)
			v := mc.loadOperand(dst)
			if mc.aborted {
				return
			}
			mc.flagsLogic(v, bus.Byte)
			mc.storeOperand(dst, v|0x80)
		})
	}
}
