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

var bitOps = [4]instructions.Operation{
	instructions.BTST, instructions.BCHG, instructions.BCLR, instructions.BSET,
}

// registerBits fills in the bit manipulation instructions in their dynamic
// (bit number in a data register) and static (bit number in an extension
// word) forms.
//
// A data register operand is 32 bits wide and the bit number is taken
// modulo 32; a memory operand is a single byte and the bit number is taken
// modulo 8.
func registerBits(d *dispatch, v Variant) {
	for t := uint16(0); t < 4; t++ {
		op := bitOps[t]
		test := t == 0

		for ea := uint16(0); ea < 64; ea++ {
			m := instructions.DecodeMode(ea>>3, ea&0x07)

			ok := isDataAlterable(m)
			if test {
				ok = isDataMode(m) && m != instructions.Immediate
			}
			if !ok {
				continue
			}

			mode := m
			reg := int(ea & 0x07)
			opv := op
			tst := test

			base := 8
			if mode == instructions.DataRegister {
				base = 6
			}
			if !test && mode == instructions.DataRegister {
				base = 8
			}

			// dynamic form
			for dn := uint16(0); dn < 8; dn++ {
				n := int(dn)
				d.register(instructions.Definition{
					OpCode:    0x0100 | dn<<9 | t<<6 | ea,
					Operation: op,
					Size:      bus.Byte,
					Src:       instructions.DataRegister,
					Dst:       mode,
					Cycles:    base + timing.EACalc(mode, bus.Byte),
					Effect:    bitEffect(test),
				}, func(mc *M68K) {
					mc.bitOp(opv, tst, mode, reg, mc.Reg.D[n])
				})
			}

			// static form
			d.register(instructions.Definition{
				OpCode:    0x0800 | t<<6 | ea,
				Operation: op,
				Size:      bus.Byte,
				Src:       instructions.Immediate,
				Dst:       mode,
				Cycles:    base + 4 + timing.EACalc(mode, bus.Byte),
				Effect:    bitEffect(test),
			}, func(mc *M68K) {
				num := mc.fetchPC()
				if mc.aborted {
					return
				}
				mc.bitOp(opv, tst, mode, reg, uint32(num))
			})
		}
	}
}

func bitEffect(test bool) instructions.EffectCategory {
	if test {
		return instructions.Read
	}
	return instructions.RMW
}

func (mc *M68K) bitOp(op instructions.Operation, test bool, mode instructions.AddressingMode, reg int, num uint32) {
	size := bus.Byte
	if mode == instructions.DataRegister {
		size = bus.Long
		num &= 0x1f
	} else {
		num &= 0x07
	}
	bit := uint32(1) << num

	dst := mc.resolveEA(mode, reg, size)
	v := mc.loadOperand(dst)
	if mc.aborted {
		return
	}

	mc.Reg.Status.Zero = v&bit == 0
	if test {
		return
	}

	switch op {
	case instructions.BCHG:
		v ^= bit
	case instructions.BCLR:
		v &^= bit
	case instructions.BSET:
		v |= bit
	}
	mc.storeOperand(dst, v)
}
