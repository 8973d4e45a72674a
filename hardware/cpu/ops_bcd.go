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

// registerBCD fills in the binary coded decimal instructions: ABCD, SBCD
// and NBCD. All three operate on single bytes with the extend flag folded
// in.
//
// N and V are formally undefined after a BCD operation; here N follows the
// result sign bit and V is cleared.
func registerBCD(d *dispatch, v Variant) {
	for _, f := range []struct {
		line uint16
		op   instructions.Operation
		sub  bool
	}{
		{0xc100, instructions.ABCD, false},
		{0x8100, instructions.SBCD, true},
	} {
		for rx := uint16(0); rx < 8; rx++ {
			for ry := uint16(0); ry < 8; ry++ {
				x := int(rx)
				y := int(ry)
				sub := f.sub

				d.register(instructions.Definition{
					OpCode:    f.line | rx<<9 | ry,
					Operation: f.op,
					Size:      bus.Byte,
					Src:       instructions.DataRegister,
					Dst:       instructions.DataRegister,
					Cycles:    6,
					Effect:    instructions.RMW,
				}, func(mc *M68K) {
					r := mc.bcdOp(mc.Reg.D[y]&0xff, mc.Reg.D[x]&0xff, sub)
					mc.Reg.D[x] = mc.Reg.D[x]&^uint32(0xff) | r
				})

				d.register(instructions.Definition{
					OpCode:    f.line | rx<<9 | 0x08 | ry,
					Operation: f.op,
					Size:      bus.Byte,
					Src:       instructions.PreDecrement,
					Dst:       instructions.PreDecrement,
					Cycles:    18,
					Effect:    instructions.RMW,
				}, func(mc *M68K) {
					src := mc.resolveEA(instructions.PreDecrement, y, bus.Byte)
					s := mc.loadOperand(src)
					if mc.aborted {
						return
					}
					dst := mc.resolveEA(instructions.PreDecrement, x, bus.Byte)
					dv := mc.loadOperand(dst)
					if mc.aborted {
						return
					}
					mc.storeOperand(dst, mc.bcdOp(s, dv, sub))
				})
			}
		}
	}

	// NBCD: decimal negate with extend
	for ea := uint16(0); ea < 64; ea++ {
		m := instructions.DecodeMode(ea>>3, ea&0x07)
		if !isDataAlterable(m) {
			continue
		}
		mode := m
		reg := int(ea & 0x07)

		base := 6
		if mode != instructions.DataRegister {
			base = 8
		}

		d.register(instructions.Definition{
			OpCode:    0x4800 | ea,
			Operation: instructions.NBCD,
			Size:      bus.Byte,
			Src:       mode,
			Dst:       mode,
			Cycles:    base + timing.EACalc(mode, bus.Byte),
			Effect:    instructions.RMW,
		}, func(mc *M68K) {
			dst := mc.resolveEA(mode, reg, bus.Byte)
			dv := mc.loadOperand(dst)
			if mc.aborted {
				return
			}
			mc.storeOperand(dst, mc.bcdOp(dv, 0, true))
		})
	}
}

// bcdOp computes the decimal d + s or d - s with the extend flag as carry
// in, and sets the flags per the multi-precision conventions: Z is only
// ever cleared.
func (mc *M68K) bcdOp(s, d uint32, sub bool) uint32 {
	var x int
	if mc.Reg.Status.Extend {
		x = 1
	}

	var res int
	var carry bool

	if sub {
		lo := int(d&0x0f) - int(s&0x0f) - x
		res = int(d) - int(s) - x
		if lo < 0 {
			res -= 0x06
		}
		carry = res < 0
		if carry {
			res += 0xa0
		}
	} else {
		lo := int(d&0x0f) + int(s&0x0f) + x
		res = int(d) + int(s) + x
		if lo > 0x09 {
			res += 0x06
		}
		carry = res > 0x99
		if carry {
			res -= 0xa0
		}
	}

	r := uint32(res) & 0xff

	mc.Reg.Status.Carry = carry
	mc.Reg.Status.Extend = carry
	mc.Reg.Status.Overflow = false
	mc.Reg.Status.Negative = r&0x80 == 0x80
	if r != 0 {
		mc.Reg.Status.Zero = false
	}

	return r
}
