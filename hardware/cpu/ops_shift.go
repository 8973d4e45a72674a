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

// the four shift/rotate types, in the order of their encoding field
const (
	shiftArith = iota
	shiftLogical
	shiftRotateX
	shiftRotate
)

var shiftOps = [4][2]instructions.Operation{
	{instructions.ASR, instructions.ASL},
	{instructions.LSR, instructions.LSL},
	{instructions.ROXR, instructions.ROXL},
	{instructions.ROR, instructions.ROL},
}

// registerShift fills in the shift and rotate instructions in both their
// register and single-shift memory forms.
func registerShift(d *dispatch, v Variant) {
	// register forms: the count is either a 3 bit immediate (0 meaning 8)
	// or a data register taken modulo 64
	for kind := uint16(0); kind < 4; kind++ {
		for szF := uint16(0); szF < 3; szF++ {
			size := opSizes[szF]

			for cnt := uint16(0); cnt < 8; cnt++ {
				for reg := uint16(0); reg < 8; reg++ {
					for dir := uint16(0); dir < 2; dir++ {
						op := shiftOps[kind][dir]
						left := dir == 1
						k := int(kind)
						r := int(reg)
						sz := size

						base := 6
						if size == bus.Long {
							base = 8
						}

						// immediate count
						n := int(cnt)
						if n == 0 {
							n = 8
						}
						d.register(instructions.Definition{
							OpCode:    0xe000 | cnt<<9 | dir<<8 | szF<<6 | kind<<3 | reg,
							Operation: op,
							Size:      size,
							Src:       instructions.Immediate,
							Dst:       instructions.DataRegister,
							Cycles:    base,
							Effect:    instructions.RMW,
						}, func(mc *M68K) {
							mask := sz.Mask()
							res := mc.shift(k, left, mc.Reg.D[r]&mask, n, sz)
							mc.Reg.D[r] = mc.Reg.D[r]&^mask | res&mask
							mc.addCycles(2 * n)
						})

						// register count
						c := int(cnt)
						d.register(instructions.Definition{
							OpCode:    0xe020 | cnt<<9 | dir<<8 | szF<<6 | kind<<3 | reg,
							Operation: op,
							Size:      size,
							Src:       instructions.DataRegister,
							Dst:       instructions.DataRegister,
							Cycles:    base,
							Effect:    instructions.RMW,
						}, func(mc *M68K) {
							nn := int(mc.Reg.D[c] & 0x3f)
							mask := sz.Mask()
							res := mc.shift(k, left, mc.Reg.D[r]&mask, nn, sz)
							mc.Reg.D[r] = mc.Reg.D[r]&^mask | res&mask
							mc.addCycles(2 * nn)
						})
					}
				}
			}
		}
	}

	// memory forms: word sized, always a single shift
	for kind := uint16(0); kind < 4; kind++ {
		for dir := uint16(0); dir < 2; dir++ {
			for ea := uint16(0); ea < 64; ea++ {
				m := instructions.DecodeMode(ea>>3, ea&0x07)
				if !isMemoryAlterable(m) {
					continue
				}
				mode := m
				reg := int(ea & 0x07)
				op := shiftOps[kind][dir]
				left := dir == 1
				k := int(kind)

				d.register(instructions.Definition{
					OpCode:    0xe0c0 | kind<<9 | dir<<8 | ea,
					Operation: op,
					Size:      bus.Word,
					Src:       mode,
					Dst:       mode,
					Cycles:    8 + timing.EACalc(mode, bus.Word),
					Effect:    instructions.RMW,
				}, func(mc *M68K) {
					dst := mc.resolveEA(mode, reg, bus.Word)
					val := mc.loadOperand(dst)
					if mc.aborted {
						return
					}
					res := mc.shift(k, left, val, 1, bus.Word)
					mc.storeOperand(dst, res)
				})
			}
		}
	}
}

// shift performs an n position shift or rotate, setting the condition codes
// as it goes. The step-at-a-time loop keeps the flag semantics honest for
// every count, including counts beyond the operand width.
func (mc *M68K) shift(kind int, left bool, v uint32, n int, size bus.Size) uint32 {
	sr := &mc.Reg.Status
	msb := size.MSB()
	mask := size.Mask()

	carry := false
	overflow := false

	switch kind {
	case shiftArith, shiftLogical:
		for i := 0; i < n; i++ {
			if left {
				carry = v&msb == msb
				r := v << 1 & mask
				if kind == shiftArith && (r&msb == msb) != carry {
					overflow = true
				}
				v = r
			} else {
				carry = v&0x01 == 0x01
				sign := v & msb
				v >>= 1
				if kind == shiftArith {
					v |= sign
				}
			}
		}
		sr.Carry = carry
		if n > 0 {
			sr.Extend = carry
		}
		sr.Overflow = overflow

	case shiftRotate:
		for i := 0; i < n; i++ {
			if left {
				carry = v&msb == msb
				v = v << 1 & mask
				if carry {
					v |= 0x01
				}
			} else {
				carry = v&0x01 == 0x01
				v >>= 1
				if carry {
					v |= msb
				}
			}
		}
		sr.Carry = carry
		sr.Overflow = false

	case shiftRotateX:
		for i := 0; i < n; i++ {
			x := sr.Extend
			if left {
				sr.Extend = v&msb == msb
				v = v << 1 & mask
				if x {
					v |= 0x01
				}
			} else {
				sr.Extend = v&0x01 == 0x01
				v >>= 1
				if x {
					v |= msb
				}
			}
		}
		// a zero count still copies X to C
		sr.Carry = sr.Extend
		sr.Overflow = false
	}

	mc.setNZ(v, size)
	return v
}
