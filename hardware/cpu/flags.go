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

import "github.com/redcrab/gopher68k/hardware/bus"

// setNZ sets the negative and zero flags from a result value.
func (mc *M68K) setNZ(v uint32, size bus.Size) {
	v &= size.Mask()
	mc.Reg.Status.Negative = v&size.MSB() == size.MSB()
	mc.Reg.Status.Zero = v == 0
}

// flagsLogic sets the flags for the bitwise operations: N and Z from the
// result, V and C always cleared, X untouched.
func (mc *M68K) flagsLogic(r uint32, size bus.Size) {
	mc.setNZ(r, size)
	mc.Reg.Status.Overflow = false
	mc.Reg.Status.Carry = false
}

// flagsAdd sets the flags for r = d + s. The carry and overflow are derived
// from the sign bits of the operands and the result.
func (mc *M68K) flagsAdd(s, d, r uint32, size bus.Size, extendOp bool) {
	msb := size.MSB()

	c := (s&d | ^r&d | s&^r) & msb
	v := (s&d&^r | ^s&^d&r) & msb

	mc.Reg.Status.Carry = c == msb
	mc.Reg.Status.Extend = c == msb
	mc.Reg.Status.Overflow = v == msb
	mc.Reg.Status.Negative = r&msb == msb

	if extendOp {
		// ADDX leaves Z alone for a zero result so that a multi
		// precision chain can test the whole chain for zero
		if r&size.Mask() != 0 {
			mc.Reg.Status.Zero = false
		}
	} else {
		mc.Reg.Status.Zero = r&size.Mask() == 0
	}
}

// flagsSub sets the flags for r = d - s. When borrow is false (CMP) the
// extend flag is left untouched.
func (mc *M68K) flagsSub(s, d, r uint32, size bus.Size, borrow bool, extendOp bool) {
	msb := size.MSB()

	c := (s&^d | r&^d | s&r) & msb
	v := (^s&d&^r | s&^d&r) & msb

	mc.Reg.Status.Carry = c == msb
	if borrow {
		mc.Reg.Status.Extend = c == msb
	}
	mc.Reg.Status.Overflow = v == msb
	mc.Reg.Status.Negative = r&msb == msb

	if extendOp {
		if r&size.Mask() != 0 {
			mc.Reg.Status.Zero = false
		}
	} else {
		mc.Reg.Status.Zero = r&size.Mask() == 0
	}
}
