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

import "github.com/redcrab/gopher68k/hardware/cpu/instructions"

// Addressing mode classes as defined in the M68000 family programmer's
// reference. Registration loops use these to decide which effective address
// field values an instruction accepts.

func isDataMode(m instructions.AddressingMode) bool {
	return m < instructions.Implied && m != instructions.AddressRegister
}

func isDataAlterable(m instructions.AddressingMode) bool {
	switch m {
	case instructions.AddressRegister, instructions.PCDisplacement,
		instructions.PCIndexed, instructions.Immediate:
		return false
	}
	return m < instructions.Implied
}

func isMemoryAlterable(m instructions.AddressingMode) bool {
	return isDataAlterable(m) && m != instructions.DataRegister
}

func isControl(m instructions.AddressingMode) bool {
	switch m {
	case instructions.Indirect, instructions.Displacement, instructions.Indexed,
		instructions.AbsoluteShort, instructions.AbsoluteLong,
		instructions.PCDisplacement, instructions.PCIndexed:
		return true
	}
	return false
}

func isControlAlterable(m instructions.AddressingMode) bool {
	return isControl(m) && m != instructions.PCDisplacement && m != instructions.PCIndexed
}

func isAlterable(m instructions.AddressingMode) bool {
	switch m {
	case instructions.PCDisplacement, instructions.PCIndexed, instructions.Immediate:
		return false
	}
	return m < instructions.Implied
}
