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

// Package timing holds the 68000 cycle cost tables that are shared between
// instruction implementations: the effective address calculation surcharges
// and the exception processing costs.
//
// The numbers are from the instruction execution time tables of the M68000
// 8-/16-/32-Bit Microprocessors User's Manual (M68000UM, section 8). Per
// instruction base costs live with the instruction implementations in the
// cpu package; this package covers the costs that are common to many
// instructions.
package timing

import (
	"github.com/redcrab/gopher68k/hardware/bus"
	"github.com/redcrab/gopher68k/hardware/cpu/instructions"
)

// effective address calculation times, indexed by addressing mode. the
// first column is for byte/word operands, the second for long operands.
// (M68000UM table 8-1)
var eaCalc = [instructions.NumAddressingModes][2]int{
	instructions.DataRegister:    {0, 0},
	instructions.AddressRegister: {0, 0},
	instructions.Indirect:        {4, 8},
	instructions.PostIncrement:   {4, 8},
	instructions.PreDecrement:    {6, 10},
	instructions.Displacement:    {8, 12},
	instructions.Indexed:         {10, 14},
	instructions.AbsoluteShort:   {8, 12},
	instructions.AbsoluteLong:    {12, 16},
	instructions.PCDisplacement:  {8, 12},
	instructions.PCIndexed:       {10, 14},
	instructions.Immediate:       {4, 8},
	instructions.Implied:         {0, 0},
}

// EACalc returns the number of cycles taken to calculate (and fetch from)
// an effective address of the given mode and operand size.
func EACalc(mode instructions.AddressingMode, size bus.Size) int {
	if mode < 0 || mode >= instructions.NumAddressingModes {
		return 0
	}
	if size == bus.Long {
		return eaCalc[mode][1]
	}
	return eaCalc[mode][0]
}

// Exception processing times (M68000UM table 8-14).
const (
	ExceptionAddressError = 50
	ExceptionIllegal      = 34
	ExceptionPrivilege    = 34
	ExceptionTrace        = 34
	ExceptionInterrupt    = 44
	ExceptionTrap         = 34
	ExceptionCHK          = 40
	ExceptionTRAPV        = 34
	ExceptionDivideByZero = 38
	ExceptionReset        = 40
)

// BranchTaken is the additional cost of a taken Bcc/BRA over the fall
// through case of a byte-sized branch.
const BranchTaken = 2
