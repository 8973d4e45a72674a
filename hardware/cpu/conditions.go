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

// ConditionMnemonic returns the assembler suffix for a 4-bit condition
// field. Bcc uses "RA" (0) and "SR" (1) in place of the T and F conditions;
// that substitution belongs to the decoder, not here.
func ConditionMnemonic(cc uint16) string {
	return conditionMnemonics[cc&0x0f]
}

var conditionMnemonics = [16]string{
	"T", "F", "HI", "LS", "CC", "CS", "NE", "EQ",
	"VC", "VS", "PL", "MI", "GE", "LT", "GT", "LE",
}

// testCC evaluates a 4-bit condition field against the current condition
// codes.
func (mc *M68K) testCC(cc uint16) bool {
	sr := &mc.Reg.Status

	switch cc & 0x0f {
	case 0x00: // T
		return true
	case 0x01: // F
		return false
	case 0x02: // HI
		return !sr.Carry && !sr.Zero
	case 0x03: // LS
		return sr.Carry || sr.Zero
	case 0x04: // CC
		return !sr.Carry
	case 0x05: // CS
		return sr.Carry
	case 0x06: // NE
		return !sr.Zero
	case 0x07: // EQ
		return sr.Zero
	case 0x08: // VC
		return !sr.Overflow
	case 0x09: // VS
		return sr.Overflow
	case 0x0a: // PL
		return !sr.Negative
	case 0x0b: // MI
		return sr.Negative
	case 0x0c: // GE
		return sr.Negative == sr.Overflow
	case 0x0d: // LT
		return sr.Negative != sr.Overflow
	case 0x0e: // GT
		return !sr.Zero && sr.Negative == sr.Overflow
	}
	// LE
	return sr.Zero || sr.Negative != sr.Overflow
}
