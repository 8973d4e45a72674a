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

package instructions

// AddressingMode describes the method of memory addressing used by an
// instruction operand.
type AddressingMode int

// List of supported addressing modes. The order matters: it is the index
// into the timing package's effective address surcharge table.
const (
	DataRegister    AddressingMode = iota // Dn
	AddressRegister                       // An
	Indirect                              // (An)
	PostIncrement                         // (An)+
	PreDecrement                          // -(An)
	Displacement                          // (d16,An)
	Indexed                               // (d8,An,Xn)
	AbsoluteShort                         // (xxx).W
	AbsoluteLong                          // (xxx).L
	PCDisplacement                        // (d16,PC)
	PCIndexed                             // (d8,PC,Xn)
	Immediate                             // #<data>
	Implied

	NumAddressingModes
)

func (m AddressingMode) String() string {
	switch m {
	case DataRegister:
		return "Dn"
	case AddressRegister:
		return "An"
	case Indirect:
		return "(An)"
	case PostIncrement:
		return "(An)+"
	case PreDecrement:
		return "-(An)"
	case Displacement:
		return "(d16,An)"
	case Indexed:
		return "(d8,An,Xn)"
	case AbsoluteShort:
		return "(xxx).W"
	case AbsoluteLong:
		return "(xxx).L"
	case PCDisplacement:
		return "(d16,PC)"
	case PCIndexed:
		return "(d8,PC,Xn)"
	case Immediate:
		return "#imm"
	case Implied:
		return "implied"
	}
	return "unknown addressing mode"
}

// DecodeMode converts the 3-bit mode and register fields of an opcode word
// into an AddressingMode. The returned value is NumAddressingModes for the
// unused encodings in the mode 7 group.
func DecodeMode(mode, reg uint16) AddressingMode {
	switch mode & 0x07 {
	case 0:
		return DataRegister
	case 1:
		return AddressRegister
	case 2:
		return Indirect
	case 3:
		return PostIncrement
	case 4:
		return PreDecrement
	case 5:
		return Displacement
	case 6:
		return Indexed
	case 7:
		switch reg & 0x07 {
		case 0:
			return AbsoluteShort
		case 1:
			return AbsoluteLong
		case 2:
			return PCDisplacement
		case 3:
			return PCIndexed
		case 4:
			return Immediate
		}
	}
	return NumAddressingModes
}
