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

import "github.com/redcrab/gopher68k/curated"

// Variant selects which member of the 68000 family is being emulated.
type Variant int

// The supported CPU variants.
const (
	// the baseline 68000: no VBR, short exception frames (except the long
	// group 0 frame), strict data alignment
	M68000 Variant = iota

	// the 68010 adds the VBR, the alternate function code registers, MOVEC,
	// MOVES and RTD, and appends a format/vector word to exception frames
	M68010

	// the 68020 additionally allows misaligned data accesses, scales index
	// registers, and adds the master stack pointer and the cache control
	// registers
	M68020
)

func (v Variant) String() string {
	switch v {
	case M68000:
		return "68000"
	case M68010:
		return "68010"
	case M68020:
		return "68020"
	}
	return "unknown variant"
}

// UnknownVariant is the error pattern returned by ParseVariant when the
// named model is not a supported member of the family.
const UnknownVariant = "cpu: unknown variant (%s)"

// ParseVariant converts the name of a CPU model into a Variant value.
func ParseVariant(model string) (Variant, error) {
	switch model {
	case "68000":
		return M68000, nil
	case "68010":
		return M68010, nil
	case "68020":
		return M68020, nil
	}
	return M68000, curated.Errorf(UnknownVariant, model)
}

// hasVBR returns true if the variant fetches vectors relative to the vector
// base register.
func (v Variant) hasVBR() bool {
	return v >= M68010
}

// hasFrameFormat returns true if the variant appends a format/vector word to
// exception stack frames.
func (v Variant) hasFrameFormat() bool {
	return v >= M68010
}

// strictAlignment returns true if the variant raises an address error for
// misaligned word and long data accesses.
func (v Variant) strictAlignment() bool {
	return v < M68020
}

// scaledIndex returns true if the variant applies the scale field of brief
// extension words.
func (v Variant) scaledIndex() bool {
	return v >= M68020
}

// addressMask is the mask applied to every bus address: 24 external address
// bits on the 68000 and 68010, 32 on the 68020.
func (v Variant) addressMask() uint32 {
	if v >= M68020 {
		return 0xffffffff
	}
	return 0x00ffffff
}

// srMask limits the status register to the bits that exist on the variant.
func (v Variant) srMask() uint16 {
	if v >= M68020 {
		return 0xb71f // adds the master bit
	}
	return 0xa71f
}
