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

package registers

import (
	"strings"
)

// Status is the 16-bit status register of the 68000 family. The low byte is
// the condition code register (X N Z V C); the high byte is the system byte
// (trace, supervisor, master and the interrupt priority mask).
//
// The Master flag is only meaningful on the 68020; it reads as zero on
// earlier variants.
type Status struct {
	// condition codes
	Extend   bool
	Negative bool
	Zero     bool
	Overflow bool
	Carry    bool

	// system byte
	InterruptMask uint8
	Supervisor    bool
	Master        bool
	Trace         bool
}

// Label returns the canonical name for the status register.
func (sr Status) Label() string {
	return "SR"
}

// String returns the status register in the format "tsm7xnzvc". A capital
// letter means the flag is set; the digit is the interrupt priority mask.
func (sr Status) String() string {
	s := strings.Builder{}

	flag := func(v bool, r rune) {
		if v {
			s.WriteRune(r - 0x20) // upper case
		} else {
			s.WriteRune(r)
		}
	}

	flag(sr.Trace, 't')
	flag(sr.Supervisor, 's')
	flag(sr.Master, 'm')
	s.WriteRune(rune('0' + sr.InterruptMask&0x07))
	flag(sr.Extend, 'x')
	flag(sr.Negative, 'n')
	flag(sr.Zero, 'z')
	flag(sr.Overflow, 'v')
	flag(sr.Carry, 'c')

	return s.String()
}

// Value converts the Status struct into the 16-bit value pushed during
// exception stacking.
func (sr Status) Value() uint16 {
	var v uint16

	if sr.Carry {
		v |= 0x0001
	}
	if sr.Overflow {
		v |= 0x0002
	}
	if sr.Zero {
		v |= 0x0004
	}
	if sr.Negative {
		v |= 0x0008
	}
	if sr.Extend {
		v |= 0x0010
	}
	v |= uint16(sr.InterruptMask&0x07) << 8
	if sr.Master {
		v |= 0x1000
	}
	if sr.Supervisor {
		v |= 0x2000
	}
	if sr.Trace {
		v |= 0x8000
	}

	return v
}

// CCR returns the low byte of the status register.
func (sr Status) CCR() uint8 {
	return uint8(sr.Value())
}

// FromValue converts a 16-bit value (popped from an exception frame, for
// example) to the Status struct receiver. Undefined bits are discarded.
func (sr *Status) FromValue(v uint16) {
	sr.Carry = v&0x0001 == 0x0001
	sr.Overflow = v&0x0002 == 0x0002
	sr.Zero = v&0x0004 == 0x0004
	sr.Negative = v&0x0008 == 0x0008
	sr.Extend = v&0x0010 == 0x0010
	sr.InterruptMask = uint8(v>>8) & 0x07
	sr.Master = v&0x1000 == 0x1000
	sr.Supervisor = v&0x2000 == 0x2000
	sr.Trace = v&0x8000 == 0x8000
}

// FromCCR replaces only the condition code byte, leaving the system byte
// untouched.
func (sr *Status) FromCCR(v uint8) {
	sr.Carry = v&0x01 == 0x01
	sr.Overflow = v&0x02 == 0x02
	sr.Zero = v&0x04 == 0x04
	sr.Negative = v&0x08 == 0x08
	sr.Extend = v&0x10 == 0x10
}

// Reset the status register to the state after a hardware reset: supervisor
// mode with all interrupts masked.
func (sr *Status) Reset() {
	*sr = Status{
		Supervisor:    true,
		InterruptMask: 7,
	}
}
