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

// Package bus defines the memory interface between the CPU and the host
// system. The CPU performs every access through the Bus interface and never
// touches backing storage directly.
//
// Multi-byte values are big-endian, as on real 68000 hardware. Alignment is
// not the bus's concern: the CPU raises address-error exceptions for
// misaligned word and long accesses before the bus is ever consulted.
//
// A host signals an access to an unpopulated or otherwise faulting address
// by returning an error that matches the AddressError pattern (in the sense
// of curated.Is()). Any other error is treated as a host failure rather than
// a bus fault and ends the current run of the CPU.
package bus

import "fmt"

// Size of a single bus access in bytes.
type Size int

// The three access sizes supported by the 68000 family.
const (
	Byte Size = 1
	Word Size = 2
	Long Size = 4
)

func (s Size) String() string {
	switch s {
	case Byte:
		return "byte"
	case Word:
		return "word"
	case Long:
		return "long"
	}
	return fmt.Sprintf("size=%d", int(s))
}

// Mask returns the value mask for the size. eg. 0x0000ffff for Word.
func (s Size) Mask() uint32 {
	switch s {
	case Byte:
		return 0x000000ff
	case Word:
		return 0x0000ffff
	case Long:
		return 0xffffffff
	}
	return 0
}

// MSB returns the mask for the most significant bit of the size. Used when
// deciding the sign of a value.
func (s Size) MSB() uint32 {
	switch s {
	case Byte:
		return 0x00000080
	case Word:
		return 0x00008000
	case Long:
		return 0x80000000
	}
	return 0
}

// SignExtend widens v to 32 bits, treating the MSB of the size as the sign
// bit.
func (s Size) SignExtend(v uint32) uint32 {
	switch s {
	case Byte:
		return uint32(int32(int8(v)))
	case Word:
		return uint32(int32(int16(v)))
	}
	return v
}

// AddressError is the error pattern used by Bus implementations to indicate
// an access outside of the populated address space.
const AddressError = "bus: address error: %s access of %#08x"

// Bus defines the operations for the memory system when accessed from the
// CPU. All accesses are big-endian; the address occupies the low 24 bits on
// the 68000/68010 and the full 32 bits on the 68020.
type Bus interface {
	Read(address uint32, size Size) (uint32, error)
	Write(address uint32, size Size, value uint32) error
}
