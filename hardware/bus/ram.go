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

package bus

import (
	"github.com/redcrab/gopher68k/curated"
)

// RAM is a flat memory implementation of the Bus interface. It is used by the
// package tests and by the reference embedding in the root command. Accesses
// beyond the allocated size return an AddressError.
type RAM struct {
	data []uint8
}

// NewRAM allocates a flat memory of the requested size, initialised to zero.
func NewRAM(size uint32) *RAM {
	return &RAM{
		data: make([]uint8, size),
	}
}

// Size of the allocated memory in bytes.
func (r *RAM) Size() uint32 {
	return uint32(len(r.data))
}

// Read implements the Bus interface. Multi-byte reads compose big-endian.
func (r *RAM) Read(address uint32, size Size) (uint32, error) {
	if uint64(address)+uint64(size) > uint64(len(r.data)) {
		return 0, curated.Errorf(AddressError, size, address)
	}

	var v uint32
	for i := uint32(0); i < uint32(size); i++ {
		v = (v << 8) | uint32(r.data[address+i])
	}
	return v, nil
}

// Write implements the Bus interface. Multi-byte writes decompose big-endian.
func (r *RAM) Write(address uint32, size Size, value uint32) error {
	if uint64(address)+uint64(size) > uint64(len(r.data)) {
		return curated.Errorf(AddressError, size, address)
	}

	for i := uint32(size); i > 0; i-- {
		r.data[address+i-1] = uint8(value)
		value >>= 8
	}
	return nil
}

// Put copies bytes into memory starting at origin. Returns the address of the
// first byte after the copied block. Convenient for loading test programs.
func (r *RAM) Put(origin uint32, bytes ...uint8) uint32 {
	copy(r.data[origin:], bytes)
	return origin + uint32(len(bytes))
}

// PutWords copies 16-bit words into memory starting at origin, big-endian.
// Returns the address of the first byte after the copied block.
func (r *RAM) PutWords(origin uint32, words ...uint16) uint32 {
	for _, w := range words {
		r.data[origin] = uint8(w >> 8)
		r.data[origin+1] = uint8(w)
		origin += 2
	}
	return origin
}

// Clear sets all bytes in memory to zero.
func (r *RAM) Clear() {
	for i := range r.data {
		r.data[i] = 0
	}
}
