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

package bus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redcrab/gopher68k/curated"
	"github.com/redcrab/gopher68k/hardware/bus"
)

func TestBigEndianComposition(t *testing.T) {
	ram := bus.NewRAM(0x100)
	ram.Put(0x10, 0x12, 0x34, 0x56, 0x78)

	v, err := ram.Read(0x10, bus.Byte)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12), v)

	v, err = ram.Read(0x10, bus.Word)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x1234), v)

	v, err = ram.Read(0x10, bus.Long)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v)

	require.NoError(t, ram.Write(0x20, bus.Long, 0xdeadbeef))
	for i, b := range []uint32{0xde, 0xad, 0xbe, 0xef} {
		v, err = ram.Read(0x20+uint32(i), bus.Byte)
		require.NoError(t, err)
		assert.Equal(t, b, v)
	}
}

func TestAddressError(t *testing.T) {
	ram := bus.NewRAM(0x100)

	_, err := ram.Read(0x100, bus.Byte)
	require.Error(t, err)
	assert.True(t, curated.Is(err, bus.AddressError))

	// a long read that straddles the end of memory also fails
	_, err = ram.Read(0xfe, bus.Long)
	require.Error(t, err)
	assert.True(t, curated.Is(err, bus.AddressError))

	err = ram.Write(0x100, bus.Word, 0)
	require.Error(t, err)
	assert.True(t, curated.Is(err, bus.AddressError))
}

func TestSize(t *testing.T) {
	assert.Equal(t, uint32(0x000000ff), bus.Byte.Mask())
	assert.Equal(t, uint32(0x0000ffff), bus.Word.Mask())
	assert.Equal(t, uint32(0xffffffff), bus.Long.Mask())

	assert.Equal(t, uint32(0x80), bus.Byte.MSB())
	assert.Equal(t, uint32(0x8000), bus.Word.MSB())
	assert.Equal(t, uint32(0x80000000), bus.Long.MSB())

	assert.Equal(t, uint32(0xffffff80), bus.Byte.SignExtend(0x80))
	assert.Equal(t, uint32(0x0000007f), bus.Byte.SignExtend(0x7f))
	assert.Equal(t, uint32(0xffff8000), bus.Word.SignExtend(0x8000))
	assert.Equal(t, uint32(0x12345678), bus.Long.SignExtend(0x12345678))
}
