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

package disassembly_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/redcrab/gopher68k/disassembly"
	"github.com/redcrab/gopher68k/hardware/bus"
	"github.com/redcrab/gopher68k/hardware/cpu"
)

func TestDisassemble(t *testing.T) {
	tests := []struct {
		words    []uint16
		operator string
		operand  string
		bytes    int
	}{
		{[]uint16{0x7076}, "MOVEQ", "#$76,D0", 2},
		{[]uint16{0x4e75}, "RTS", "", 2},
		{[]uint16{0x4e71}, "NOP", "", 2},
		{[]uint16{0x4e41}, "TRAP", "#1", 2},
		{[]uint16{0x2401}, "MOVE.L", "D1,D2", 2},
		{[]uint16{0x31fc, 0xabcd, 0x2000}, "MOVE.W", "#$abcd,($2000).W", 6},
		{[]uint16{0x3020}, "MOVE.W", "-(A0),D0", 2},
		{[]uint16{0x41f8, 0x2000}, "LEA", "($2000).W,A0", 4},
		{[]uint16{0x6702}, "BEQ", "*+4", 2},
		{[]uint16{0x6000, 0x0010}, "BRA.W", "*+18", 4},
		{[]uint16{0x51c8, 0xfffe}, "DBRA", "D0,*+0", 4},
		{[]uint16{0xd040}, "ADD.W", "D0,D0", 2},
		{[]uint16{0x0640, 0x1234}, "ADDI.W", "#$1234,D0", 4},
		{[]uint16{0x5b80}, "SUBQ.L", "#5,D0", 2},
		{[]uint16{0xe948}, "LSL.W", "#4,D0", 2},
		{[]uint16{0xe26a}, "LSR.W", "D1,D2", 2},
		{[]uint16{0x4840}, "SWAP", "D0", 2},
		{[]uint16{0x4880}, "EXT.W", "D0", 2},
		{[]uint16{0xc142}, "EXG", "D0,D2", 2},
		{[]uint16{0x4e56, 0xfff0}, "LINK", "A6,#-16", 4},
		{[]uint16{0x4e5e}, "UNLK", "A6", 2},
		{[]uint16{0x48e7, 0x8080}, "MOVEM.L", "D0/A0,-(A7)", 4},
		{[]uint16{0x4cdf, 0x0101}, "MOVEM.L", "(A7)+,D0/A0", 4},
		{[]uint16{0x46fc, 0x2700}, "MOVE.W", "#$2700,SR", 4},
		{[]uint16{0x4afc}, "ILLEGAL", "", 2},
	}

	for _, tc := range tests {
		mem := bus.NewRAM(0x100)
		mem.PutWords(0, tc.words...)

		e, err := disassembly.Disassemble(mem, 0, cpu.M68000)
		require.NoError(t, err)
		require.Equal(t, tc.operator, e.Operator, "operator for %04x", tc.words[0])
		require.Equal(t, tc.operand, e.Operand, "operand for %04x", tc.words[0])
		require.Equal(t, tc.bytes, e.ByteCount, "byte count for %04x", tc.words[0])
	}
}

func TestDisassembleUnknown(t *testing.T) {
	mem := bus.NewRAM(0x100)
	mem.PutWords(0, 0xaffe)

	e, err := disassembly.Disassemble(mem, 0, cpu.M68000)
	require.NoError(t, err)
	require.Equal(t, "DC.W", e.Operator)
	require.Equal(t, "$affe", e.Operand)
}

func TestBlock(t *testing.T) {
	mem := bus.NewRAM(0x100)
	mem.PutWords(0x10,
		0x7001, // MOVEQ #1,D0
		0x31fc, 0xabcd, 0x2000, // MOVE.W #$abcd,($2000).W
		0x4e75, // RTS
	)

	block, err := disassembly.Block(mem, 0x10, 3, cpu.M68000)
	require.NoError(t, err)
	require.Len(t, block, 3)

	require.Equal(t, uint32(0x10), block[0].Address)
	require.Equal(t, uint32(0x12), block[1].Address)
	require.Equal(t, uint32(0x18), block[2].Address)
	require.Equal(t, "RTS", block[2].Operator)
}

func TestDisassemblyIsPure(t *testing.T) {
	mem := bus.NewRAM(0x100)
	mem.PutWords(0, 0x30fc, 0x1111) // MOVE.W #$1111,(A0)+

	a, err := disassembly.Disassemble(mem, 0, cpu.M68000)
	require.NoError(t, err)
	b, err := disassembly.Disassemble(mem, 0, cpu.M68000)
	require.NoError(t, err)

	require.Equal(t, a, b)

	// memory is untouched
	v, err := mem.Read(0, bus.Word)
	require.NoError(t, err)
	require.Equal(t, uint32(0x30fc), v)
}
