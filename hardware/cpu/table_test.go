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

package cpu_test

import (
	"testing"

	"github.com/redcrab/gopher68k/hardware/cpu"
	"github.com/redcrab/gopher68k/hardware/cpu/instructions"
	"github.com/redcrab/gopher68k/test"
)

func TestDecodeIsPure(t *testing.T) {
	a := cpu.Decode(0x7076, cpu.M68000)
	b := cpu.Decode(0x7076, cpu.M68000)
	if a == nil || a != b {
		t.Fatalf("repeated decodes of the same opcode do not agree")
	}
	test.Equate(t, a.Operation == instructions.MOVEQ, true)

	test.Equate(t, cpu.Decode(0x4e75, cpu.M68000).Operation == instructions.RTS, true)
}

func TestDecodeVariantGating(t *testing.T) {
	// MOVEC, MOVES and RTD do not exist on the 68000
	test.Equate(t, cpu.Decode(0x4e7a, cpu.M68000) == nil, true)
	test.Equate(t, cpu.Decode(0x4e74, cpu.M68000) == nil, true)
	test.Equate(t, cpu.Decode(0x4e7a, cpu.M68010) != nil, true)
	test.Equate(t, cpu.Decode(0x4e74, cpu.M68010) != nil, true)

	// MOVE from CCR arrived with the 68010
	test.Equate(t, cpu.Decode(0x42c0, cpu.M68000) == nil, true)
	test.Equate(t, cpu.Decode(0x42c0, cpu.M68010) != nil, true)

	// the line-A and line-F ranges never decode
	test.Equate(t, cpu.Decode(0xa000, cpu.M68020) == nil, true)
	test.Equate(t, cpu.Decode(0xffff, cpu.M68020) == nil, true)
}
