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

package main_test

import (
	"testing"

	"github.com/redcrab/gopher68k/hardware/bus"
	"github.com/redcrab/gopher68k/hardware/cpu"
)

func BenchmarkCPU(b *testing.B) {
	mem := bus.NewRAM(0x10000)

	// vector table: supervisor stack at 0x8000, reset PC at 0x1000
	mem.PutWords(0, 0x0000, 0x8000, 0x0000, 0x1000)

	// a busy loop: MOVEQ #1,D0 then BRA back to the MOVEQ
	mem.PutWords(0x1000, 0x7001, 0x60fc)

	mc := cpu.NewCPU(mem, cpu.M68000)
	err := mc.Reset()
	if err != nil {
		b.Fatalf("error preparing CPU: %s", err)
	}

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		err = mc.Step()
		if err != nil {
			b.Fatalf("error stepping CPU: %s", err)
		}
	}
}
