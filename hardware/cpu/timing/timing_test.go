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

package timing_test

import (
	"testing"

	"github.com/redcrab/gopher68k/hardware/bus"
	"github.com/redcrab/gopher68k/hardware/cpu/instructions"
	"github.com/redcrab/gopher68k/hardware/cpu/timing"
	"github.com/stretchr/testify/require"
)

func TestEACalc(t *testing.T) {
	// register direct modes cost nothing
	require.Equal(t, 0, timing.EACalc(instructions.DataRegister, bus.Long))
	require.Equal(t, 0, timing.EACalc(instructions.AddressRegister, bus.Word))
	require.Equal(t, 0, timing.EACalc(instructions.Implied, bus.Byte))

	// memory modes cost one bus cycle per word fetched, plus calculation
	require.Equal(t, 4, timing.EACalc(instructions.Indirect, bus.Word))
	require.Equal(t, 8, timing.EACalc(instructions.Indirect, bus.Long))
	require.Equal(t, 6, timing.EACalc(instructions.PreDecrement, bus.Byte))
	require.Equal(t, 12, timing.EACalc(instructions.AbsoluteLong, bus.Word))
	require.Equal(t, 16, timing.EACalc(instructions.AbsoluteLong, bus.Long))
	require.Equal(t, 10, timing.EACalc(instructions.Indexed, bus.Word))
	require.Equal(t, 8, timing.EACalc(instructions.Immediate, bus.Long))

	// byte and word operands always cost the same
	for m := instructions.AddressingMode(0); m < instructions.NumAddressingModes; m++ {
		require.Equal(t, timing.EACalc(m, bus.Byte), timing.EACalc(m, bus.Word))
	}

	// out of range modes are free rather than a panic
	require.Equal(t, 0, timing.EACalc(instructions.NumAddressingModes, bus.Word))
	require.Equal(t, 0, timing.EACalc(-1, bus.Long))
}
