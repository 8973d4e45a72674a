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

package performance_test

import (
	"testing"

	"github.com/redcrab/gopher68k/performance"
	"github.com/stretchr/testify/require"
)

func TestCalcRate(t *testing.T) {
	mhz, mips := performance.CalcRate(8000000, 2000000, 1.0)
	require.Equal(t, 8.0, mhz)
	require.Equal(t, 2.0, mips)

	mhz, mips = performance.CalcRate(4000000, 1000000, 2.0)
	require.Equal(t, 2.0, mhz)
	require.Equal(t, 0.5, mips)
}

func TestParseProfileString(t *testing.T) {
	p, err := performance.ParseProfileString("none")
	require.NoError(t, err)
	require.Equal(t, performance.ProfileNone, p)

	p, err = performance.ParseProfileString("cpu")
	require.NoError(t, err)
	require.Equal(t, performance.ProfileCPU, p)

	p, err = performance.ParseProfileString("cpu,mem")
	require.NoError(t, err)
	require.Equal(t, performance.ProfileAll, p)

	p, err = performance.ParseProfileString("ALL")
	require.NoError(t, err)
	require.Equal(t, performance.ProfileAll, p)

	_, err = performance.ParseProfileString("frame")
	require.Error(t, err)
}
