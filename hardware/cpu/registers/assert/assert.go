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

// Package assert removes test boilerplate when comparing register values.
package assert

import (
	"testing"

	"github.com/redcrab/gopher68k/hardware/cpu/registers"
)

// Assert compares a register-like value against an expected value:
//
//	a registers.Status against its String() pattern, eg. "tS7xnZvc"
//	a uint32 register value against a uint32 or an int
//
// The function fails the test on mismatch.
func Assert(t *testing.T, value, expected interface{}) {
	t.Helper()

	switch v := value.(type) {
	case registers.Status:
		e, ok := expected.(string)
		if !ok {
			t.Fatalf("status register must be compared against a pattern string (not %T)", expected)
		}
		if v.String() != e {
			t.Errorf("status register assertion failed (%s - wanted %s)", v.String(), e)
		}

	case uint32:
		switch e := expected.(type) {
		case uint32:
			if v != e {
				t.Errorf("register assertion failed (%#08x - wanted %#08x)", v, e)
			}
		case int:
			if v != uint32(e) {
				t.Errorf("register assertion failed (%#08x - wanted %#08x)", v, e)
			}
		default:
			t.Fatalf("register value must be compared against uint32 or int (not %T)", expected)
		}

	default:
		t.Fatalf("unhandled type for register assertion (%T)", v)
	}
}
