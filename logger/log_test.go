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

package logger

import (
	"strings"
	"testing"

	"github.com/redcrab/gopher68k/test"
)

func TestCentral(t *testing.T) {
	Clear()
	Log("test", "this is a test")

	s := &strings.Builder{}
	Write(s)
	test.Equate(t, s.String(), "test: this is a test\n")

	// logging the same entry again should fold it into a repeat
	Log("test", "this is a test")
	s.Reset()
	Write(s)
	test.Equate(t, s.String(), "test: this is a test (repeat x2)\n")

	Clear()
	s.Reset()
	Write(s)
	test.Equate(t, s.String(), "")
}

func TestWriteRecent(t *testing.T) {
	Clear()
	Log("test", "entry one")

	s := &strings.Builder{}
	WriteRecent(s)
	test.Equate(t, s.String(), "test: entry one\n")

	// entry one has been seen. only entry two should be written
	Log("test", "entry two")
	s.Reset()
	WriteRecent(s)
	test.Equate(t, s.String(), "test: entry two\n")
}
