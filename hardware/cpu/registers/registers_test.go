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

package registers_test

import (
	"testing"

	"github.com/redcrab/gopher68k/hardware/cpu/registers"
	"github.com/redcrab/gopher68k/test"
)

func TestStatusValueRoundTrip(t *testing.T) {
	var sr registers.Status

	sr.FromValue(0x2715)
	test.Equate(t, sr.Supervisor, true)
	test.Equate(t, sr.InterruptMask, 7)
	test.Equate(t, sr.Extend, true)
	test.Equate(t, sr.Overflow, true)
	test.Equate(t, sr.Carry, true)
	test.Equate(t, sr.Value(), uint16(0x2715))
	test.Equate(t, sr.String(), "tSm7XnzVC")

	// undefined bits are discarded. note that the master bit is retained;
	// masking it on pre-68020 variants is the CPU's responsibility
	sr.FromValue(0xffff)
	test.Equate(t, sr.Value(), uint16(0xb71f))
}

func TestStackPointerShadowing(t *testing.T) {
	r := registers.NewRegisters()

	// reset state is supervisor mode. SP routes to the interrupt stack
	// pointer
	r.SetValue(registers.SP, 0x00100000)
	test.Equate(t, r.Value(registers.SP), 0x00100000)
	test.Equate(t, r.Value(registers.ISP), 0x00100000)

	// the user stack pointer is untouched
	r.SetValue(registers.USP, 0x00080000)
	test.Equate(t, r.Value(registers.USP), 0x00080000)
	test.Equate(t, r.Value(registers.SP), 0x00100000)

	// drop into user mode. SP now routes to USP and ISP retains its value
	sr := r.Status
	sr.Supervisor = false
	r.SetStatus(sr.Value())
	test.Equate(t, r.Value(registers.SP), 0x00080000)
	test.Equate(t, r.Value(registers.ISP), 0x00100000)

	// a write to SP in user mode must not affect the supervisor shadow
	r.SetValue(registers.SP, 0x00080100)
	test.Equate(t, r.Value(registers.USP), 0x00080100)
	test.Equate(t, r.Value(registers.ISP), 0x00100000)

	// and back again
	sr.Supervisor = true
	r.SetStatus(sr.Value())
	test.Equate(t, r.Value(registers.SP), 0x00100000)
	test.Equate(t, r.Value(registers.USP), 0x00080100)
}

func TestMasterStackPointer(t *testing.T) {
	r := registers.NewRegisters()

	r.SetValue(registers.SP, 0x1000)
	r.SetValue(registers.MSP, 0x2000)

	// setting the master bit banks in the master stack pointer
	sr := r.Status
	sr.Master = true
	r.SetStatus(sr.Value())
	test.Equate(t, r.Value(registers.SP), 0x2000)
	test.Equate(t, r.Value(registers.ISP), 0x1000)

	sr.Master = false
	r.SetStatus(sr.Value())
	test.Equate(t, r.Value(registers.SP), 0x1000)
	test.Equate(t, r.Value(registers.MSP), 0x2000)
}

func TestOddPC(t *testing.T) {
	r := registers.NewRegisters()
	test.ExpectedSuccess(t, r.SetValue(registers.PC, 0x1000))
	test.ExpectedFailure(t, r.SetValue(registers.PC, 0x1001))
	test.Equate(t, r.Value(registers.PC), 0x1000)
}

func TestRegisterNames(t *testing.T) {
	test.Equate(t, registers.D0.String(), "D0")
	test.Equate(t, registers.A6.String(), "A6")
	test.Equate(t, registers.SP.String(), "SP")
	test.Equate(t, registers.VBR.String(), "VBR")
}
