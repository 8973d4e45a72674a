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

package cpu

import (
	"github.com/redcrab/gopher68k/hardware/bus"
	"github.com/redcrab/gopher68k/hardware/cpu/execution"
)

// Tracer implementations receive diagnostic events from the CPU. All
// callbacks happen synchronously on the execution goroutine; an expensive
// tracer slows the machine down proportionally.
//
// Attach with M68K.SetTracer(). All methods must be implemented; embed
// NilTracer to pick only the events of interest.
type Tracer interface {
	// Instruction is called once per completed dispatch with the result
	// record for that instruction.
	Instruction(res execution.Result)

	// MemoryAccess is called for every successful data read and write. pc
	// is the address of the instruction responsible for the access.
	MemoryAccess(addr uint32, size bus.Size, value uint32, write bool, pc uint32)

	// Exception is called when exception processing begins, after the
	// frame has been stacked but before the first instruction of the
	// handler runs.
	Exception(vector uint8, handler uint32)
}

// NilTracer implements Tracer with empty methods.
type NilTracer struct{}

// Instruction implements the Tracer interface.
func (NilTracer) Instruction(_ execution.Result) {}

// MemoryAccess implements the Tracer interface.
func (NilTracer) MemoryAccess(_ uint32, _ bus.Size, _ uint32, _ bool, _ uint32) {}

// Exception implements the Tracer interface.
func (NilTracer) Exception(_ uint8, _ uint32) {}
