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
	"fmt"
	"sync"

	"github.com/redcrab/gopher68k/hardware/cpu/instructions"
)

// opFunc is the implementation of a single opcode word. The definition for
// the word has already been latched into mc.defn when the function runs.
type opFunc func(mc *M68K)

// dispatch is the fully expanded decode table for one CPU variant: one
// entry per possible opcode word. Entries left nil decode to the illegal
// instruction (or the line A/F emulator traps).
//
// The table is immutable once built and is shared by every CPU of the same
// variant.
type dispatch struct {
	ops  [0x10000]opFunc
	defs [0x10000]*instructions.Definition
}

// register an opcode word. Registering the same word twice is a programming
// error in the table construction and panics immediately rather than
// producing a CPU that silently runs the wrong instruction.
func (d *dispatch) register(defn instructions.Definition, fn opFunc) {
	op := defn.OpCode
	if d.ops[op] != nil {
		panic(fmt.Sprintf("dispatch: opcode %04x registered twice: %s / %s",
			op, d.defs[op].String(), defn.String()))
	}
	p := new(instructions.Definition)
	*p = defn
	d.defs[op] = p
	d.ops[op] = fn
}

var dispatchCache struct {
	sync.Mutex
	tables [M68020 + 1]*dispatch
}

// dispatchForVariant returns the decode table for the variant, building it
// on first use.
func dispatchForVariant(v Variant) *dispatch {
	dispatchCache.Lock()
	defer dispatchCache.Unlock()

	if v < M68000 || v > M68020 {
		v = M68000
	}

	if dispatchCache.tables[v] == nil {
		dispatchCache.tables[v] = buildDispatch(v)
	}

	return dispatchCache.tables[v]
}

func buildDispatch(v Variant) *dispatch {
	d := &dispatch{}

	registerMove(d, v)
	registerArith(d, v)
	registerLogic(d, v)
	registerShift(d, v)
	registerBits(d, v)
	registerBCD(d, v)
	registerFlow(d, v)
	registerSystem(d, v)

	return d
}

// Decode returns the definition for an opcode word on the given variant, or
// nil if the word does not decode to an instruction. Decoding is pure: it
// never touches memory or CPU state.
func Decode(opcode uint16, v Variant) *instructions.Definition {
	return dispatchForVariant(v).defs[opcode]
}
