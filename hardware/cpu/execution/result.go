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

package execution

import (
	"fmt"

	"github.com/redcrab/gopher68k/hardware/cpu/instructions"
)

// Result records the details of the most recently executed instruction. It
// is ephemeral: the CPU overwrites it on every dispatch. Embedders that need
// history should copy it.
type Result struct {
	// PC of the opcode word
	Address uint32

	// the opcode word and the definition it dispatched to
	Opcode uint16
	Defn   *instructions.Definition

	// total span of the instruction in bytes: the opcode word plus every
	// extension word fetched during decode
	ByteCount int

	// number of cycles charged for this instruction, including addressing
	// mode surcharges and branch-taken extras
	Cycles int

	// whether a branch instruction took its branch
	BranchTaken bool

	// whether an exception was accepted during or instead of this
	// instruction. when true, Cycles includes the exception processing cost
	Exception bool

	// it is possible for the CPU to be interrupted mid-instruction by a
	// host-callback fault. the Final flag indicates that execution ran to
	// completion
	Final bool
}

// Reset the result in preparation for a new instruction.
func (r *Result) Reset() {
	*r = Result{}
}

func (r Result) String() string {
	if r.Defn == nil {
		return "no instruction"
	}
	return fmt.Sprintf("%08x %s (%d bytes, %d cycles)",
		r.Address, r.Defn.Operation.Mnemonic(), r.ByteCount, r.Cycles)
}
