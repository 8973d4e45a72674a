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
	"github.com/redcrab/gopher68k/curated"
)

// IsValid checks whether the instance of Result contains information
// consistent with the instruction definition.
func (r Result) IsValid() error {
	if !r.Final {
		return curated.Errorf("cpu: execution not finalised (host-callback fault?)")
	}

	if r.Defn == nil {
		return curated.Errorf("cpu: execution result has no instruction definition")
	}

	// instruction streams are word aligned. every instruction consumes at
	// least the opcode word and a whole number of extension words
	if r.ByteCount < 2 || r.ByteCount%2 != 0 {
		return curated.Errorf("cpu: unexpected number of bytes read during decode (%d)", r.ByteCount)
	}

	// an accepted exception adds its processing cost, so the cycle check
	// only applies to a normal retirement
	if !r.Exception {
		if r.Cycles < r.Defn.Cycles {
			return curated.Errorf("cpu: number of cycles too low for opcode %#04x (%d instead of at least %d)",
				r.Defn.OpCode, r.Cycles, r.Defn.Cycles)
		}
	}

	if r.BranchTaken && !r.Defn.IsBranch() {
		return curated.Errorf("cpu: branch taken by a non-branch instruction (opcode %#04x)", r.Defn.OpCode)
	}

	return nil
}
