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

package registers

import (
	"fmt"
	"strings"
)

// Register enumerates every programmer-visible register. The numbering is a
// contract with embedders (debuggers, tracers, test rigs) and must never be
// renumbered.
type Register int

// The register index ABI. D0 to D7 are indices 0 to 7; A0 to A6 are indices
// 8 to 14. SP is the active stack pointer, whichever shadow that happens to
// be; USP, ISP and MSP address the shadows directly.
const (
	D0 Register = iota
	D1
	D2
	D3
	D4
	D5
	D6
	D7
	A0
	A1
	A2
	A3
	A4
	A5
	A6
	SP
	PC
	SR
	PPC
	USP
	ISP
	MSP
	VBR
	SFC
	DFC
	CACR
	CAAR

	// NumRegisters is the number of register indices in the ABI.
	NumRegisters
)

func (reg Register) String() string {
	switch {
	case reg >= D0 && reg <= D7:
		return fmt.Sprintf("D%d", int(reg))
	case reg >= A0 && reg <= A6:
		return fmt.Sprintf("A%d", int(reg-A0))
	}

	switch reg {
	case SP:
		return "SP"
	case PC:
		return "PC"
	case SR:
		return "SR"
	case PPC:
		return "PPC"
	case USP:
		return "USP"
	case ISP:
		return "ISP"
	case MSP:
		return "MSP"
	case VBR:
		return "VBR"
	case SFC:
		return "SFC"
	case DFC:
		return "DFC"
	case CACR:
		return "CACR"
	case CAAR:
		return "CAAR"
	}

	return fmt.Sprintf("register(%d)", int(reg))
}

// Registers is the full register file of the 68000 family.
//
// A[7] is always the active stack pointer. The stack pointers of the
// currently inactive modes live in the shadow fields and are banked in and
// out by SetStatus(). Which shadow is active depends on the supervisor and
// master bits of the status register: user mode selects USP; supervisor mode
// selects ISP, or MSP when the master bit is set (68020).
type Registers struct {
	D [8]uint32
	A [8]uint32

	Status Status

	// address of the instruction currently being fetched/executed
	PC uint32

	// PC at the start of the most recently retired instruction. required by
	// tooling and by exception bookkeeping (group 1 faults push the address
	// of the faulting instruction, not the next one)
	PPC uint32

	// shadow stack pointers for the inactive modes. the shadow matching the
	// current mode holds a stale value; the live value is in A[7]
	usp uint32
	isp uint32
	msp uint32

	// vector base register. always zero on the 68000
	VBR uint32

	// alternate function code registers (68010 and later). stored, used only
	// as the function code source for MOVES
	SFC uint32
	DFC uint32

	// cache control registers (68020). stored, not functionally modelled
	CACR uint32
	CAAR uint32
}

// NewRegisters is the preferred method of initialisation for the Registers
// type. The status register is in the post-reset state.
func NewRegisters() Registers {
	r := Registers{}
	r.Status.Reset()
	return r
}

func (r Registers) String() string {
	s := strings.Builder{}
	for i := 0; i < 8; i++ {
		s.WriteString(fmt.Sprintf("D%d=%08x ", i, r.D[i]))
	}
	for i := 0; i < 8; i++ {
		s.WriteString(fmt.Sprintf("A%d=%08x ", i, r.A[i]))
	}
	s.WriteString(fmt.Sprintf("PC=%08x SR=%s", r.PC, r.Status.String()))
	return s.String()
}

// activeShadow returns a pointer to the shadow field selected by the current
// supervisor/master state.
func (r *Registers) activeShadow() *uint32 {
	if !r.Status.Supervisor {
		return &r.usp
	}
	if r.Status.Master {
		return &r.msp
	}
	return &r.isp
}

// SetStatus replaces the status register, banking the active stack pointer
// when the supervisor/master state changes. All SR writes performed by the
// CPU go through this function so that A[7] always aliases the correct
// shadow.
func (r *Registers) SetStatus(v uint16) {
	old := r.activeShadow()
	r.Status.FromValue(v)
	new_ := r.activeShadow()

	if old != new_ {
		*old = r.A[7]
		r.A[7] = *new_
	}
}

// Value returns the current value of the indexed register. The SP index
// resolves to the shadow selected by the current supervisor/master state,
// which is to say A[7].
func (r *Registers) Value(reg Register) uint32 {
	switch {
	case reg >= D0 && reg <= D7:
		return r.D[reg]
	case reg >= A0 && reg <= A6:
		return r.A[reg-A0]
	}

	switch reg {
	case SP:
		return r.A[7]
	case PC:
		return r.PC
	case SR:
		return uint32(r.Status.Value())
	case PPC:
		return r.PPC
	case USP:
		if r.activeShadow() == &r.usp {
			return r.A[7]
		}
		return r.usp
	case ISP:
		if r.activeShadow() == &r.isp {
			return r.A[7]
		}
		return r.isp
	case MSP:
		if r.activeShadow() == &r.msp {
			return r.A[7]
		}
		return r.msp
	case VBR:
		return r.VBR
	case SFC:
		return r.SFC
	case DFC:
		return r.DFC
	case CACR:
		return r.CACR
	case CAAR:
		return r.CAAR
	}

	return 0
}

// SetValue writes the indexed register, routing SP and shadow accesses
// exactly as Value() does, so that a read immediately after a write
// round-trips. Writing an odd value to PC is a caller error.
func (r *Registers) SetValue(reg Register, v uint32) error {
	switch {
	case reg >= D0 && reg <= D7:
		r.D[reg] = v
		return nil
	case reg >= A0 && reg <= A6:
		r.A[reg-A0] = v
		return nil
	}

	switch reg {
	case SP:
		r.A[7] = v
	case PC:
		if v&0x01 == 0x01 {
			return fmt.Errorf("registers: PC value is not even (%#08x)", v)
		}
		r.PC = v
	case SR:
		r.SetStatus(uint16(v))
	case PPC:
		r.PPC = v
	case USP:
		if r.activeShadow() == &r.usp {
			r.A[7] = v
		} else {
			r.usp = v
		}
	case ISP:
		if r.activeShadow() == &r.isp {
			r.A[7] = v
		} else {
			r.isp = v
		}
	case MSP:
		if r.activeShadow() == &r.msp {
			r.A[7] = v
		} else {
			r.msp = v
		}
	case VBR:
		r.VBR = v
	case SFC:
		r.SFC = v & 0x07
	case DFC:
		r.DFC = v & 0x07
	case CACR:
		r.CACR = v
	case CAAR:
		r.CAAR = v
	default:
		return fmt.Errorf("registers: no such register (%d)", int(reg))
	}

	return nil
}
