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

	"github.com/redcrab/gopher68k/hardware/bus"
	"github.com/redcrab/gopher68k/hardware/cpu/timing"
	"github.com/redcrab/gopher68k/logger"
)

// Exception vector numbers. Vector table entries are longwords at
// VBR + 4*vector (the VBR is fixed at zero on the 68000).
const (
	VecBusError      = 2
	VecAddressError  = 3
	VecIllegal       = 4
	VecDivideByZero  = 5
	VecCHK           = 6
	VecTRAPV         = 7
	VecPrivilege     = 8
	VecTrace         = 9
	VecLineA         = 10
	VecLineF         = 11
	VecAutovector    = 24 // plus interrupt level 1 to 7
	VecTrap          = 32 // plus TRAP number 0 to 15
)

// FaultKind classifies a pending fault. The order defines suppression
// priority: when two faults arise in the same instruction only the higher
// kind is serviced.
type FaultKind int

// List of valid FaultKind values.
const (
	FaultNone FaultKind = iota
	FaultTrace
	FaultIllegal
	FaultPrivilege
	FaultAddressError
	FaultBusError
)

func (k FaultKind) String() string {
	switch k {
	case FaultTrace:
		return "trace"
	case FaultIllegal:
		return "illegal instruction"
	case FaultPrivilege:
		return "privilege violation"
	case FaultAddressError:
		return "address error"
	case FaultBusError:
		return "bus error"
	}
	return "none"
}

// Fault is the record of an architectural fault raised during a dispatch.
// It is serviced, at most one per instruction, when the instruction ends.
type Fault struct {
	Kind    FaultKind
	Vector  uint8
	Address uint32
	Write   bool
	Opcode  uint16
	Err     error
}

func (f Fault) String() string {
	switch f.Kind {
	case FaultAddressError, FaultBusError:
		dir := "reading"
		if f.Write {
			dir = "writing"
		}
		return fmt.Sprintf("%s %s %#08x (opcode %#04x)", f.Kind, dir, f.Address, f.Opcode)
	}
	return fmt.Sprintf("%s (opcode %#04x)", f.Kind, f.Opcode)
}

// raiseFault files a fault in the pending slot. A fault of lower or equal
// kind than one already pending is discarded. Group 0 faults abort the rest
// of the current instruction.
func (mc *M68K) raiseFault(f Fault) {
	if mc.fault != nil && mc.fault.Kind >= f.Kind {
		return
	}
	f.Opcode = mc.ir
	mc.fault = &f
	if f.Kind >= FaultAddressError {
		mc.aborted = true
	}
}

func (mc *M68K) raiseAddressError(addr uint32, write bool) {
	mc.raiseFault(Fault{
		Kind:    FaultAddressError,
		Vector:  VecAddressError,
		Address: addr,
		Write:   write,
	})
}

func (mc *M68K) raiseBusFault(err error, addr uint32, write bool) {
	mc.raiseFault(Fault{
		Kind:    FaultBusError,
		Vector:  VecBusError,
		Address: addr,
		Write:   write,
		Err:     err,
	})
}

func (mc *M68K) raiseIllegal(vector uint8) {
	mc.raiseFault(Fault{Kind: FaultIllegal, Vector: vector})
}

func (mc *M68K) raisePrivilege() {
	mc.raiseFault(Fault{Kind: FaultPrivilege, Vector: VecPrivilege})
}

// vectorAddress returns the address of the handler slot for the vector. The
// VBR only exists from the 68010 onwards.
func (mc *M68K) vectorAddress(vector uint8) uint32 {
	base := uint32(0)
	if mc.Variant.hasVBR() {
		base = mc.Reg.VBR
	}
	return base + uint32(vector)*4
}

// exception performs the common part of exception processing: enter
// supervisor mode, stack the frame and vector to the handler. stackPC is the
// PC value saved in the frame; for most exceptions this is the address of
// the next instruction but group 1 faults save the address of the offending
// instruction instead.
//
// A failure while stacking or vectoring is a double fault and halts the
// processor.
func (mc *M68K) exception(vector uint8, stackPC uint32) {
	oldSR := mc.Reg.Status.Value()

	// mode switch before stacking so the frame lands on the supervisor
	// stack
	mc.Reg.SetStatus(oldSR&0x3fff | 0x2000)

	mc.aborted = false

	if mc.Variant.hasFrameFormat() {
		// format 0 frame. the vector offset word carries the format in
		// the upper nibble
		mc.pushWord(uint16(vector) * 4)
	}

	mc.pushLong(stackPC)
	mc.pushWord(oldSR)

	handler := mc.read(bus.Long, mc.vectorAddress(vector))

	if mc.aborted || handler&0x01 == 0x01 {
		// fault during exception processing
		logger.Logf("cpu", "double fault servicing vector %d; halted", vector)
		mc.halted = true
		mc.aborted = false
		return
	}

	mc.callDepth++
	mc.Reg.PC = handler

	if mc.tracer != nil {
		mc.tracer.Exception(vector, handler)
	}
}

// serviceFault runs exception processing for the pending fault, if any.
// Returns true if a fault was serviced.
func (mc *M68K) serviceFault() bool {
	if mc.fault == nil {
		return false
	}

	f := *mc.fault
	mc.fault = nil
	mc.aborted = false

	mc.LastResult.Exception = true

	switch f.Kind {
	case FaultAddressError, FaultBusError:
		logger.Logf("cpu", "%v", f)
		mc.addCycles(timing.ExceptionAddressError)
		mc.exceptionGroup0(f)
	case FaultIllegal, FaultPrivilege:
		mc.addCycles(timing.ExceptionIllegal)
		// group 1 faults save the address of the faulting instruction
		// so that the handler can identify it
		mc.exception(f.Vector, mc.Reg.PPC)
	case FaultTrace:
		mc.addCycles(timing.ExceptionTrace)
		mc.exception(f.Vector, mc.Reg.PC)
	}

	return true
}

// exceptionGroup0 stacks the extended frame used by bus and address errors.
// On the 68000 that is the seven word frame with the instruction register,
// fault address and access information; later variants use the format frame
// with the same information reachable through the format word.
func (mc *M68K) exceptionGroup0(f Fault) {
	oldSR := mc.Reg.Status.Value()
	mc.Reg.SetStatus(oldSR&0x3fff | 0x2000)
	mc.aborted = false

	if mc.Variant.hasFrameFormat() {
		// a faithful 68010 frame is 29 words of microcode state. the
		// short bus error frame (format 8 on the 68010, format A on
		// the 68020) is stacked here with the documented fields only
		mc.pushLong(f.Address)
		mc.pushWord(0x8000 | uint16(f.Vector)*4)
		mc.pushLong(mc.Reg.PPC)
		mc.pushWord(oldSR)
	} else {
		mc.pushLong(mc.Reg.PPC)
		mc.pushWord(oldSR)
		mc.pushWord(f.Opcode)
		mc.pushLong(f.Address)

		// access information word: R/W flag, instruction/not flag and
		// the function code of the faulted access
		info := uint16(0)
		if !f.Write {
			info |= 0x0010
		}
		fc := uint16(0x01) // user data
		if oldSR&0x2000 == 0x2000 {
			fc = 0x05 // supervisor data
		}
		info |= fc
		mc.pushWord(info)
	}

	handler := mc.read(bus.Long, mc.vectorAddress(f.Vector))

	if mc.aborted || handler&0x01 == 0x01 {
		logger.Logf("cpu", "double fault servicing vector %d; halted", f.Vector)
		mc.halted = true
		mc.aborted = false
		return
	}

	mc.callDepth++
	mc.Reg.PC = handler

	if mc.tracer != nil {
		mc.tracer.Exception(f.Vector, handler)
	}
}

// trapException runs exception processing for the group 2 exceptions (TRAP,
// TRAPV, CHK and divide by zero) which are taken immediately within the
// instruction, with the address of the next instruction stacked.
func (mc *M68K) trapException(vector uint8, cycles int) {
	mc.addCycles(cycles)
	mc.LastResult.Exception = true
	mc.exception(vector, mc.Reg.PC)
}

// checkInterrupt accepts a pending interrupt request if its level exceeds
// the current mask. Level 7 is non-maskable. Returns true if an interrupt
// was accepted.
func (mc *M68K) checkInterrupt() bool {
	if mc.pendingIPL == 0 {
		return false
	}
	if mc.pendingIPL != 7 && mc.pendingIPL <= mc.Reg.Status.InterruptMask {
		return false
	}

	level := mc.pendingIPL
	vector := uint8(VecAutovector + level)
	if mc.pendingVec != nil {
		vector = *mc.pendingVec
	}
	mc.pendingIPL = 0
	mc.pendingVec = nil

	mc.stopped = false

	mc.addCycles(timing.ExceptionInterrupt)
	mc.exception(vector, mc.Reg.PC)

	// the new mask is raised to the accepted level after the old SR has
	// been stacked
	mc.Reg.Status.InterruptMask = level

	return true
}
