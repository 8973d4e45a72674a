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
	"github.com/redcrab/gopher68k/curated"
	"github.com/redcrab/gopher68k/hardware/cpu/timing"
)

// RunState is the outcome of the batch execution operations.
type RunState int

// List of valid RunState values.
const (
	// the run ended because its budget was exhausted or its completion
	// condition was met. the CPU can continue
	Running RunState = iota

	// the host interception hook stopped the run at an instruction
	// boundary. the instruction at the stop address has not executed
	Stopped

	// the CPU suffered a double fault and requires Reset()
	Faulted
)

func (s RunState) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	case Faulted:
		return "faulted"
	}
	return "unknown run state"
}

// HaltedError is the error pattern returned when execution is attempted on
// a CPU that has suffered a double fault.
const HaltedError = "cpu: halted by double fault (PC %#08x)"

// Step executes a single instruction boundary to instruction boundary
// step: accept a pending interrupt if there is one, otherwise dispatch the
// instruction at PC and service whatever fault or trace exception it ends
// with. The outcome is recorded in LastResult.
//
// The host interception hook is not consulted; that is the batch operations'
// concern.
func (mc *M68K) Step() error {
	if mc.halted {
		return curated.Errorf(HaltedError, mc.Reg.PC)
	}

	mc.LastResult.Reset()
	mc.LastResult.Address = mc.Reg.PC

	if mc.checkInterrupt() {
		mc.LastResult.Exception = true
		return mc.finalise()
	}

	if mc.stopped {
		// stopped CPU idles until an interrupt arrives
		mc.addCycles(4)
		return mc.finalise()
	}

	// instruction stream accesses from an odd address fault before the
	// fetch happens
	if mc.Reg.PC&0x01 == 0x01 {
		mc.ir = 0
		mc.raiseAddressError(mc.Reg.PC, false)
		mc.serviceFault()
		return mc.finalise()
	}

	// the trace exception depends on the T bit as it was at the start of
	// the instruction, not as the instruction leaves it
	traceArmed := mc.Reg.Status.Trace

	mc.Reg.PPC = mc.Reg.PC
	mc.ir = 0

	opcode := mc.fetchPC()
	if mc.aborted {
		mc.serviceFault()
		return mc.finalise()
	}

	mc.ir = opcode
	mc.LastResult.Opcode = opcode

	fn := mc.dsp.ops[opcode]
	if fn == nil {
		switch opcode & 0xf000 {
		case 0xa000:
			mc.raiseIllegal(VecLineA)
		case 0xf000:
			mc.raiseIllegal(VecLineF)
		default:
			mc.raiseIllegal(VecIllegal)
		}
		mc.serviceFault()
		return mc.finalise()
	}

	mc.defn = mc.dsp.defs[opcode]
	mc.LastResult.Defn = mc.defn
	mc.addCycles(mc.defn.Cycles)

	fn(mc)

	serviced := mc.serviceFault()

	if traceArmed && !serviced && !mc.LastResult.Exception && !mc.halted {
		mc.LastResult.Exception = true
		mc.addCycles(timing.ExceptionTrace)
		mc.exception(VecTrace, mc.Reg.PC)
	}

	return mc.finalise()
}

// finalise closes out LastResult and folds its cycle count into the
// running total.
func (mc *M68K) finalise() error {
	mc.LastResult.Final = true
	mc.cycles += uint64(mc.LastResult.Cycles)

	if mc.tracer != nil {
		mc.tracer.Instruction(mc.LastResult)
	}

	if mc.hostErr != nil {
		err := mc.hostErr
		mc.hostErr = nil
		mc.aborted = false
		return curated.Errorf("cpu: %v", err)
	}

	if mc.halted {
		return curated.Errorf(HaltedError, mc.Reg.PPC)
	}

	return nil
}

// ExecuteFor runs the CPU until at least the given number of cycles has
// been consumed, stopping early if the host hook intercepts an instruction
// boundary or the CPU double faults. Always executes at least one step.
func (mc *M68K) ExecuteFor(cycles uint64) (RunState, error) {
	target := mc.cycles + cycles

	for {
		if mc.check != nil && mc.check(mc.Reg.PC) {
			return Stopped, nil
		}

		if err := mc.Step(); err != nil {
			return Faulted, err
		}

		if mc.cycles >= target {
			return Running, nil
		}
	}
}

// Run executes instructions until the host hook stops the CPU or the CPU
// double faults. With no hook attached, Run only returns on a fault.
func (mc *M68K) Run() (RunState, error) {
	for {
		if mc.check != nil && mc.check(mc.Reg.PC) {
			return Stopped, nil
		}

		if err := mc.Step(); err != nil {
			return Faulted, err
		}
	}
}

// CallUntilStop runs the routine at entry until it returns to the caller's
// level: the current PC is pushed as the return address and execution
// continues until the matching return instruction brings the nesting depth
// back below its starting point. Exception handlers entered along the way
// count as nesting, so an interrupt taken during the routine does not end
// the call early.
//
// Returns Running when the routine returned normally, Stopped if the host
// hook intercepted an instruction boundary first.
func (mc *M68K) CallUntilStop(entry uint32) (RunState, error) {
	if entry&0x01 == 0x01 {
		return Faulted, curated.Errorf("cpu: call: entry address is not even (%#08x)", entry)
	}

	mc.pushLong(mc.Reg.PC)
	if mc.aborted {
		err := mc.hostErr
		mc.hostErr = nil
		mc.fault = nil
		mc.aborted = false
		if err == nil {
			return Faulted, curated.Errorf("cpu: call: cannot push return address")
		}
		return Faulted, curated.Errorf("cpu: %v", err)
	}

	mc.Reg.PC = entry
	mc.callDepth = 0

	for {
		if mc.check != nil && mc.check(mc.Reg.PC) {
			return Stopped, nil
		}

		if err := mc.Step(); err != nil {
			return Faulted, err
		}

		if mc.callDepth < 0 {
			return Running, nil
		}
	}
}
