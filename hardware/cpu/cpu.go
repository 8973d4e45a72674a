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

	"github.com/redcrab/gopher68k/curated"
	"github.com/redcrab/gopher68k/hardware/bus"
	"github.com/redcrab/gopher68k/hardware/cpu/execution"
	"github.com/redcrab/gopher68k/hardware/cpu/instructions"
	"github.com/redcrab/gopher68k/hardware/cpu/registers"
	"github.com/redcrab/gopher68k/hardware/cpu/timing"
)

// M68K implements a 68000 family CPU. Register logic is implemented by the
// registers sub-package.
//
// The type is not safe for concurrent use. The execution loop owns the
// context for the duration of a dispatch; host callbacks may read or mutate
// it but must not assume atomicity across callback invocations.
type M68K struct {
	Reg     registers.Registers
	Variant Variant

	mem bus.Bus
	dsp *dispatch

	// the current opcode word, latched at fetch time
	ir uint16

	// definition of the instruction currently being executed
	defn *instructions.Definition

	// running cycle counter since the last reset
	cycles uint64

	// last result. overwritten on every dispatch
	LastResult execution.Result

	// pending interrupt request. level 0 means no request
	pendingIPL uint8
	pendingVec *uint8

	// the single pending fault slot. nil when no fault is pending
	fault *Fault

	// the current instruction has been aborted by a fault. bus helpers
	// become no-ops until the fault is serviced at the end of the dispatch
	aborted bool

	// set by STOP, cleared by an accepted interrupt
	stopped bool

	// a fault was raised while servicing a fault. requires Reset()
	halted bool

	// a Bus error that does not match the bus.AddressError pattern is a
	// host failure, not a bus fault. it ends the current run
	hostErr error

	// host interception hook, evaluated at instruction boundaries before
	// dispatch
	check func(pc uint32) bool

	// optional tracer for the diagnostic event surface
	tracer Tracer

	// subroutine nesting depth relative to the most recent CallUntilStop()
	callDepth int
}

// NewCPU is the preferred method of initialisation for the M68K type. The
// CPU is left in the pre-reset state: call Reset() before execution.
func NewCPU(mem bus.Bus, variant Variant) *M68K {
	return &M68K{
		Reg:     registers.NewRegisters(),
		Variant: variant,
		mem:     mem,
		dsp:     dispatchForVariant(variant),
	}
}

// Snapshot creates a copy of the CPU in its current state.
func (mc *M68K) Snapshot() *M68K {
	n := *mc
	return &n
}

// Plumb a new Bus into the CPU.
func (mc *M68K) Plumb(mem bus.Bus) {
	mc.mem = mem
}

// SetTracer attaches a tracer to the diagnostic event surface. A nil tracer
// disables tracing.
func (mc *M68K) SetTracer(t Tracer) {
	mc.tracer = t
}

// SetCheck registers the host interception hook. The hook is consulted with
// the current PC before every dispatch; returning true stops the current
// Run() or CallUntilStop() before the instruction at that address executes.
func (mc *M68K) SetCheck(check func(pc uint32) bool) {
	mc.check = check
}

func (mc *M68K) String() string {
	return fmt.Sprintf("%s %s cycles=%d", mc.Variant, mc.Reg.String(), mc.cycles)
}

// Cycles returns the total number of cycles consumed since the last reset.
func (mc *M68K) Cycles() uint64 {
	return mc.cycles
}

// Halted returns true if the CPU has suffered a double fault and can only be
// restarted with Reset().
func (mc *M68K) Halted() bool {
	return mc.halted
}

// Stopped returns true if the CPU is stopped as the result of a STOP
// instruction. An accepted interrupt resumes execution.
func (mc *M68K) Stopped() bool {
	return mc.stopped
}

// Reset performs a hardware reset: the status register is forced to
// supervisor mode with interrupts masked, the initial interrupt stack
// pointer is read from address 0 and the initial PC from address 4, both
// big-endian. Initialisation fails if the reset PC is odd.
func (mc *M68K) Reset() error {
	mc.Reg = registers.NewRegisters()
	mc.cycles = 0
	mc.ir = 0
	mc.defn = nil
	mc.fault = nil
	mc.aborted = false
	mc.hostErr = nil
	mc.stopped = false
	mc.halted = false
	mc.pendingIPL = 0
	mc.pendingVec = nil
	mc.callDepth = 0
	mc.LastResult.Reset()

	ssp, err := mc.mem.Read(0, bus.Long)
	if err != nil {
		return curated.Errorf("cpu: reset: %v", err)
	}

	pc, err := mc.mem.Read(4, bus.Long)
	if err != nil {
		return curated.Errorf("cpu: reset: %v", err)
	}

	if pc&0x01 == 0x01 {
		return curated.Errorf(ResetVectorError, pc)
	}

	mc.Reg.A[7] = ssp
	mc.Reg.PC = pc
	mc.Reg.PPC = pc

	mc.cycles += uint64(timing.ExceptionReset)

	return nil
}

// ResetVectorError is the error pattern returned by Reset() when the reset
// vector at address 4 holds an odd PC.
const ResetVectorError = "cpu: reset vector is not even (%#08x)"

// InterruptRequest queues an interrupt at the given priority level (1 to 7).
// Pass nil for vector to use auto-vectoring. A higher level replaces a lower
// pending level; an equal or lower level is discarded.
func (mc *M68K) InterruptRequest(level uint8, vector *uint8) {
	if level > 7 {
		level = 7
	}
	if level > mc.pendingIPL {
		mc.pendingIPL = level
		mc.pendingVec = vector
	}
}

// addCycles charges n cycles to the current instruction.
func (mc *M68K) addCycles(n int) {
	mc.LastResult.Cycles += n
}

// setSR writes the status register, masking bits that do not exist on the
// variant and rerouting the active stack pointer.
func (mc *M68K) setSR(v uint16) {
	mc.Reg.SetStatus(v & mc.Variant.srMask())
}

// setCCR writes the condition code byte only.
func (mc *M68K) setCCR(v uint8) {
	mc.Reg.Status.FromCCR(v)
}

// supervisor returns true if the CPU is in supervisor mode.
func (mc *M68K) supervisor() bool {
	return mc.Reg.Status.Supervisor
}

// read performs a data read, enforcing the alignment rules of the variant.
// Returns zero once the current instruction has been aborted by a fault.
func (mc *M68K) read(size bus.Size, addr uint32) uint32 {
	if mc.aborted {
		return 0
	}

	addr &= mc.Variant.addressMask()

	if size != bus.Byte && addr&0x01 == 0x01 && mc.Variant.strictAlignment() {
		mc.raiseAddressError(addr, false)
		return 0
	}

	v, err := mc.mem.Read(addr, size)
	if err != nil {
		if curated.Is(err, bus.AddressError) {
			mc.raiseBusFault(err, addr, false)
		} else {
			mc.hostErr = err
			mc.aborted = true
		}
		return 0
	}

	if mc.tracer != nil {
		mc.tracer.MemoryAccess(addr, size, v, false, mc.Reg.PPC)
	}

	return v
}

// write performs a data write, enforcing the alignment rules of the variant.
// A no-op once the current instruction has been aborted by a fault.
func (mc *M68K) write(size bus.Size, addr uint32, v uint32) {
	if mc.aborted {
		return
	}

	addr &= mc.Variant.addressMask()
	v &= size.Mask()

	if size != bus.Byte && addr&0x01 == 0x01 && mc.Variant.strictAlignment() {
		mc.raiseAddressError(addr, true)
		return
	}

	if err := mc.mem.Write(addr, size, v); err != nil {
		if curated.Is(err, bus.AddressError) {
			mc.raiseBusFault(err, addr, true)
		} else {
			mc.hostErr = err
			mc.aborted = true
		}
		return
	}

	if mc.tracer != nil {
		mc.tracer.MemoryAccess(addr, size, v, true, mc.Reg.PPC)
	}
}

// fetchPC reads the word at PC and advances PC by 2. Instruction stream
// accesses are always word sized so only an odd PC can fault, and that is
// checked before dispatch.
func (mc *M68K) fetchPC() uint16 {
	v := mc.read(bus.Word, mc.Reg.PC)
	if mc.aborted {
		return 0
	}
	mc.Reg.PC += 2
	mc.LastResult.ByteCount += 2
	return uint16(v)
}

// fetchPCLong reads the long at PC and advances PC by 4.
func (mc *M68K) fetchPCLong() uint32 {
	hi := mc.fetchPC()
	lo := mc.fetchPC()
	return uint32(hi)<<16 | uint32(lo)
}

// pushWord pushes a word onto the active stack.
func (mc *M68K) pushWord(v uint16) {
	mc.Reg.A[7] -= 2
	mc.write(bus.Word, mc.Reg.A[7], uint32(v))
}

// pushLong pushes a long onto the active stack.
func (mc *M68K) pushLong(v uint32) {
	mc.Reg.A[7] -= 4
	mc.write(bus.Long, mc.Reg.A[7], v)
}

// popWord pops a word from the active stack.
func (mc *M68K) popWord() uint16 {
	v := mc.read(bus.Word, mc.Reg.A[7])
	mc.Reg.A[7] += 2
	return uint16(v)
}

// popLong pops a long from the active stack.
func (mc *M68K) popLong() uint32 {
	v := mc.read(bus.Long, mc.Reg.A[7])
	mc.Reg.A[7] += 4
	return v
}
