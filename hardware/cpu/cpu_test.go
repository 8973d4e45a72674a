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

package cpu_test

import (
	"testing"

	"github.com/redcrab/gopher68k/curated"
	"github.com/redcrab/gopher68k/hardware/bus"
	"github.com/redcrab/gopher68k/hardware/cpu"
	"github.com/redcrab/gopher68k/hardware/cpu/registers"
	"github.com/redcrab/gopher68k/hardware/cpu/registers/assert"
	"github.com/redcrab/gopher68k/test"
)

const (
	ramSize = 0x10000
	origin  = 0x1000
	stack   = 0x8000
)

// newMachine returns a reset CPU with the reset vectors pointing the stack
// at 0x8000 and the PC at 0x1000.
func newMachine(t *testing.T, variant cpu.Variant, program ...uint16) (*cpu.M68K, *bus.RAM) {
	t.Helper()

	mem := bus.NewRAM(ramSize)
	mem.PutWords(0, 0x0000, stack, 0x0000, origin)
	mem.PutWords(origin, program...)

	mc := cpu.NewCPU(mem, variant)
	if err := mc.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	return mc, mem
}

// step executes one instruction and fails the test if the execution result
// is inconsistent with the instruction definition.
func step(t *testing.T, mc *cpu.M68K) {
	t.Helper()

	if err := mc.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if err := mc.LastResult.IsValid(); err != nil {
		t.Fatalf("step: %v", err)
	}
}

func TestReset(t *testing.T) {
	mc, _ := newMachine(t, cpu.M68000)

	assert.Assert(t, mc.Reg.PC, origin)
	assert.Assert(t, mc.Reg.A[7], stack)
	assert.Assert(t, mc.Reg.Status, "tsm7xnzvc")

	if mc.Cycles() == 0 {
		t.Errorf("reset consumed no cycles")
	}
}

func TestResetOddVector(t *testing.T) {
	mem := bus.NewRAM(ramSize)
	mem.PutWords(0, 0x0000, stack, 0x0000, origin|1)

	mc := cpu.NewCPU(mem, cpu.M68000)
	err := mc.Reset()
	test.ExpectedFailure(t, err)
	test.Equate(t, curated.Is(err, cpu.ResetVectorError), true)
}

func TestMOVEQ(t *testing.T) {
	// the smoke test from the register ABI: MOVEQ #$76,D0
	mc, _ := newMachine(t, cpu.M68000, 0x7076)
	step(t, mc)

	assert.Assert(t, mc.Reg.D[0], 0x76)
	assert.Assert(t, mc.Reg.PC, origin+2)
	assert.Assert(t, mc.Reg.Status, "tsm7xnzvc")
	test.Equate(t, mc.LastResult.ByteCount, 2)

	// negative payload sign extends to 32 bits and sets N
	mc, _ = newMachine(t, cpu.M68000, 0x70ff)
	step(t, mc)
	assert.Assert(t, mc.Reg.D[0], 0xffffffff)
	assert.Assert(t, mc.Reg.Status, "tsm7xNzvc")
}

func TestDecodePurity(t *testing.T) {
	a := cpu.Decode(0x7076, cpu.M68000)
	b := cpu.Decode(0x7076, cpu.M68000)
	if a == nil || a != b {
		t.Errorf("decoding the same word twice gave different definitions")
	}
	if cpu.Decode(0x4e75, cpu.M68000) == nil {
		t.Errorf("RTS did not decode")
	}
	if cpu.Decode(0x4e74, cpu.M68000) != nil {
		t.Errorf("RTD decoded on the 68000")
	}
	if cpu.Decode(0x4e74, cpu.M68010) == nil {
		t.Errorf("RTD did not decode on the 68010")
	}
}

func TestMOVEBetweenRegisters(t *testing.T) {
	// MOVEQ #$12,D1; MOVE.L D1,D2; MOVE.W D1,D3
	mc, _ := newMachine(t, cpu.M68000, 0x7212, 0x2401, 0x3601)
	step(t, mc)
	step(t, mc)
	assert.Assert(t, mc.Reg.D[2], 0x12)
	step(t, mc)
	assert.Assert(t, mc.Reg.D[3]&0xffff, 0x12)
}

func TestMOVEToMemory(t *testing.T) {
	// MOVE.W #$abcd,$2000 ; absolute short destination
	mc, mem := newMachine(t, cpu.M68000, 0x31fc, 0xabcd, 0x2000)
	step(t, mc)

	v, err := mem.Read(0x2000, bus.Word)
	test.ExpectedSuccess(t, err)
	assert.Assert(t, v, 0xabcd)
	test.Equate(t, mc.LastResult.ByteCount, 6)
	assert.Assert(t, mc.Reg.PC, origin+6)
}

func TestPostIncrementPreDecrement(t *testing.T) {
	// LEA $2000,A0; MOVE.W #$1111,(A0)+; MOVE.W -(A0),D0
	mc, _ := newMachine(t, cpu.M68000,
		0x41f8, 0x2000, // LEA ($2000).W,A0
		0x30fc, 0x1111, // MOVE.W #$1111,(A0)+
		0x3020, // MOVE.W -(A0),D0
	)

	step(t, mc)
	assert.Assert(t, mc.Reg.A[0], 0x2000)

	step(t, mc)
	assert.Assert(t, mc.Reg.A[0], 0x2002)

	step(t, mc)
	assert.Assert(t, mc.Reg.A[0], 0x2000)
	assert.Assert(t, mc.Reg.D[0]&0xffff, 0x1111)
}

func TestByteStackPointerAlignment(t *testing.T) {
	// MOVE.B D0,-(A7) moves the stack pointer by two, not one
	mc, _ := newMachine(t, cpu.M68000, 0x1f00)
	step(t, mc)
	assert.Assert(t, mc.Reg.A[7], stack-2)
}

func TestADDFlags(t *testing.T) {
	// MOVEQ #$7f,D0; ADD.B D0,D0 overflows a signed byte
	mc, _ := newMachine(t, cpu.M68000, 0x707f, 0xd000)
	step(t, mc)
	step(t, mc)
	assert.Assert(t, mc.Reg.D[0]&0xff, 0xfe)
	assert.Assert(t, mc.Reg.Status, "tsm7xNzVc")
}

func TestSUBAndCompare(t *testing.T) {
	// MOVEQ #5,D0; SUBQ.L #5,D0 leaves zero
	mc, _ := newMachine(t, cpu.M68000, 0x7005, 0x5b80)
	step(t, mc)
	step(t, mc)
	assert.Assert(t, mc.Reg.D[0], 0)
	assert.Assert(t, mc.Reg.Status, "tsm7xnZvc")

	// CMP of equal values sets Z without changing the register
	mc, _ = newMachine(t, cpu.M68000, 0x7005, 0x7205, 0xb200) // MOVEQ, MOVEQ, CMP.B D0,D1
	step(t, mc)
	step(t, mc)
	step(t, mc)
	assert.Assert(t, mc.Reg.D[1], 5)
	assert.Assert(t, mc.Reg.Status, "tsm7xnZvc")
}

func TestRTS(t *testing.T) {
	// JSR to a routine holding a single RTS
	mc, mem := newMachine(t, cpu.M68000, 0x4eb8, 0x2000) // JSR ($2000).W
	mem.PutWords(0x2000, 0x4e75)                         // RTS

	step(t, mc)
	assert.Assert(t, mc.Reg.PC, 0x2000)
	assert.Assert(t, mc.Reg.A[7], stack-4)

	step(t, mc)
	test.Equate(t, mc.LastResult.ByteCount, 2)
	assert.Assert(t, mc.Reg.PC, origin+4)
	assert.Assert(t, mc.Reg.A[7], stack)
}

func TestBranches(t *testing.T) {
	// MOVEQ #0,D0; BEQ.S +4 skips the following MOVEQ
	mc, _ := newMachine(t, cpu.M68000,
		0x7000, // MOVEQ #0,D0
		0x6702, // BEQ.S +2
		0x7001, // MOVEQ #1,D0 (skipped)
		0x7002, // MOVEQ #2,D0
	)
	step(t, mc)
	step(t, mc)
	if !mc.LastResult.BranchTaken {
		t.Errorf("BEQ on zero did not branch")
	}
	step(t, mc)
	assert.Assert(t, mc.Reg.D[0], 2)
}

func TestDBcc(t *testing.T) {
	// MOVEQ #3,D0; loop: DBRA D0,loop. the loop body runs four times
	mc, _ := newMachine(t, cpu.M68000,
		0x7003, // MOVEQ #3,D0
		0x51c8, 0xfffe, // DBRA D0,-2
	)
	step(t, mc)
	for i := 0; i < 3; i++ {
		step(t, mc)
		if !mc.LastResult.BranchTaken {
			t.Fatalf("DBRA iteration %d did not branch", i)
		}
	}
	step(t, mc)
	if mc.LastResult.BranchTaken {
		t.Errorf("DBRA branched after the counter expired")
	}
	assert.Assert(t, mc.Reg.D[0]&0xffff, 0xffff)
	assert.Assert(t, mc.Reg.PC, origin+6)
}

func TestShifts(t *testing.T) {
	// MOVEQ #1,D0; LSL.W #4,D0
	mc, _ := newMachine(t, cpu.M68000, 0x7001, 0xe948)
	step(t, mc)
	step(t, mc)
	assert.Assert(t, mc.Reg.D[0], 0x10)

	// ASR.W of a negative value keeps the sign
	mc, _ = newMachine(t, cpu.M68000, 0x70f0, 0xe240) // MOVEQ #$f0...,D0; ASR.W #1,D0
	step(t, mc)
	step(t, mc)
	assert.Assert(t, mc.Reg.D[0]&0xffff, 0xfff8)
}

func TestOddAddressFault(t *testing.T) {
	// handler at $3000 via vector 3 (address error)
	mc, mem := newMachine(t, cpu.M68000,
		0x3038, 0x2001, // MOVE.W ($2001).W,D0 - odd word read
	)
	mem.PutWords(3*4, 0x0000, 0x3000)
	mem.PutWords(0x3000, 0x4e71) // NOP

	step(t, mc)

	if !mc.LastResult.Exception {
		t.Fatalf("odd word access did not raise an exception")
	}
	assert.Assert(t, mc.Reg.PC, 0x3000)
	assert.Assert(t, mc.Reg.Status, "tSm7xnzvc")

	// the 68000 group 0 frame records the faulting address below the
	// status register and program counter
	faultAddr, err := mem.Read(mc.Reg.A[7]+2, bus.Long)
	test.ExpectedSuccess(t, err)
	assert.Assert(t, faultAddr, 0x2001)

	// access information word: read of data space
	info, err := mem.Read(mc.Reg.A[7], bus.Word)
	test.ExpectedSuccess(t, err)
	if info&0x0010 != 0x0010 {
		t.Errorf("access information word does not record a read (%#04x)", info)
	}
}

func TestIllegalInstruction(t *testing.T) {
	mc, mem := newMachine(t, cpu.M68000, 0x4afc)
	mem.PutWords(4*4, 0x0000, 0x3000)

	step(t, mc)

	if !mc.LastResult.Exception {
		t.Fatalf("ILLEGAL did not raise an exception")
	}
	assert.Assert(t, mc.Reg.PC, 0x3000)

	// the stacked PC points at the illegal instruction itself
	spc, err := mem.Read(mc.Reg.A[7]+2, bus.Long)
	test.ExpectedSuccess(t, err)
	assert.Assert(t, spc, origin)
}

func TestLineAEmulator(t *testing.T) {
	mc, mem := newMachine(t, cpu.M68000, 0xa123)
	mem.PutWords(10*4, 0x0000, 0x3000)

	step(t, mc)
	assert.Assert(t, mc.Reg.PC, 0x3000)
}

func TestTRAP(t *testing.T) {
	mc, mem := newMachine(t, cpu.M68000, 0x4e41) // TRAP #1
	mem.PutWords((32+1)*4, 0x0000, 0x3000)
	mem.PutWords(0x3000, 0x4e73) // RTE

	step(t, mc)
	assert.Assert(t, mc.Reg.PC, 0x3000)
	assert.Assert(t, mc.Reg.Status, "tSm7xnzvc")

	// the stacked PC is the instruction after the TRAP, so RTE resumes
	// there
	step(t, mc)
	assert.Assert(t, mc.Reg.PC, origin+2)
}

func TestPrivilegeViolation(t *testing.T) {
	// drop to user mode with MOVE #$0000,SR then attempt a privileged
	// instruction
	mc, mem := newMachine(t, cpu.M68000,
		0x46fc, 0x0000, // MOVE #$0000,SR
		0x4e72, // STOP (privileged)
	)
	mem.PutWords(8*4, 0x0000, 0x3000)

	step(t, mc)
	assert.Assert(t, mc.Reg.Status, "tsm0xnzvc")

	step(t, mc)
	if !mc.LastResult.Exception {
		t.Fatalf("privileged instruction in user mode did not raise an exception")
	}
	assert.Assert(t, mc.Reg.PC, 0x3000)

	// stacked PC points back at the offending instruction
	spc, err := mem.Read(mc.Reg.A[7]+2, bus.Long)
	test.ExpectedSuccess(t, err)
	assert.Assert(t, spc, origin+4)
}

func TestDivideByZero(t *testing.T) {
	mc, mem := newMachine(t, cpu.M68000,
		0x7200, // MOVEQ #0,D1
		0x80c1, // DIVU D1,D0
	)
	mem.PutWords(5*4, 0x0000, 0x3000)

	step(t, mc)
	step(t, mc)
	assert.Assert(t, mc.Reg.PC, 0x3000)
}

func TestSupervisorStackSwitch(t *testing.T) {
	// entering user mode banks the supervisor stack pointer out of A7
	mc, mem := newMachine(t, cpu.M68000,
		0x46fc, 0x0000, // MOVE #$0000,SR
		0x2e7c, 0x0000, 0x4000, // MOVEA.L #$4000,A7
		0x4e71, // NOP
	)
	mem.PutWords((24+7)*4, 0x0000, 0x3000)

	step(t, mc)
	step(t, mc)
	assert.Assert(t, mc.Reg.A[7], 0x4000)

	// a level 7 interrupt is never masked. taking it banks the
	// supervisor stack pointer back into A7 and stacks the frame there
	mc.InterruptRequest(7, nil)
	if err := mc.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}

	assert.Assert(t, mc.Reg.PC, 0x3000)
	assert.Assert(t, mc.Reg.A[7], stack-6)
	assert.Assert(t, mc.Reg.Status, "tSm7xnzvc")

	// the user stack pointer keeps its value while banked out
	v := mc.Reg.Value(registers.USP)
	assert.Assert(t, v, 0x4000)
}

func TestInterrupt(t *testing.T) {
	mc, mem := newMachine(t, cpu.M68000, 0x4e71, 0x4e71)
	mem.PutWords((24+2)*4, 0x0000, 0x3000)
	mem.PutWords(0x3000, 0x4e73) // RTE

	step(t, mc)

	// level 2 is below the reset mask of 7: not accepted
	mc.InterruptRequest(2, nil)
	step(t, mc)
	assert.Assert(t, mc.Reg.PC, origin+4)

	// drop the mask and retry
	mc2, mem2 := newMachine(t, cpu.M68000,
		0x46fc, 0x2000, // MOVE #$2000,SR (supervisor, mask 0)
		0x4e71,
	)
	mem2.PutWords((24+2)*4, 0x0000, 0x3000)
	mem2.PutWords(0x3000, 0x4e73)

	step(t, mc2)
	mc2.InterruptRequest(2, nil)
	step(t, mc2)

	assert.Assert(t, mc2.Reg.PC, 0x3000)
	assert.Assert(t, mc2.Reg.Status, "tSm2xnzvc")

	// returning from the handler resumes the interrupted stream and
	// restores the mask
	step(t, mc2)
	assert.Assert(t, mc2.Reg.PC, origin+4)
	assert.Assert(t, mc2.Reg.Status, "tSm0xnzvc")
}

func TestSTOPAndInterrupt(t *testing.T) {
	mc, mem := newMachine(t, cpu.M68000,
		0x4e72, 0x2000, // STOP #$2000
	)
	mem.PutWords((24+3)*4, 0x0000, 0x3000)

	step(t, mc)
	if !mc.Stopped() {
		t.Fatalf("STOP did not stop the CPU")
	}

	// stopped CPU idles
	pc := mc.Reg.PC
	if err := mc.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	assert.Assert(t, mc.Reg.PC, pc)

	// an interrupt wakes it
	mc.InterruptRequest(3, nil)
	if err := mc.Step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if mc.Stopped() {
		t.Errorf("interrupt did not clear the stopped state")
	}
	assert.Assert(t, mc.Reg.PC, 0x3000)
}

func TestTraceException(t *testing.T) {
	mc, mem := newMachine(t, cpu.M68000,
		0x46fc, 0xa700, // MOVE #$a700,SR (trace on)
		0x7001, // MOVEQ #1,D0
	)
	mem.PutWords(9*4, 0x0000, 0x3000)
	mem.PutWords(0x3000, 0x4e73) // RTE

	step(t, mc)
	step(t, mc) // MOVEQ executes, then the trace exception is taken

	assert.Assert(t, mc.Reg.D[0], 1)
	assert.Assert(t, mc.Reg.PC, 0x3000)

	// the handler sees the address of the next instruction
	spc, err := mem.Read(mc.Reg.A[7]+2, bus.Long)
	test.ExpectedSuccess(t, err)
	assert.Assert(t, spc, origin+6)

	// RTE restores the T bit; the handler itself is not traced
	step(t, mc)
	assert.Assert(t, mc.Reg.PC, origin+6)
}

func TestHookStopsBeforeExecution(t *testing.T) {
	mc, _ := newMachine(t, cpu.M68000,
		0x7001, // MOVEQ #1,D0
		0x7002, // MOVEQ #2,D0
	)

	mc.SetCheck(func(pc uint32) bool {
		return pc == origin+2
	})

	state, err := mc.Run()
	test.ExpectedSuccess(t, err)
	test.Equate(t, state == cpu.Stopped, true)

	// the instruction at the stop address has not executed
	assert.Assert(t, mc.Reg.D[0], 1)
	assert.Assert(t, mc.Reg.PC, origin+2)
}

func TestCallUntilStop(t *testing.T) {
	mc, mem := newMachine(t, cpu.M68000)
	mem.PutWords(0x2000,
		0x7005, // MOVEQ #5,D0
		0x6100, 0x0004, // BSR +4
		0x4e75, // RTS (top level: ends the call)
		0x7207, // MOVEQ #7,D1 (nested routine)
		0x4e75, // RTS
	)

	state, err := mc.CallUntilStop(0x2000)
	test.ExpectedSuccess(t, err)
	test.Equate(t, state == cpu.Running, true)

	assert.Assert(t, mc.Reg.D[0], 5)
	assert.Assert(t, mc.Reg.D[1], 7)

	// the return address pushed on entry has been popped again
	assert.Assert(t, mc.Reg.A[7], stack)
	assert.Assert(t, mc.Reg.PC, origin)
}

func TestExecuteFor(t *testing.T) {
	mc, mem := newMachine(t, cpu.M68000)
	mem.PutWords(origin,
		0x7001, // MOVEQ
		0x60fc, // BRA.S -4 (tight loop)
	)

	start := mc.Cycles()
	state, err := mc.ExecuteFor(100)
	test.ExpectedSuccess(t, err)
	test.Equate(t, state == cpu.Running, true)

	if mc.Cycles()-start < 100 {
		t.Errorf("ExecuteFor consumed too few cycles (%d)", mc.Cycles()-start)
	}
}

func TestDoubleFaultHalts(t *testing.T) {
	// an odd address in the address error vector itself: servicing the
	// fault faults
	mc, mem := newMachine(t, cpu.M68000, 0x3038, 0x2001)
	mem.PutWords(3*4, 0x0000, 0x3001) // odd handler address

	if err := mc.Step(); err == nil {
		t.Fatalf("double fault did not report an error")
	}
	if !mc.Halted() {
		t.Fatalf("double fault did not halt the CPU")
	}

	err := mc.Step()
	test.ExpectedFailure(t, err)
	test.Equate(t, curated.Is(err, cpu.HaltedError), true)
}

func TestVBRRelocation(t *testing.T) {
	// on the 68010 the vector table follows the VBR
	mc, mem := newMachine(t, cpu.M68010,
		0x7600, // MOVEQ #0,D3
		0x4e7b, 0x3801, // MOVEC D3,VBR ... VBR=0 first to prove the plumbing
		0x263c, 0x0000, 0x4000, // MOVE.L #$4000,D3
		0x4e7b, 0x3801, // MOVEC D3,VBR
		0x4e41, // TRAP #1
	)
	mem.PutWords(0x4000+(32+1)*4, 0x0000, 0x3000)
	mem.PutWords(0x3000, 0x4e73)

	step(t, mc)
	step(t, mc)
	step(t, mc)
	step(t, mc)
	assert.Assert(t, mc.Reg.VBR, 0x4000)

	step(t, mc)
	assert.Assert(t, mc.Reg.PC, 0x3000)

	// the 68010 frame carries a format/vector word above the PC
	fw, err := mem.Read(mc.Reg.A[7]+6, bus.Word)
	test.ExpectedSuccess(t, err)
	assert.Assert(t, fw, (32+1)*4)
}

func TestMisalignedAccessOn68020(t *testing.T) {
	// the 68020 performs misaligned data reads without faulting
	mc, mem := newMachine(t, cpu.M68020, 0x3038, 0x2001)
	mem.Put(0x2001, 0xab, 0xcd)

	step(t, mc)
	if mc.LastResult.Exception {
		t.Fatalf("misaligned read faulted on the 68020")
	}
	assert.Assert(t, mc.Reg.D[0]&0xffff, 0xabcd)
}
