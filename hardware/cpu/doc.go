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

// Package cpu emulates the Motorola 68000 family of processors: the 68000,
// the 68010 and the 68020 (without the full-format extension words or the
// coprocessor interface).
//
// A CPU instance is created with NewCPU(), attaching a bus.Bus that the
// host provides, and started with Reset():
//
//	mc := cpu.NewCPU(mem, cpu.M68000)
//	if err := mc.Reset(); err != nil {
//		...
//	}
//
// Execution proceeds one instruction at a time with Step(), or in batches
// with ExecuteFor(), Run() and CallUntilStop(). The batch operations consult
// the host interception hook, registered with SetCheck(), at every
// instruction boundary; Step() never does. Details of the most recently
// retired instruction are recorded in LastResult.
//
// Decoding is table driven. The dispatch table is built once per variant,
// on first use, by expanding the registration loops in the ops_*.go files
// over all 65536 opcode words; the same table drives the disassembler
// through the Decode() function.
//
// Every exception the 68000 family defines is routed through the single
// pending-fault slot or, for the TRAP group, taken immediately within the
// instruction. A fault raised while servicing a fault halts the CPU until
// the next Reset(), mirroring the double bus fault behaviour of the real
// chip.
package cpu
