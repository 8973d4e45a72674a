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

// Package instructions defines the static description of every instruction
// in the 68000 family instruction set. A Definition is created for every
// opcode word during dispatch table construction and is shared by the
// execution core and the disassembler.
package instructions

import (
	"fmt"

	"github.com/redcrab/gopher68k/hardware/bus"
)

// Operation identifies the operation class of an instruction, independent of
// size and addressing mode.
type Operation int

// The operation classes of the 68000 family base instruction set.
const (
	Illegal Operation = iota

	ABCD
	ADD
	ADDA
	ADDI
	ADDQ
	ADDX
	AND
	ANDI
	ANDItoCCR
	ANDItoSR
	ASL
	ASR
	Bcc
	BCHG
	BCLR
	BRA
	BSET
	BSR
	BTST
	CHK
	CLR
	CMP
	CMPA
	CMPI
	CMPM
	DBcc
	DIVS
	DIVU
	EOR
	EORI
	EORItoCCR
	EORItoSR
	EXG
	EXT
	JMP
	JSR
	LEA
	LINK
	LSL
	LSR
	MOVE
	MOVEA
	MOVEC
	MOVEfromCCR
	MOVEfromSR
	MOVEM
	MOVEP
	MOVEQ
	MOVES
	MOVEtoCCR
	MOVEtoSR
	MOVEtoUSP
	MOVEfromUSP
	MULS
	MULU
	NBCD
	NEG
	NEGX
	NOP
	NOT
	OR
	ORI
	ORItoCCR
	ORItoSR
	PEA
	RESET
	ROL
	ROR
	ROXL
	ROXR
	RTD
	RTE
	RTR
	RTS
	SBCD
	Scc
	STOP
	SUB
	SUBA
	SUBI
	SUBQ
	SUBX
	SWAP
	TAS
	TRAP
	TRAPV
	TST
	UNLK

	NumOperations
)

// Mnemonic returns the assembler mnemonic for the operation. Condition and
// register fields that are part of the opcode word are not included; the
// disassembler fills those in.
func (op Operation) Mnemonic() string {
	if s, ok := mnemonics[op]; ok {
		return s
	}
	return "ILLEGAL"
}

var mnemonics = map[Operation]string{
	ABCD: "ABCD", ADD: "ADD", ADDA: "ADDA", ADDI: "ADDI", ADDQ: "ADDQ",
	ADDX: "ADDX", AND: "AND", ANDI: "ANDI", ANDItoCCR: "ANDI", ANDItoSR: "ANDI",
	ASL: "ASL", ASR: "ASR", Bcc: "B", BCHG: "BCHG", BCLR: "BCLR", BRA: "BRA",
	BSET: "BSET", BSR: "BSR", BTST: "BTST", CHK: "CHK", CLR: "CLR", CMP: "CMP",
	CMPA: "CMPA", CMPI: "CMPI", CMPM: "CMPM", DBcc: "DB", DIVS: "DIVS",
	DIVU: "DIVU", EOR: "EOR", EORI: "EORI", EORItoCCR: "EORI", EORItoSR: "EORI",
	EXG: "EXG", EXT: "EXT", JMP: "JMP", JSR: "JSR", LEA: "LEA", LINK: "LINK",
	LSL: "LSL", LSR: "LSR", MOVE: "MOVE", MOVEA: "MOVEA", MOVEC: "MOVEC",
	MOVEfromCCR: "MOVE", MOVEfromSR: "MOVE", MOVEM: "MOVEM", MOVEP: "MOVEP",
	MOVEQ: "MOVEQ", MOVES: "MOVES", MOVEtoCCR: "MOVE", MOVEtoSR: "MOVE",
	MOVEtoUSP: "MOVE", MOVEfromUSP: "MOVE", MULS: "MULS", MULU: "MULU",
	NBCD: "NBCD", NEG: "NEG", NEGX: "NEGX", NOP: "NOP", NOT: "NOT", OR: "OR",
	ORI: "ORI", ORItoCCR: "ORI", ORItoSR: "ORI", PEA: "PEA", RESET: "RESET",
	ROL: "ROL", ROR: "ROR", ROXL: "ROXL", ROXR: "ROXR", RTD: "RTD", RTE: "RTE",
	RTR: "RTR", RTS: "RTS", SBCD: "SBCD", Scc: "S", STOP: "STOP", SUB: "SUB",
	SUBA: "SUBA", SUBI: "SUBI", SUBQ: "SUBQ", SUBX: "SUBX", SWAP: "SWAP",
	TAS: "TAS", TRAP: "TRAP", TRAPV: "TRAPV", TST: "TST", UNLK: "UNLK",
}

// EffectCategory categorises an instruction by the effect it has.
type EffectCategory int

// List of effect categories.
const (
	Read EffectCategory = iota
	Write
	RMW

	// the following categories have a variable effect on the program
	// counter, depending on the instruction's precise operand

	Flow
	Subroutine
	Interrupt
)

// Definition defines a single opcode word: the operation it performs, the
// operand size class, the addressing modes of its operands and the base
// cycle cost. One Definition exists for every recognised opcode word; the
// illegal sentinel definition stands in for the rest.
//
// A Definition is a pure description. Decoding the same opcode word twice
// yields the same Definition.
type Definition struct {
	OpCode    uint16
	Operation Operation

	// operand size class. zero for unsized operations
	Size bus.Size

	// addressing modes for source and destination operands. Implied when
	// the operand does not exist
	Src AddressingMode
	Dst AddressingMode

	// base cycle cost for the 68000, before addressing mode surcharges and
	// branch-taken extras
	Cycles int

	Effect EffectCategory
}

// String returns a single instruction definition as a string.
func (defn Definition) String() string {
	if defn.Operation == Illegal {
		return fmt.Sprintf("%04x illegal", defn.OpCode)
	}
	return fmt.Sprintf("%04x %s size=%d src=%s dst=%s (%d cycles)",
		defn.OpCode, defn.Operation.Mnemonic(), int(defn.Size), defn.Src, defn.Dst, defn.Cycles)
}

// IsBranch returns true if the instruction is a conditional or unconditional
// branch.
func (defn Definition) IsBranch() bool {
	switch defn.Operation {
	case Bcc, BRA, DBcc:
		return true
	}
	return false
}
