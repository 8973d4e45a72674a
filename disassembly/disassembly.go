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

// Package disassembly projects machine code into readable assembly. It is a
// thin layer over the CPU's decode table: disassembling never touches CPU
// state and reading the instruction stream has no side effects beyond the
// bus reads themselves.
package disassembly

import (
	"fmt"
	"strings"

	"github.com/redcrab/gopher68k/curated"
	"github.com/redcrab/gopher68k/hardware/bus"
	"github.com/redcrab/gopher68k/hardware/cpu"
	"github.com/redcrab/gopher68k/hardware/cpu/instructions"
)

// Entry is a single disassembled instruction.
type Entry struct {
	Address uint32
	Opcode  uint16
	Defn    *instructions.Definition

	Operator string
	Operand  string

	// total span in bytes: the opcode word plus extension words
	ByteCount int
}

func (e Entry) String() string {
	if e.Operand == "" {
		return fmt.Sprintf("%08x  %s", e.Address, e.Operator)
	}
	return fmt.Sprintf("%08x  %s %s", e.Address, e.Operator, e.Operand)
}

// Disassemble a single instruction at the address. Unrecognised opcode
// words disassemble to a DC.W directive rather than failing.
func Disassemble(mem bus.Bus, address uint32, variant cpu.Variant) (Entry, error) {
	r := &reader{mem: mem, addr: address}

	opcode := r.word()
	if r.err != nil {
		return Entry{}, curated.Errorf("disassembly: %v", r.err)
	}

	e := Entry{
		Address: address,
		Opcode:  opcode,
		Defn:    cpu.Decode(opcode, variant),
	}

	if e.Defn == nil {
		e.Operator = "DC.W"
		e.Operand = fmt.Sprintf("$%04x", opcode)
		e.ByteCount = 2
		return e, nil
	}

	e.Operator = operator(e.Defn)
	e.Operand = operand(e.Defn, r)
	e.ByteCount = r.n

	if r.err != nil {
		return Entry{}, curated.Errorf("disassembly: %v", r.err)
	}

	return e, nil
}

// Block disassembles count instructions starting at the address.
func Block(mem bus.Bus, address uint32, count int, variant cpu.Variant) ([]Entry, error) {
	entries := make([]Entry, 0, count)

	for i := 0; i < count; i++ {
		e, err := Disassemble(mem, address, variant)
		if err != nil {
			return entries, err
		}
		entries = append(entries, e)
		address += uint32(e.ByteCount)
	}

	return entries, nil
}

// reader consumes extension words from the instruction stream, keeping
// count of how many bytes have been used.
type reader struct {
	mem  bus.Bus
	addr uint32
	n    int
	err  error
}

func (r *reader) word() uint16 {
	if r.err != nil {
		return 0
	}
	v, err := r.mem.Read(r.addr+uint32(r.n), bus.Word)
	if err != nil {
		r.err = err
		return 0
	}
	r.n += 2
	return uint16(v)
}

func (r *reader) long() uint32 {
	hi := r.word()
	lo := r.word()
	return uint32(hi)<<16 | uint32(lo)
}

func sizeSuffix(size bus.Size) string {
	switch size {
	case bus.Byte:
		return ".B"
	case bus.Word:
		return ".W"
	case bus.Long:
		return ".L"
	}
	return ""
}

func operator(defn *instructions.Definition) string {
	mn := defn.Operation.Mnemonic()

	switch defn.Operation {
	case instructions.Bcc:
		return "B" + cpu.ConditionMnemonic(defn.OpCode>>8)
	case instructions.DBcc:
		cc := defn.OpCode >> 8 & 0x0f
		if cc == 1 {
			return "DBRA"
		}
		return "DB" + cpu.ConditionMnemonic(cc)
	case instructions.Scc:
		return "S" + cpu.ConditionMnemonic(defn.OpCode>>8)
	case instructions.BRA, instructions.BSR:
		return mn + sizeSuffix(defn.Size)
	}

	switch defn.Operation {
	case instructions.NOP, instructions.RESET, instructions.RTE, instructions.RTR,
		instructions.RTS, instructions.RTD, instructions.TRAP, instructions.TRAPV,
		instructions.STOP, instructions.UNLK, instructions.SWAP, instructions.JMP,
		instructions.JSR, instructions.LEA, instructions.PEA, instructions.EXG,
		instructions.Illegal, instructions.MOVEC, instructions.MOVEQ:
		return mn
	}

	if defn.Size == 0 {
		return mn
	}
	return mn + sizeSuffix(defn.Size)
}

// ea formats an effective address operand, consuming extension words.
func ea(mode instructions.AddressingMode, reg uint16, size bus.Size, r *reader) string {
	switch mode {
	case instructions.DataRegister:
		return fmt.Sprintf("D%d", reg)
	case instructions.AddressRegister:
		return fmt.Sprintf("A%d", reg)
	case instructions.Indirect:
		return fmt.Sprintf("(A%d)", reg)
	case instructions.PostIncrement:
		return fmt.Sprintf("(A%d)+", reg)
	case instructions.PreDecrement:
		return fmt.Sprintf("-(A%d)", reg)
	case instructions.Displacement:
		return fmt.Sprintf("($%04x,A%d)", r.word(), reg)
	case instructions.Indexed:
		return indexed(fmt.Sprintf("A%d", reg), r)
	case instructions.AbsoluteShort:
		return fmt.Sprintf("($%04x).W", r.word())
	case instructions.AbsoluteLong:
		return fmt.Sprintf("($%08x).L", r.long())
	case instructions.PCDisplacement:
		return fmt.Sprintf("($%04x,PC)", r.word())
	case instructions.PCIndexed:
		return indexed("PC", r)
	case instructions.Immediate:
		if size == bus.Long {
			return fmt.Sprintf("#$%08x", r.long())
		}
		return fmt.Sprintf("#$%04x", r.word()&uint16(size.Mask()))
	}
	return ""
}

func indexed(base string, r *reader) string {
	ext := r.word()
	idx := 'D'
	if ext&0x8000 == 0x8000 {
		idx = 'A'
	}
	sz := ".W"
	if ext&0x0800 == 0x0800 {
		sz = ".L"
	}
	return fmt.Sprintf("($%02x,%s,%c%d%s)", ext&0xff, base, idx, (ext>>12)&0x07, sz)
}

// operand formats the operand field for a decoded instruction, consuming
// whatever extension words the addressing modes call for.
func operand(defn *instructions.Definition, r *reader) string {
	op := defn.OpCode
	_ = instructions.DecodeMode(op>>3, op)
	eaReg := op & 0x07

	switch defn.Operation {
	case instructions.MOVEQ:
		return fmt.Sprintf("#$%02x,D%d", op&0xff, (op>>9)&0x07)

	case instructions.MOVE, instructions.MOVEA:
		src := ea(defn.Src, eaReg, defn.Size, r)
		dst := ea(defn.Dst, (op>>9)&0x07, defn.Size, r)
		return src + "," + dst

	case instructions.MOVEM:
		mask := r.word()
		if defn.Dst == instructions.Implied {
			return ea(defn.Src, eaReg, defn.Size, r) + "," + movemMask(mask, false)
		}
		return movemMask(mask, defn.Dst == instructions.PreDecrement) + "," + ea(defn.Dst, eaReg, defn.Size, r)

	case instructions.MOVEP:
		dn := (op >> 9) & 0x07
		mem := fmt.Sprintf("($%04x,A%d)", r.word(), eaReg)
		if op&0x0080 == 0x0080 {
			return fmt.Sprintf("D%d,%s", dn, mem)
		}
		return fmt.Sprintf("%s,D%d", mem, dn)

	case instructions.Bcc, instructions.BRA, instructions.BSR:
		switch defn.Size {
		case bus.Word:
			return fmt.Sprintf("*%+d", int16(r.word())+2)
		case bus.Long:
			return fmt.Sprintf("*%+d", int32(r.long())+2)
		}
		return fmt.Sprintf("*%+d", int8(op&0xff)+2)

	case instructions.DBcc:
		return fmt.Sprintf("D%d,*%+d", op&0x07, int16(r.word())+2)

	case instructions.LEA:
		return ea(defn.Src, eaReg, bus.Long, r) + fmt.Sprintf(",A%d", (op>>9)&0x07)

	case instructions.EXG:
		// register identities are in the opmode field
		rx := (op >> 9) & 0x07
		ry := op & 0x07
		switch op & 0x00f8 {
		case 0x0040:
			return fmt.Sprintf("D%d,D%d", rx, ry)
		case 0x0048:
			return fmt.Sprintf("A%d,A%d", rx, ry)
		}
		return fmt.Sprintf("D%d,A%d", rx, ry)

	case instructions.TRAP:
		return fmt.Sprintf("#%d", op&0x0f)

	case instructions.STOP:
		return fmt.Sprintf("#$%04x", r.word())

	case instructions.LINK:
		return fmt.Sprintf("A%d,#%d", op&0x07, int16(r.word()))

	case instructions.UNLK, instructions.SWAP, instructions.EXT:
		if defn.Operation == instructions.UNLK {
			return fmt.Sprintf("A%d", op&0x07)
		}
		return fmt.Sprintf("D%d", op&0x07)

	case instructions.MOVEtoUSP:
		return fmt.Sprintf("A%d,USP", op&0x07)
	case instructions.MOVEfromUSP:
		return fmt.Sprintf("USP,A%d", op&0x07)

	case instructions.MOVEfromSR:
		return "SR," + ea(defn.Dst, eaReg, bus.Word, r)
	case instructions.MOVEfromCCR:
		return "CCR," + ea(defn.Dst, eaReg, bus.Word, r)
	case instructions.MOVEtoSR:
		return ea(defn.Src, eaReg, bus.Word, r) + ",SR"
	case instructions.MOVEtoCCR:
		return ea(defn.Src, eaReg, bus.Word, r) + ",CCR"

	case instructions.ORItoCCR, instructions.ANDItoCCR, instructions.EORItoCCR:
		return fmt.Sprintf("#$%02x,CCR", r.word()&0xff)
	case instructions.ORItoSR, instructions.ANDItoSR, instructions.EORItoSR:
		return fmt.Sprintf("#$%04x,SR", r.word())

	case instructions.ADDQ, instructions.SUBQ:
		q := (op >> 9) & 0x07
		if q == 0 {
			q = 8
		}
		return fmt.Sprintf("#%d,%s", q, ea(defn.Dst, eaReg, defn.Size, r))

	case instructions.NOP, instructions.RESET, instructions.RTE, instructions.RTR,
		instructions.RTS, instructions.TRAPV, instructions.Illegal:
		return ""

	case instructions.RTD:
		return fmt.Sprintf("#%d", int16(r.word()))

	case instructions.ASL, instructions.ASR, instructions.LSL, instructions.LSR,
		instructions.ROL, instructions.ROR, instructions.ROXL, instructions.ROXR:
		if defn.Dst != instructions.DataRegister {
			// memory form: a single word shift
			return ea(defn.Dst, eaReg, bus.Word, r)
		}
		if defn.Src == instructions.Immediate {
			cnt := (op >> 9) & 0x07
			if cnt == 0 {
				cnt = 8
			}
			return fmt.Sprintf("#%d,D%d", cnt, op&0x07)
		}
		return fmt.Sprintf("D%d,D%d", (op>>9)&0x07, op&0x07)

	case instructions.ADDX, instructions.SUBX, instructions.ABCD, instructions.SBCD:
		rx := (op >> 9) & 0x07
		ry := op & 0x07
		if op&0x08 == 0x08 {
			return fmt.Sprintf("-(A%d),-(A%d)", ry, rx)
		}
		return fmt.Sprintf("D%d,D%d", ry, rx)

	case instructions.CMPM:
		return fmt.Sprintf("(A%d)+,(A%d)+", op&0x07, (op>>9)&0x07)

	case instructions.MOVEC:
		ext := r.word()
		gen := fmt.Sprintf("D%d", (ext>>12)&0x07)
		if ext&0x8000 == 0x8000 {
			gen = fmt.Sprintf("A%d", (ext>>12)&0x07)
		}
		ctrl := controlRegister(ext & 0x0fff)
		if op&0x01 == 0x01 {
			return gen + "," + ctrl
		}
		return ctrl + "," + gen

	case instructions.MOVES:
		ext := r.word()
		gen := fmt.Sprintf("D%d", (ext>>12)&0x07)
		if ext&0x8000 == 0x8000 {
			gen = fmt.Sprintf("A%d", (ext>>12)&0x07)
		}
		mem := ea(defn.Dst, eaReg, defn.Size, r)
		if ext&0x0800 == 0x0800 {
			return gen + "," + mem
		}
		return mem + "," + gen
	}

	// remaining layouts follow directly from the definition's addressing
	// modes
	var parts []string

	switch {
	case defn.Src == instructions.Immediate && defn.Dst != instructions.Implied:
		parts = append(parts, ea(instructions.Immediate, 0, defn.Size, r))
		parts = append(parts, ea(defn.Dst, eaReg, defn.Size, r))

	case defn.Src == instructions.DataRegister && defn.Dst != instructions.DataRegister &&
		defn.Dst != instructions.Implied:
		// Dn,<ea> direction: the data register is in bits 11-9
		parts = append(parts, fmt.Sprintf("D%d", (op>>9)&0x07))
		parts = append(parts, ea(defn.Dst, eaReg, defn.Size, r))

	case defn.Dst == instructions.DataRegister && defn.Src != instructions.Implied:
		// <ea>,Dn direction
		parts = append(parts, ea(defn.Src, eaReg, defn.Size, r))
		parts = append(parts, fmt.Sprintf("D%d", (op>>9)&0x07))

	case defn.Dst == instructions.AddressRegister && defn.Src != instructions.Implied:
		parts = append(parts, ea(defn.Src, eaReg, defn.Size, r))
		parts = append(parts, fmt.Sprintf("A%d", (op>>9)&0x07))

	case defn.Src == defn.Dst && defn.Src != instructions.Implied:
		// single operand read-modify-write
		parts = append(parts, ea(defn.Src, eaReg, defn.Size, r))

	case defn.Src != instructions.Implied:
		parts = append(parts, ea(defn.Src, eaReg, defn.Size, r))

	case defn.Dst != instructions.Implied:
		parts = append(parts, ea(defn.Dst, eaReg, defn.Size, r))
	}

	return strings.Join(parts, ",")
}

func controlRegister(code uint16) string {
	switch code {
	case 0x000:
		return "SFC"
	case 0x001:
		return "DFC"
	case 0x002:
		return "CACR"
	case 0x800:
		return "USP"
	case 0x801:
		return "VBR"
	case 0x802:
		return "CAAR"
	case 0x803:
		return "MSP"
	case 0x804:
		return "ISP"
	}
	return fmt.Sprintf("$%03x", code)
}

// movemMask formats a MOVEM register mask as a register list. rev is true
// for the predecrement direction, where the mask bit order is reversed.
func movemMask(mask uint16, rev bool) string {
	var regs []string
	for n := 0; n < 16; n++ {
		bit := n
		if rev {
			bit = 15 - n
		}
		if mask&(1<<bit) == 0 {
			continue
		}
		if n < 8 {
			regs = append(regs, fmt.Sprintf("D%d", n))
		} else {
			regs = append(regs, fmt.Sprintf("A%d", n-8))
		}
	}
	if len(regs) == 0 {
		return "(none)"
	}
	return strings.Join(regs, "/")
}
