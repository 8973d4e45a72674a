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
	"github.com/redcrab/gopher68k/hardware/bus"
	"github.com/redcrab/gopher68k/hardware/cpu/instructions"
)

// operand is a resolved effective address. For register direct modes only
// the register number is meaningful; for immediate mode only the value; for
// everything else the address.
type operand struct {
	mode instructions.AddressingMode
	size bus.Size
	reg  int
	addr uint32
	imm  uint32
}

// resolveEA computes the effective address for the mode/register pair,
// consuming extension words from the instruction stream and performing the
// postincrement/predecrement side effects.
//
// A7 always moves by at least two bytes so that the stack pointer stays
// word aligned, even for byte sized accesses.
func (mc *M68K) resolveEA(mode instructions.AddressingMode, reg int, size bus.Size) operand {
	op := operand{mode: mode, size: size, reg: reg}

	switch mode {
	case instructions.DataRegister, instructions.AddressRegister:
		// nothing to resolve

	case instructions.Indirect:
		op.addr = mc.Reg.A[reg]

	case instructions.PostIncrement:
		op.addr = mc.Reg.A[reg]
		mc.Reg.A[reg] += uint32(mc.stackStep(reg, size))

	case instructions.PreDecrement:
		mc.Reg.A[reg] -= uint32(mc.stackStep(reg, size))
		op.addr = mc.Reg.A[reg]

	case instructions.Displacement:
		d := mc.fetchPC()
		op.addr = mc.Reg.A[reg] + bus.Word.SignExtend(uint32(d))

	case instructions.Indexed:
		ext := mc.fetchPC()
		op.addr = mc.Reg.A[reg] + bus.Byte.SignExtend(uint32(ext&0xff)) + mc.indexValue(ext)

	case instructions.AbsoluteShort:
		d := mc.fetchPC()
		op.addr = bus.Word.SignExtend(uint32(d))

	case instructions.AbsoluteLong:
		op.addr = mc.fetchPCLong()

	case instructions.PCDisplacement:
		// the base is the address of the extension word
		base := mc.Reg.PC
		d := mc.fetchPC()
		op.addr = base + bus.Word.SignExtend(uint32(d))

	case instructions.PCIndexed:
		base := mc.Reg.PC
		ext := mc.fetchPC()
		op.addr = base + bus.Byte.SignExtend(uint32(ext&0xff)) + mc.indexValue(ext)

	case instructions.Immediate:
		switch size {
		case bus.Long:
			op.imm = mc.fetchPCLong()
		default:
			op.imm = uint32(mc.fetchPC()) & size.Mask()
		}
	}

	return op
}

// stackStep is the number of bytes an address register moves for a
// postincrement or predecrement access.
func (mc *M68K) stackStep(reg int, size bus.Size) int {
	if reg == 7 && size == bus.Byte {
		return 2
	}
	return int(size)
}

// indexValue evaluates the index register term of a brief extension word.
func (mc *M68K) indexValue(ext uint16) uint32 {
	var v uint32
	if ext&0x8000 == 0x8000 {
		v = mc.Reg.A[(ext>>12)&0x07]
	} else {
		v = mc.Reg.D[(ext>>12)&0x07]
	}

	// word sized index registers are sign extended
	if ext&0x0800 == 0x0000 {
		v = bus.Word.SignExtend(v & 0xffff)
	}

	if mc.Variant.scaledIndex() {
		v <<= (ext >> 9) & 0x03
	}

	return v
}

// loadOperand reads the value at a resolved effective address.
func (mc *M68K) loadOperand(op operand) uint32 {
	switch op.mode {
	case instructions.DataRegister:
		return mc.Reg.D[op.reg] & op.size.Mask()
	case instructions.AddressRegister:
		return mc.Reg.A[op.reg] & op.size.Mask()
	case instructions.Immediate:
		return op.imm
	}
	return mc.read(op.size, op.addr)
}

// storeOperand writes a value to a resolved effective address. Register
// writes merge under the size mask except for address registers, which are
// always written in full.
func (mc *M68K) storeOperand(op operand, v uint32) {
	switch op.mode {
	case instructions.DataRegister:
		mask := op.size.Mask()
		mc.Reg.D[op.reg] = mc.Reg.D[op.reg]&^mask | v&mask
	case instructions.AddressRegister:
		mc.Reg.A[op.reg] = v
	default:
		mc.write(op.size, op.addr, v)
	}
}
