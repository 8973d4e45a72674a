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
	"math/bits"

	"github.com/redcrab/gopher68k/hardware/bus"
	"github.com/redcrab/gopher68k/hardware/cpu/instructions"
	"github.com/redcrab/gopher68k/hardware/cpu/timing"
)

// aluFunc computes a two-operand ALU result and sets the condition codes.
// Destination operand conventions follow the programmer's reference: for the
// subtract family the result is d - s.
type aluFunc func(mc *M68K, s, d uint32, size bus.Size) uint32

func aluADD(mc *M68K, s, d uint32, size bus.Size) uint32 {
	r := d + s
	mc.flagsAdd(s, d, r, size, false)
	return r
}

func aluSUB(mc *M68K, s, d uint32, size bus.Size) uint32 {
	r := d - s
	mc.flagsSub(s, d, r, size, true, false)
	return r
}

func aluCMP(mc *M68K, s, d uint32, size bus.Size) uint32 {
	r := d - s
	mc.flagsSub(s, d, r, size, false, false)
	return r
}

func aluAND(mc *M68K, s, d uint32, size bus.Size) uint32 {
	r := d & s
	mc.flagsLogic(r, size)
	return r
}

func aluOR(mc *M68K, s, d uint32, size bus.Size) uint32 {
	r := d | s
	mc.flagsLogic(r, size)
	return r
}

func aluEOR(mc *M68K, s, d uint32, size bus.Size) uint32 {
	r := d ^ s
	mc.flagsLogic(r, size)
	return r
}

// stdBinary describes one of the standard two-operand instruction layouts
// (ADD, SUB, CMP, AND, OR, EOR): opmodes 0 to 2 compute <ea> op Dn into Dn,
// opmodes 4 to 6 compute Dn op <ea> into <ea>.
type stdBinary struct {
	line uint16
	op   instructions.Operation
	alu  aluFunc

	// the result of the eaToDn direction is written back (false for CMP)
	store bool

	// <ea> op Dn -> Dn direction exists
	eaToDn bool

	// An is a valid source for word and long sizes
	srcAn bool

	// Dn op <ea> -> <ea> direction exists; dstClass decides which modes
	// it accepts. The X-forms occupying the register-pair encodings of
	// this direction are registered separately
	dnToEA   bool
	dstClass func(instructions.AddressingMode) bool
}

var opSizes = [3]bus.Size{bus.Byte, bus.Word, bus.Long}

func registerStandard(d *dispatch, b stdBinary) {
	for szF := uint16(0); szF < 3; szF++ {
		size := opSizes[szF]

		for ea := uint16(0); ea < 64; ea++ {
			m := instructions.DecodeMode(ea>>3, ea&0x07)
			if m >= instructions.Implied {
				continue
			}
			mode := m
			reg := int(ea & 0x07)

			for dn := uint16(0); dn < 8; dn++ {
				n := int(dn)

				if b.eaToDn {
					ok := isDataMode(m)
					if m == instructions.AddressRegister {
						ok = b.srcAn && size != bus.Byte
					}
					if ok {
						base := 4
						if size == bus.Long {
							base = 8
						}
						d.register(instructions.Definition{
							OpCode:    b.line | dn<<9 | szF<<6 | ea,
							Operation: b.op,
							Size:      size,
							Src:       mode,
							Dst:       instructions.DataRegister,
							Cycles:    base + timing.EACalc(mode, size),
							Effect:    instructions.Read,
						}, opEAtoDn(b.alu, b.store, mode, reg, n, size))
					}
				}

				if b.dnToEA && b.dstClass(m) {
					base := 8
					if size == bus.Long {
						base = 12
					}
					d.register(instructions.Definition{
						OpCode:    b.line | dn<<9 | (szF+4)<<6 | ea,
						Operation: b.op,
						Size:      size,
						Src:       instructions.DataRegister,
						Dst:       mode,
						Cycles:    base + timing.EACalc(mode, size),
						Effect:    instructions.RMW,
					}, opDnToEA(b.alu, mode, reg, n, size))
				}
			}
		}
	}
}

func opEAtoDn(alu aluFunc, store bool, mode instructions.AddressingMode, reg, dn int, size bus.Size) opFunc {
	return func(mc *M68K) {
		src := mc.resolveEA(mode, reg, size)
		s := mc.loadOperand(src)
		if mc.aborted {
			return
		}
		r := alu(mc, s, mc.Reg.D[dn]&size.Mask(), size)
		if store {
			mask := size.Mask()
			mc.Reg.D[dn] = mc.Reg.D[dn]&^mask | r&mask
		}
	}
}

func opDnToEA(alu aluFunc, mode instructions.AddressingMode, reg, dn int, size bus.Size) opFunc {
	return func(mc *M68K) {
		dst := mc.resolveEA(mode, reg, size)
		dv := mc.loadOperand(dst)
		if mc.aborted {
			return
		}
		r := alu(mc, mc.Reg.D[dn]&size.Mask(), dv, size)
		mc.storeOperand(dst, r)
	}
}

// registerArith fills in the arithmetic instructions.
func registerArith(d *dispatch, v Variant) {
	registerStandard(d, stdBinary{
		line: 0xd000, op: instructions.ADD, alu: aluADD, store: true,
		eaToDn: true, srcAn: true, dnToEA: true, dstClass: isMemoryAlterable,
	})
	registerStandard(d, stdBinary{
		line: 0x9000, op: instructions.SUB, alu: aluSUB, store: true,
		eaToDn: true, srcAn: true, dnToEA: true, dstClass: isMemoryAlterable,
	})
	registerStandard(d, stdBinary{
		line: 0xb000, op: instructions.CMP, alu: aluCMP,
		eaToDn: true, srcAn: true,
	})

	registerAddressArith(d)
	registerImmediate(d, 0x0600, instructions.ADDI, aluADD, true, immCycles{8, 16, 12, 20})
	registerImmediate(d, 0x0400, instructions.SUBI, aluSUB, true, immCycles{8, 16, 12, 20})
	registerImmediate(d, 0x0c00, instructions.CMPI, aluCMP, false, immCycles{8, 14, 8, 12})
	registerQuick(d)
	registerExtended(d)
	registerCMPM(d)
	registerUnaryArith(d)
	registerMulDiv(d)
	registerCHK(d)
}

// registerAddressArith covers ADDA, SUBA and CMPA: opmodes 3 and 7 of the
// standard layout. Word sized sources are sign extended and the operation is
// always performed on the full address register.
func registerAddressArith(d *dispatch) {
	type form struct {
		line  uint16
		op    instructions.Operation
		sub   bool
		cmp   bool
		base  int
		baseL int
	}
	forms := []form{
		{0xd000, instructions.ADDA, false, false, 8, 8},
		{0x9000, instructions.SUBA, true, false, 8, 8},
		{0xb000, instructions.CMPA, true, true, 6, 6},
	}

	for _, f := range forms {
		for _, long := range []bool{false, true} {
			size := bus.Word
			opmode := uint16(3)
			base := f.base
			if long {
				size = bus.Long
				opmode = 7
				base = f.baseL
			}

			for ea := uint16(0); ea < 64; ea++ {
				m := instructions.DecodeMode(ea>>3, ea&0x07)
				if m >= instructions.Implied {
					continue
				}
				mode := m
				reg := int(ea & 0x07)

				for an := uint16(0); an < 8; an++ {
					areg := int(an)
					sub := f.sub
					cmp := f.cmp
					sz := size

					d.register(instructions.Definition{
						OpCode:    f.line | an<<9 | opmode<<6 | ea,
						Operation: f.op,
						Size:      size,
						Src:       mode,
						Dst:       instructions.AddressRegister,
						Cycles:    base + timing.EACalc(mode, size),
						Effect:    instructions.Read,
					}, func(mc *M68K) {
						src := mc.resolveEA(mode, reg, sz)
						s := sz.SignExtend(mc.loadOperand(src))
						if mc.aborted {
							return
						}
						switch {
						case cmp:
							r := mc.Reg.A[areg] - s
							mc.flagsSub(s, mc.Reg.A[areg], r, bus.Long, false, false)
						case sub:
							mc.Reg.A[areg] -= s
						default:
							mc.Reg.A[areg] += s
						}
					})
				}
			}
		}
	}
}

// immCycles are the base cycle counts for the immediate forms: register
// destination byte/word and long, then memory destination byte/word and
// long (before the effective address surcharge).
type immCycles struct {
	regBW, regL, memBW, memL int
}

// registerImmediate covers the <op>I #imm,<ea> layout shared by ORI, ANDI,
// SUBI, ADDI, EORI and CMPI.
func registerImmediate(d *dispatch, line uint16, op instructions.Operation, alu aluFunc, store bool, cyc immCycles) {
	for szF := uint16(0); szF < 3; szF++ {
		size := opSizes[szF]

		for ea := uint16(0); ea < 64; ea++ {
			m := instructions.DecodeMode(ea>>3, ea&0x07)
			if !isDataAlterable(m) {
				continue
			}
			mode := m
			reg := int(ea & 0x07)

			base := cyc.memBW
			if mode == instructions.DataRegister {
				base = cyc.regBW
				if size == bus.Long {
					base = cyc.regL
				}
			} else if size == bus.Long {
				base = cyc.memL
			}

			effect := instructions.RMW
			if !store {
				effect = instructions.Read
			}

			sz := size
			st := store

			d.register(instructions.Definition{
				OpCode:    line | szF<<6 | ea,
				Operation: op,
				Size:      size,
				Src:       instructions.Immediate,
				Dst:       mode,
				Cycles:    base + timing.EACalc(mode, size),
				Effect:    effect,
			}, func(mc *M68K) {
				imm := mc.resolveEA(instructions.Immediate, 0, sz)
				if mc.aborted {
					return
				}
				dst := mc.resolveEA(mode, reg, sz)
				dv := mc.loadOperand(dst)
				if mc.aborted {
					return
				}
				r := alu(mc, imm.imm, dv, sz)
				if st {
					mc.storeOperand(dst, r)
				}
			})
		}
	}
}

// registerQuick covers ADDQ and SUBQ. The three bit data field encodes 1 to
// 8. An address register destination takes the operation on the full
// register and leaves the condition codes alone.
func registerQuick(d *dispatch) {
	for _, f := range []struct {
		bits uint16
		op   instructions.Operation
		sub  bool
	}{
		{0x5000, instructions.ADDQ, false},
		{0x5100, instructions.SUBQ, true},
	} {
		for szF := uint16(0); szF < 3; szF++ {
			size := opSizes[szF]

			for ea := uint16(0); ea < 64; ea++ {
				m := instructions.DecodeMode(ea>>3, ea&0x07)
				if !isAlterable(m) {
					continue
				}
				if m == instructions.AddressRegister && size == bus.Byte {
					continue
				}
				mode := m
				reg := int(ea & 0x07)

				base := 8
				switch {
				case mode == instructions.DataRegister:
					base = 4
					if size == bus.Long {
						base = 8
					}
				case mode == instructions.AddressRegister:
					base = 8
				case size == bus.Long:
					base = 12
				}

				for data := uint16(0); data < 8; data++ {
					q := uint32(data)
					if q == 0 {
						q = 8
					}
					sub := f.sub
					sz := size

					d.register(instructions.Definition{
						OpCode:    f.bits | data<<9 | szF<<6 | ea,
						Operation: f.op,
						Size:      size,
						Src:       instructions.Immediate,
						Dst:       mode,
						Cycles:    base + timing.EACalc(mode, size),
						Effect:    instructions.RMW,
					}, func(mc *M68K) {
						if mode == instructions.AddressRegister {
							if sub {
								mc.Reg.A[reg] -= q
							} else {
								mc.Reg.A[reg] += q
							}
							return
						}

						dst := mc.resolveEA(mode, reg, sz)
						dv := mc.loadOperand(dst)
						if mc.aborted {
							return
						}
						var r uint32
						if sub {
							r = aluSUB(mc, q, dv, sz)
						} else {
							r = aluADD(mc, q, dv, sz)
						}
						mc.storeOperand(dst, r)
					})
				}
			}
		}
	}
}

// registerExtended covers ADDX and SUBX, the multi-precision forms that
// occupy the register-pair encodings of the ADD and SUB memory directions.
func registerExtended(d *dispatch) {
	for _, f := range []struct {
		line uint16
		op   instructions.Operation
		sub  bool
	}{
		{0xd100, instructions.ADDX, false},
		{0x9100, instructions.SUBX, true},
	} {
		for szF := uint16(0); szF < 3; szF++ {
			size := opSizes[szF]

			for rx := uint16(0); rx < 8; rx++ {
				for ry := uint16(0); ry < 8; ry++ {
					x := int(rx)
					y := int(ry)
					sub := f.sub
					sz := size

					// register to register
					base := 4
					if size == bus.Long {
						base = 8
					}
					d.register(instructions.Definition{
						OpCode:    f.line | rx<<9 | szF<<6 | ry,
						Operation: f.op,
						Size:      size,
						Src:       instructions.DataRegister,
						Dst:       instructions.DataRegister,
						Cycles:    base,
						Effect:    instructions.RMW,
					}, func(mc *M68K) {
						s := mc.Reg.D[y] & sz.Mask()
						dv := mc.Reg.D[x] & sz.Mask()
						r := mc.extendedALU(s, dv, sz, sub)
						mask := sz.Mask()
						mc.Reg.D[x] = mc.Reg.D[x]&^mask | r&mask
					})

					// memory to memory, both predecremented
					base = 18
					if size == bus.Long {
						base = 30
					}
					d.register(instructions.Definition{
						OpCode:    f.line | rx<<9 | szF<<6 | 0x08 | ry,
						Operation: f.op,
						Size:      size,
						Src:       instructions.PreDecrement,
						Dst:       instructions.PreDecrement,
						Cycles:    base,
						Effect:    instructions.RMW,
					}, func(mc *M68K) {
						src := mc.resolveEA(instructions.PreDecrement, y, sz)
						s := mc.loadOperand(src)
						if mc.aborted {
							return
						}
						dst := mc.resolveEA(instructions.PreDecrement, x, sz)
						dv := mc.loadOperand(dst)
						if mc.aborted {
							return
						}
						r := mc.extendedALU(s, dv, sz, sub)
						mc.storeOperand(dst, r)
					})
				}
			}
		}
	}
}

// extendedALU computes d +/- s with the extend flag folded in, using the
// multi-precision flag behaviour (Z is only ever cleared).
func (mc *M68K) extendedALU(s, d uint32, size bus.Size, sub bool) uint32 {
	var x uint32
	if mc.Reg.Status.Extend {
		x = 1
	}

	if sub {
		r := d - s - x
		mc.flagsSub(s, d, r, size, true, true)
		return r
	}

	r := d + s + x
	mc.flagsAdd(s, d, r, size, true)
	return r
}

// registerCMPM covers CMPM (Ay)+,(Ax)+.
func registerCMPM(d *dispatch) {
	for szF := uint16(0); szF < 3; szF++ {
		size := opSizes[szF]
		base := 12
		if size == bus.Long {
			base = 20
		}

		for rx := uint16(0); rx < 8; rx++ {
			for ry := uint16(0); ry < 8; ry++ {
				x := int(rx)
				y := int(ry)
				sz := size

				d.register(instructions.Definition{
					OpCode:    0xb108 | rx<<9 | szF<<6 | ry,
					Operation: instructions.CMPM,
					Size:      size,
					Src:       instructions.PostIncrement,
					Dst:       instructions.PostIncrement,
					Cycles:    base,
					Effect:    instructions.Read,
				}, func(mc *M68K) {
					src := mc.resolveEA(instructions.PostIncrement, y, sz)
					s := mc.loadOperand(src)
					if mc.aborted {
						return
					}
					dst := mc.resolveEA(instructions.PostIncrement, x, sz)
					dv := mc.loadOperand(dst)
					if mc.aborted {
						return
					}
					aluCMP(mc, s, dv, sz)
				})
			}
		}
	}
}

// registerUnaryArith covers NEG, NEGX, CLR and TST.
func registerUnaryArith(d *dispatch) {
	type form struct {
		line uint16
		op   instructions.Operation
		fn   func(mc *M68K, v uint32, size bus.Size) (uint32, bool)
	}

	forms := []form{
		{0x4400, instructions.NEG, func(mc *M68K, v uint32, size bus.Size) (uint32, bool) {
			r := -v
			mc.flagsSub(v, 0, r, size, true, false)
			return r, true
		}},
		{0x4000, instructions.NEGX, func(mc *M68K, v uint32, size bus.Size) (uint32, bool) {
			var x uint32
			if mc.Reg.Status.Extend {
				x = 1
			}
			r := -v - x
			mc.flagsSub(v, 0, r, size, true, true)
			return r, true
		}},
		{0x4200, instructions.CLR, func(mc *M68K, v uint32, size bus.Size) (uint32, bool) {
			mc.flagsLogic(0, size)
			return 0, true
		}},
		{0x4a00, instructions.TST, func(mc *M68K, v uint32, size bus.Size) (uint32, bool) {
			mc.flagsLogic(v, size)
			return 0, false
		}},
	}

	for _, f := range forms {
		for szF := uint16(0); szF < 3; szF++ {
			size := opSizes[szF]

			for ea := uint16(0); ea < 64; ea++ {
				m := instructions.DecodeMode(ea>>3, ea&0x07)
				if !isDataAlterable(m) {
					continue
				}
				mode := m
				reg := int(ea & 0x07)

				base := 8
				effect := instructions.RMW
				store := f.op != instructions.TST

				switch {
				case f.op == instructions.TST:
					base = 4
					effect = instructions.Read
				case mode == instructions.DataRegister:
					base = 4
					if size == bus.Long {
						base = 6
					}
				case size == bus.Long:
					base = 12
				}

				fn := f.fn
				sz := size

				d.register(instructions.Definition{
					OpCode:    f.line | szF<<6 | ea,
					Operation: f.op,
					Size:      size,
					Src:       mode,
					Dst:       mode,
					Cycles:    base + timing.EACalc(mode, size),
					Effect:    effect,
				}, func(mc *M68K) {
					dst := mc.resolveEA(mode, reg, sz)
					v := mc.loadOperand(dst)
					if mc.aborted {
						return
					}
					r, st := fn(mc, v, sz)
					if st && store {
						mc.storeOperand(dst, r)
					}
				})
			}
		}
	}
}

// registerMulDiv covers MULU, MULS, DIVU and DIVS. All four take a word
// source and a data register destination.
func registerMulDiv(d *dispatch) {
	type form struct {
		bits   uint16
		op     instructions.Operation
		signed bool
		div    bool
		base   int
	}
	forms := []form{
		{0xc0c0, instructions.MULU, false, false, 38},
		{0xc1c0, instructions.MULS, true, false, 38},
		{0x80c0, instructions.DIVU, false, true, 76},
		{0x81c0, instructions.DIVS, true, true, 96},
	}

	for _, f := range forms {
		for ea := uint16(0); ea < 64; ea++ {
			m := instructions.DecodeMode(ea>>3, ea&0x07)
			if !isDataMode(m) {
				continue
			}
			mode := m
			reg := int(ea & 0x07)

			for dn := uint16(0); dn < 8; dn++ {
				n := int(dn)
				ff := f

				d.register(instructions.Definition{
					OpCode:    f.bits | dn<<9 | ea,
					Operation: f.op,
					Size:      bus.Word,
					Src:       mode,
					Dst:       instructions.DataRegister,
					Cycles:    f.base + timing.EACalc(mode, bus.Word),
					Effect:    instructions.Read,
				}, func(mc *M68K) {
					src := mc.resolveEA(mode, reg, bus.Word)
					s := mc.loadOperand(src)
					if mc.aborted {
						return
					}
					if ff.div {
						mc.divide(n, s, ff.signed)
					} else {
						mc.multiply(n, s, ff.signed)
					}
				})
			}
		}
	}
}

func (mc *M68K) multiply(dn int, s uint32, signed bool) {
	var r uint32
	if signed {
		r = uint32(int32(int16(s)) * int32(int16(mc.Reg.D[dn])))
		// each 01 or 10 pair in the multiplier adds a couple of cycles
		mc.addCycles(2 * bits.OnesCount32((s<<1^s)&0x1ffff))
	} else {
		r = (s & 0xffff) * (mc.Reg.D[dn] & 0xffff)
		mc.addCycles(2 * bits.OnesCount32(s&0xffff))
	}
	mc.Reg.D[dn] = r
	mc.flagsLogic(r, bus.Long)
}

func (mc *M68K) divide(dn int, s uint32, signed bool) {
	if s&0xffff == 0 {
		mc.trapException(VecDivideByZero, timing.ExceptionDivideByZero)
		return
	}

	if signed {
		num := int32(mc.Reg.D[dn])
		den := int32(int16(s))
		q := num / den
		if q > 0x7fff || q < -0x8000 {
			mc.Reg.Status.Overflow = true
			mc.Reg.Status.Carry = false
			return
		}
		rem := num % den
		mc.Reg.D[dn] = uint32(rem)<<16 | uint32(q)&0xffff
		mc.flagsLogic(uint32(q)&0xffff, bus.Word)
		return
	}

	num := mc.Reg.D[dn]
	den := s & 0xffff
	q := num / den
	if q > 0xffff {
		mc.Reg.Status.Overflow = true
		mc.Reg.Status.Carry = false
		return
	}
	rem := num % den
	mc.Reg.D[dn] = rem<<16 | q&0xffff
	mc.flagsLogic(q&0xffff, bus.Word)
}

// registerCHK covers the word form of CHK: trap if Dn is below zero or
// above the bound operand.
func registerCHK(d *dispatch) {
	for ea := uint16(0); ea < 64; ea++ {
		m := instructions.DecodeMode(ea>>3, ea&0x07)
		if !isDataMode(m) {
			continue
		}
		mode := m
		reg := int(ea & 0x07)

		for dn := uint16(0); dn < 8; dn++ {
			n := int(dn)

			d.register(instructions.Definition{
				OpCode:    0x4180 | dn<<9 | ea,
				Operation: instructions.CHK,
				Size:      bus.Word,
				Src:       mode,
				Dst:       instructions.DataRegister,
				Cycles:    10 + timing.EACalc(mode, bus.Word),
				Effect:    instructions.Interrupt,
			}, func(mc *M68K) {
				src := mc.resolveEA(mode, reg, bus.Word)
				bound := int16(mc.loadOperand(src))
				if mc.aborted {
					return
				}
				v := int16(mc.Reg.D[n])
				if v < 0 {
					mc.Reg.Status.Negative = true
					mc.trapException(VecCHK, timing.ExceptionCHK)
				} else if v > bound {
					mc.Reg.Status.Negative = false
					mc.trapException(VecCHK, timing.ExceptionCHK)
				}
			})
		}
	}
}
