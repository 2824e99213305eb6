package emu816

// makeALU8 builds a read-only 8-bit kernel: resolve addr, read one byte,
// fold it into the CPU through op, and charge base+extra cycles.
func makeALU8(addr addrFn, base uint64, op func(c *CPU, v uint8)) opFunc {
	return func(c *CPU) {
		e, extra := addr(c)
		op(c, e.readByte(c))
		c.cycles += base + extra
	}
}

// makeALU16 is makeALU8's 16-bit counterpart; the 65C816 charges one
// extra cycle whenever the operand is 16 bits wide (§4.4).
func makeALU16(addr addrFn, base uint64, op func(c *CPU, v uint16)) opFunc {
	return func(c *CPU) {
		e, extra := addr(c)
		op(c, e.readWord(c))
		c.cycles += base + extra + 1
	}
}

// makeStore8/makeStore16 build write-only kernels (STA/STX/STY/STZ):
// getVal supplies the byte/word to deposit at the resolved address.
func makeStore8(addr addrFn, base uint64, getVal func(c *CPU) uint8) opFunc {
	return func(c *CPU) {
		e, extra := addr(c)
		e.writeByte(c, getVal(c))
		c.cycles += base + extra
	}
}

func makeStore16(addr addrFn, base uint64, getVal func(c *CPU) uint16) opFunc {
	return func(c *CPU) {
		e, extra := addr(c)
		e.writeWord(c, getVal(c))
		c.cycles += base + extra + 1
	}
}

// makeRMW8/makeRMW16 build read-modify-write kernels (INC/DEC/ASL/LSR/
// ROL/ROR/TRB/TSB memory forms): op receives the current value and
// returns the value to write back.
func makeRMW8(addr addrFn, base uint64, op func(c *CPU, v uint8) uint8) opFunc {
	return func(c *CPU) {
		e, extra := addr(c)
		e.writeByte(c, op(c, e.readByte(c)))
		c.cycles += base + extra
	}
}

func makeRMW16(addr addrFn, base uint64, op func(c *CPU, v uint16) uint16) opFunc {
	return func(c *CPU) {
		e, extra := addr(c)
		e.writeWord(c, op(c, e.readWord(c)))
		c.cycles += base + extra + 1
	}
}

// makeAcc8/makeAcc16 build the accumulator-addressed forms of the
// read-modify-write shift/increment family (ASL A, INC A, ...): there is
// no bus access at all, so cost is a flat base.
func makeAcc8(base uint64, op func(c *CPU, v uint8) uint8) opFunc {
	return func(c *CPU) {
		c.setAccLo(op(c, c.accLo()))
		c.cycles += base
	}
}

func makeAcc16(base uint64, op func(c *CPU, v uint16) uint16) opFunc {
	return func(c *CPU) {
		c.reg.C = op(c, c.reg.C)
		c.cycles += base
	}
}

// --- ADC / SBC ---

func (c *CPU) adc8(a, b uint8) uint8 {
	carryIn := c.getFlag(flagC)
	var result uint8
	var carryOut, overflow bool
	if c.getFlag(flagD) {
		result, carryOut, overflow = adcDecimal8(a, b, carryIn)
	} else {
		result, carryOut, overflow = addBinary8(a, b, carryIn)
	}
	c.setFlag(flagC, carryOut)
	c.setFlag(flagV, overflow)
	c.setNZ8(result)
	return result
}

func (c *CPU) adc16(a, b uint16) uint16 {
	carryIn := c.getFlag(flagC)
	var result uint16
	var carryOut, overflow bool
	if c.getFlag(flagD) {
		result, carryOut, overflow = adcDecimal16(a, b, carryIn)
	} else {
		result, carryOut, overflow = addBinary16(a, b, carryIn)
	}
	c.setFlag(flagC, carryOut)
	c.setFlag(flagV, overflow)
	c.setNZ16(result)
	return result
}

func (c *CPU) sbc8(a, b uint8) uint8 {
	carryIn := c.getFlag(flagC)
	var result uint8
	var carryOut, overflow bool
	if c.getFlag(flagD) {
		result, carryOut, overflow = sbcDecimal8(a, b, carryIn)
	} else {
		result, carryOut, overflow = addBinary8(a, ^b, carryIn)
	}
	c.setFlag(flagC, carryOut)
	c.setFlag(flagV, overflow)
	c.setNZ8(result)
	return result
}

func (c *CPU) sbc16(a, b uint16) uint16 {
	carryIn := c.getFlag(flagC)
	var result uint16
	var carryOut, overflow bool
	if c.getFlag(flagD) {
		result, carryOut, overflow = sbcDecimal16(a, b, carryIn)
	} else {
		result, carryOut, overflow = addBinary16(a, ^b, carryIn)
	}
	c.setFlag(flagC, carryOut)
	c.setFlag(flagV, overflow)
	c.setNZ16(result)
	return result
}

func adcKernel8(addr addrFn, base uint64) opFunc {
	return makeALU8(addr, base, func(c *CPU, v uint8) { c.setAccLo(c.adc8(c.accLo(), v)) })
}

func adcKernel16(addr addrFn, base uint64) opFunc {
	return makeALU16(addr, base, func(c *CPU, v uint16) { c.reg.C = c.adc16(c.reg.C, v) })
}

func sbcKernel8(addr addrFn, base uint64) opFunc {
	return makeALU8(addr, base, func(c *CPU, v uint8) { c.setAccLo(c.sbc8(c.accLo(), v)) })
}

func sbcKernel16(addr addrFn, base uint64) opFunc {
	return makeALU16(addr, base, func(c *CPU, v uint16) { c.reg.C = c.sbc16(c.reg.C, v) })
}

func registerADC() { registerGroup1(0x60, false, adcKernel8, adcKernel16) }
func registerSBC() { registerGroup1(0xE0, false, sbcKernel8, sbcKernel16) }

// --- AND / ORA / EOR ---

func andKernel8(addr addrFn, base uint64) opFunc {
	return makeALU8(addr, base, func(c *CPU, v uint8) {
		r := c.accLo() & v
		c.setAccLo(r)
		c.setNZ8(r)
	})
}

func andKernel16(addr addrFn, base uint64) opFunc {
	return makeALU16(addr, base, func(c *CPU, v uint16) {
		r := c.reg.C & v
		c.reg.C = r
		c.setNZ16(r)
	})
}

func oraKernel8(addr addrFn, base uint64) opFunc {
	return makeALU8(addr, base, func(c *CPU, v uint8) {
		r := c.accLo() | v
		c.setAccLo(r)
		c.setNZ8(r)
	})
}

func oraKernel16(addr addrFn, base uint64) opFunc {
	return makeALU16(addr, base, func(c *CPU, v uint16) {
		r := c.reg.C | v
		c.reg.C = r
		c.setNZ16(r)
	})
}

func eorKernel8(addr addrFn, base uint64) opFunc {
	return makeALU8(addr, base, func(c *CPU, v uint8) {
		r := c.accLo() ^ v
		c.setAccLo(r)
		c.setNZ8(r)
	})
}

func eorKernel16(addr addrFn, base uint64) opFunc {
	return makeALU16(addr, base, func(c *CPU, v uint16) {
		r := c.reg.C ^ v
		c.reg.C = r
		c.setNZ16(r)
	})
}

func registerAND() { registerGroup1(0x20, false, andKernel8, andKernel16) }
func registerORA() { registerGroup1(0x00, false, oraKernel8, oraKernel16) }
func registerEOR() { registerGroup1(0x40, false, eorKernel8, eorKernel16) }

// --- LDA / STA / STZ ---

func ldaKernel8(addr addrFn, base uint64) opFunc {
	return makeALU8(addr, base, func(c *CPU, v uint8) {
		c.setAccLo(v)
		c.setNZ8(v)
	})
}

func ldaKernel16(addr addrFn, base uint64) opFunc {
	return makeALU16(addr, base, func(c *CPU, v uint16) {
		c.reg.C = v
		c.setNZ16(v)
	})
}

func registerLDA() { registerGroup1(0xA0, false, ldaKernel8, ldaKernel16) }

func registerSTA() {
	registerGroup1(0x80, true,
		func(addr addrFn, base uint64) opFunc {
			return makeStore8(addr, base, func(c *CPU) uint8 { return c.accLo() })
		},
		func(addr addrFn, base uint64) opFunc {
			return makeStore16(addr, base, func(c *CPU) uint16 { return c.reg.C })
		},
	)
}

// stzModes: STZ was a 65C02/65C816 addition with no NMOS 6502 ancestor,
// so it does not fit the group1Modes offset table and is bound directly.
var stzModes = []amEntry{
	{0x64, (*CPU).eaDpag, 3},
	{0x74, (*CPU).eaDpgX, 4},
	{0x9C, (*CPU).eaAbs, 4},
	{0x9E, (*CPU).eaAbsX, 5},
}

func registerSTZ() {
	zero8 := func(c *CPU) uint8 { return 0 }
	zero16 := func(c *CPU) uint16 { return 0 }
	for _, m := range stzModes {
		bindM(m.opcode, makeStore8(m.addr, m.base, zero8), makeStore16(m.addr, m.base, zero16))
	}
}

// --- CMP / CPX / CPY ---

func (c *CPU) compare8(a, b uint8) {
	c.setFlag(flagC, a >= b)
	c.setNZ8(a - b)
}

func (c *CPU) compare16(a, b uint16) {
	c.setFlag(flagC, a >= b)
	c.setNZ16(a - b)
}

func cmpKernel8(addr addrFn, base uint64) opFunc {
	return makeALU8(addr, base, func(c *CPU, v uint8) { c.compare8(c.accLo(), v) })
}

func cmpKernel16(addr addrFn, base uint64) opFunc {
	return makeALU16(addr, base, func(c *CPU, v uint16) { c.compare16(c.reg.C, v) })
}

func registerCMP() { registerGroup1(0xC0, false, cmpKernel8, cmpKernel16) }

// cpxyModes: CPX/CPY only ever take immediate/dp/abs, unlike the full
// group1Modes set.
var cpxyModes = []amEntry{
	{0x00, (*CPU).eaImmX, 2},
	{0x04, (*CPU).eaDpag, 3},
	{0x0C, (*CPU).eaAbs, 4},
}

func registerCPX() {
	for _, m := range cpxyModes {
		bindX(0xE0+m.opcode,
			makeALU8(m.addr, m.base, func(c *CPU, v uint8) { c.compare8(c.idxXLo(), v) }),
			makeALU16(m.addr, m.base, func(c *CPU, v uint16) { c.compare16(c.reg.X, v) }),
		)
	}
}

func registerCPY() {
	for _, m := range cpxyModes {
		bindX(0xC0+m.opcode,
			makeALU8(m.addr, m.base, func(c *CPU, v uint8) { c.compare8(c.idxYLo(), v) }),
			makeALU16(m.addr, m.base, func(c *CPU, v uint16) { c.compare16(c.reg.Y, v) }),
		)
	}
}

// --- BIT ---

// bitModes covers BIT's memory forms, which set N/V from the operand's
// top two bits in addition to Z. The immediate form ($89) only affects
// Z, since there is no memory location whose bits 6/7 are meaningful.
var bitModes = []amEntry{
	{0x24, (*CPU).eaDpag, 3},
	{0x2C, (*CPU).eaAbs, 4},
	{0x34, (*CPU).eaDpgX, 4},
	{0x3C, (*CPU).eaAbsX, 4},
}

func registerBIT() {
	for _, m := range bitModes {
		bindM(m.opcode,
			makeALU8(m.addr, m.base, func(c *CPU, v uint8) {
				c.setFlag(flagZ, c.accLo()&v == 0)
				c.setFlag(flagN, v&0x80 != 0)
				c.setFlag(flagV, v&0x40 != 0)
			}),
			makeALU16(m.addr, m.base, func(c *CPU, v uint16) {
				c.setFlag(flagZ, c.reg.C&v == 0)
				c.setFlag(flagN, v&0x8000 != 0)
				c.setFlag(flagV, v&0x4000 != 0)
			}),
		)
	}
	bindM(0x89,
		makeALU8((*CPU).eaImmM, 2, func(c *CPU, v uint8) { c.setFlag(flagZ, c.accLo()&v == 0) }),
		makeALU16((*CPU).eaImmM, 2, func(c *CPU, v uint16) { c.setFlag(flagZ, c.reg.C&v == 0) }),
	)
}

// --- TRB / TSB ---

var trbModes = []amEntry{{0x14, (*CPU).eaDpag, 5}, {0x1C, (*CPU).eaAbs, 6}}
var tsbModes = []amEntry{{0x04, (*CPU).eaDpag, 5}, {0x0C, (*CPU).eaAbs, 6}}

func registerTRB() {
	for _, m := range trbModes {
		bindM(m.opcode,
			makeRMW8(m.addr, m.base, func(c *CPU, v uint8) uint8 {
				c.setFlag(flagZ, c.accLo()&v == 0)
				return v &^ c.accLo()
			}),
			makeRMW16(m.addr, m.base, func(c *CPU, v uint16) uint16 {
				c.setFlag(flagZ, c.reg.C&v == 0)
				return v &^ c.reg.C
			}),
		)
	}
}

func registerTSB() {
	for _, m := range tsbModes {
		bindM(m.opcode,
			makeRMW8(m.addr, m.base, func(c *CPU, v uint8) uint8 {
				c.setFlag(flagZ, c.accLo()&v == 0)
				return v | c.accLo()
			}),
			makeRMW16(m.addr, m.base, func(c *CPU, v uint16) uint16 {
				c.setFlag(flagZ, c.reg.C&v == 0)
				return v | c.reg.C
			}),
		)
	}
}

// --- INC / DEC ---

var incDecModes = []amEntry{
	{0x06, (*CPU).eaDpag, 5},  // $x6
	{0x16, (*CPU).eaDpgX, 6},  // $x6,X
	{0x0E, (*CPU).eaAbs, 6},   // $xE
	{0x1E, (*CPU).eaAbsX, 7},  // $xE,X
}

func registerINC() {
	inc8 := func(c *CPU, v uint8) uint8 { r := v + 1; c.setNZ8(r); return r }
	inc16 := func(c *CPU, v uint16) uint16 { r := v + 1; c.setNZ16(r); return r }
	for _, m := range incDecModes {
		bindM(0xE0+m.opcode, makeRMW8(m.addr, m.base, inc8), makeRMW16(m.addr, m.base, inc16))
	}
	bindM(0x1A, makeAcc8(2, inc8), makeAcc16(2, inc16))
}

func registerDEC() {
	dec8 := func(c *CPU, v uint8) uint8 { r := v - 1; c.setNZ8(r); return r }
	dec16 := func(c *CPU, v uint16) uint16 { r := v - 1; c.setNZ16(r); return r }
	for _, m := range incDecModes {
		bindM(0xC0+m.opcode, makeRMW8(m.addr, m.base, dec8), makeRMW16(m.addr, m.base, dec16))
	}
	bindM(0x3A, makeAcc8(2, dec8), makeAcc16(2, dec16))
}

func init() {
	registerADC()
	registerSBC()
	registerAND()
	registerORA()
	registerEOR()
	registerLDA()
	registerSTA()
	registerSTZ()
	registerCMP()
	registerCPX()
	registerCPY()
	registerBIT()
	registerTRB()
	registerTSB()
	registerINC()
	registerDEC()
}
