package emu816

// shiftModes gives the direct-page/absolute addressing slots shared by
// ASL/LSR/ROL/ROR's memory forms; the cycle costs match incDecModes
// since both families are read-modify-write against the same set of
// modes.
var shiftModes = incDecModes

func registerASL() {
	asl8 := func(c *CPU, v uint8) uint8 {
		c.setFlag(flagC, v&0x80 != 0)
		r := v << 1
		c.setNZ8(r)
		return r
	}
	asl16 := func(c *CPU, v uint16) uint16 {
		c.setFlag(flagC, v&0x8000 != 0)
		r := v << 1
		c.setNZ16(r)
		return r
	}
	for _, m := range shiftModes {
		bindM(0x00+m.opcode, makeRMW8(m.addr, m.base, asl8), makeRMW16(m.addr, m.base, asl16))
	}
	bindM(0x0A, makeAcc8(2, asl8), makeAcc16(2, asl16))
}

func registerLSR() {
	lsr8 := func(c *CPU, v uint8) uint8 {
		c.setFlag(flagC, v&0x01 != 0)
		r := v >> 1
		c.setNZ8(r)
		return r
	}
	lsr16 := func(c *CPU, v uint16) uint16 {
		c.setFlag(flagC, v&0x0001 != 0)
		r := v >> 1
		c.setNZ16(r)
		return r
	}
	for _, m := range shiftModes {
		bindM(0x40+m.opcode, makeRMW8(m.addr, m.base, lsr8), makeRMW16(m.addr, m.base, lsr16))
	}
	bindM(0x4A, makeAcc8(2, lsr8), makeAcc16(2, lsr16))
}

func registerROL() {
	rol8 := func(c *CPU, v uint8) uint8 {
		oldC := c.getFlag(flagC)
		c.setFlag(flagC, v&0x80 != 0)
		r := v << 1
		if oldC {
			r |= 0x01
		}
		c.setNZ8(r)
		return r
	}
	rol16 := func(c *CPU, v uint16) uint16 {
		oldC := c.getFlag(flagC)
		c.setFlag(flagC, v&0x8000 != 0)
		r := v << 1
		if oldC {
			r |= 0x0001
		}
		c.setNZ16(r)
		return r
	}
	for _, m := range shiftModes {
		bindM(0x20+m.opcode, makeRMW8(m.addr, m.base, rol8), makeRMW16(m.addr, m.base, rol16))
	}
	bindM(0x2A, makeAcc8(2, rol8), makeAcc16(2, rol16))
}

func registerROR() {
	ror8 := func(c *CPU, v uint8) uint8 {
		oldC := c.getFlag(flagC)
		c.setFlag(flagC, v&0x01 != 0)
		r := v >> 1
		if oldC {
			r |= 0x80
		}
		c.setNZ8(r)
		return r
	}
	ror16 := func(c *CPU, v uint16) uint16 {
		oldC := c.getFlag(flagC)
		c.setFlag(flagC, v&0x0001 != 0)
		r := v >> 1
		if oldC {
			r |= 0x8000
		}
		c.setNZ16(r)
		return r
	}
	for _, m := range shiftModes {
		bindM(0x60+m.opcode, makeRMW8(m.addr, m.base, ror8), makeRMW16(m.addr, m.base, ror16))
	}
	bindM(0x6A, makeAcc8(2, ror8), makeAcc16(2, ror16))
}

func init() {
	registerASL()
	registerLSR()
	registerROL()
	registerROR()
}
