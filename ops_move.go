package emu816

// --- LDX / LDY / STX / STY ---

func registerLDX() {
	ld8 := func(c *CPU, v uint8) { c.reg.X = uint16(v); c.setNZ8(v) }
	ld16 := func(c *CPU, v uint16) { c.reg.X = v; c.setNZ16(v) }
	bindX(0xA2, makeALU8((*CPU).eaImmX, 2, ld8), makeALU16((*CPU).eaImmX, 2, ld16))
	bindX(0xA6, makeALU8((*CPU).eaDpag, 3, ld8), makeALU16((*CPU).eaDpag, 3, ld16))
	bindX(0xB6, makeALU8((*CPU).eaDpgY, 4, ld8), makeALU16((*CPU).eaDpgY, 4, ld16))
	bindX(0xAE, makeALU8((*CPU).eaAbs, 4, ld8), makeALU16((*CPU).eaAbs, 4, ld16))
	bindX(0xBE, makeALU8((*CPU).eaAbsY, 4, ld8), makeALU16((*CPU).eaAbsY, 4, ld16))
}

func registerLDY() {
	ld8 := func(c *CPU, v uint8) { c.reg.Y = uint16(v); c.setNZ8(v) }
	ld16 := func(c *CPU, v uint16) { c.reg.Y = v; c.setNZ16(v) }
	bindX(0xA0, makeALU8((*CPU).eaImmX, 2, ld8), makeALU16((*CPU).eaImmX, 2, ld16))
	bindX(0xA4, makeALU8((*CPU).eaDpag, 3, ld8), makeALU16((*CPU).eaDpag, 3, ld16))
	bindX(0xB4, makeALU8((*CPU).eaDpgX, 4, ld8), makeALU16((*CPU).eaDpgX, 4, ld16))
	bindX(0xAC, makeALU8((*CPU).eaAbs, 4, ld8), makeALU16((*CPU).eaAbs, 4, ld16))
	bindX(0xBC, makeALU8((*CPU).eaAbsX, 4, ld8), makeALU16((*CPU).eaAbsX, 4, ld16))
}

func registerSTX() {
	get8 := func(c *CPU) uint8 { return uint8(c.reg.X) }
	get16 := func(c *CPU) uint16 { return c.reg.X }
	bindX(0x86, makeStore8((*CPU).eaDpag, 3, get8), makeStore16((*CPU).eaDpag, 3, get16))
	bindX(0x96, makeStore8((*CPU).eaDpgY, 4, get8), makeStore16((*CPU).eaDpgY, 4, get16))
	bindX(0x8E, makeStore8((*CPU).eaAbs, 4, get8), makeStore16((*CPU).eaAbs, 4, get16))
}

func registerSTY() {
	get8 := func(c *CPU) uint8 { return uint8(c.reg.Y) }
	get16 := func(c *CPU) uint16 { return c.reg.Y }
	bindX(0x84, makeStore8((*CPU).eaDpag, 3, get8), makeStore16((*CPU).eaDpag, 3, get16))
	bindX(0x94, makeStore8((*CPU).eaDpgX, 4, get8), makeStore16((*CPU).eaDpgX, 4, get16))
	bindX(0x8C, makeStore8((*CPU).eaAbs, 4, get8), makeStore16((*CPU).eaAbs, 4, get16))
}

// --- stack: accumulator/index width-sensitive push/pull ---

func registerPHA() {
	bindM(0x48,
		func(c *CPU) { c.pushByte(c.accLo()); c.cycles += 3 },
		func(c *CPU) { c.pushWord(c.reg.C); c.cycles += 4 },
	)
}

func registerPLA() {
	bindM(0x68,
		func(c *CPU) { v := c.pullByte(); c.setAccLo(v); c.setNZ8(v); c.cycles += 4 },
		func(c *CPU) { v := c.pullWord(); c.reg.C = v; c.setNZ16(v); c.cycles += 5 },
	)
}

func registerPHX() {
	bindX(0xDA,
		func(c *CPU) { c.pushByte(uint8(c.reg.X)); c.cycles += 3 },
		func(c *CPU) { c.pushWord(c.reg.X); c.cycles += 4 },
	)
}

func registerPLX() {
	bindX(0xFA,
		func(c *CPU) { v := c.pullByte(); c.reg.X = uint16(v); c.setNZ8(v); c.cycles += 4 },
		func(c *CPU) { v := c.pullWord(); c.reg.X = v; c.setNZ16(v); c.cycles += 5 },
	)
}

func registerPHY() {
	bindX(0x5A,
		func(c *CPU) { c.pushByte(uint8(c.reg.Y)); c.cycles += 3 },
		func(c *CPU) { c.pushWord(c.reg.Y); c.cycles += 4 },
	)
}

func registerPLY() {
	bindX(0x7A,
		func(c *CPU) { v := c.pullByte(); c.reg.Y = uint16(v); c.setNZ8(v); c.cycles += 4 },
		func(c *CPU) { v := c.pullWord(); c.reg.Y = v; c.setNZ16(v); c.cycles += 5 },
	)
}

// --- stack: width-insensitive bank/dp-register push/pull and PEx family ---

func registerStackMisc() {
	bindAll(0x8B, func(c *CPU) { c.pushByte(c.reg.DBR); c.cycles += 3 }) // PHB
	bindAll(0xAB, func(c *CPU) { // PLB
		v := c.pullByte()
		c.reg.DBR = v
		c.setNZ8(v)
		c.cycles += 4
	})
	bindAll(0x4B, func(c *CPU) { c.pushByte(c.reg.PBR); c.cycles += 3 }) // PHK
	bindAll(0x0B, func(c *CPU) { c.pushWord(c.reg.DP); c.cycles += 4 }) // PHD
	bindAll(0x2B, func(c *CPU) { // PLD
		v := c.pullWord()
		c.reg.DP = v
		c.setNZ16(v)
		c.cycles += 5
	})
	bindAll(0xF4, func(c *CPU) { // PEA
		v := c.fetchWordOperand()
		c.pushWord(v)
		c.cycles += 5
	})
	bindAll(0xD4, func(c *CPU) { // PEI
		off := c.fetchPC()
		addr, _ := c.dpAddr(off, 0)
		lo := c.readByte(uint32(addr))
		hi := c.readByte(uint32(addr + 1))
		c.pushWord(uint16(hi)<<8 | uint16(lo))
		c.cycles += 6
	})
	bindAll(0x62, func(c *CPU) { // PER
		word := c.fetchWordOperand()
		target := uint16(int32(c.reg.PC) + int32(int16(word)))
		c.pushWord(target)
		c.cycles += 6
	})
}

// --- PHP / PLP ---

// registerPHP/PLP implement the status-register stack round-trip of
// §4.4/§8: PHP always pushes with bit 5 forced and bit 4 carrying the
// pseudo B flag in emulation mode (it is a software push, so B=1, the
// same convention BRK uses); PLP pulls P back, re-forces M/X high under
// emulation, and — narrowing to an 8-bit index in native mode — drops
// X/Y's high bytes per §4.4.
func registerPHP() {
	bindAll(0x08, func(c *CPU) {
		p := c.reg.P
		if c.reg.E {
			p |= flagM | flagX
		}
		c.pushByte(p)
		c.cycles += 3
	})
}

func registerPLP() {
	bindAll(0x28, func(c *CPU) {
		c.reg.P = c.pullByte()
		c.forceEmulationWidths()
		if !c.reg.E && c.reg.P&flagX != 0 {
			c.clearHighIndexBytes()
		}
		c.cycles += 4
		c.selectTable()
	})
}

// --- register transfers ---

func registerTransfers() {
	bindAll(0xAA, func(c *CPU) { // TAX
		if c.idxWidth() == Byte {
			v := c.accLo()
			c.reg.X = uint16(v)
			c.setNZ8(v)
		} else {
			c.reg.X = c.reg.C
			c.setNZ16(c.reg.C)
		}
		c.cycles += 2
	})
	bindAll(0xA8, func(c *CPU) { // TAY
		if c.idxWidth() == Byte {
			v := c.accLo()
			c.reg.Y = uint16(v)
			c.setNZ8(v)
		} else {
			c.reg.Y = c.reg.C
			c.setNZ16(c.reg.C)
		}
		c.cycles += 2
	})
	bindAll(0x8A, func(c *CPU) { // TXA
		if c.accWidth() == Byte {
			v := uint8(c.reg.X)
			c.setAccLo(v)
			c.setNZ8(v)
		} else {
			c.reg.C = c.reg.X
			c.setNZ16(c.reg.X)
		}
		c.cycles += 2
	})
	bindAll(0x98, func(c *CPU) { // TYA
		if c.accWidth() == Byte {
			v := uint8(c.reg.Y)
			c.setAccLo(v)
			c.setNZ8(v)
		} else {
			c.reg.C = c.reg.Y
			c.setNZ16(c.reg.Y)
		}
		c.cycles += 2
	})
	bindAll(0xBA, func(c *CPU) { // TSX
		if c.idxWidth() == Byte {
			v := uint8(c.reg.SP)
			c.reg.X = uint16(v)
			c.setNZ8(v)
		} else {
			c.reg.X = c.reg.SP
			c.setNZ16(c.reg.SP)
		}
		c.cycles += 2
	})
	bindAll(0x9A, func(c *CPU) { // TXS: no flags; SP.h pinned in emulation mode
		c.reg.SP = c.reg.X
		if c.reg.E {
			c.reg.SP = 0x0100 | (c.reg.SP & 0x00FF)
		}
		c.cycles += 2
	})
	bindAll(0x9B, func(c *CPU) { // TXY
		c.reg.Y = c.reg.X
		if c.idxWidth() == Byte {
			c.setNZ8(uint8(c.reg.Y))
		} else {
			c.setNZ16(c.reg.Y)
		}
		c.cycles += 2
	})
	bindAll(0xBB, func(c *CPU) { // TYX
		c.reg.X = c.reg.Y
		if c.idxWidth() == Byte {
			c.setNZ8(uint8(c.reg.X))
		} else {
			c.setNZ16(c.reg.X)
		}
		c.cycles += 2
	})
	// TCD/TDC/TCS/TSC always move the full 16-bit accumulator: the
	// direct-page register and stack pointer have no 8-bit form, so
	// these four are unaffected by P.M.
	bindAll(0x5B, func(c *CPU) { // TCD
		c.reg.DP = c.reg.C
		c.setNZ16(c.reg.DP)
		c.cycles += 2
	})
	bindAll(0x7B, func(c *CPU) { // TDC
		c.reg.C = c.reg.DP
		c.setNZ16(c.reg.C)
		c.cycles += 2
	})
	bindAll(0x1B, func(c *CPU) { // TCS: no flags; SP.h pinned in emulation mode
		c.reg.SP = c.reg.C
		if c.reg.E {
			c.reg.SP = 0x0100 | (c.reg.SP & 0x00FF)
		}
		c.cycles += 2
	})
	bindAll(0x3B, func(c *CPU) { // TSC
		c.reg.C = c.reg.SP
		c.setNZ16(c.reg.C)
		c.cycles += 2
	})
	bindAll(0xEB, func(c *CPU) { // XBA
		lo := uint8(c.reg.C)
		hi := uint8(c.reg.C >> 8)
		c.reg.C = uint16(lo)<<8 | uint16(hi)
		c.setNZ8(hi)
		c.cycles += 3
	})
}

// --- MVN / MVP block move ---

// registerBlockMove wires MVN (incrementing) and MVP (decrementing): each
// Step moves exactly one byte, then — unless the transfer counter C has
// wrapped past zero — rewinds PC by 3 to re-fetch the same instruction,
// reproducing the real CPU's interruptible, restartable block-move loop
// without needing a second, hidden dispatch path.
func registerBlockMove() {
	move := func(opcode uint8, base uint64, step int) {
		bindAll(opcode, func(c *CPU) {
			dbk := c.fetchPC()
			sbk := c.fetchPC()
			src := uint32(sbk)<<16 | uint32(c.reg.X)
			dst := uint32(dbk)<<16 | uint32(c.reg.Y)
			v := c.readByte(src)
			c.writeByte(dst, v)

			// X/Y are full 16-bit here regardless of P.X in native mode;
			// only emulation mode narrows the block-move index to 8 bits
			// (§4.4).
			if c.reg.E {
				c.reg.X = uint16(uint8(int(c.reg.X) + step))
				c.reg.Y = uint16(uint8(int(c.reg.Y) + step))
			} else {
				c.reg.X = uint16(int(c.reg.X) + step)
				c.reg.Y = uint16(int(c.reg.Y) + step)
			}
			c.reg.C--
			c.reg.DBR = dbk
			c.cycles += base

			if c.reg.C != 0xFFFF {
				c.reg.PC -= 3
			}
		})
	}
	move(0x54, 7, 1)  // MVN
	move(0x44, 7, -1) // MVP
}

func init() {
	registerLDX()
	registerLDY()
	registerSTX()
	registerSTY()
	registerPHA()
	registerPLA()
	registerPHX()
	registerPLX()
	registerPHY()
	registerPLY()
	registerPHP()
	registerPLP()
	registerStackMisc()
	registerTransfers()
	registerBlockMove()
}
