package emu816

// Exception/interrupt identifiers and their emulation/native vector
// addresses, per §4.6.
const (
	vecRESET = iota
	vecABORT
	vecNMI
	vecIRQ
	vecBRK
	vecCOP
)

var vectorTable = [...]struct{ emu, native uint32 }{
	vecRESET: {0x00FFFC, 0x00FFFC}, // native unused: E is forced on reset
	vecABORT: {0x00FFF8, 0x00FFE8},
	vecNMI:   {0x00FFFA, 0x00FFEA},
	vecIRQ:   {0x00FFFE, 0x00FFEE},
	vecBRK:   {0x00FFFE, 0x00FFE6},
	vecCOP:   {0x00FFF4, 0x00FFE4},
}

// vectorAddr returns the bank-0 address of the low byte of the given
// vector, selecting the emulation or native column.
func vectorAddr(id int, emulation bool) uint32 {
	if emulation {
		return vectorTable[id].emu
	}
	return vectorTable[id].native
}

// enterInterrupt performs the stack-push/vector-load sequence common to
// IRQ, NMI, and ABORT: these are hardware-asserted, so the pushed P
// never carries the break bit (§4.6). Returns control to the caller
// without executing a user instruction this Step.
func (c *CPU) enterInterrupt(id int) {
	c.pushVectorEntry(id, false)
}

// enterSoftwareVector performs the BRK/COP stack-push/vector-load
// sequence. breakBit distinguishes BRK (set) from COP (clear) in the
// emulation-mode pushed P, per §4.6's closing paragraph.
func (c *CPU) enterSoftwareVector(id int, breakBit bool) {
	c.pushVectorEntry(id, breakBit)
}

func (c *CPU) pushVectorEntry(id int, breakBit bool) {
	if c.reg.E {
		c.pushWord(c.reg.PC)
		p := c.reg.P | flagM // bit 5 always reads back 1 in emulation mode
		if breakBit {
			p |= flagX // bit 4 carries the pseudo B flag here
		} else {
			p &^= flagX
		}
		c.pushByte(p)
		c.reg.P |= flagI
		c.reg.P &^= flagD
		c.reg.PBR = 0
		addr := vectorAddr(id, true)
		lo := c.readByte(addr)
		hi := c.readByte(addr + 1)
		c.reg.PC = uint16(hi)<<8 | uint16(lo)
		c.cycles += 7
	} else {
		c.pushByte(c.reg.PBR)
		c.pushWord(c.reg.PC)
		c.pushByte(c.reg.P)
		c.reg.P |= flagI
		c.reg.P &^= flagD
		c.reg.PBR = 0
		addr := vectorAddr(id, false)
		lo := c.readByte(addr)
		hi := c.readByte(addr + 1)
		c.reg.PC = uint16(hi)<<8 | uint16(lo)
		c.cycles += 8
	}
	c.selectTable()
}
