package emu816

// makeBranch builds a conditional short branch: rel resolves the signed
// displacement to an absolute target within the program bank, test
// decides whether it is taken (nil test means unconditional, i.e. BRA).
// An untaken branch still pays for the displacement fetch. A taken
// branch pays one further cycle when E=1 and the target lands in a
// different 256-byte page than the instruction after the branch (§4.4,
// §8); native mode never pays this penalty.
func makeBranch(rel func(*CPU) (ea, uint64), base uint64, test func(c *CPU) bool) opFunc {
	return func(c *CPU) {
		target, _ := rel(c)
		if test != nil && !test(c) {
			c.cycles += base
			return
		}
		if c.reg.E && uint16(target.eal)>>8 != c.reg.PC>>8 {
			c.cycles++
		}
		c.reg.PC = uint16(target.eal)
		c.reg.PBR = uint8(target.eal >> 16)
		c.cycles += base + 1
	}
}

func registerBranches() {
	bindAll(0x80, makeBranch((*CPU).eaRel8, 2, nil)) // BRA
	bindAll(0x82, func(c *CPU) { // BRL
		target, _ := c.eaRel16()
		c.reg.PC = uint16(target.eal)
		c.reg.PBR = uint8(target.eal >> 16)
		c.cycles += 4
	})
	bindAll(0x10, makeBranch((*CPU).eaRel8, 2, func(c *CPU) bool { return !c.getFlag(flagN) })) // BPL
	bindAll(0x30, makeBranch((*CPU).eaRel8, 2, func(c *CPU) bool { return c.getFlag(flagN) }))  // BMI
	bindAll(0x50, makeBranch((*CPU).eaRel8, 2, func(c *CPU) bool { return !c.getFlag(flagV) })) // BVC
	bindAll(0x70, makeBranch((*CPU).eaRel8, 2, func(c *CPU) bool { return c.getFlag(flagV) }))  // BVS
	bindAll(0x90, makeBranch((*CPU).eaRel8, 2, func(c *CPU) bool { return !c.getFlag(flagC) })) // BCC
	bindAll(0xB0, makeBranch((*CPU).eaRel8, 2, func(c *CPU) bool { return c.getFlag(flagC) }))  // BCS
	bindAll(0xD0, makeBranch((*CPU).eaRel8, 2, func(c *CPU) bool { return !c.getFlag(flagZ) })) // BNE
	bindAll(0xF0, makeBranch((*CPU).eaRel8, 2, func(c *CPU) bool { return c.getFlag(flagZ) }))  // BEQ
}

// --- jumps ---

func registerJMP() {
	bindAll(0x4C, func(c *CPU) { // JMP absolute
		pc, bank := c.jumpAbsP()
		c.reg.PC, c.reg.PBR = pc, bank
		c.cycles += 3
	})
	bindAll(0x6C, func(c *CPU) { // JMP (absolute)
		pc, bank := c.jumpAbsI()
		c.reg.PC, c.reg.PBR = pc, bank
		c.cycles += 5
	})
	bindAll(0x7C, func(c *CPU) { // JMP (absolute,X)
		pc, bank := c.jumpAbxI()
		c.reg.PC, c.reg.PBR = pc, bank
		c.cycles += 6
	})
	bindAll(0x5C, func(c *CPU) { // JML long
		addr := c.fetchLongOperand()
		c.reg.PC, c.reg.PBR = uint16(addr), uint8(addr>>16)
		c.cycles += 4
	})
	bindAll(0xDC, func(c *CPU) { // JML [absolute]
		pc, bank := c.jumpAbsIL()
		c.reg.PC, c.reg.PBR = pc, bank
		c.cycles += 6
	})
}

func registerJSR() {
	bindAll(0x20, func(c *CPU) { // JSR absolute
		pc, bank := c.jumpAbsP()
		c.pushWord(c.reg.PC - 1)
		c.reg.PC, c.reg.PBR = pc, bank
		c.cycles += 6
	})
	bindAll(0xFC, func(c *CPU) { // JSR (absolute,X)
		pc, bank := c.jumpAbxI()
		c.pushWord(c.reg.PC - 1)
		c.reg.PC, c.reg.PBR = pc, bank
		c.cycles += 8
	})
	bindAll(0x22, func(c *CPU) { // JSL long
		addr := c.fetchLongOperand()
		c.pushByte(c.reg.PBR)
		c.pushWord(c.reg.PC - 1)
		c.reg.PC, c.reg.PBR = uint16(addr), uint8(addr>>16)
		c.cycles += 8
	})
}

func registerReturns() {
	bindAll(0x60, func(c *CPU) { // RTS
		c.reg.PC = c.pullWord() + 1
		c.cycles += 6
	})
	bindAll(0x6B, func(c *CPU) { // RTL
		c.reg.PC = c.pullWord() + 1
		c.reg.PBR = c.pullByte()
		c.cycles += 6
	})
	bindAll(0x40, func(c *CPU) { // RTI
		if c.reg.E {
			c.reg.P = c.pullByte() | flagM | flagX
			c.reg.PC = c.pullWord()
			c.cycles += 6
		} else {
			c.reg.P = c.pullByte()
			c.reg.PC = c.pullWord()
			c.reg.PBR = c.pullByte()
			c.cycles += 7
		}
		c.selectTable()
	})
}

func registerSoftwareVectors() {
	bindAll(0x00, func(c *CPU) { // BRK
		c.fetchPC() // signature byte, discarded by hardware, read by convention
		c.enterSoftwareVector(vecBRK, true)
	})
	bindAll(0x02, func(c *CPU) { // COP
		c.fetchPC()
		c.enterSoftwareVector(vecCOP, false)
	})
}

func init() {
	registerBranches()
	registerJMP()
	registerJSR()
	registerReturns()
	registerSoftwareVectors()
}
