package emu816

// ea pairs the two addresses an opcode kernel operates on: eal is read or
// written as the low byte (or the only byte, for byte-width operations)
// and eah is the high-byte address for word-width operations. Most
// modes set eah to eal+1 (the 24-bit modes carry into the next bank),
// but several wrap independently — see each function's comment for the
// exact rule from the addressing-mode table.
type ea struct {
	eal uint32
	eah uint32
}

func (e ea) readByte(c *CPU) uint8    { return c.readByte(e.eal) }
func (e ea) writeByte(c *CPU, v uint8) { c.writeByte(e.eal, v) }

func (e ea) readWord(c *CPU) uint16 {
	lo := c.readByte(e.eal)
	hi := c.readByte(e.eah)
	return uint16(hi)<<8 | uint16(lo)
}

func (e ea) writeWord(c *CPU, v uint16) {
	c.writeByte(e.eal, uint8(v))
	c.writeByte(e.eah, uint8(v>>8))
}

// fetchWordOperand reads a 16-bit little-endian operand from the
// instruction stream (PBR:PC, PBR:PC+1).
func (c *CPU) fetchWordOperand() uint16 {
	lo := c.fetchPC()
	hi := c.fetchPC()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) fetchLongOperand() uint32 {
	lo := c.fetchPC()
	hi := c.fetchPC()
	bk := c.fetchPC()
	return uint32(bk)<<16 | uint32(hi)<<8 | uint32(lo)
}

// dpAddr applies the direct-page wrap rule of §4.3: in emulation mode
// with DP's low byte zero, the offset+index sum wraps within the page's
// low byte; otherwise a full 16-bit sum is formed with DP. Reports 1
// extra cycle whenever DP's low byte is non-zero.
func (c *CPU) dpAddr(offset uint8, index uint16) (uint16, uint64) {
	var extra uint64
	if uint8(c.reg.DP) != 0 {
		extra = 1
	}
	if c.reg.E && uint8(c.reg.DP) == 0 {
		lo := uint8(uint16(offset) + index)
		return (c.reg.DP & 0xFF00) | uint16(lo), extra
	}
	return c.reg.DP + uint16(offset) + index, extra
}

// dpNext returns the direct-page address following addr for a 16-bit
// operand's high byte, wrapping within the same page under the same
// emulation-mode DP-low-byte-zero rule as dpAddr (§4.3/§8): $02FF wraps
// to $0200, not $0300.
func (c *CPU) dpNext(addr uint16) uint16 {
	if c.reg.E && uint8(c.reg.DP) == 0 {
		return (addr & 0xFF00) | uint16(uint8(addr+1))
	}
	return addr + 1
}

// longIndexed adds a 16-bit index to a full 24-bit base with ordinary
// carry into the bank byte, per §4.3's long-indexed-mode rule (also used
// for plain absolute,X/Y and indirect-indexed-by-Y forms, which carry
// into DBR identically on real silicon).
func longIndexed(base uint32, index uint16) uint32 {
	return (base + uint32(index)) & 0xFFFFFF
}

// --- impl / acc (§4.3: EAL=EAH=0, unused) ---

func (c *CPU) eaImpl() (ea, uint64) { return ea{}, 0 }
func (c *CPU) eaAcc() (ea, uint64)  { return ea{}, 0 }

// --- immediates ---

func (c *CPU) eaImmB() (ea, uint64) {
	addr := uint32(c.reg.PBR)<<16 | uint32(c.reg.PC)
	c.reg.PC++
	return ea{eal: addr}, 0
}

func (c *CPU) eaImmW() (ea, uint64) {
	lo := uint32(c.reg.PBR)<<16 | uint32(c.reg.PC)
	c.reg.PC++
	hi := uint32(c.reg.PBR)<<16 | uint32(c.reg.PC)
	c.reg.PC++
	return ea{eal: lo, eah: hi}, 0
}

func (c *CPU) eaImmM() (ea, uint64) {
	if c.accWidth() == Byte {
		return c.eaImmB()
	}
	return c.eaImmW()
}

func (c *CPU) eaImmX() (ea, uint64) {
	if c.idxWidth() == Byte {
		return c.eaImmB()
	}
	return c.eaImmW()
}

// --- PC-relative branch targets ---

func (c *CPU) eaRel8() (ea, uint64) {
	off := int8(c.fetchPC())
	target := uint16(int32(c.reg.PC) + int32(off))
	return ea{eal: uint32(c.reg.PBR)<<16 | uint32(target)}, 0
}

func (c *CPU) eaRel16() (ea, uint64) {
	word := c.fetchWordOperand()
	off := int16(word)
	target := uint16(int32(c.reg.PC) + int32(off))
	return ea{eal: uint32(c.reg.PBR)<<16 | uint32(target)}, 0
}

// --- absolute (data-bank relative) ---

func (c *CPU) eaAbs() (ea, uint64) {
	off := c.fetchWordOperand()
	base := uint32(c.reg.DBR)<<16 | uint32(off)
	return ea{eal: base, eah: longIndexed(base, 1)}, 0
}

func (c *CPU) eaAbsX() (ea, uint64) {
	off := c.fetchWordOperand()
	base := uint32(c.reg.DBR)<<16 | uint32(off)
	eal := longIndexed(base, c.reg.X)
	return ea{eal: eal, eah: longIndexed(eal, 1)}, 0
}

func (c *CPU) eaAbsY() (ea, uint64) {
	off := c.fetchWordOperand()
	base := uint32(c.reg.DBR)<<16 | uint32(off)
	eal := longIndexed(base, c.reg.Y)
	return ea{eal: eal, eah: longIndexed(eal, 1)}, 0
}

// --- long (24-bit operand) ---

func (c *CPU) eaLong() (ea, uint64) {
	base := c.fetchLongOperand()
	return ea{eal: base, eah: longIndexed(base, 1)}, 0
}

func (c *CPU) eaLongX() (ea, uint64) {
	base := c.fetchLongOperand()
	eal := longIndexed(base, c.reg.X)
	return ea{eal: eal, eah: longIndexed(eal, 1)}, 0
}

// --- direct page ---

func (c *CPU) eaDpag() (ea, uint64) {
	off := c.fetchPC()
	addr, extra := c.dpAddr(off, 0)
	return ea{eal: uint32(addr), eah: uint32(c.dpNext(addr))}, extra
}

func (c *CPU) eaDpgX() (ea, uint64) {
	off := c.fetchPC()
	addr, extra := c.dpAddr(off, c.reg.X)
	return ea{eal: uint32(addr), eah: uint32(c.dpNext(addr))}, extra
}

func (c *CPU) eaDpgY() (ea, uint64) {
	off := c.fetchPC()
	addr, extra := c.dpAddr(off, c.reg.Y)
	return ea{eal: uint32(addr), eah: uint32(c.dpNext(addr))}, extra
}

// eaDpgI: (dp) — indirect via direct page, resolved in DBR.
func (c *CPU) eaDpgI() (ea, uint64) {
	off := c.fetchPC()
	ptr, extra := c.dpAddr(off, 0)
	lo := c.readByte(uint32(ptr))
	hi := c.readByte(uint32(ptr + 1))
	base := uint32(c.reg.DBR)<<16 | uint32(hi)<<8 | uint32(lo)
	return ea{eal: base, eah: longIndexed(base, 1)}, extra
}

// eaDpix: (dp,X) — X is added before indirection.
func (c *CPU) eaDpix() (ea, uint64) {
	off := c.fetchPC()
	ptr, extra := c.dpAddr(off, c.reg.X)
	lo := c.readByte(uint32(ptr))
	hi := c.readByte(uint32(ptr + 1))
	base := uint32(c.reg.DBR)<<16 | uint32(hi)<<8 | uint32(lo)
	return ea{eal: base, eah: longIndexed(base, 1)}, extra
}

// eaDpiy: (dp),Y — indirection happens first, Y is added to the result.
func (c *CPU) eaDpiy() (ea, uint64) {
	off := c.fetchPC()
	ptr, extra := c.dpAddr(off, 0)
	lo := c.readByte(uint32(ptr))
	hi := c.readByte(uint32(ptr + 1))
	base := uint32(c.reg.DBR)<<16 | uint32(hi)<<8 | uint32(lo)
	eal := longIndexed(base, c.reg.Y)
	return ea{eal: eal, eah: longIndexed(eal, 1)}, extra
}

// eaDpil: [dp] — 24-bit indirect, no index.
func (c *CPU) eaDpil() (ea, uint64) {
	off := c.fetchPC()
	ptr, extra := c.dpAddr(off, 0)
	lo := c.readByte(uint32(ptr))
	hi := c.readByte(uint32(ptr + 1))
	bk := c.readByte(uint32(ptr + 2))
	base := uint32(bk)<<16 | uint32(hi)<<8 | uint32(lo)
	return ea{eal: base, eah: longIndexed(base, 1)}, extra
}

// eaDily: [dp],Y — 24-bit indirect, Y added after.
func (c *CPU) eaDily() (ea, uint64) {
	off := c.fetchPC()
	ptr, extra := c.dpAddr(off, 0)
	lo := c.readByte(uint32(ptr))
	hi := c.readByte(uint32(ptr + 1))
	bk := c.readByte(uint32(ptr + 2))
	base := uint32(bk)<<16 | uint32(hi)<<8 | uint32(lo)
	eal := longIndexed(base, c.reg.Y)
	return ea{eal: eal, eah: longIndexed(eal, 1)}, extra
}

// --- stack-relative ---

func (c *CPU) eaSrel() (ea, uint64) {
	off := c.fetchPC()
	addr := c.reg.SP + uint16(off)
	return ea{eal: uint32(addr), eah: uint32(addr + 1)}, 0
}

// eaSriy: (off,S),Y — indirect via stack-relative, then Y added into DBR.
func (c *CPU) eaSriy() (ea, uint64) {
	off := c.fetchPC()
	ptr := c.reg.SP + uint16(off)
	lo := c.readByte(uint32(ptr))
	hi := c.readByte(uint32(ptr + 1))
	base := uint32(c.reg.DBR)<<16 | uint32(hi)<<8 | uint32(lo)
	eal := longIndexed(base, c.reg.Y)
	return ea{eal: eal, eah: longIndexed(eal, 1)}, 0
}

// --- jump targets (absp, absi, abxi, abil) ---
// These four modes are used only by JMP/JSR/JML; the table's "EAL"
// column is already the resolved jump target, so they return a
// (pc, bank) pair rather than a bus address pair.

// jumpAbsP: Absolute (program) — PBR:(ah:al); used only by JMP/JSR.
func (c *CPU) jumpAbsP() (pc uint16, bank uint8) {
	return c.fetchWordOperand(), c.reg.PBR
}

// jumpAbsI: (Absolute) — read the pointer word from bank 0; bank is
// unchanged (JMP does not alter PBR).
func (c *CPU) jumpAbsI() (pc uint16, bank uint8) {
	ptr := c.fetchWordOperand()
	lo := c.readByte(uint32(ptr))
	hi := c.readByte(uint32(ptr + 1))
	return uint16(hi)<<8 | uint16(lo), c.reg.PBR
}

// jumpAbxI: (Absolute,X) — pointer fetched from PBR:((ah:al)+X) mod 0x10000.
func (c *CPU) jumpAbxI() (pc uint16, bank uint8) {
	off := c.fetchWordOperand()
	ptr := off + c.reg.X
	addr := uint32(c.reg.PBR)<<16 | uint32(ptr)
	lo := c.readByte(addr)
	hi := c.readByte(uint32(c.reg.PBR)<<16 | uint32(ptr+1))
	return uint16(hi)<<8 | uint16(lo), c.reg.PBR
}

// jumpAbsIL: [Absolute] — 24-bit indirect from bank 0; sets both PC and PBR.
func (c *CPU) jumpAbsIL() (pc uint16, bank uint8) {
	ptr := c.fetchWordOperand()
	lo := c.readByte(uint32(ptr))
	hi := c.readByte(uint32(ptr + 1))
	bk := c.readByte(uint32(ptr + 2))
	return uint16(hi)<<8 | uint16(lo), bk
}
