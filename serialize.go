package emu816

import (
	"encoding/binary"
	"errors"
)

// cpuSerializeVersion is incremented whenever the binary layout changes.
const cpuSerializeVersion = 1

// cpuSerializeSize is the number of bytes produced by CPU.Serialize.
// Update this constant whenever the binary layout changes.
const cpuSerializeSize = 40

// SerializeSize returns the number of bytes needed for Serialize.
func (c *CPU) SerializeSize() int { return cpuSerializeSize }

// Serialize writes the full CPU state into buf, which must be at least
// SerializeSize() bytes. Bus, host port, and tracer references are not
// included; the dispatch table is rebuilt from E/P on Deserialize.
func (c *CPU) Serialize(buf []byte) error {
	if len(buf) < cpuSerializeSize {
		return errors.New("emu816: serialize buffer too small")
	}

	buf[0] = cpuSerializeVersion
	be := binary.BigEndian
	off := 1

	be.PutUint16(buf[off:], c.reg.PC)
	off += 2
	buf[off] = c.reg.PBR
	off++
	buf[off] = c.reg.DBR
	off++
	be.PutUint16(buf[off:], c.reg.DP)
	off += 2
	be.PutUint16(buf[off:], c.reg.SP)
	off += 2
	be.PutUint16(buf[off:], c.reg.C)
	off += 2
	be.PutUint16(buf[off:], c.reg.X)
	off += 2
	be.PutUint16(buf[off:], c.reg.Y)
	off += 2
	buf[off] = c.reg.P
	off++
	buf[off] = boolByte(c.reg.E)
	off++

	be.PutUint64(buf[off:], c.cycles)
	off += 8
	be.PutUint64(buf[off:], c.instructions)
	off += 8
	be.PutUint16(buf[off:], c.ier)
	off += 2
	be.PutUint16(buf[off:], c.ifr)
	off += 2
	buf[off] = boolByte(c.irq)
	off++
	buf[off] = boolByte(c.stopped)
	off++
	buf[off] = boolByte(c.waiting)

	return nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Deserialize restores CPU state from buf, which must be at least
// SerializeSize() bytes, and re-derives the active dispatch table from
// the restored E/P bits. The bus, host port, and tracer are left
// unchanged.
func (c *CPU) Deserialize(buf []byte) error {
	if len(buf) < cpuSerializeSize {
		return errors.New("emu816: deserialize buffer too small")
	}
	if buf[0] != cpuSerializeVersion {
		return errors.New("emu816: unsupported serialize version")
	}

	be := binary.BigEndian
	off := 1

	c.reg.PC = be.Uint16(buf[off:])
	off += 2
	c.reg.PBR = buf[off]
	off++
	c.reg.DBR = buf[off]
	off++
	c.reg.DP = be.Uint16(buf[off:])
	off += 2
	c.reg.SP = be.Uint16(buf[off:])
	off += 2
	c.reg.C = be.Uint16(buf[off:])
	off += 2
	c.reg.X = be.Uint16(buf[off:])
	off += 2
	c.reg.Y = be.Uint16(buf[off:])
	off += 2
	c.reg.P = buf[off]
	off++
	c.reg.E = buf[off] != 0
	off++

	c.cycles = be.Uint64(buf[off:])
	off += 8
	c.instructions = be.Uint64(buf[off:])
	off += 8
	c.ier = be.Uint16(buf[off:])
	off += 2
	c.ifr = be.Uint16(buf[off:])
	off += 2
	c.irq = buf[off] != 0
	off++
	c.stopped = buf[off] != 0
	off++
	c.waiting = buf[off] != 0

	c.cycleBus, _ = c.bus.(CycleBus)
	c.selectTable()
	return nil
}
