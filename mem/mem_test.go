package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnmappedReadsOpenBus(t *testing.T) {
	m := New()
	assert.Equal(t, uint8(0x00), m.Read(0x001000))
}

func TestRAMReadWrite(t *testing.T) {
	m := New()
	m.MapRAM(0x000000, 0x001000)
	m.Write(0x0123, 0x42)
	assert.Equal(t, uint8(0x42), m.Read(0x0123))
}

func TestROMWritesAreDropped(t *testing.T) {
	m := New()
	m.MapROM(0x008000, []byte{0xAA, 0xBB, 0xCC})
	m.Write(0x008000, 0x00)
	assert.Equal(t, uint8(0xAA), m.Read(0x008000))
	assert.Equal(t, uint8(0xBB), m.Read(0x008001))
	assert.Equal(t, uint8(0x00), m.Read(0x008003), "padding beyond the image reads zero")
}

type fakeHandler struct {
	last uint8
}

func (h *fakeHandler) Read(addr uint32) uint8    { return 0x55 }
func (h *fakeHandler) Write(addr uint32, v uint8) { h.last = v }

func TestMapHandler(t *testing.T) {
	m := New()
	h := &fakeHandler{}
	m.MapHandler(0x00C000, 0x001000, h)

	assert.Equal(t, uint8(0x55), m.Read(0x00C010))
	m.Write(0x00C010, 0x07)
	assert.Equal(t, uint8(0x07), h.last)
}

func TestNewConventionalPlacesROMAtTopOfBank0(t *testing.T) {
	rom := make([]byte, 0x1000)
	rom[0x0FFC] = 0x00 // reset vector low byte at $00FFFC
	rom[0x0FFD] = 0x80
	m := NewConventional(rom)

	assert.Equal(t, uint8(0x00), m.Read(0x00FFFC))
	assert.Equal(t, uint8(0x80), m.Read(0x00FFFD))

	m.Write(0x000010, 0x99) // within the RAM region below ROM
	assert.Equal(t, uint8(0x99), m.Read(0x000010))
}
