package srec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mem map[uint32]uint8
}

func newFakeWriter() *fakeWriter { return &fakeWriter{mem: map[uint32]uint8{}} }

func (w *fakeWriter) Write(addr uint32, val uint8) { w.mem[addr] = val }

func TestLoadS1Record(t *testing.T) {
	// byte count $09, address $8000, data A9 00 8D 00 02 60, checksum $DE
	src := "S1098000A9008D000260DE\n"
	w := newFakeWriter()
	require.NoError(t, Load(strings.NewReader(src), w))

	assert.Equal(t, uint8(0xA9), w.mem[0x8000])
	assert.Equal(t, uint8(0x00), w.mem[0x8001])
	assert.Equal(t, uint8(0x8D), w.mem[0x8002])
	assert.Equal(t, uint8(0x60), w.mem[0x8005])
}

func TestLoadS2Record(t *testing.T) {
	// byte count $06, 24-bit address $010000, data AA BB, checksum $93
	src := "S206010000AABB93\n"
	w := newFakeWriter()
	require.NoError(t, Load(strings.NewReader(src), w))

	assert.Equal(t, uint8(0xAA), w.mem[0x010000])
	assert.Equal(t, uint8(0xBB), w.mem[0x010001])
}

func TestLoadIgnoresHeaderAndTerminationRecords(t *testing.T) {
	src := "S0030000FC\nS9030000FC\n"
	w := newFakeWriter()
	require.NoError(t, Load(strings.NewReader(src), w))
	assert.Empty(t, w.mem)
}

func TestLoadSkipsNonRecordLine(t *testing.T) {
	w := newFakeWriter()
	assert.NoError(t, Load(strings.NewReader("not-an-srecord\n"), w))
	assert.Empty(t, w.mem)
}
