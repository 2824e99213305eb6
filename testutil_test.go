package emu816

// testBus is a flat 16 MiB byte-array bus for testing: every address in
// the 65C816's 24-bit space is backed by real storage, which keeps test
// setup to plain slice writes instead of a mock expectation dance.
type testBus struct {
	mem [1 << 24]byte
}

func (b *testBus) Read(addr uint32) uint8         { return b.mem[addr&0xFFFFFF] }
func (b *testBus) Write(addr uint32, val uint8)    { b.mem[addr&0xFFFFFF] = val }

func (b *testBus) writeWord(addr uint32, v uint16) {
	b.mem[addr&0xFFFFFF] = uint8(v)
	b.mem[(addr+1)&0xFFFFFF] = uint8(v >> 8)
}

func (b *testBus) writeVector(id int, emulation bool, target uint32) {
	b.writeWord(vectorAddr(id, emulation), uint16(target))
}

// newCPU builds a CPU over a fresh testBus with both emulation and
// native RESET vectors pointed at start, then installs regs directly
// (bypassing the reset sequence so tests can set up arbitrary P/E
// combinations).
func newCPU(start uint16, regs Registers) (*CPU, *testBus) {
	bus := &testBus{}
	bus.writeVector(vecRESET, true, uint32(start))
	cpu := New(bus)
	cpu.SetState(regs)
	return cpu, bus
}
