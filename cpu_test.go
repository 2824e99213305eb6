package emu816

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetVector(t *testing.T) {
	bus := &testBus{}
	bus.writeVector(vecRESET, true, 0x8000)
	cpu := New(bus)

	reg := cpu.Registers()
	assert.Equal(t, uint16(0x8000), reg.PC)
	assert.True(t, reg.E)
	assert.True(t, reg.P&flagM != 0)
	assert.True(t, reg.P&flagX != 0)
	assert.True(t, reg.P&flagI != 0)
	assert.Equal(t, uint16(0x0100), reg.SP)
}

func TestLDAImmediate8Bit(t *testing.T) {
	cpu, bus := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX})
	bus.mem[0x8000] = 0xA9 // LDA #imm
	bus.mem[0x8001] = 0x00

	cycles := cpu.Step()

	reg := cpu.Registers()
	assert.Equal(t, uint16(0x00), reg.C)
	assert.True(t, reg.P&flagZ != 0)
	assert.False(t, reg.P&flagN != 0)
	assert.Equal(t, 2, cycles)
}

func TestLDAImmediate16Bit(t *testing.T) {
	regs := Registers{PC: 0x8000, E: false, P: 0} // native, M=0 X=0
	cpu, bus := newCPU(0x8000, regs)
	bus.mem[0x8000] = 0xA9
	bus.writeWord(0x8001, 0x8421)

	cpu.Step()

	reg := cpu.Registers()
	assert.Equal(t, uint16(0x8421), reg.C)
	assert.True(t, reg.P&flagN != 0)
	assert.False(t, reg.P&flagZ != 0)
}

func TestADCBinaryCarryAndOverflow(t *testing.T) {
	cpu, bus := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX, C: 0x007F})
	bus.mem[0x8000] = 0x69 // ADC #imm
	bus.mem[0x8001] = 0x01

	cpu.Step()

	reg := cpu.Registers()
	assert.Equal(t, uint16(0x0080), reg.C)
	assert.True(t, reg.P&flagV != 0, "signed 127+1 overflows into negative")
	assert.True(t, reg.P&flagN != 0)
	assert.False(t, reg.P&flagC != 0)
}

func TestADCDecimalWraps(t *testing.T) {
	cpu, bus := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX | flagD, C: 0x0099})
	bus.mem[0x8000] = 0x69
	bus.mem[0x8001] = 0x01

	cpu.Step()

	reg := cpu.Registers()
	assert.Equal(t, uint16(0x0000), reg.C, "99 + 1 BCD wraps to 00 with carry out")
	assert.True(t, reg.P&flagC != 0)
	assert.True(t, reg.P&flagZ != 0)
}

func TestSBCDecimal(t *testing.T) {
	cpu, bus := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX | flagD | flagC, C: 0x0010})
	bus.mem[0x8000] = 0xE9 // SBC #imm
	bus.mem[0x8001] = 0x01

	cpu.Step()

	reg := cpu.Registers()
	assert.Equal(t, uint16(0x0009), reg.C, "10 - 1 BCD")
	assert.True(t, reg.P&flagC != 0, "no borrow")
}

func TestBranchTakenAndNotTaken(t *testing.T) {
	cpu, bus := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX | flagZ})
	bus.mem[0x8000] = 0xF0 // BEQ
	bus.mem[0x8001] = 0x10 // +16

	cycles := cpu.Step()

	assert.Equal(t, uint16(0x8012), cpu.Registers().PC)
	assert.Equal(t, 3, cycles, "taken branch costs base+1")

	cpu2, bus2 := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX})
	bus2.mem[0x8000] = 0xF0
	bus2.mem[0x8001] = 0x10

	cycles2 := cpu2.Step()
	assert.Equal(t, uint16(0x8002), cpu2.Registers().PC)
	assert.Equal(t, 2, cycles2)
}

func TestJSRRTSRoundTrip(t *testing.T) {
	cpu, bus := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX, SP: 0x01FF})
	bus.mem[0x8000] = 0x20 // JSR absolute
	bus.writeWord(0x8001, 0x9000)
	bus.mem[0x9000] = 0x60 // RTS

	cpu.Step() // JSR
	require.Equal(t, uint16(0x9000), cpu.Registers().PC)

	cpu.Step() // RTS
	assert.Equal(t, uint16(0x8003), cpu.Registers().PC)
	assert.Equal(t, uint16(0x01FF), cpu.Registers().SP, "stack balanced after call/return")
}

func TestPHAPLARoundTrip(t *testing.T) {
	cpu, bus := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX, SP: 0x01FF, C: 0x0042})
	bus.mem[0x8000] = 0x48 // PHA
	bus.mem[0x8001] = 0xA9 // LDA #$00 (clobber accumulator)
	bus.mem[0x8002] = 0x00
	bus.mem[0x8003] = 0x68 // PLA

	cpu.Step()
	cpu.Step()
	require.Equal(t, uint16(0x0000), cpu.Registers().C)

	cpu.Step()
	assert.Equal(t, uint16(0x0042), cpu.Registers().C)
	assert.Equal(t, uint16(0x01FF), cpu.Registers().SP)
}

func TestPHPPLPRoundTrip(t *testing.T) {
	cpu, bus := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX | flagN | flagC, SP: 0x01FF})
	bus.mem[0x8000] = 0x08 // PHP
	bus.mem[0x8001] = 0x18 // CLC (clobber P)
	bus.mem[0x8002] = 0x28 // PLP

	cpu.Step()
	cpu.Step()
	require.False(t, cpu.Registers().P&flagC != 0, "CLC cleared carry before PLP")

	cpu.Step()
	reg := cpu.Registers()
	assert.True(t, reg.P&flagC != 0, "PLP restores the pushed carry")
	assert.True(t, reg.P&flagN != 0)
	assert.True(t, reg.P&flagM != 0, "emulation mode forces M back high regardless of pulled value")
	assert.True(t, reg.P&flagX != 0, "emulation mode forces X back high regardless of pulled value")
}

func TestPLPNarrowsIndexRegistersInNativeMode(t *testing.T) {
	cpu, bus := newCPU(0x8000, Registers{PC: 0x8000, E: false, P: 0, SP: 0x01FE, X: 0x1234, Y: 0x5678})
	bus.mem[0x8000] = 0x28 // PLP
	bus.mem[0x01FF] = uint8(flagX) // pull P with X=1, M=0

	cpu.Step()

	reg := cpu.Registers()
	assert.True(t, reg.P&flagX != 0)
	assert.Equal(t, uint16(0x0034), reg.X, "narrowing X drops the high byte")
	assert.Equal(t, uint16(0x0078), reg.Y, "narrowing X drops Y's high byte too")
}

func TestBranchPageCrossingPenaltyOnlyInEmulation(t *testing.T) {
	cpu, bus := newCPU(0x80F0, Registers{PC: 0x80F0, E: true, P: flagM | flagX | flagZ})
	bus.mem[0x80F0] = 0xF0 // BEQ
	bus.mem[0x80F1] = 0x10 // target 0x8102, crosses the page

	cycles := cpu.Step()
	assert.Equal(t, uint16(0x8102), cpu.Registers().PC)
	assert.Equal(t, 4, cycles, "emulation-mode page crossing adds one cycle")

	cpu2, bus2 := newCPU(0x80F0, Registers{PC: 0x80F0, E: false, P: flagZ})
	bus2.mem[0x80F0] = 0xF0
	bus2.mem[0x80F1] = 0x10

	cycles2 := cpu2.Step()
	assert.Equal(t, uint16(0x8102), cpu2.Registers().PC)
	assert.Equal(t, 3, cycles2, "native mode never pays the page-crossing penalty")
}

func TestBRATakenCostsThreeCycles(t *testing.T) {
	cpu, bus := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX})
	bus.mem[0x8000] = 0x80 // BRA
	bus.mem[0x8001] = 0x10

	cycles := cpu.Step()
	assert.Equal(t, uint16(0x8012), cpu.Registers().PC)
	assert.Equal(t, 3, cycles)
}

func TestRTIEmulationModeForcesMXHigh(t *testing.T) {
	cpu, bus := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX, SP: 0x01FC})
	bus.mem[0x8000] = 0x40 // RTI
	bus.mem[0x01FD] = 0x00 // pulled P: M and X clear
	bus.writeWord(0x01FE, 0x9000)

	cpu.Step()

	reg := cpu.Registers()
	assert.Equal(t, uint16(0x9000), reg.PC)
	assert.True(t, reg.P&flagM != 0, "emulation-mode RTI forces M back to 1")
	assert.True(t, reg.P&flagX != 0, "emulation-mode RTI forces X back to 1")
}

func TestMVNKeepsFullWidthIndexRegistersInNativeMode(t *testing.T) {
	regs := Registers{PC: 0x8000, E: false, P: flagM, X: 0x00FF, Y: 0x10FF, C: 0x0000, DBR: 0x00}
	cpu, bus := newCPU(0x8000, regs)
	bus.mem[0x8000] = 0x54 // MVN dst,src
	bus.mem[0x8001] = 0x00
	bus.mem[0x8002] = 0x00
	bus.mem[0x00FF] = 0xAA

	cpu.Step()

	reg := cpu.Registers()
	assert.Equal(t, uint16(0x0100), reg.X, "native mode wraps across the full 16 bits, not just the low byte")
	assert.Equal(t, uint16(0x1100), reg.Y)
}

func TestWDMIERCommands(t *testing.T) {
	cpu, bus := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX, C: 0x0003})
	bus.mem[0x8000] = 0x42 // WDM
	bus.mem[0x8001] = 0x01 // IER <- C
	bus.mem[0x8002] = 0x42
	bus.mem[0x8003] = 0x00 // C <- IER

	cycles := cpu.Step()
	assert.Equal(t, 3, cycles, "WDM always costs 3 cycles")

	cpu.Step()
	assert.Equal(t, uint16(0x0003), cpu.Registers().C)
}

func TestXCEEntersNativeMode(t *testing.T) {
	cpu, bus := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX | flagC})
	bus.mem[0x8000] = 0xFB // XCE: swap C and E

	cpu.Step()

	reg := cpu.Registers()
	assert.False(t, reg.E, "carry was set, so emulation is now clear")
	assert.True(t, reg.P&flagC != 0, "old E (1) lands in carry")
}

func TestREPWidensAccumulatorInNativeMode(t *testing.T) {
	cpu, bus := newCPU(0x8000, Registers{PC: 0x8000, E: false, P: flagM | flagX})
	bus.mem[0x8000] = 0xC2 // REP #$30
	bus.mem[0x8001] = 0x30

	cpu.Step()

	reg := cpu.Registers()
	assert.False(t, reg.P&flagM != 0)
	assert.False(t, reg.P&flagX != 0)
}

func TestREPInEmulationModeStaysForced(t *testing.T) {
	cpu, bus := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX})
	bus.mem[0x8000] = 0xC2 // REP #$30 cannot actually clear M/X while E=1
	bus.mem[0x8001] = 0x30

	cpu.Step()

	reg := cpu.Registers()
	assert.True(t, reg.P&flagM != 0, "emulation mode forces M back to 1")
	assert.True(t, reg.P&flagX != 0, "emulation mode forces X back to 1")
}

func TestBRKEntersEmulationVector(t *testing.T) {
	cpu, bus := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX, SP: 0x01FF})
	bus.writeVector(vecBRK, true, 0x9000)
	bus.mem[0x8000] = 0x00 // BRK
	bus.mem[0x8001] = 0x00 // signature byte

	cpu.Step()

	reg := cpu.Registers()
	assert.Equal(t, uint16(0x9000), reg.PC)
	assert.True(t, reg.P&flagI != 0, "BRK masks further IRQs")
}

func TestMVNCopiesAndRewindsUntilDone(t *testing.T) {
	regs := Registers{PC: 0x8000, E: true, P: flagM | flagX, X: 0x00, Y: 0x10, C: 0x0001, DBR: 0x00}
	cpu, bus := newCPU(0x8000, regs)
	bus.mem[0x8000] = 0x54 // MVN dst,src
	bus.mem[0x8001] = 0x00 // destination bank
	bus.mem[0x8002] = 0x00 // source bank
	bus.mem[0x0000] = 0xAA
	bus.mem[0x0001] = 0xBB

	cpu.Step() // first byte; C was 1, so one more byte remains to copy
	reg := cpu.Registers()
	assert.Equal(t, uint16(0x8000), reg.PC, "re-fetches MVN for the next byte")
	assert.Equal(t, uint16(0x0000), reg.C)

	cpu.Step() // second byte; C wraps to 0xFFFF, done
	reg = cpu.Registers()
	assert.Equal(t, uint16(0x8003), reg.PC)
	assert.Equal(t, uint8(0xAA), bus.mem[0x0010])
	assert.Equal(t, uint8(0xBB), bus.mem[0x0011])
}

func TestSTPHalts(t *testing.T) {
	cpu, bus := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX})
	bus.mem[0x8000] = 0xDB // STP

	cpu.Step()
	assert.True(t, cpu.Halted())
	assert.Equal(t, 0, cpu.Step(), "stopped CPU consumes no further cycles")
}

func TestIRQDeferredWhileMasked(t *testing.T) {
	cpu, bus := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX | flagI})
	bus.mem[0x8000] = 0xEA // NOP
	cpu.RequestIRQ(true)

	cpu.Step()

	assert.Equal(t, uint16(0x8001), cpu.Registers().PC, "I flag masks the pending IRQ")
}

func TestIRQTakenWhenUnmasked(t *testing.T) {
	cpu, bus := newCPU(0x8000, Registers{PC: 0x8000, E: true, P: flagM | flagX, SP: 0x01FF})
	bus.writeVector(vecIRQ, true, 0x9000)
	bus.mem[0x8000] = 0xEA
	cpu.RequestIRQ(true)

	cpu.Step()

	reg := cpu.Registers()
	assert.Equal(t, uint16(0x9000), reg.PC, "IRQ entry preempts the NOP fetch")
	assert.True(t, reg.P&flagI != 0)
}
