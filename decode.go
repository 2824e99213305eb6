package emu816

// opFunc is the handler signature for one opcode, already bound to its
// addressing mode and (for width-sensitive families) its operand width.
type opFunc func(*CPU)

// The five operating modes named in §4.5: one emulation mode plus four
// native M/X combinations. The dispatch table is re-selected whenever
// E, P.M, or P.X change.
const (
	modeE11 = iota // emulation (M=X=1 forced)
	modeN00        // native, M=0 X=0
	modeN01        // native, M=0 X=1
	modeN10        // native, M=1 X=0
	modeN11        // native, M=1 X=1
	modeCount
)

var opcodeTables [modeCount][256]opFunc

// selectTable re-derives the active mode index from E/P.M/P.X and points
// c.table at the corresponding precomputed 256-entry table. Called after
// every state change that can alter M or X: RESET, PLP, RTI, REP, SEP,
// XCE, and reset's implicit forcing.
func (c *CPU) selectTable() {
	c.table = &opcodeTables[c.modeIndex()]
}

func (c *CPU) modeIndex() int {
	if c.reg.E {
		return modeE11
	}
	m := c.reg.P&flagM != 0
	x := c.reg.P&flagX != 0
	switch {
	case !m && !x:
		return modeN00
	case !m && x:
		return modeN01
	case m && !x:
		return modeN10
	default:
		return modeN11
	}
}

// bindAll installs fn for opcode in every mode's table. Used for
// width-insensitive opcodes: branches, flag toggles, most transfers,
// jumps, stack-bank operations.
func bindAll(opcode uint8, fn opFunc) {
	for m := 0; m < modeCount; m++ {
		opcodeTables[m][opcode] = fn
	}
}

// bindM installs byteFn in the tables where the accumulator/memory
// width is 8 bits (emulation, N10, N11) and wordFn where it is 16 bits
// (N00, N01), implementing the width-by-M family rule of §4.4.
func bindM(opcode uint8, byteFn, wordFn opFunc) {
	opcodeTables[modeE11][opcode] = byteFn
	opcodeTables[modeN00][opcode] = wordFn
	opcodeTables[modeN01][opcode] = wordFn
	opcodeTables[modeN10][opcode] = byteFn
	opcodeTables[modeN11][opcode] = byteFn
}

// bindX installs byteFn in the tables where the index-register width is
// 8 bits (emulation, N01, N11) and wordFn where it is 16 bits (N00,
// N10), implementing the width-by-X family rule of §4.4.
func bindX(opcode uint8, byteFn, wordFn opFunc) {
	opcodeTables[modeE11][opcode] = byteFn
	opcodeTables[modeN00][opcode] = wordFn
	opcodeTables[modeN01][opcode] = byteFn
	opcodeTables[modeN10][opcode] = wordFn
	opcodeTables[modeN11][opcode] = byteFn
}

// addrFn resolves one addressing mode: a method value of one of the
// eaXxx functions in ea.go, e.g. (*CPU).eaDpag.
type addrFn func(*CPU) (ea, uint64)

// amEntry names one addressing-mode slot within an opcode family: the
// opcode (or, for registerGroup1, the offset added to a mnemonic's base)
// paired with the mode function and base cycle count.
type amEntry struct {
	opcode uint8
	addr   addrFn
	base   uint64
}

// group1Modes enumerates the 15 addressing-mode slots shared by the
// classic 6502 "cc=01" opcode family (ORA/AND/EOR/ADC/STA/LDA/CMP/SBC),
// extended with the 65C816's additional modes (long, stack-relative,
// 24-bit indirect) that WDC placed into the slots that were illegal
// opcodes on NMOS 6502 silicon. The offset added to a mnemonic's base
// byte (aaa<<5) reproduces the real opcode.
var group1Modes = []amEntry{
	{0x01, (*CPU).eaDpix, 6},
	{0x03, (*CPU).eaSrel, 4},
	{0x05, (*CPU).eaDpag, 3},
	{0x07, (*CPU).eaDpil, 6},
	{0x09, (*CPU).eaImmM, 2},
	{0x0D, (*CPU).eaAbs, 4},
	{0x0F, (*CPU).eaLong, 5},
	{0x11, (*CPU).eaDpiy, 5},
	{0x12, (*CPU).eaDpgI, 5},
	{0x13, (*CPU).eaSriy, 7},
	{0x15, (*CPU).eaDpgX, 4},
	{0x17, (*CPU).eaDily, 6},
	{0x19, (*CPU).eaAbsY, 4},
	{0x1D, (*CPU).eaAbsX, 4},
	{0x1F, (*CPU).eaLongX, 5},
}

// registerGroup1 binds all group1Modes slots, offset from aaaBase, to
// make8/make16-built kernels. skipImm omits the immediate slot for STA,
// which has no immediate destination form (that opcode byte, $89, is
// BIT #imm instead).
func registerGroup1(aaaBase uint8, skipImm bool, make8, make16 func(addrFn, uint64) opFunc) {
	for _, m := range group1Modes {
		if skipImm && m.opcode == 0x09 {
			continue
		}
		bindM(aaaBase+m.opcode, make8(m.addr, m.base), make16(m.addr, m.base))
	}
}
