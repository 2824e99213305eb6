// Command emu816 loads an S-record image into a conventional memory
// map, runs it on a emu816.CPU until the processor halts (STP, or a WDM
// $FF host halt), and optionally prints a per-instruction trace or a
// full register dump on exit.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/wdc816/emu816"
	"github.com/wdc816/emu816/mem"
	"github.com/wdc816/emu816/srec"
	"github.com/wdc816/emu816/trace"
)

// resetVector is a pflag.Value that parses a $-prefixed or bare hex
// 16-bit address, letting --reset-vector accept the same notation as
// the S-record listings it overrides.
type resetVector struct {
	val uint16
	set bool
}

func (r *resetVector) String() string {
	if !r.set {
		return ""
	}
	return fmt.Sprintf("$%04X", r.val)
}

func (r *resetVector) Set(s string) error {
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "$"), 16, 16)
	if err != nil {
		return fmt.Errorf("reset-vector: %w", err)
	}
	r.val, r.set = uint16(n), true
	return nil
}

func (r *resetVector) Type() string { return "hexAddr" }

// romImage adapts a plain byte slice to srec.Writer, translating the
// absolute addresses an S-record carries into offsets within the
// not-yet-mapped ROM buffer. Writes outside [base, base+len(data)) are
// dropped: a well-formed image for this layout never addresses bank 0
// below its own load address or any bank above 0.
type romImage struct {
	base uint32
	data []byte
}

func (r *romImage) Write(addr uint32, val uint8) {
	if addr < r.base || addr-r.base >= uint32(len(r.data)) {
		return
	}
	r.data[addr-r.base] = val
}

// consoleHost is the default HostPort: WDM serial commands go to
// stdin/stdout, and a halt prints a one-line summary before exit.
type consoleHost struct{}

func (consoleHost) SerialSend(b uint8) { fmt.Fprintf(os.Stdout, "%c", b) }

func (consoleHost) SerialRecv() (uint8, bool) {
	var b [1]byte
	n, err := os.Stdin.Read(b[:])
	if n == 0 || err != nil {
		return 0, false
	}
	return b[0], true
}

func (consoleHost) Halt(stats emu816.CPUStats) {
	fmt.Fprintf(os.Stderr, "halted after %d instructions, %d cycles\n", stats.Instructions, stats.Cycles)
}

// traceSink adapts trace.Formatter to emu816.Tracer: it has no
// disassembler of its own, so the mnemonic column carries the raw
// opcode byte, which is still enough to correlate a trace against a
// listing file.
type traceSink struct {
	out trace.Formatter
}

func (s traceSink) Trace(c *emu816.CPU, opcode uint8, operand1, operand2 *uint8) {
	reg := c.Registers()
	snap := trace.Snapshot{
		PC: reg.PC, PBR: reg.PBR, DBR: reg.DBR,
		DP: reg.DP, SP: reg.SP, C: reg.C, X: reg.X, Y: reg.Y,
		P: reg.P, E: reg.E, Cycles: c.Cycles(),
	}
	s.out.Emit(trace.Format(snap, fmt.Sprintf("$%02X", opcode), opcode, operand1, operand2))
}

func main() {
	var (
		traceFlag bool
		dumpFlag  bool
		maxSteps  int64
		reset     resetVector
	)

	root := &cobra.Command{
		Use:   "emu816 <image.s19>",
		Short: "Run an S-record image on a cycle-counted 65C816 interpreter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], traceFlag, dumpFlag, maxSteps, reset)
		},
	}

	flags := root.Flags()
	flags.BoolVarP(&traceFlag, "trace", "t", false, "print one line per executed instruction")
	flags.BoolVar(&dumpFlag, "dump", false, "dump full CPU state on exit")
	flags.Int64Var(&maxSteps, "max-steps", 0, "stop after this many instructions (0 = until halted)")
	flags.VarP(&reset, "reset-vector", "r", "override the image's $FFFC reset vector, e.g. $8000")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, traceOn, dump bool, maxSteps int64, reset resetVector) error {
	// mem.Memory treats its ROM region as write-protected, so the image
	// is assembled in a plain buffer first and handed to NewConventional
	// as the finished ROM contents, rather than loaded into an
	// already-mapped (and therefore write-dropping) Memory.
	const romSize = 0x8000
	romStart := uint32(0x10000 - romSize)
	rom := make([]byte, romSize)

	if err := srec.LoadFile(path, &romImage{base: romStart, data: rom}); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	if reset.set {
		rom[0xFFFC-romStart] = uint8(reset.val)
		rom[0xFFFD-romStart] = uint8(reset.val >> 8)
	}

	memory := mem.NewConventional(rom)
	cpu := emu816.New(memory)
	cpu.SetHostPort(consoleHost{})
	if traceOn {
		cpu.SetTracer(traceSink{out: trace.Formatter{W: os.Stdout}})
	}

	var steps int64
	for !cpu.Halted() {
		cpu.Step()
		steps++
		if maxSteps > 0 && steps >= maxSteps {
			break
		}
	}

	if dump {
		spew.Fdump(os.Stderr, cpu.Registers())
	}
	return nil
}
