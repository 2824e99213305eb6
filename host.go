package emu816

// CPUStats summarizes one run for a HostPort's Halt callback.
type CPUStats struct {
	Cycles       uint64
	Instructions uint64
}

// HostPort services the WDM ($42) host-escape instruction: the one
// opcode the 65C816 reserves for an emulator to talk to whatever stands
// in for hardware the silicon never had (a console, a test harness's
// exit code). With a nil HostPort the serial commands do nothing and
// $FF stops the CPU without a Halt callback; the IER/IFR commands
// $00-$07 work the same with or without one.
type HostPort interface {
	// SerialSend delivers one byte written by WDM command $08.
	SerialSend(b uint8)
	// SerialRecv supplies one byte for WDM command $09. ok is false when
	// no byte is available; the CPU reports that via the carry flag.
	SerialRecv() (b uint8, ok bool)
	// Halt is invoked once, when WDM command $FF stops the processor.
	Halt(stats CPUStats)
}

// WDM command numbers, per §6: $00-$07 read/write the IER/IFR pair
// against the full 16-bit accumulator, $08/$09 are the serial port, $FF
// halts.
const (
	wdmIERRead    = 0x00
	wdmIERWrite   = 0x01
	wdmIERSet     = 0x02
	wdmIERClear   = 0x03
	wdmIFRRead    = 0x04
	wdmIFRWrite   = 0x05
	wdmIFRSet     = 0x06
	wdmIFRClear   = 0x07
	wdmSerialSend = 0x08
	wdmSerialRecv = 0x09
	wdmHalt       = 0xFF
)

func registerWDM() {
	bindAll(0x42, func(c *CPU) {
		cmd := c.fetchPC()
		c.cycles += 3

		switch cmd {
		case wdmIERRead:
			c.reg.C = c.ier
		case wdmIERWrite:
			c.ier = c.reg.C
		case wdmIERSet:
			c.ier |= c.reg.C
		case wdmIERClear:
			c.ier &^= c.reg.C
		case wdmIFRRead:
			c.reg.C = c.ifr
		case wdmIFRWrite:
			c.ifr = c.reg.C
		case wdmIFRSet:
			c.ifr |= c.reg.C
		case wdmIFRClear:
			c.ifr &^= c.reg.C
		case wdmSerialSend:
			if c.host != nil {
				c.host.SerialSend(c.accLo())
			}
		case wdmSerialRecv:
			if c.host != nil {
				v, ok := c.host.SerialRecv()
				c.setAccLo(v)
				c.setFlag(flagC, !ok)
			}
		case wdmHalt:
			c.stopped = true
			if c.host != nil {
				c.host.Halt(CPUStats{Cycles: c.cycles, Instructions: c.instructions})
			}
		default:
			// Reserved command range: no architectural effect beyond the
			// opcode's own cycle cost.
		}
	})
}

func init() {
	registerWDM()
}
