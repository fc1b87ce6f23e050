package mcp7940

import (
	"errors"
	"time"
)

var errNoDevice = errors.New("fake: no device at address")

// txn records a single bus transaction.
type txn struct {
	Reg   uint8
	Write bool
	Val   uint8
}

// fakeRTC is a register file answering drivers.I2C transactions the way the
// MCP7940 does for single register accesses.
type fakeRTC struct {
	addr uint16
	regs [0x20]uint8
	log  []txn

	// trimStuck, when set, makes OSCTRIM read back this value regardless of
	// what was written.
	trimStuck *uint8
	// oscRunAfter sets OSCRUN once RTCWKDAY has been read this many times.
	oscRunAfter int
	wkdayReads  int
	err         error
}

func newFake() *fakeRTC {
	return &fakeRTC{addr: Address}
}

func (f *fakeRTC) Tx(addr uint16, w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	if addr != f.addr {
		return errNoDevice
	}
	reg := w[0]
	if len(r) == 0 {
		for i, v := range w[1:] {
			f.regs[int(reg)+i] = v
			f.log = append(f.log, txn{Reg: reg + uint8(i), Write: true, Val: v})
		}
		return nil
	}
	for i := range r {
		v := f.regs[int(reg)+i]
		switch {
		case reg+uint8(i) == OSCTRIM && f.trimStuck != nil:
			v = *f.trimStuck
		case reg+uint8(i) == RTCWKDAY && f.oscRunAfter > 0:
			f.wkdayReads++
			if f.wkdayReads >= f.oscRunAfter {
				f.regs[RTCWKDAY] |= oscRunBit
				v = f.regs[RTCWKDAY]
			}
		}
		r[i] = v
		f.log = append(f.log, txn{Reg: reg + uint8(i), Val: v})
	}
	return nil
}

// writes returns the logged writes in order.
func (f *fakeRTC) writes() []txn {
	var out []txn
	for _, t := range f.log {
		if t.Write {
			out = append(out, t)
		}
	}
	return out
}

func (f *fakeRTC) reset() {
	f.log = nil
}

// newTestDevice returns a device on a fresh fake with the settle delay
// shortened so tests do not sleep.
func newTestDevice() (Device, *fakeRTC) {
	f := newFake()
	d := New(f)
	d.cfg.IOTimeout = time.Nanosecond
	return d, f
}

// fastConfig is DefaultConfig with test friendly timing.
func fastConfig() Config {
	c := DefaultConfig()
	c.IOTimeout = time.Nanosecond
	c.OscillatorStartup = 20 * time.Millisecond
	return c
}
