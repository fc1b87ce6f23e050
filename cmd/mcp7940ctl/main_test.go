package main

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
	"tinygo.org/x/drivers"

	"github.com/ajanata/rtc-drivers/mcp7940"
)

type openedBus struct {
	n      int
	bus    *regBus
	closed bool
}

func patchOpenBus(c *qt.C, addr uint16) *openedBus {
	o := &openedBus{n: -1, bus: &regBus{addr: addr}}
	c.Patch(&openBus, func(n int) (drivers.I2C, func(), error) {
		o.n = n
		return o.bus, func() { o.closed = true }, nil
	})
	return o
}

func TestSetupOptions(t *testing.T) {
	c := qt.New(t)
	o := patchOpenBus(c, 0x6E)
	s, args, closeBus, err := setup([]string{"-addr", "6e", "-clock", "external", "-v", "-bus", "3", "osc", "on"})
	c.Assert(err, qt.IsNil)
	c.Assert(s, qt.Not(qt.IsNil))
	c.Assert(args, qt.DeepEquals, []string{"osc", "on"})
	c.Assert(o.n, qt.Equals, 3)
	c.Assert(s.verbose, qt.IsTrue)
	c.Assert(s.cfg.Address, qt.Equals, uint8(0x6E))
	c.Assert(s.cfg.ClockSource, qt.Equals, mcp7940.ClockExternal)
	c.Assert(s.dev.Config().Address, qt.Equals, uint8(0x6E))
	closeBus()
	c.Assert(o.closed, qt.IsTrue)
}

func TestSetupDefaults(t *testing.T) {
	c := qt.New(t)
	o := patchOpenBus(c, 0)
	s, args, _, err := setup([]string{"status"})
	c.Assert(err, qt.IsNil)
	c.Assert(args, qt.DeepEquals, []string{"status"})
	c.Assert(o.n, qt.Equals, 1)
	c.Assert(s.verbose, qt.IsFalse)
	c.Assert(s.cfg.Address, qt.Equals, uint8(mcp7940.Address))
}

func TestRun(t *testing.T) {
	c := qt.New(t)
	o := patchOpenBus(c, 0x6E)
	err := run([]string{"-addr", "6e", "-clock", "external", "-v", "osc", "on"})
	c.Assert(err, qt.IsNil)
	// the external clock is started through EXTOSC, not ST
	c.Assert(o.bus.regs[mcp7940.CONTROL], qt.Equals, uint8(0x08))
	c.Assert(o.bus.regs[mcp7940.RTCSEC], qt.Equals, uint8(0))
	c.Assert(o.closed, qt.IsTrue)
}

func TestRunErrors(t *testing.T) {
	c := qt.New(t)
	o := patchOpenBus(c, 0)
	c.Assert(run([]string{"-addr", "zz", "status"}), qt.ErrorMatches, "zz: invalid address")
	c.Assert(run([]string{"-bus", "x", "status"}), qt.ErrorMatches, "x: invalid bus: .*")
	c.Assert(o.n, qt.Equals, -1)

	// a device at another address fails the command, and the bus is still closed
	err := run([]string{"-addr", "50", "status"})
	c.Assert(errors.Is(err, errNoDevice), qt.IsTrue)
	c.Assert(o.closed, qt.IsTrue)

	failed := errors.New("no such adapter")
	c.Patch(&openBus, func(int) (drivers.I2C, func(), error) {
		return nil, nil, failed
	})
	err = run([]string{"-bus", "7", "status"})
	c.Assert(errors.Is(err, failed), qt.IsTrue)
	c.Assert(err, qt.ErrorMatches, "i2c-7: no such adapter")
}

func TestRunWithoutCommandDoesNotOpenBus(t *testing.T) {
	c := qt.New(t)
	o := patchOpenBus(c, 0)
	_, _, _, err := setup([]string{"-v"})
	c.Assert(err, qt.IsNil)
	c.Assert(o.n, qt.Equals, -1)
}
