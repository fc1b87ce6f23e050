package main

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/ajanata/rtc-drivers/mcp7940"
)

func TestPublish(t *testing.T) {
	c := qt.New(t)
	ts := newTestSession("")
	loadClock(ts.bus)
	ts.bus.regs[mcp7940.PWRDNMIN] = 0x30
	ts.bus.regs[mcp7940.PWRDNHOUR] = 0x22
	ts.bus.regs[mcp7940.PWRDNDATE] = 0x14
	ts.bus.regs[mcp7940.PWRDNMTH] = 2<<5 | 0x08

	err := ts.exec([]string{"publish", "-broker", "tcp://broker:1883", "-id", "bench"})
	c.Assert(err, qt.IsNil)
	c.Assert(ts.pub.broker, qt.Equals, "tcp://broker:1883")
	c.Assert(ts.pub.id, qt.Equals, "bench")
	c.Assert(ts.pub.closed, qt.IsTrue)
	c.Assert(ts.pub.msgs, qt.DeepEquals, []published{{
		Topic:   "rtc/mcp7940/current",
		Payload: `{"block":"current","time":"09:05:03","date":"15/08/24","weekday":"THU","utc":"2024-08-15T09:05:03Z"}`,
	}, {
		Topic:   "rtc/mcp7940/down",
		Payload: `{"block":"power-down","time":"22:30:00","date":"14/08/00","weekday":"TUE"}`,
	}, {
		Topic:   "rtc/mcp7940/up",
		Payload: `{"block":"power-up","time":"00:00:00","date":"00/00/00","weekday":"???"}`,
	}, {
		Topic:   "rtc/mcp7940/status",
		Payload: `{"status":"oscillator-running|battery-enabled","oscillator_running":true,"power_fail":false,"battery_enabled":true,"leap_year":false}`,
	}})
}

func TestPublishTopic(t *testing.T) {
	c := qt.New(t)
	ts := newTestSession("")
	err := ts.exec([]string{"publish", "-broker", "tcp://broker:1883", "-topic", "lab/rtc/", "-id", "x"})
	c.Assert(err, qt.IsNil)
	c.Assert(ts.pub.msgs, qt.HasLen, 4)
	for i, sub := range []string{"current", "down", "up", "status"} {
		c.Assert(ts.pub.msgs[i].Topic, qt.Equals, "lab/rtc/"+sub)
	}
}

func TestPublishErrors(t *testing.T) {
	c := qt.New(t)
	ts := newTestSession("")
	c.Assert(ts.exec([]string{"publish"}), qt.ErrorMatches, "publish: missing -broker")
	c.Assert(ts.exec([]string{"publish", "-broker", "b", "extra"}), qt.ErrorMatches, `publish: \[extra\]: unexpected`)

	refused := errors.New("connection refused")
	ts.dial = func(string, string) (publisher, error) {
		return nil, refused
	}
	err := ts.exec([]string{"publish", "-broker", "b", "-id", "x"})
	c.Assert(errors.Is(err, refused), qt.IsTrue)
	c.Assert(ts.pub.msgs, qt.HasLen, 0)
}

func TestPublishReadsBeforeDialing(t *testing.T) {
	c := qt.New(t)
	cfg := mcp7940.DefaultConfig()
	cfg.Address = 0x50
	ts := newTestSessionConfig(cfg, "")
	dialed := false
	ts.dial = func(string, string) (publisher, error) {
		dialed = true
		return ts.pub, nil
	}
	err := ts.exec([]string{"publish", "-broker", "b", "-id", "x"})
	c.Assert(errors.Is(err, errNoDevice), qt.IsTrue)
	c.Assert(dialed, qt.IsFalse)
}

func TestSubtopic(t *testing.T) {
	c := qt.New(t)
	c.Assert(subtopic(mcp7940.CurrentTime), qt.Equals, "current")
	c.Assert(subtopic(mcp7940.PowerDownTime), qt.Equals, "down")
	c.Assert(subtopic(mcp7940.PowerUpTime), qt.Equals, "up")
	c.Assert(subtopic(mcp7940.RegisterSet(9)), qt.Equals, "current")
}
