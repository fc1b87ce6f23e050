package mcp7940

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestBlockAddresses(t *testing.T) {
	c := qt.New(t)
	for _, tc := range []struct {
		set                      RegisterSet
		hour, minute, day, month uint8
		second, year, weekday    uint8
	}{
		{CurrentTime, RTCHOUR, RTCMIN, RTCDATE, RTCMTH, RTCSEC, RTCYEAR, RTCWKDAY},
		{PowerDownTime, PWRDNHOUR, PWRDNMIN, PWRDNDATE, PWRDNMTH, noRegister, noRegister, PWRDNMTH},
		{PowerUpTime, PWRUPHOUR, PWRUPMIN, PWRUPDATE, PWRUPMTH, noRegister, noRegister, PWRUPMTH},
	} {
		c.Run(tc.set.String(), func(c *qt.C) {
			b := blockFor(tc.set)
			c.Assert(b.hour, qt.Equals, tc.hour)
			c.Assert(b.minute, qt.Equals, tc.minute)
			c.Assert(b.day, qt.Equals, tc.day)
			c.Assert(b.month, qt.Equals, tc.month)
			c.Assert(b.second, qt.Equals, tc.second)
			c.Assert(b.year, qt.Equals, tc.year)
			c.Assert(b.weekdayReg, qt.Equals, tc.weekday)
		})
	}
}

func TestUnknownSetReadsCurrentTime(t *testing.T) {
	c := qt.New(t)
	c.Assert(blockFor(RegisterSet(9)), qt.Equals, &blocks[CurrentTime])
}
