package mcp7940

// RegisterSet selects one of the three register blocks sharing the same field
// layout: the running clock and the two power-fail time-stamps.
type RegisterSet uint8

const (
	CurrentTime RegisterSet = iota
	PowerDownTime
	PowerUpTime
)

func (s RegisterSet) String() string {
	switch s {
	case PowerDownTime:
		return "power-down"
	case PowerUpTime:
		return "power-up"
	default:
		return "current"
	}
}

// noRegister marks a field the block does not store.
const noRegister = 0xFF

// block holds the physical addresses backing one register set.
type block struct {
	hour, minute, second uint8
	day, month, year     uint8

	// weekday is read from weekdayReg, masked and shifted down.
	weekdayReg   uint8
	weekdayMask  uint8
	weekdayShift uint8
}

var blocks = [...]block{
	CurrentTime: {
		hour: RTCHOUR, minute: RTCMIN, second: RTCSEC,
		day: RTCDATE, month: RTCMTH, year: RTCYEAR,
		weekdayReg: RTCWKDAY, weekdayMask: weekdayMask,
	},
	PowerDownTime: {
		hour: PWRDNHOUR, minute: PWRDNMIN, second: noRegister,
		day: PWRDNDATE, month: PWRDNMTH, year: noRegister,
		weekdayReg: PWRDNMTH, weekdayMask: pwrWeekdayMask, weekdayShift: pwrWeekdayPos,
	},
	PowerUpTime: {
		hour: PWRUPHOUR, minute: PWRUPMIN, second: noRegister,
		day: PWRUPDATE, month: PWRUPMTH, year: noRegister,
		weekdayReg: PWRUPMTH, weekdayMask: pwrWeekdayMask, weekdayShift: pwrWeekdayPos,
	},
}

// blockFor returns the addresses for s. Unknown sets use the running clock's hour, minute, day, month and weekday
// registers.
func blockFor(s RegisterSet) *block {
	if int(s) >= len(blocks) {
		return &blocks[CurrentTime]
	}
	return &blocks[s]
}
