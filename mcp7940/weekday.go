package mcp7940

import "time"

var weekdays = [8]string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN", "???"}

// WeekdayString returns the three letter label for a device weekday value (1 = MON .. 7 = SUN). Values outside 1..7
// give "???".
func WeekdayString(day uint8) string {
	return weekdays[(day-1)&0x07]
}

// Weekday reads the raw weekday of set. Values are 1..7 once written; a never-written field reads 0.
func (d *Device) Weekday(set RegisterSet) (uint8, error) {
	b := blockFor(set)
	v, err := d.read(b.weekdayReg)
	if err != nil {
		return 0, err
	}
	return (v & b.weekdayMask) >> b.weekdayShift, nil
}

// SetWeekday programs the running clock's weekday from a zero based index (0 = Monday .. 6 = Sunday). The status bits
// sharing RTCWKDAY are kept. Indexes of 7 and above return ErrWeekdayRange without touching the bus.
func (d *Device) SetWeekday(index uint8) error {
	if index >= 7 {
		return ErrWeekdayRange
	}
	v, err := d.read(RTCWKDAY)
	if err != nil {
		return err
	}
	return d.write(RTCWKDAY, v&wkdayKeepBit|(index+1)&weekdayMask)
}

// WeekdayIndex converts a time.Weekday to the Monday based index used by SetWeekday.
func WeekdayIndex(wd time.Weekday) uint8 {
	return uint8((wd + 6) % 7)
}

// ToWeekday converts a device weekday value (1..7) to a time.Weekday.
func ToWeekday(day uint8) time.Weekday {
	return time.Weekday(day % 7)
}
