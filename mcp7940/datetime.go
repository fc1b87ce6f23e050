package mcp7940

import "time"

// Time is a time of day in binary, 24-hour form.
type Time struct {
	Hour   uint8
	Minute uint8
	Second uint8
}

// Date is a calendar date. Year is the two-digit year kept by the device; the century is not stored.
type Date struct {
	Day   uint8
	Month uint8
	Year  uint8
}

type DateTime struct {
	Time Time
	Date Date
}

// Timestamp is a date-time together with the raw device weekday (1..7, 0 if never written) of the same block.
type Timestamp struct {
	DateTime
	Weekday uint8
}

// ReadTime reads hour, minute and second from set. Only the running clock stores seconds; for any other set Second
// is 0 and no read is issued.
func (d *Device) ReadTime(set RegisterSet) (Time, error) {
	b := blockFor(set)
	var t Time
	var err error
	t.Hour, err = d.field(b.hour, hourTenMask)
	if err != nil {
		return Time{}, err
	}
	t.Minute, err = d.field(b.minute, minTenMask)
	if err != nil {
		return Time{}, err
	}
	if set == CurrentTime {
		t.Second, err = d.field(b.second, secTenMask)
		if err != nil {
			return Time{}, err
		}
	}
	return t, nil
}

// ReadDate reads day, month and year from set. Only the running clock stores a year; for any other set Year is 0
// and no read is issued.
func (d *Device) ReadDate(set RegisterSet) (Date, error) {
	b := blockFor(set)
	var dt Date
	var err error
	dt.Day, err = d.field(b.day, dateTenMask)
	if err != nil {
		return Date{}, err
	}
	dt.Month, err = d.field(b.month, mthTenMask)
	if err != nil {
		return Date{}, err
	}
	if set == CurrentTime {
		dt.Year, err = d.field(b.year, yearTenMask)
		if err != nil {
			return Date{}, err
		}
	}
	return dt, nil
}

// ReadDateTime reads time then date from the same block. The two halves are separate transactions; a rollover in
// between is not detected.
func (d *Device) ReadDateTime(set RegisterSet) (DateTime, error) {
	t, err := d.ReadTime(set)
	if err != nil {
		return DateTime{}, err
	}
	dt, err := d.ReadDate(set)
	if err != nil {
		return DateTime{}, err
	}
	return DateTime{Time: t, Date: dt}, nil
}

// ReadTimestamp reads a whole block including its weekday. Mostly useful for the power-fail time-stamps.
func (d *Device) ReadTimestamp(set RegisterSet) (Timestamp, error) {
	dt, err := d.ReadDateTime(set)
	if err != nil {
		return Timestamp{}, err
	}
	wd, err := d.Weekday(set)
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{DateTime: dt, Weekday: wd}, nil
}

// SetTime writes hour, minute and second to the running clock and then enables the oscillator. The values are
// checked with the configured Validator first; on rejection the validator's error is returned and nothing is
// written.
//
// Each register is overwritten whole, so the write to RTCSEC clears ST; enabling the oscillator afterwards restarts
// it.
func (d *Device) SetTime(t Time) error {
	if err := d.validator().ValidateTime(t); err != nil {
		return err
	}
	err := d.write(RTCHOUR, decToBcd(t.Hour))
	if err != nil {
		return err
	}
	err = d.write(RTCMIN, decToBcd(t.Minute))
	if err != nil {
		return err
	}
	err = d.write(RTCSEC, decToBcd(t.Second))
	if err != nil {
		return err
	}
	return d.SetOscillator(Enable)
}

// SetDate writes day, month and year to the running clock after validating them. LPYR is not written; the device
// derives it from the year.
func (d *Device) SetDate(dt Date) error {
	if err := d.validator().ValidateDate(dt); err != nil {
		return err
	}
	err := d.write(RTCDATE, decToBcd(dt.Day))
	if err != nil {
		return err
	}
	err = d.write(RTCMTH, decToBcd(dt.Month))
	if err != nil {
		return err
	}
	return d.write(RTCYEAR, decToBcd(dt.Year))
}

// SetDateTime calls SetTime and then SetDate; the date is written even if the time was rejected. It returns nil if
// both succeeded and a *DateTimeError carrying both results otherwise.
func (d *Device) SetDateTime(dt DateTime) error {
	terr := d.SetTime(dt.Time)
	derr := d.SetDate(dt.Date)
	if terr == nil && derr == nil {
		return nil
	}
	return &DateTimeError{Time: terr, Date: derr}
}

// Now returns the running clock as a time.Time in UTC. The device year is taken as an offset from 2000.
func (d *Device) Now() (time.Time, error) {
	dt, err := d.ReadDateTime(CurrentTime)
	if err != nil {
		return time.Time{}, err
	}
	return dt.UTC(), nil
}

// Set programs date, weekday and time from t, in that order. t must fall in 2000..2099.
func (d *Device) Set(t time.Time) error {
	year := t.Year() - 2000
	if year < 0 || year > 99 {
		return ErrInvalidDate
	}
	err := d.SetDate(Date{Day: uint8(t.Day()), Month: uint8(t.Month()), Year: uint8(year)})
	if err != nil {
		return err
	}
	err = d.SetWeekday(WeekdayIndex(t.Weekday()))
	if err != nil {
		return err
	}
	return d.SetTime(Time{Hour: uint8(t.Hour()), Minute: uint8(t.Minute()), Second: uint8(t.Second())})
}

// UTC converts dt to a time.Time in UTC, taking the year as an offset from 2000.
func (dt DateTime) UTC() time.Time {
	return time.Date(2000+int(dt.Date.Year), time.Month(dt.Date.Month), int(dt.Date.Day),
		int(dt.Time.Hour), int(dt.Time.Minute), int(dt.Time.Second), 0, time.UTC)
}

// FromTime splits a time.Time into device fields. The year is reduced modulo 100.
func FromTime(t time.Time) DateTime {
	return DateTime{
		Time: Time{Hour: uint8(t.Hour()), Minute: uint8(t.Minute()), Second: uint8(t.Second())},
		Date: Date{Day: uint8(t.Day()), Month: uint8(t.Month()), Year: uint8(t.Year() % 100)},
	}
}

func (d *Device) validator() Validator {
	if d.cfg.Validator == nil {
		return RangeValidator{}
	}
	return d.cfg.Validator
}
