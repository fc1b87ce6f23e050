package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ajanata/rtc-drivers/mcp7940"
)

// configFromParms builds the driver configuration from the global options.
// Options that are not given keep their DefaultConfig value.
func configFromParms(parm map[string]string) (mcp7940.Config, error) {
	cfg := mcp7940.DefaultConfig()
	var err error
	if s := parm["-addr"]; len(s) > 0 {
		var a uint
		if _, err = fmt.Sscanf(s, "%x", &a); err != nil || a == 0 || a > 0x7F {
			return cfg, fmt.Errorf("%s: invalid address", s)
		}
		cfg.Address = uint8(a)
	}
	if s := parm["-clock"]; len(s) > 0 {
		switch s {
		case "crystal":
			cfg.ClockSource = mcp7940.ClockCrystal
		case "external":
			cfg.ClockSource = mcp7940.ClockExternal
		default:
			return cfg, fmt.Errorf("%s: invalid clock source", s)
		}
	}
	if s := parm["-battery"]; len(s) > 0 {
		if cfg.BatteryBackup, err = parseMode(s); err != nil {
			return cfg, err
		}
	}
	if s := parm["-coarse"]; len(s) > 0 {
		if cfg.CoarseTrim, err = parseMode(s); err != nil {
			return cfg, err
		}
	}
	if s := parm["-mfp"]; len(s) > 0 {
		switch s {
		case "output":
			cfg.MFPMode = mcp7940.MFPOutput
		case "square":
			cfg.MFPMode = mcp7940.MFPSquareWave
		case "alarm":
			cfg.MFPMode = mcp7940.MFPAlarm
		default:
			return cfg, fmt.Errorf("%s: invalid MFP mode", s)
		}
	}
	if s := parm["-sqw"]; len(s) > 0 {
		switch s {
		case "1":
			cfg.Prescaler = mcp7940.Prescaler1Hz
		case "4096":
			cfg.Prescaler = mcp7940.Prescaler4096Hz
		case "8192":
			cfg.Prescaler = mcp7940.Prescaler8192Hz
		case "32768":
			cfg.Prescaler = mcp7940.Prescaler32768Hz
		default:
			return cfg, fmt.Errorf("%s: invalid square wave frequency", s)
		}
	}
	if s := parm["-alarm"]; len(s) > 0 {
		switch s {
		case "0":
			cfg.AlarmRouting = mcp7940.Alarm0
		case "1":
			cfg.AlarmRouting = mcp7940.Alarm1
		case "both":
			cfg.AlarmRouting = mcp7940.AlarmBoth
		default:
			return cfg, fmt.Errorf("%s: invalid alarm routing", s)
		}
	}
	return cfg, nil
}

func parseMode(s string) (mcp7940.Mode, error) {
	switch s {
	case "on", "enable", "1":
		return mcp7940.Enable, nil
	case "off", "disable", "0":
		return mcp7940.Disable, nil
	}
	return mcp7940.Disable, fmt.Errorf("%s: expected on or off", s)
}

func parseRegisterSet(s string) (mcp7940.RegisterSet, error) {
	switch s {
	case "current":
		return mcp7940.CurrentTime, nil
	case "down":
		return mcp7940.PowerDownTime, nil
	case "up":
		return mcp7940.PowerUpTime, nil
	}
	return mcp7940.CurrentTime, fmt.Errorf("%s: expected current, down or up", s)
}

// parseTriple reads three numbers separated by sep. Range checking beyond
// what fits in a byte is left to the driver's validator.
func parseTriple(s, sep string) (a, b, c uint8, err error) {
	f := strings.Split(s, sep)
	if len(f) != 3 {
		return 0, 0, 0, fmt.Errorf("%s: malformed", s)
	}
	var v [3]uint8
	for i, x := range f {
		n, perr := strconv.ParseUint(x, 10, 8)
		if perr != nil {
			return 0, 0, 0, fmt.Errorf("%s: malformed", s)
		}
		v[i] = uint8(n)
	}
	return v[0], v[1], v[2], nil
}

func parseTime(s string) (mcp7940.Time, error) {
	h, m, sec, err := parseTriple(s, ":")
	return mcp7940.Time{Hour: h, Minute: m, Second: sec}, err
}

func parseDate(s string) (mcp7940.Date, error) {
	d, m, y, err := parseTriple(s, "/")
	return mcp7940.Date{Day: d, Month: m, Year: y}, err
}

func parseTrim(dir, mag string) (mcp7940.TrimSetting, error) {
	var t mcp7940.TrimSetting
	switch dir {
	case "add":
		t.Direction = mcp7940.TrimAdd
	case "sub":
		t.Direction = mcp7940.TrimSubtract
	default:
		return t, fmt.Errorf("%s: expected add or sub", dir)
	}
	var v int
	if _, err := fmt.Sscan(mag, &v); err != nil || v < 0 || v > 127 {
		return t, fmt.Errorf("%s: trim must be 0..127", mag)
	}
	t.Magnitude = uint8(v)
	return t, nil
}

func formatTrim(t mcp7940.TrimSetting) string {
	switch {
	case t.Magnitude == 0:
		return "off"
	case t.Direction == mcp7940.TrimAdd:
		return fmt.Sprintf("add %d", t.Magnitude)
	}
	return fmt.Sprintf("sub %d", t.Magnitude)
}

func formatTimestamp(ts mcp7940.Timestamp) string {
	return fmt.Sprintf("%02d:%02d:%02d %02d/%02d/%02d %s",
		ts.Time.Hour, ts.Time.Minute, ts.Time.Second,
		ts.Date.Day, ts.Date.Month, ts.Date.Year,
		mcp7940.WeekdayString(ts.Weekday))
}
