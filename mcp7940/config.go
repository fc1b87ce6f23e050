package mcp7940

import "time"

// Mode is a generic enable/disable selector.
type Mode uint8

const (
	Disable Mode = iota
	Enable
)

// ClockSource selects what drives the timebase, and with it which bit
// SetOscillator toggles.
type ClockSource uint8

const (
	// ClockCrystal uses the on-chip oscillator with an external crystal. The
	// oscillator is started and stopped with the ST bit in RTCSEC.
	ClockCrystal ClockSource = iota
	// ClockExternal takes a 32.768 kHz clock on X1. It is switched with the
	// EXTOSC bit in CONTROL.
	ClockExternal
)

// MFPMode selects the function of the multi-function pin.
type MFPMode uint8

const (
	MFPOutput MFPMode = iota
	MFPSquareWave
	MFPAlarm
)

// Prescaler is the square-wave output frequency, as encoded in SQWFS[1:0].
type Prescaler uint8

const (
	Prescaler1Hz     Prescaler = 0x00
	Prescaler4096Hz  Prescaler = 0x01
	Prescaler8192Hz  Prescaler = 0x02
	Prescaler32768Hz Prescaler = 0x03
)

// AlarmRouting selects which alarms assert the MFP pin in MFPAlarm mode.
type AlarmRouting uint8

const (
	AlarmBoth AlarmRouting = iota
	Alarm0
	Alarm1
)

func (r AlarmRouting) bits() uint8 {
	switch r {
	case Alarm0:
		return alm0EnBit
	case Alarm1:
		return alm1EnBit
	default:
		return alm0EnBit | alm1EnBit
	}
}

// Config holds the settings applied by Configure. The zero value is usable:
// Address and the timing fields fall back to their defaults.
type Config struct {
	Address       uint8
	ClockSource   ClockSource
	BatteryBackup Mode
	MFPMode       MFPMode
	// Prescaler is only written in MFPSquareWave mode with CoarseTrim off;
	// with coarse trim on the SQWFS bits are left clear.
	Prescaler    Prescaler
	AlarmRouting AlarmRouting
	CoarseTrim   Mode
	// IOTimeout is the settle delay after every register access. Default 1ms.
	IOTimeout time.Duration
	// OscillatorStartup bounds WaitOscillator. Default 1s.
	OscillatorStartup time.Duration
	// Validator checks values before SetTime and SetDate touch the bus.
	// Defaults to RangeValidator.
	Validator Validator
}

// DefaultConfig returns the settings the device ships with in most boards:
// crystal oscillator, battery backup off, MFP as a plain output.
func DefaultConfig() Config {
	return Config{
		Address:           Address,
		ClockSource:       ClockCrystal,
		BatteryBackup:     Disable,
		MFPMode:           MFPOutput,
		Prescaler:         Prescaler1Hz,
		AlarmRouting:      AlarmBoth,
		CoarseTrim:        Disable,
		IOTimeout:         time.Millisecond,
		OscillatorStartup: time.Second,
		Validator:         RangeValidator{},
	}
}

func (c Config) withDefaults() Config {
	if c.Address == 0 {
		c.Address = Address
	}
	if c.IOTimeout <= 0 {
		c.IOTimeout = time.Millisecond
	}
	if c.OscillatorStartup <= 0 {
		c.OscillatorStartup = time.Second
	}
	if c.Validator == nil {
		c.Validator = RangeValidator{}
	}
	return c
}

// control computes the CONTROL register for c, keeping only the EXTOSC bit of
// the current value.
func (c Config) control(current uint8) uint8 {
	v := current & extOscBit
	if c.CoarseTrim == Enable {
		v |= crsTrimBit
	}
	switch c.MFPMode {
	case MFPSquareWave:
		v |= sqwEnBit
		if c.CoarseTrim != Enable {
			v |= uint8(c.Prescaler) & sqwFSMask
		}
	case MFPAlarm:
		v |= c.AlarmRouting.bits()
	}
	return v
}
