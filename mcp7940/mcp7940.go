// Package mcp7940 implements a driver for the MCP7940N/MCP7940M Real-Time Clock (RTC). It covers the running clock,
// the power-fail time-stamps, oscillator start/stop and digital trim, battery backup and the status flags. Alarms and
// the interrupt side of the multi-function pin are left to the caller.
//
// Every register access is a single I2C transaction followed by a fixed settle delay (Config.IOTimeout). The driver
// holds no lock; a Device must not be used from more than one goroutine at a time. Operations spanning several
// registers, such as ReadDateTime, are not atomic with respect to the running clock.
//
// Datasheet: https://ww1.microchip.com/downloads/en/DeviceDoc/20005010F.pdf
package mcp7940

import (
	"time"

	"tinygo.org/x/drivers"
)

// Device is an MCP7940 on an I2C bus. The bus address comes from Config.Address.
type Device struct {
	bus  drivers.I2C
	addr uint8

	cfg Config
	w   [2]byte
	r   [1]byte
}

// New creates a new MCP7940 driver on the provided I2C bus using DefaultConfig. It does not touch the device; call
// Configure to apply a configuration and start the oscillator.
func New(bus drivers.I2C) Device {
	return Device{
		bus:  bus,
		addr: Address,
		cfg:  DefaultConfig(),
	}
}

// Configure runs the initialization sequence: battery backup, then the CONTROL register (only EXTOSC is carried over
// from the current value), then the oscillator. The oscillator is enabled last so timekeeping starts with the new
// settings in place.
func (d *Device) Configure(c Config) error {
	c = c.withDefaults()
	d.cfg = c
	d.addr = c.Address

	err := d.SetBatteryBackup(c.BatteryBackup)
	if err != nil {
		return err
	}
	ctrl, err := d.read(CONTROL)
	if err != nil {
		return err
	}
	err = d.write(CONTROL, c.control(ctrl))
	if err != nil {
		return err
	}
	return d.SetOscillator(Enable)
}

// SetConfig records c without touching the device, for a clock that was configured earlier (for example by a previous
// boot). It decides which oscillator bit SetOscillator uses, whether SetOutput is allowed and how values are validated.
func (d *Device) SetConfig(c Config) {
	d.cfg = c.withDefaults()
	d.addr = d.cfg.Address
}

// Config returns the configuration in effect.
func (d *Device) Config() Config {
	return d.cfg
}

// SetOscillator starts or stops timekeeping. With ClockCrystal this is the ST bit in RTCSEC, with ClockExternal the
// EXTOSC bit in CONTROL.
func (d *Device) SetOscillator(m Mode) error {
	if d.cfg.ClockSource == ClockExternal {
		return d.setBit(CONTROL, extOscBit, m)
	}
	return d.setBit(RTCSEC, stBit, m)
}

// SetBatteryBackup enables or disables switching to VBAT when VCC fails.
func (d *Device) SetBatteryBackup(m Mode) error {
	return d.setBit(RTCWKDAY, vbatEnBit, m)
}

// SetOutput drives the MFP pin level. Only valid when the pin is configured as a general purpose output.
func (d *Device) SetOutput(m Mode) error {
	if d.cfg.MFPMode != MFPOutput {
		return ErrNotOutputMode
	}
	return d.setBit(CONTROL, outBit, m)
}

// TrimDirection is the sign of the digital trim.
type TrimDirection uint8

const (
	// TrimSubtract removes clock cycles, correcting a clock that runs fast.
	TrimSubtract TrimDirection = iota
	// TrimAdd adds clock cycles, correcting a clock that runs slow.
	TrimAdd
)

// TrimSetting is a digital trim value. A zero Magnitude disables trimming.
type TrimSetting struct {
	Direction TrimDirection
	Magnitude uint8 // 0..127, higher bits are dropped
}

func (t TrimSetting) register() uint8 {
	v := t.Magnitude & trimMask
	if t.Direction == TrimAdd {
		v |= trimSignBit
	}
	return v
}

// SetTrim writes OSCTRIM and reads it back. A readback that differs from the written value returns ErrTrimMismatch;
// the write is not retried.
func (d *Device) SetTrim(t TrimSetting) error {
	v := t.register()
	err := d.write(OSCTRIM, v)
	if err != nil {
		return err
	}
	got, err := d.read(OSCTRIM)
	if err != nil {
		return err
	}
	if got != v {
		return ErrTrimMismatch
	}
	return nil
}

// Trim reads back the current digital trim.
func (d *Device) Trim() (TrimSetting, error) {
	v, err := d.read(OSCTRIM)
	if err != nil {
		return TrimSetting{}, err
	}
	t := TrimSetting{Magnitude: v & trimMask}
	if v&trimSignBit != 0 {
		t.Direction = TrimAdd
	}
	return t, nil
}

// Status reports the OSCRUN, PWRFAIL and VBATEN flags.
type Status uint8

const (
	StatusNone        Status = 0
	BatteryEnabled    Status = vbatEnBit
	PowerFail         Status = pwrFailBit
	OscillatorRunning Status = oscRunBit
)

// Has reports whether all bits of flag are set.
func (s Status) Has(flag Status) bool {
	return flag != 0 && s&flag == flag
}

func (s Status) String() string {
	if s == StatusNone {
		return "none"
	}
	str := ""
	for _, f := range [...]struct {
		flag Status
		name string
	}{
		{OscillatorRunning, "oscillator-running"},
		{PowerFail, "power-fail"},
		{BatteryEnabled, "battery-enabled"},
	} {
		if s.Has(f.flag) {
			if str != "" {
				str += "|"
			}
			str += f.name
		}
	}
	return str
}

// Status reads the status flags from RTCWKDAY.
func (d *Device) Status() (Status, error) {
	v, err := d.read(RTCWKDAY)
	if err != nil {
		return StatusNone, err
	}
	return Status(v & (oscRunBit | pwrFailBit | vbatEnBit)), nil
}

// ClearPowerFail clears PWRFAIL. On the device this also resets the power-fail time-stamps.
func (d *Device) ClearPowerFail() error {
	return d.setBit(RTCWKDAY, pwrFailBit, Disable)
}

// LeapYear reports the LPYR bit, which the device keeps from the current year.
func (d *Device) LeapYear() (bool, error) {
	v, err := d.read(RTCMTH)
	if err != nil {
		return false, err
	}
	return (v&leapYearBit)>>leapYearPos == 1, nil
}

// WaitOscillator blocks until OSCRUN is set or Config.OscillatorStartup has elapsed.
func (d *Device) WaitOscillator() error {
	start := time.Now()
	for {
		s, err := d.Status()
		if err != nil {
			return err
		}
		if s.Has(OscillatorRunning) {
			return nil
		}
		if time.Since(start) >= d.cfg.OscillatorStartup {
			return ErrOscillatorTimeout
		}
	}
}

// setBit is a read-modify-write of a single flag, preserving the other bits.
func (d *Device) setBit(reg, bit uint8, m Mode) error {
	v, err := d.read(reg)
	if err != nil {
		return err
	}
	if m == Enable {
		v |= bit
	} else {
		v &^= bit
	}
	return d.write(reg, v)
}

func (d *Device) read(reg uint8) (uint8, error) {
	d.w[0] = reg
	err := d.bus.Tx(uint16(d.addr), d.w[:1], d.r[:])
	time.Sleep(d.cfg.IOTimeout)
	if err != nil {
		return 0, err
	}
	return d.r[0], nil
}

func (d *Device) write(reg, v uint8) error {
	d.w[0] = reg
	d.w[1] = v
	err := d.bus.Tx(uint16(d.addr), d.w[:2], nil)
	time.Sleep(d.cfg.IOTimeout)
	return err
}

// field reads reg and decodes it as BCD with the given tens mask.
func (d *Device) field(reg, tensMask uint8) (uint8, error) {
	v, err := d.read(reg)
	if err != nil {
		return 0, err
	}
	return bcdToDec(v, tensMask), nil
}
