package mcp7940

const (
	Address = 0x6F // I2C address for MCP7940

	// Timekeeping registers
	RTCSEC   = 0x00 // Seconds, also holds the ST (start oscillator) bit
	RTCMIN   = 0x01 // Minutes
	RTCHOUR  = 0x02 // Hours, 12/24 format bit
	RTCWKDAY = 0x03 // Weekday, also holds OSCRUN, PWRFAIL and VBATEN
	RTCDATE  = 0x04 // Day of month
	RTCMTH   = 0x05 // Month, also holds the leap-year bit
	RTCYEAR  = 0x06 // Two-digit year
	CONTROL  = 0x07 // Control register
	OSCTRIM  = 0x08 // Oscillator digital trim

	// Alarm registers. Not driven by this package; listed for completeness.
	ALM0SEC   = 0x0A
	ALM0MIN   = 0x0B
	ALM0HOUR  = 0x0C
	ALM0WKDAY = 0x0D
	ALM0DATE  = 0x0E
	ALM0MTH   = 0x0F
	ALM1SEC   = 0x11
	ALM1MIN   = 0x12
	ALM1HOUR  = 0x13
	ALM1WKDAY = 0x14
	ALM1DATE  = 0x15
	ALM1MTH   = 0x16

	// Power-fail time-stamp registers
	PWRDNMIN  = 0x18 // Power-down minutes
	PWRDNHOUR = 0x19 // Power-down hours
	PWRDNDATE = 0x1A // Power-down day of month
	PWRDNMTH  = 0x1B // Power-down month, weekday in bits 7:5
	PWRUPMIN  = 0x1C // Power-up minutes
	PWRUPHOUR = 0x1D // Power-up hours
	PWRUPDATE = 0x1E // Power-up day of month
	PWRUPMTH  = 0x1F // Power-up month, weekday in bits 7:5
)

// RTCSEC bits
const (
	stBit      = 0x80
	secTenMask = 0x70
)

// RTCMIN bits
const minTenMask = 0x70

// RTCHOUR bits
const (
	hourFormatBit = 0x40 // set selects 12-hour mode; the driver always writes 24-hour values
	hourTenMask   = 0x30
)

// RTCWKDAY bits
const (
	oscRunBit    = 0x20
	pwrFailBit   = 0x10
	vbatEnBit    = 0x08
	weekdayMask  = 0x07
	wkdayKeepBit = 0xF8
)

// RTCDATE bits
const dateTenMask = 0x30

// RTCMTH bits
const (
	leapYearBit = 0x20
	leapYearPos = 5
	mthTenMask  = 0x10
)

// RTCYEAR bits
const yearTenMask = 0xF0

// PWRxxMTH weekday field
const (
	pwrWeekdayMask = 0xE0
	pwrWeekdayPos  = 5
)

// CONTROL bits
const (
	outBit     = 0x80
	sqwEnBit   = 0x40
	alm1EnBit  = 0x20
	alm0EnBit  = 0x10
	extOscBit  = 0x08
	crsTrimBit = 0x04
	sqwFSMask  = 0x03
)

// OSCTRIM bits
const (
	trimSignBit = 0x80
	trimMask    = 0x7F
)
