package mcp7940

import "errors"

var (
	ErrTrimMismatch      = errors.New("mcp7940: OSCTRIM readback mismatch")
	ErrInvalidTime       = errors.New("mcp7940: invalid time")
	ErrInvalidDate       = errors.New("mcp7940: invalid date")
	ErrWeekdayRange      = errors.New("mcp7940: weekday out of range")
	ErrNotOutputMode     = errors.New("mcp7940: MFP is not configured as output")
	ErrOscillatorTimeout = errors.New("mcp7940: oscillator did not start")
)

// DateTimeError is returned by SetDateTime when either half failed. Both
// results are kept so callers can tell which write was rejected.
type DateTimeError struct {
	Time error
	Date error
}

func (e *DateTimeError) Error() string {
	switch {
	case e.Time != nil && e.Date != nil:
		return e.Time.Error() + "; " + e.Date.Error()
	case e.Time != nil:
		return e.Time.Error()
	case e.Date != nil:
		return e.Date.Error()
	}
	return "mcp7940: datetime"
}

func (e *DateTimeError) Unwrap() []error {
	var errs []error
	if e.Time != nil {
		errs = append(errs, e.Time)
	}
	if e.Date != nil {
		errs = append(errs, e.Date)
	}
	return errs
}
