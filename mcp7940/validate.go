package mcp7940

// Validator vets caller supplied values before they are written to the
// device. Implementations return nil for acceptable input.
type Validator interface {
	ValidateTime(Time) error
	ValidateDate(Date) error
}

// RangeValidator checks each field against its register range only. It does
// not know month lengths: 31/02 passes.
type RangeValidator struct{}

func (RangeValidator) ValidateTime(t Time) error {
	if t.Hour > 23 || t.Minute > 59 || t.Second > 59 {
		return ErrInvalidTime
	}
	return nil
}

func (RangeValidator) ValidateDate(d Date) error {
	if d.Day < 1 || d.Day > 31 || d.Month < 1 || d.Month > 12 || d.Year > 99 {
		return ErrInvalidDate
	}
	return nil
}
