package measurement

import (
	"errors"
	"fmt"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/units"
	"github.com/shopspring/decimal"
	"strings"
)

var (
	ErrInvalidNumber = errors.New("invalid number")
	ErrOutOfRange    = errors.New("value out of range")
	ErrPending       = errors.New("value not entered yet")
)

const (
	ReasonInvalidNumber = "invalid_number"
	ReasonOutOfRange    = "out_of_range"
)

// RangeError carries the bounds in the unit system they were checked in.
type RangeError struct {
	Min float64
	Max float64
}

func (e *RangeError) Error() string {
	min, max := e.Bounds()
	return fmt.Sprintf("%s: must be between %s and %s", ErrOutOfRange, min, max)
}

// Bounds returns the bounds formatted for display.
func (e *RangeError) Bounds() (min, max string) {
	return units.FormatForInput(e.Min, 1), units.FormatForInput(e.Max, 1)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// FieldError names the field a validation error belongs to.
type FieldError struct {
	Field Field
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// CheckHeightCm checks a height assembled from feet and inches against the
// metric height domain.
func CheckHeightCm(cm float64) error {
	if err := FieldHeight.Check(Metric, cm); err != nil {
		return &FieldError{Field: FieldHeight, Err: err}
	}
	return nil
}

// Reason classifies a validation error for callers that render their own messages.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrOutOfRange):
		return ReasonOutOfRange
	case errors.Is(err, ErrInvalidNumber):
		return ReasonInvalidNumber
	default:
		return ""
	}
}

// IsPending reports whether raw is still being typed: empty or a lone minus sign.
func IsPending(raw string) bool {
	s := strings.TrimSpace(raw)
	return s == "" || s == "-"
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Decimal{}, ErrInvalidNumber
	}
	return d, nil
}

// ValidateRange classifies raw against [min, max]. Pending input is not an error.
// A comma is accepted as the decimal separator.
func ValidateRange(min, max float64, raw string) error {
	if IsPending(raw) {
		return nil
	}

	d, err := parseDecimal(raw)
	if err != nil {
		return err
	}

	if d.LessThan(decimal.NewFromFloat(min)) || d.GreaterThan(decimal.NewFromFloat(max)) {
		return &RangeError{Min: min, Max: max}
	}
	return nil
}

func ValidateField(f Field, system UnitSystem, raw string) error {
	b, err := f.Bounds(system)
	if err != nil {
		return err
	}
	return ValidateRange(b.Min, b.Max, raw)
}

// Check classifies an already parsed value entered in system.
func (f Field) Check(system UnitSystem, v float64) error {
	b, err := f.Bounds(system)
	if err != nil {
		return err
	}
	if v < b.Min || v > b.Max {
		return &RangeError{Min: b.Min, Max: b.Max}
	}
	return nil
}

// Parse validates raw and returns the value converted to the field's canonical unit.
func (f Field) Parse(system UnitSystem, raw string) (float64, error) {
	if IsPending(raw) {
		return 0, ErrPending
	}
	if err := ValidateField(f, system, raw); err != nil {
		return 0, err
	}
	d, err := parseDecimal(raw)
	if err != nil {
		return 0, err
	}
	return f.ToMetric(system, d.InexactFloat64()), nil
}
