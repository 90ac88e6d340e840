package measurement

import (
	"errors"
	"fmt"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/units"
)

var (
	ErrUnknownField = errors.New("unknown field")
)

type Field string

const (
	FieldAge          Field = "age"
	FieldWeight       Field = "weight"
	FieldHeight       Field = "height"
	FieldHeightFeet   Field = "height_feet"
	FieldHeightInches Field = "height_inches"
	FieldNeck         Field = "neck"
	FieldWaist        Field = "waist"
	FieldHip          Field = "hip"
)

type Bounds struct {
	Min float64
	Max float64
}

// metricBounds is stored in canonical units: years, kg, cm. The feet and
// inches rows are already imperial.
var metricBounds = map[Field]Bounds{
	FieldAge:          {Min: 15, Max: 100},
	FieldWeight:       {Min: 30, Max: 300},
	FieldHeight:       {Min: 100, Max: 250},
	FieldHeightFeet:   {Min: 3, Max: 8},
	FieldHeightInches: {Min: 0, Max: 11.9},
	FieldNeck:         {Min: 20, Max: 70},
	FieldWaist:        {Min: 40, Max: 200},
	FieldHip:          {Min: 50, Max: 200},
}

func ParseField(s string) (Field, error) {
	f := Field(s)
	if _, ok := metricBounds[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
	return f, nil
}

func (f Field) isLength() bool {
	switch f {
	case FieldHeight, FieldNeck, FieldWaist, FieldHip:
		return true
	default:
		return false
	}
}

// Bounds returns the field's domain in the given unit system. Imperial bounds
// have one decimal, the precision they are displayed with, and are rounded
// inwards so that they never admit a value outside the metric domain.
func (f Field) Bounds(system UnitSystem) (Bounds, error) {
	b, ok := metricBounds[f]
	if !ok {
		return Bounds{}, fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	if system != Imperial {
		return b, nil
	}

	switch {
	case f == FieldWeight:
		return Bounds{
			Min: units.Ceil(units.KgToLbs(b.Min), 1),
			Max: units.Floor(units.KgToLbs(b.Max), 1),
		}, nil
	case f.isLength():
		return Bounds{
			Min: units.Ceil(units.CmToIn(b.Min), 1),
			Max: units.Floor(units.CmToIn(b.Max), 1),
		}, nil
	default:
		return b, nil
	}
}

// ToMetric converts a value entered in system into the field's canonical unit.
// Feet and inches are returned as is; combine them with units.FtInToCm.
func (f Field) ToMetric(system UnitSystem, v float64) float64 {
	if system != Imperial {
		return v
	}
	switch {
	case f == FieldWeight:
		return units.LbsToKg(v)
	case f.isLength():
		return units.InToCm(v)
	default:
		return v
	}
}

// FromMetric is the inverse of ToMetric, used to prefill inputs.
func (f Field) FromMetric(system UnitSystem, v float64) float64 {
	if system != Imperial {
		return v
	}
	switch {
	case f == FieldWeight:
		return units.KgToLbs(v)
	case f.isLength():
		return units.CmToIn(v)
	default:
		return v
	}
}
