package measurement

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSex        = errors.New("unknown sex")
	ErrUnknownUnitSystem = errors.New("unknown unit system")
)

type Sex string

const (
	Male   Sex = "male"
	Female Sex = "female"
)

func ParseSex(s string) (Sex, error) {
	switch Sex(s) {
	case Male, Female:
		return Sex(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSex, s)
	}
}

// UnitSystem selects how weights and lengths are entered and displayed.
// Imperial heights are entered as feet and inches.
type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

func ParseUnitSystem(s string) (UnitSystem, error) {
	switch UnitSystem(s) {
	case Metric, Imperial:
		return UnitSystem(s), nil
	case "":
		return Metric, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownUnitSystem, s)
	}
}

// Record holds canonical metric measurements. A nil field has not been collected yet.
// Records are values: build a new one instead of patching an existing one.
type Record struct {
	Sex      *Sex
	AgeYears *float64
	WeightKg *float64
	HeightCm *float64
	NeckCm   *float64
	WaistCm  *float64
	HipCm    *float64
}

func (r Record) IsFemale() bool {
	return r.Sex != nil && *r.Sex == Female
}

// Complete reports whether every field required for the subject's sex is present.
// Hip is only required for female subjects.
func (r Record) Complete() bool {
	if r.Sex == nil || r.AgeYears == nil || r.WeightKg == nil || r.HeightCm == nil ||
		r.NeckCm == nil || r.WaistCm == nil {
		return false
	}
	if r.IsFemale() && r.HipCm == nil {
		return false
	}
	return true
}

// Snapshot is a flat, comparable view of a record. Missing values are zero.
type Snapshot struct {
	Sex      string  `diff:"sex"`
	AgeYears float64 `diff:"age"`
	WeightKg float64 `diff:"weight"`
	HeightCm float64 `diff:"height"`
	NeckCm   float64 `diff:"neck"`
	WaistCm  float64 `diff:"waist"`
	HipCm    float64 `diff:"hip"`
}

func (r Record) Snapshot() Snapshot {
	s := Snapshot{
		AgeYears: deref(r.AgeYears),
		WeightKg: deref(r.WeightKg),
		HeightCm: deref(r.HeightCm),
		NeckCm:   deref(r.NeckCm),
		WaistCm:  deref(r.WaistCm),
	}
	if r.Sex != nil {
		s.Sex = string(*r.Sex)
	}
	if r.IsFemale() {
		s.HipCm = deref(r.HipCm)
	}
	return s
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
