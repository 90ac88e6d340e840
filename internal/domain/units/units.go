package units

import (
	"github.com/shopspring/decimal"
	"math"
)

const (
	LbsPerKg      = 2.20462
	CmPerInch     = 2.54
	InchesPerFoot = 12
)

func KgToLbs(kg float64) float64 {
	return kg * LbsPerKg
}

func LbsToKg(lbs float64) float64 {
	return lbs / LbsPerKg
}

func CmToIn(cm float64) float64 {
	return cm / CmPerInch
}

func InToCm(in float64) float64 {
	return in * CmPerInch
}

// FeetInches is a height split into whole feet and remaining inches.
// Inches may read 12.0 at boundary values because of rounding.
type FeetInches struct {
	Feet   int
	Inches float64
}

func CmToFtIn(cm float64) FeetInches {
	totalInches := CmToIn(cm)
	return FeetInches{
		Feet:   int(math.Floor(totalInches / InchesPerFoot)),
		Inches: Round(math.Mod(totalInches, InchesPerFoot), 1),
	}
}

// FtInToCm returns false when either component is missing.
func FtInToCm(ft, in *float64) (float64, bool) {
	if ft == nil || in == nil {
		return 0, false
	}
	return (*ft*InchesPerFoot + *in) * CmPerInch, true
}

func Round(num float64, decimals int32) float64 {
	return decimal.NewFromFloat(num).Round(decimals).InexactFloat64()
}

// Ceil rounds num towards positive infinity.
func Ceil(num float64, decimals int32) float64 {
	return decimal.NewFromFloat(num).RoundCeil(decimals).InexactFloat64()
}

// Floor rounds num towards negative infinity.
func Floor(num float64, decimals int32) float64 {
	return decimal.NewFromFloat(num).RoundFloor(decimals).InexactFloat64()
}

// FormatForInput renders num rounded to decimals places without trailing zeros.
// Negative zero is rendered as "0".
func FormatForInput(num float64, decimals int32) string {
	d := decimal.NewFromFloat(num).Round(decimals)
	if d.IsZero() {
		return "0"
	}
	return d.String()
}
