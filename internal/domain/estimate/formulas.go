package estimate

import (
	"github.com/burenotti/go_bodyfat_backend/internal/domain/measurement"
	"math"
)

// Every formula returns ok=false when its precondition does not hold and
// floors its result at zero otherwise.

func maleIndicator(sex measurement.Sex) float64 {
	if sex == measurement.Male {
		return 1
	}
	return 0
}

// femaleIndicator is the sex term of CUN-BAE and ECORE-BF, which use the
// opposite polarity to Deurenberg.
func femaleIndicator(sex measurement.Sex) float64 {
	if sex == measurement.Female {
		return 1
	}
	return 0
}

func clamp(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return math.Max(0, v), true
}

func BMI(weightKg, heightCm float64) (float64, bool) {
	if heightCm <= 0 {
		return 0, false
	}
	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)
	if math.IsNaN(bmi) || math.IsInf(bmi, 0) {
		return 0, false
	}
	return bmi, true
}

// Deurenberg is the BMI based estimate.
func Deurenberg(bmi, age float64, sex measurement.Sex) (float64, bool) {
	return clamp(1.20*bmi + 0.23*age - 10.8*maleIndicator(sex) - 5.4)
}

func NavyMale(heightCm, neckCm, waistCm float64) (float64, bool) {
	waistMinusNeck := waistCm - neckCm
	if waistMinusNeck <= 0 || heightCm <= 0 {
		return 0, false
	}
	return clamp(495/(1.0324-0.19077*math.Log10(waistMinusNeck)+0.15456*math.Log10(heightCm)) - 450)
}

func NavyFemale(heightCm, neckCm, waistCm, hipCm float64) (float64, bool) {
	sum := waistCm + hipCm - neckCm
	if sum <= 0 || heightCm <= 0 {
		return 0, false
	}
	return clamp(495/(1.29579-0.35004*math.Log10(sum)+0.22100*math.Log10(heightCm)) - 450)
}

func RelativeFatMass(heightCm, waistCm float64, sex measurement.Sex) (float64, bool) {
	if heightCm <= 0 || waistCm <= 0 {
		return 0, false
	}
	ratio := heightCm / waistCm
	if sex == measurement.Female {
		return clamp(76 - 20*ratio)
	}
	return clamp(64 - 20*ratio)
}

func CunBae(bmi, age float64, sex measurement.Sex) (float64, bool) {
	f := femaleIndicator(sex)
	bmi2 := bmi * bmi
	return clamp(-44.988 +
		0.503*age +
		10.689*f +
		3.172*bmi -
		0.026*bmi2 +
		0.181*bmi*f -
		0.02*bmi*age -
		0.005*bmi2*f +
		0.00021*bmi2*age)
}

func Ecore(bmi, age float64, sex measurement.Sex) (float64, bool) {
	if bmi <= 0 {
		return 0, false
	}
	return clamp(-97.102 + 0.123*age + 11.900*femaleIndicator(sex) + 35.959*math.Log(bmi))
}
