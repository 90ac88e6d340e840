package estimate

import (
	"github.com/burenotti/go_bodyfat_backend/internal/domain/measurement"
	"github.com/samber/lo"
)

// Result is the bundle of estimates for one record. Any field may be nil when
// the formula's inputs are missing or outside its domain.
type Result struct {
	BMI             *float64
	BMIBased        *float64
	Navy            *float64
	RelativeFatMass *float64
	CunBae          *float64
	Ecore           *float64
	AverageBf       *float64
}

// Estimates returns the five body fat estimates in a fixed order. BMI is not one of them.
func (r Result) Estimates() []*float64 {
	return []*float64{r.BMIBased, r.Navy, r.RelativeFatMass, r.CunBae, r.Ecore}
}

func (r Result) Category(sex *measurement.Sex) Category {
	return Categorize(r.AverageBf, sex)
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return lo.ToPtr(v)
}

// Estimate computes the result for a complete record. It returns false for an
// incomplete record instead of guessing.
func Estimate(r measurement.Record) (Result, bool) {
	if !r.Complete() {
		return Result{}, false
	}
	return Compute(r), true
}

// Compute evaluates every formula whose inputs are present in r, leaving the
// others absent.
func Compute(r measurement.Record) Result {
	var res Result
	if r.WeightKg != nil && r.HeightCm != nil {
		res.BMI = optional(BMI(*r.WeightKg, *r.HeightCm))
	}
	if r.Sex == nil {
		return res
	}
	sex := *r.Sex

	if res.BMI != nil && r.AgeYears != nil {
		res.BMIBased = optional(Deurenberg(*res.BMI, *r.AgeYears, sex))
		res.CunBae = optional(CunBae(*res.BMI, *r.AgeYears, sex))
		res.Ecore = optional(Ecore(*res.BMI, *r.AgeYears, sex))
	}

	if r.HeightCm != nil && r.NeckCm != nil && r.WaistCm != nil {
		switch sex {
		case measurement.Male:
			res.Navy = optional(NavyMale(*r.HeightCm, *r.NeckCm, *r.WaistCm))
		case measurement.Female:
			if r.HipCm != nil {
				res.Navy = optional(NavyFemale(*r.HeightCm, *r.NeckCm, *r.WaistCm, *r.HipCm))
			}
		}
	}

	if r.HeightCm != nil && r.WaistCm != nil {
		res.RelativeFatMass = optional(RelativeFatMass(*r.HeightCm, *r.WaistCm, sex))
	}

	res.AverageBf = Mean(res.Estimates()...)
	return res
}

// Mean is the mean of the present values, or nil if none are present.
func Mean(values ...*float64) *float64 {
	present := lo.Filter(values, func(v *float64, _ int) bool {
		return v != nil
	})
	if len(present) == 0 {
		return nil
	}
	sum := lo.Sum(lo.Map(present, func(v *float64, _ int) float64 {
		return *v
	}))
	return lo.ToPtr(sum / float64(len(present)))
}
