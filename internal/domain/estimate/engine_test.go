package estimate

import (
	"github.com/burenotti/go_bodyfat_backend/internal/domain/measurement"
	"github.com/samber/lo"
	"math"
	"reflect"
	"testing"
)

const tolerance = 1e-6

func assertValue(t *testing.T, name string, got *float64, want float64) {
	t.Helper()
	if got == nil {
		t.Errorf("%s: expected %v, got absent", name, want)
		return
	}
	if math.Abs(*got-want) > tolerance {
		t.Errorf("%s: expected %v, got %v", name, want, *got)
	}
}

func assertAbsent(t *testing.T, name string, got *float64) {
	t.Helper()
	if got != nil {
		t.Errorf("%s: expected absent, got %v", name, *got)
	}
}

func maleRecord() measurement.Record {
	return measurement.Record{
		Sex:      lo.ToPtr(measurement.Male),
		AgeYears: lo.ToPtr(30.0),
		WeightKg: lo.ToPtr(80.0),
		HeightCm: lo.ToPtr(180.0),
		NeckCm:   lo.ToPtr(38.0),
		WaistCm:  lo.ToPtr(85.0),
	}
}

func femaleRecord() measurement.Record {
	return measurement.Record{
		Sex:      lo.ToPtr(measurement.Female),
		AgeYears: lo.ToPtr(30.0),
		WeightKg: lo.ToPtr(65.0),
		HeightCm: lo.ToPtr(165.0),
		NeckCm:   lo.ToPtr(32.0),
		WaistCm:  lo.ToPtr(75.0),
		HipCm:    lo.ToPtr(100.0),
	}
}

func TestEstimateMaleReference(t *testing.T) {
	res, ok := Estimate(maleRecord())
	if !ok {
		t.Fatal("complete record must produce a result")
	}

	assertValue(t, "bmi", res.BMI, 24.691358024691358)
	assertValue(t, "bmi based", res.BMIBased, 20.329629629629622)
	assertValue(t, "navy", res.Navy, 16.106606138198572)
	assertValue(t, "rfm", res.RelativeFatMass, 21.647058823529413)
	assertValue(t, "cun-bae", res.CunBae, 21.597808565767416)
	assertValue(t, "ecore", res.Ecore, 21.88885438980752)

	mean := (*res.BMIBased + *res.Navy + *res.RelativeFatMass + *res.CunBae + *res.Ecore) / 5
	assertValue(t, "average", res.AverageBf, mean)
	assertValue(t, "average", res.AverageBf, 20.313991509386508)

	if c := res.Category(lo.ToPtr(measurement.Male)); c != Average {
		t.Errorf("expected %s, got %s", Average, c)
	}
}

func TestEstimateFemaleReference(t *testing.T) {
	res, ok := Estimate(femaleRecord())
	if !ok {
		t.Fatal("complete record must produce a result")
	}

	assertValue(t, "bmi", res.BMI, 23.875114784205696)
	assertValue(t, "bmi based", res.BMIBased, 30.150137741046834)
	assertValue(t, "navy", res.Navy, 29.930133752743814)
	assertValue(t, "rfm", res.RelativeFatMass, 32.0)
	assertValue(t, "cun-bae", res.CunBae, 32.43966968373105)
	assertValue(t, "ecore", res.Ecore, 32.58003468208683)
	assertValue(t, "average", res.AverageBf, 31.41999517192171)

	if c := res.Category(lo.ToPtr(measurement.Female)); c != Average {
		t.Errorf("expected %s, got %s", Average, c)
	}
}

func TestFemaleWithoutHip(t *testing.T) {
	r := femaleRecord()
	r.HipCm = nil

	if _, ok := Estimate(r); ok {
		t.Error("female record without hip is incomplete and must not be estimated")
	}

	res := Compute(r)
	assertAbsent(t, "navy", res.Navy)
	assertValue(t, "bmi based", res.BMIBased, 30.150137741046834)
	assertValue(t, "rfm", res.RelativeFatMass, 32.0)
	assertValue(t, "average", res.AverageBf, 31.79246052671618)
}

func TestIncompleteRecordHasNoResult(t *testing.T) {
	r := maleRecord()
	r.WaistCm = nil
	res, ok := Estimate(r)
	if ok {
		t.Fatal("incomplete record must not be estimated")
	}
	if !reflect.DeepEqual(res, Result{}) {
		t.Errorf("expected empty result, got %+v", res)
	}
}

// Reference values are the published equations evaluated by hand at round
// inputs: Deurenberg et al. 1991 (Br J Nutr 65:105), Hodgdon and Beckett 1984
// (NHRC report 84-11), Woolcott and Bergman 2018 (Sci Rep 8:10980),
// Gomez-Ambrosi et al. 2012 (Diabetes Care 35:383) and Molina-Luque et al. 2019
// (Int J Environ Res Public Health, ECORE-BF). The Navy rows use log10(100) = 2
// so that no logarithm has to be looked up.
func TestPublishedEquations(t *testing.T) {
	eval := func(v float64, ok bool) *float64 {
		if !ok {
			return nil
		}
		return &v
	}

	tests := []struct {
		name string
		got  *float64
		want float64
	}{
		// 1.2*25 + 0.23*40 - 10.8 - 5.4
		{"deurenberg male", eval(Deurenberg(25, 40, measurement.Male)), 23.0},
		// 1.2*25 + 0.23*40 - 5.4
		{"deurenberg female", eval(Deurenberg(25, 40, measurement.Female)), 33.8},
		// 495 / (1.0324 - 0.19077*2 + 0.15456*2) - 450 = 495/0.95998 - 450
		{"navy male", eval(NavyMale(100, 40, 140)), 495/0.95998 - 450},
		// 495 / (1.29579 - 0.35004*2 + 0.22100*2) - 450 = 495/1.03771 - 450
		{"navy female", eval(NavyFemale(100, 50, 80, 70)), 495/1.03771 - 450},
		// 64 - 20*180/90
		{"rfm male", eval(RelativeFatMass(180, 90, measurement.Male)), 24.0},
		// 64 - 20*160/80 + 12
		{"rfm female", eval(RelativeFatMass(160, 80, measurement.Female)), 36.0},
		// -44.988 + 20.12 + 79.3 - 16.25 - 20 + 5.25
		{"cun-bae male", eval(CunBae(25, 40, measurement.Male)), 23.432},
		// male value + 10.689 + 0.181*25 - 0.005*625
		{"cun-bae female", eval(CunBae(25, 40, measurement.Female)), 35.521},
		// -97.102 + 0.123*40 + 35.959*ln(25), ln(25) = 3.2188758248682006
		{"ecore male", eval(Ecore(25, 40, measurement.Male)), -97.102 + 4.92 + 35.959*3.2188758248682006},
		{"ecore female", eval(Ecore(25, 40, measurement.Female)), -97.102 + 4.92 + 11.9 + 35.959*3.2188758248682006},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValue(t, tt.name, tt.got, tt.want)
		})
	}
}

// CUN-BAE and ECORE-BF flag female subjects with 1, Deurenberg flags male
// subjects with 1. The female minus male gap is fixed by the coefficients.
func TestSexIndicatorPolarity(t *testing.T) {
	gap := func(f func(bmi, age float64, sex measurement.Sex) (float64, bool), bmi float64) float64 {
		male, _ := f(bmi, 30, measurement.Male)
		female, _ := f(bmi, 30, measurement.Female)
		return female - male
	}

	bmi := 80 / (1.8 * 1.8)
	if got := gap(Deurenberg, bmi); math.Abs(got-10.8) > tolerance {
		t.Errorf("deurenberg gap = %v, want 10.8", got)
	}
	if got := gap(Ecore, bmi); math.Abs(got-11.9) > tolerance {
		t.Errorf("ecore gap = %v, want 11.9", got)
	}
	if got, want := gap(CunBae, bmi), 10.689+0.181*bmi-0.005*bmi*bmi; math.Abs(got-want) > tolerance {
		t.Errorf("cun-bae gap = %v, want %v", got, want)
	}
}

func TestPreconditions(t *testing.T) {
	if _, ok := BMI(80, 0); ok {
		t.Error("bmi needs a positive height")
	}
	if _, ok := NavyMale(180, 90, 85); ok {
		t.Error("navy needs waist larger than neck")
	}
	if _, ok := NavyMale(0, 38, 85); ok {
		t.Error("navy needs a positive height")
	}
	if _, ok := NavyFemale(165, 200, 40, 50); ok {
		t.Error("navy needs a positive waist+hip-neck")
	}
	if _, ok := RelativeFatMass(180, 0, measurement.Male); ok {
		t.Error("rfm needs a positive waist")
	}
	if _, ok := Ecore(0, 30, measurement.Male); ok {
		t.Error("ecore needs a positive bmi")
	}
}

func TestResultsAreClampedAtZero(t *testing.T) {
	r := measurement.Record{
		Sex:      lo.ToPtr(measurement.Male),
		AgeYears: lo.ToPtr(20.0),
		WeightKg: lo.ToPtr(50.0),
		HeightCm: lo.ToPtr(180.0),
		NeckCm:   lo.ToPtr(40.0),
		WaistCm:  lo.ToPtr(60.0),
	}
	res, ok := Estimate(r)
	if !ok {
		t.Fatal("expected a result")
	}
	assertValue(t, "navy", res.Navy, 0)
	for i, v := range res.Estimates() {
		if v == nil {
			t.Errorf("estimate %d unexpectedly absent", i)
			continue
		}
		if *v < 0 {
			t.Errorf("estimate %d is negative: %v", i, *v)
		}
	}

	for _, age := range []float64{15, 40, 100} {
		for _, w := range []float64{30, 70, 300} {
			for _, h := range []float64{100, 175, 250} {
				for _, waist := range []float64{40, 90, 200} {
					for _, sex := range []measurement.Sex{measurement.Male, measurement.Female} {
						res := Compute(measurement.Record{
							Sex:      lo.ToPtr(sex),
							AgeYears: lo.ToPtr(age),
							WeightKg: lo.ToPtr(w),
							HeightCm: lo.ToPtr(h),
							NeckCm:   lo.ToPtr(20.0),
							WaistCm:  lo.ToPtr(waist),
							HipCm:    lo.ToPtr(50.0),
						})
						for _, v := range res.Estimates() {
							if v != nil && (*v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0)) {
								t.Fatalf("invalid estimate %v for age=%v w=%v h=%v waist=%v", *v, age, w, h, waist)
							}
						}
					}
				}
			}
		}
	}
}

func TestEstimateIsIdempotent(t *testing.T) {
	r := femaleRecord()
	a, _ := Estimate(r)
	b, _ := Estimate(r)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("results differ: %+v vs %+v", a, b)
	}
	for i := range a.Estimates() {
		if math.Float64bits(*a.Estimates()[i]) != math.Float64bits(*b.Estimates()[i]) {
			t.Errorf("estimate %d is not bit identical", i)
		}
	}
}

func TestMean(t *testing.T) {
	if Mean() != nil || Mean(nil, nil) != nil {
		t.Error("mean of nothing must be absent")
	}
	got := Mean(lo.ToPtr(10.0), nil, lo.ToPtr(20.0))
	assertValue(t, "mean", got, 15)
}
