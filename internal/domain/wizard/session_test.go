package wizard

import (
	"errors"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/estimate"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/measurement"
	"math"
	"testing"
)

func mustAnswer(t *testing.T, s *Session, step Step, raw ...string) {
	t.Helper()
	if err := s.Answer(step, raw...); err != nil {
		t.Fatalf("answer %s: %v", step, err)
	}
}

func assertStep(t *testing.T, s *Session, want Step) {
	t.Helper()
	if s.Step() != want {
		t.Fatalf("expected step %s, got %s", want, s.Step())
	}
}

func walkMale(t *testing.T, s *Session) {
	t.Helper()
	if err := s.Next(); err != nil {
		t.Fatal(err)
	}
	mustAnswer(t, s, StepSex, "male")
	mustAnswer(t, s, StepAge, "30")
	mustAnswer(t, s, StepWeight, "80")
	mustAnswer(t, s, StepHeight, "180")
	mustAnswer(t, s, StepNeck, "38")
	mustAnswer(t, s, StepWaist, "85")
}

func TestMaleSkipsHip(t *testing.T) {
	s := NewSession("s1", "en", measurement.Metric)
	walkMale(t, s)
	assertStep(t, s, StepLoading)

	if !s.Record().Complete() {
		t.Fatal("record should be complete")
	}

	events := s.PopEvents()
	if len(events) != 1 || events[0].Type() != EventCompleted {
		t.Fatalf("expected one completed event, got %v", events)
	}
	if len(s.PopEvents()) != 0 {
		t.Error("events must be popped once")
	}
}

func TestFemaleAnswersHip(t *testing.T) {
	s := NewSession("s2", "en", measurement.Metric)
	_ = s.Next()
	mustAnswer(t, s, StepSex, "female")
	mustAnswer(t, s, StepAge, "30")
	mustAnswer(t, s, StepWeight, "65")
	mustAnswer(t, s, StepHeight, "165")
	mustAnswer(t, s, StepNeck, "32")
	mustAnswer(t, s, StepWaist, "75")
	assertStep(t, s, StepHip)
	mustAnswer(t, s, StepHip, "100")
	assertStep(t, s, StepLoading)
}

func TestBackSkipsHipForMale(t *testing.T) {
	s := NewSession("s3", "en", measurement.Metric)
	walkMale(t, s)

	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	assertStep(t, s, StepWaist)
	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	assertStep(t, s, StepNeck)

	for s.Step() != StepWelcome {
		if err := s.Back(); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Back(); !errors.Is(err, ErrCannotGoBack) {
		t.Errorf("expected ErrCannotGoBack, got %v", err)
	}
	if !s.Record().Complete() {
		t.Error("going back must keep answers")
	}
}

func TestBackFromResultsLandsOnLastQuestion(t *testing.T) {
	s := NewSession("s4", "en", measurement.Metric)
	walkMale(t, s)
	res, _ := estimate.Estimate(s.Record())
	if err := s.Reveal(res); err != nil {
		t.Fatal(err)
	}
	assertStep(t, s, StepResults)
	if s.Result() == nil {
		t.Fatal("result should be stored")
	}

	if err := s.Back(); err != nil {
		t.Fatal(err)
	}
	assertStep(t, s, StepWaist)
	if s.Result() != nil {
		t.Error("result should be cleared when leaving results")
	}
}

func TestSwitchingToMaleDropsHip(t *testing.T) {
	s := NewSession("s5", "en", measurement.Metric)
	_ = s.Next()
	mustAnswer(t, s, StepSex, "female")
	mustAnswer(t, s, StepAge, "30")
	mustAnswer(t, s, StepWeight, "65")
	mustAnswer(t, s, StepHeight, "165")
	mustAnswer(t, s, StepNeck, "32")
	mustAnswer(t, s, StepWaist, "75")
	mustAnswer(t, s, StepHip, "100")

	for s.Step() != StepSex {
		_ = s.Back()
	}
	mustAnswer(t, s, StepSex, "male")
	if s.Record().HipCm != nil {
		t.Error("hip must be dropped for male subjects")
	}
}

func TestAnswerValidation(t *testing.T) {
	s := NewSession("s6", "en", measurement.Metric)
	if err := s.Answer(StepAge, "30"); !errors.Is(err, ErrWrongStep) {
		t.Errorf("expected ErrWrongStep, got %v", err)
	}
	_ = s.Next()
	if err := s.Next(); !errors.Is(err, ErrWrongStep) {
		t.Errorf("next is only allowed on welcome, got %v", err)
	}
	if err := s.Answer(StepSex, "robot"); !errors.Is(err, measurement.ErrUnknownSex) {
		t.Errorf("expected ErrUnknownSex, got %v", err)
	}
	mustAnswer(t, s, StepSex, "male")

	if err := s.Answer(StepAge, "14"); !errors.Is(err, measurement.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
	if err := s.Answer(StepAge, "old"); !errors.Is(err, measurement.ErrInvalidNumber) {
		t.Errorf("expected ErrInvalidNumber, got %v", err)
	}
	if err := s.Answer(StepAge, ""); !errors.Is(err, ErrNotAnswered) {
		t.Errorf("expected ErrNotAnswered, got %v", err)
	}
	if err := s.Answer(StepAge); !errors.Is(err, ErrNotAnswered) {
		t.Errorf("expected ErrNotAnswered, got %v", err)
	}
	assertStep(t, s, StepAge)
	mustAnswer(t, s, StepAge, "15,5")
	if *s.Record().AgeYears != 15.5 {
		t.Errorf("unexpected age %v", *s.Record().AgeYears)
	}
}

func TestImperialAnswersAreStoredInMetric(t *testing.T) {
	s := NewSession("s7", "en", measurement.Imperial)
	_ = s.Next()
	mustAnswer(t, s, StepSex, "male")
	mustAnswer(t, s, StepAge, "30")
	mustAnswer(t, s, StepWeight, "176.37")

	if err := s.Answer(StepHeight, "5"); !errors.Is(err, ErrNotAnswered) {
		t.Errorf("imperial height needs feet and inches, got %v", err)
	}
	if err := s.Answer(StepHeight, "5", "12"); !errors.Is(err, measurement.ErrOutOfRange) {
		t.Errorf("12 inches is out of range, got %v", err)
	}
	mustAnswer(t, s, StepHeight, "5", "10")
	mustAnswer(t, s, StepNeck, "15")

	r := s.Record()
	if math.Abs(*r.WeightKg-80) > 0.01 {
		t.Errorf("weight = %v kg", *r.WeightKg)
	}
	if math.Abs(*r.HeightCm-177.8) > 1e-9 {
		t.Errorf("height = %v cm", *r.HeightCm)
	}
	if math.Abs(*r.NeckCm-38.1) > 1e-9 {
		t.Errorf("neck = %v cm", *r.NeckCm)
	}
}

func TestImperialHeightMustFitMetricDomain(t *testing.T) {
	s := NewSession("s9", "en", measurement.Imperial)
	_ = s.Next()
	mustAnswer(t, s, StepSex, "female")
	mustAnswer(t, s, StepAge, "30")
	mustAnswer(t, s, StepWeight, "143")

	tests := []struct {
		name   string
		ft, in string
	}{
		{"too tall", "8", "11.9"},
		{"too short", "3", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Answer(StepHeight, tt.ft, tt.in)
			if !errors.Is(err, measurement.ErrOutOfRange) {
				t.Fatalf("expected ErrOutOfRange, got %v", err)
			}
			var fieldErr *measurement.FieldError
			if !errors.As(err, &fieldErr) || fieldErr.Field != measurement.FieldHeight {
				t.Errorf("expected a height field error, got %v", err)
			}
			assertStep(t, s, StepHeight)
			if s.Record().HeightCm != nil {
				t.Error("rejected height must not be stored")
			}
		})
	}

	err := s.Answer(StepHeight, "5", "12")
	var fieldErr *measurement.FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Field != measurement.FieldHeightInches {
		t.Errorf("expected an inches field error, got %v", err)
	}

	mustAnswer(t, s, StepHeight, "3", "4")
	if h := *s.Record().HeightCm; math.Abs(h-101.6) > 1e-9 {
		t.Errorf("height = %v cm", h)
	}
}

func TestReset(t *testing.T) {
	s := NewSession("s8", "en", measurement.Metric)
	walkMale(t, s)
	_ = s.PopEvents()

	s.Reset()
	assertStep(t, s, StepWelcome)
	if s.Record() != (measurement.Record{}) {
		t.Error("reset must clear the record")
	}
	events := s.PopEvents()
	if len(events) != 1 || events[0].Type() != EventReset {
		t.Errorf("expected one reset event, got %v", events)
	}
}

func TestRevealOnlyWhileLoading(t *testing.T) {
	s := NewSession("s9", "en", measurement.Metric)
	if err := s.Reveal(estimate.Result{}); !errors.Is(err, ErrNotLoading) {
		t.Errorf("expected ErrNotLoading, got %v", err)
	}
}

func TestSteps(t *testing.T) {
	male := measurement.Male
	female := measurement.Female
	if len(Steps(&male)) != 9 {
		t.Errorf("male sequence: %v", Steps(&male))
	}
	if len(Steps(&female)) != 10 {
		t.Errorf("female sequence: %v", Steps(&female))
	}
	if len(Steps(nil)) != 9 {
		t.Errorf("unknown sex sequence: %v", Steps(nil))
	}
	if _, ok := ParseStep("hip"); !ok {
		t.Error("hip is a step")
	}
	if _, ok := ParseStep("dessert"); ok {
		t.Error("dessert is not a step")
	}
}
