package wizard

import (
	"github.com/burenotti/go_bodyfat_backend/internal/domain/measurement"
)

type Step string

const (
	StepWelcome Step = "welcome"
	StepSex     Step = "sex"
	StepAge     Step = "age"
	StepWeight  Step = "weight"
	StepHeight  Step = "height"
	StepNeck    Step = "neck"
	StepWaist   Step = "waist"
	StepHip     Step = "hip"
	StepLoading Step = "loading"
	StepResults Step = "results"
)

var allSteps = []Step{
	StepWelcome,
	StepSex,
	StepAge,
	StepWeight,
	StepHeight,
	StepNeck,
	StepWaist,
	StepHip,
	StepLoading,
	StepResults,
}

// Steps returns the sequence that applies to a subject. The hip step is
// skipped unless the subject is female.
func Steps(sex *measurement.Sex) []Step {
	steps := make([]Step, 0, len(allSteps))
	for _, s := range allSteps {
		if s == StepHip && (sex == nil || *sex != measurement.Female) {
			continue
		}
		steps = append(steps, s)
	}
	return steps
}

func ParseStep(s string) (Step, bool) {
	for _, step := range allSteps {
		if string(step) == s {
			return step, true
		}
	}
	return "", false
}

// IsQuestion reports whether the step collects a measurement.
func (s Step) IsQuestion() bool {
	switch s {
	case StepWelcome, StepLoading, StepResults:
		return false
	default:
		return true
	}
}

// Field is the measurement collected at the step. Sex and the non-question
// steps have none.
func (s Step) Field() (measurement.Field, bool) {
	switch s {
	case StepAge:
		return measurement.FieldAge, true
	case StepWeight:
		return measurement.FieldWeight, true
	case StepHeight:
		return measurement.FieldHeight, true
	case StepNeck:
		return measurement.FieldNeck, true
	case StepWaist:
		return measurement.FieldWaist, true
	case StepHip:
		return measurement.FieldHip, true
	default:
		return "", false
	}
}

func neighbours(sex *measurement.Sex, current Step) (prev, next Step) {
	steps := Steps(sex)
	for i, s := range steps {
		if s != current {
			continue
		}
		if i > 0 {
			prev = steps[i-1]
		}
		if i < len(steps)-1 {
			next = steps[i+1]
		}
		return prev, next
	}
	return "", ""
}
