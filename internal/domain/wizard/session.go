package wizard

import (
	"errors"
	"fmt"
	"github.com/burenotti/go_bodyfat_backend/internal/domain"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/estimate"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/measurement"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/units"
	"github.com/samber/lo"
	"time"
)

var (
	ErrWrongStep    = errors.New("step is not active")
	ErrNotAnswered  = errors.New("answer is missing")
	ErrNotLoading   = errors.New("results are not being prepared")
	ErrCannotGoBack = errors.New("no previous step")
)

const (
	EventCompleted = "wizard.completed"
	EventReset     = "wizard.reset"
)

type CompletedEvent struct {
	domain.BaseEvent
	SessionID string
	Record    measurement.Record
}

func (*CompletedEvent) Type() string {
	return EventCompleted
}

type ResetEvent struct {
	domain.BaseEvent
	SessionID string
}

func (*ResetEvent) Type() string {
	return EventReset
}

// Session is one pass through the questionnaire. It keeps the draft record in
// canonical metric units regardless of the unit system answers are entered in.
type Session struct {
	domain.Aggregate
	ID        string
	Locale    string
	Units     measurement.UnitSystem
	CreatedAt time.Time
	UpdatedAt time.Time

	step   Step
	record measurement.Record
	result *estimate.Result
}

func NewSession(id, locale string, system measurement.UnitSystem) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Locale:    locale,
		Units:     system,
		CreatedAt: now,
		UpdatedAt: now,
		step:      StepWelcome,
	}
}

func (s *Session) Step() Step {
	return s.step
}

func (s *Session) Record() measurement.Record {
	return s.record
}

// Result is nil until the session reaches the results step.
func (s *Session) Result() *estimate.Result {
	return s.result
}

func (s *Session) Steps() []Step {
	return Steps(s.record.Sex)
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}

func (s *Session) expect(step Step) error {
	if s.step != step {
		return fmt.Errorf("%w: %s, current step is %s", ErrWrongStep, step, s.step)
	}
	return nil
}

// Next leaves the welcome step.
func (s *Session) Next() error {
	if err := s.expect(StepWelcome); err != nil {
		return err
	}
	s.step = StepSex
	s.touch()
	return nil
}

// Answer validates raw input for the active step, stores it and advances.
// Height in the imperial system takes feet and inches as two values.
func (s *Session) Answer(step Step, raw ...string) error {
	if err := s.expect(step); err != nil {
		return err
	}
	if !step.IsQuestion() {
		return fmt.Errorf("%w: %s does not take answers", ErrWrongStep, step)
	}
	if len(raw) == 0 {
		return ErrNotAnswered
	}

	if step == StepSex {
		sex, err := measurement.ParseSex(raw[0])
		if err != nil {
			return err
		}
		s.record.Sex = lo.ToPtr(sex)
		if sex != measurement.Female {
			s.record.HipCm = nil
		}
		s.advance()
		return nil
	}

	if step == StepHeight && s.Units == measurement.Imperial {
		cm, err := s.parseFeetInches(raw)
		if err != nil {
			return err
		}
		s.record.HeightCm = lo.ToPtr(cm)
		s.advance()
		return nil
	}

	field, _ := step.Field()
	v, err := s.parse(field, raw[0])
	if err != nil {
		return err
	}

	switch field {
	case measurement.FieldAge:
		s.record.AgeYears = lo.ToPtr(v)
	case measurement.FieldWeight:
		s.record.WeightKg = lo.ToPtr(v)
	case measurement.FieldHeight:
		s.record.HeightCm = lo.ToPtr(v)
	case measurement.FieldNeck:
		s.record.NeckCm = lo.ToPtr(v)
	case measurement.FieldWaist:
		s.record.WaistCm = lo.ToPtr(v)
	case measurement.FieldHip:
		s.record.HipCm = lo.ToPtr(v)
	}
	s.advance()
	return nil
}

func (s *Session) parse(field measurement.Field, raw string) (float64, error) {
	v, err := field.Parse(s.Units, raw)
	if errors.Is(err, measurement.ErrPending) {
		return 0, &measurement.FieldError{Field: field, Err: ErrNotAnswered}
	}
	if err != nil {
		return 0, &measurement.FieldError{Field: field, Err: err}
	}
	return v, nil
}

func (s *Session) parseFeetInches(raw []string) (float64, error) {
	if len(raw) < 2 {
		return 0, &measurement.FieldError{Field: measurement.FieldHeightInches, Err: ErrNotAnswered}
	}
	ft, err := s.parse(measurement.FieldHeightFeet, raw[0])
	if err != nil {
		return 0, err
	}
	in, err := s.parse(measurement.FieldHeightInches, raw[1])
	if err != nil {
		return 0, err
	}
	cm, _ := units.FtInToCm(&ft, &in)
	if err := measurement.CheckHeightCm(cm); err != nil {
		return 0, err
	}
	return cm, nil
}

func (s *Session) advance() {
	_, next := neighbours(s.record.Sex, s.step)
	s.step = next
	s.touch()
	if next == StepLoading {
		s.result = nil
		s.PushEvent(&CompletedEvent{
			BaseEvent: domain.NewBaseEvent(),
			SessionID: s.ID,
			Record:    s.record,
		})
	}
}

// Back returns to the previous applicable step, keeping the answers given so far.
func (s *Session) Back() error {
	prev, _ := neighbours(s.record.Sex, s.step)
	if prev == "" {
		return ErrCannotGoBack
	}
	// Loading is transient, so leaving results lands on the last question.
	if prev == StepLoading {
		prev, _ = neighbours(s.record.Sex, StepLoading)
	}
	s.step = prev
	s.result = nil
	s.touch()
	return nil
}

// Reveal stores the computed result and shows it.
func (s *Session) Reveal(result estimate.Result) error {
	if s.step != StepLoading {
		return ErrNotLoading
	}
	s.result = &result
	s.step = StepResults
	s.touch()
	return nil
}

// Reset clears every answer and returns to the welcome step.
func (s *Session) Reset() {
	s.step = StepWelcome
	s.record = measurement.Record{}
	s.result = nil
	s.touch()
	s.PushEvent(&ResetEvent{
		BaseEvent: domain.NewBaseEvent(),
		SessionID: s.ID,
	})
}
