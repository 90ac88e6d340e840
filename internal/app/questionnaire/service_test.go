package questionnaire

import (
	"context"
	"errors"
	"github.com/burenotti/go_bodyfat_backend/internal/domain"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/estimate"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/measurement"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/wizard"
	"io"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"
)

type engineEstimator struct {
	calls int
	fail  bool
}

func (e *engineEstimator) Estimate(_ context.Context, r measurement.Record) (estimate.Result, error) {
	e.calls++
	if e.fail {
		return estimate.Result{}, errors.New("estimator unavailable")
	}
	res, ok := estimate.Estimate(r)
	if !ok {
		return estimate.Result{}, errors.New("incomplete")
	}
	return res, nil
}

type recordingBus struct {
	mu     sync.Mutex
	events []domain.Event
}

func (b *recordingBus) PublishEvents(events ...domain.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, events...)
	return nil
}

func (b *recordingBus) ofType(kind string) []domain.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []domain.Event
	for _, e := range b.events {
		if e.Type() == kind {
			out = append(out, e)
		}
	}
	return out
}

type gaugeStub struct {
	mu sync.Mutex
	n  int
}

func (g *gaugeStub) SetActiveSessions(n int) {
	g.mu.Lock()
	g.n = n
	g.mu.Unlock()
}

func newTestService(cfg Config) (*Service, *engineEstimator, *recordingBus) {
	est := &engineEstimator{}
	bus := &recordingBus{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(logger, est, bus, &gaugeStub{}, cfg), est, bus
}

func answerMale(t *testing.T, s *Service, id string) View {
	t.Helper()
	ctx := context.Background()
	if _, err := s.Next(ctx, id); err != nil {
		t.Fatal(err)
	}
	answers := []struct {
		step  wizard.Step
		value string
	}{
		{wizard.StepSex, "male"},
		{wizard.StepAge, "30"},
		{wizard.StepWeight, "80"},
		{wizard.StepHeight, "180"},
		{wizard.StepNeck, "38"},
		{wizard.StepWaist, "85"},
	}
	var view View
	for _, a := range answers {
		var err error
		if view, err = s.Answer(ctx, id, a.step, a.value); err != nil {
			t.Fatalf("answer %s: %v", a.step, err)
		}
	}
	return view
}

func waitForStep(t *testing.T, s *Service, id string, want wizard.Step) View {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		view, err := s.Get(context.Background(), id)
		if err != nil {
			t.Fatal(err)
		}
		if view.Step == want {
			return view
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("session never reached %s", want)
	return View{}
}

func TestQuestionnaireWithoutDelay(t *testing.T) {
	s, est, bus := newTestService(Config{})
	defer s.Close()

	view, err := s.Start(context.Background(), "en", measurement.Metric)
	if err != nil {
		t.Fatal(err)
	}
	if view.Step != wizard.StepWelcome || view.ID == "" {
		t.Fatalf("unexpected start view %+v", view)
	}

	view = answerMale(t, s, view.ID)
	if view.Step != wizard.StepResults {
		t.Fatalf("expected results, got %s", view.Step)
	}
	if view.Result == nil || view.Result.AverageBf == nil {
		t.Fatal("expected a result")
	}
	if est.calls != 1 {
		t.Errorf("expected one estimate, got %d", est.calls)
	}
	if len(bus.ofType(wizard.EventCompleted)) != 1 {
		t.Error("expected a completed event")
	}
}

func TestLoadingDelayRevealsResults(t *testing.T) {
	s, _, _ := newTestService(Config{LoadingDelay: 20 * time.Millisecond})
	defer s.Close()

	view, _ := s.Start(context.Background(), "en", measurement.Metric)
	after := answerMale(t, s, view.ID)
	if after.Step != wizard.StepLoading {
		t.Fatalf("expected loading, got %s", after.Step)
	}
	if after.Result != nil {
		t.Error("result must not be shown while loading")
	}

	revealed := waitForStep(t, s, view.ID, wizard.StepResults)
	if revealed.Result == nil {
		t.Error("expected a result after the delay")
	}
}

func TestBackCancelsLoading(t *testing.T) {
	s, _, _ := newTestService(Config{LoadingDelay: 30 * time.Millisecond})
	defer s.Close()
	ctx := context.Background()

	view, _ := s.Start(ctx, "en", measurement.Metric)
	answerMale(t, s, view.ID)

	back, err := s.Back(ctx, view.ID)
	if err != nil {
		t.Fatal(err)
	}
	if back.Step != wizard.StepWaist {
		t.Fatalf("expected waist, got %s", back.Step)
	}

	time.Sleep(80 * time.Millisecond)
	got, _ := s.Get(ctx, view.ID)
	if got.Step != wizard.StepWaist {
		t.Errorf("cancelled timer must not reveal results, step is %s", got.Step)
	}
}

func TestRevealSkipsDelay(t *testing.T) {
	s, _, _ := newTestService(Config{LoadingDelay: time.Hour})
	defer s.Close()
	ctx := context.Background()

	view, _ := s.Start(ctx, "en", measurement.Metric)
	answerMale(t, s, view.ID)

	got, err := s.Reveal(ctx, view.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Step != wizard.StepResults || got.Result == nil {
		t.Fatalf("unexpected view %+v", got)
	}

	if _, err := s.Reveal(ctx, view.ID); !errors.Is(err, wizard.ErrNotLoading) {
		t.Errorf("expected ErrNotLoading, got %v", err)
	}
}

func TestRevealRetriesFailedEstimate(t *testing.T) {
	s, est, _ := newTestService(Config{LoadingDelay: time.Hour})
	defer s.Close()
	ctx := context.Background()

	view, _ := s.Start(ctx, "en", measurement.Metric)
	_, _ = s.Next(ctx, view.ID)
	for _, a := range [][2]string{{"sex", "male"}, {"age", "30"}, {"weight", "80"}, {"height", "180"}, {"neck", "38"}} {
		step, _ := wizard.ParseStep(a[0])
		if _, err := s.Answer(ctx, view.ID, step, a[1]); err != nil {
			t.Fatal(err)
		}
	}

	est.fail = true
	if _, err := s.Answer(ctx, view.ID, wizard.StepWaist, "85"); err == nil {
		t.Fatal("expected the estimator failure")
	}

	est.fail = false
	got, err := s.Reveal(ctx, view.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Result == nil {
		t.Error("expected a result after retry")
	}
}

func TestRecomputeReportsChangedFields(t *testing.T) {
	s, _, bus := newTestService(Config{})
	defer s.Close()
	ctx := context.Background()

	view, _ := s.Start(ctx, "en", measurement.Metric)
	answerMale(t, s, view.ID)

	if _, err := s.Back(ctx, view.ID); err != nil {
		t.Fatal(err)
	}
	got, err := s.Answer(ctx, view.ID, wizard.StepWaist, "90")
	if err != nil {
		t.Fatal(err)
	}
	if got.Step != wizard.StepResults {
		t.Fatalf("expected results, got %s", got.Step)
	}

	events := bus.ofType(EventRecomputed)
	if len(events) != 1 {
		t.Fatalf("expected one recomputed event, got %d", len(events))
	}
	changed := events[0].(*RecomputedEvent).Changed
	if !slices.Equal(changed, []string{"waist"}) {
		t.Errorf("unexpected changed fields %v", changed)
	}
}

func TestResetClearsSession(t *testing.T) {
	s, _, bus := newTestService(Config{})
	defer s.Close()
	ctx := context.Background()

	view, _ := s.Start(ctx, "en", measurement.Metric)
	answerMale(t, s, view.ID)

	got, err := s.Reset(ctx, view.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Step != wizard.StepWelcome || got.Result != nil || got.Record.Complete() {
		t.Errorf("unexpected view after reset %+v", got)
	}
	if len(bus.ofType(wizard.EventReset)) != 1 {
		t.Error("expected a reset event")
	}

	answerMale(t, s, view.ID)
	if len(bus.ofType(EventRecomputed)) != 0 {
		t.Error("a fresh pass after reset is not a recompute")
	}
}

func TestUnknownSession(t *testing.T) {
	s, _, _ := newTestService(Config{})
	defer s.Close()

	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestCleanupDropsIdleSessions(t *testing.T) {
	s, _, _ := newTestService(Config{SessionTTL: time.Hour})
	defer s.Close()
	ctx := context.Background()

	view, _ := s.Start(ctx, "en", measurement.Metric)
	s.cleanup()
	if _, err := s.Get(ctx, view.ID); err != nil {
		t.Fatalf("fresh session must survive cleanup: %v", err)
	}

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	s.cleanup()
	if _, err := s.Get(ctx, view.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("idle session should be dropped, got %v", err)
	}
}

func TestCleanupInterval(t *testing.T) {
	tests := []struct {
		ttl  time.Duration
		want time.Duration
	}{
		{ttl: time.Nanosecond, want: time.Second},
		{ttl: time.Second, want: time.Second},
		{ttl: 10 * time.Second, want: 5 * time.Second},
		{ttl: 30 * time.Minute, want: time.Minute},
	}
	for _, tt := range tests {
		if got := cleanupInterval(tt.ttl); got != tt.want {
			t.Errorf("cleanupInterval(%v) = %v, want %v", tt.ttl, got, tt.want)
		}
	}
}

func TestTinySessionTTLAndRepeatedClose(t *testing.T) {
	s, _, _ := newTestService(Config{SessionTTL: time.Nanosecond})
	s.Close()
	s.Close()
}
