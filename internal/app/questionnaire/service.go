package questionnaire

import (
	"context"
	"errors"
	"github.com/burenotti/go_bodyfat_backend/internal/domain"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/estimate"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/measurement"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/wizard"
	"github.com/google/uuid"
	"log/slog"
	"sync"
	"time"
)

var (
	ErrSessionNotFound = errors.New("questionnaire session not found")
)

const (
	minCleanupInterval = time.Second
	maxCleanupInterval = time.Minute
)

type Estimator interface {
	Estimate(ctx context.Context, r measurement.Record) (estimate.Result, error)
}

type MessageBus interface {
	PublishEvents(events ...domain.Event) error
}

type SessionGauge interface {
	SetActiveSessions(n int)
}

type Config struct {
	// LoadingDelay is how long the loading step is shown before results.
	LoadingDelay time.Duration
	// SessionTTL drops sessions idle for longer. Zero keeps them until Close.
	SessionTTL time.Duration
}

type entry struct {
	session       *wizard.Session
	pending       *estimate.Result
	timer         *time.Timer
	generation    int
	lastCompleted *measurement.Snapshot
}

// View is a consistent copy of a session's state.
type View struct {
	ID        string
	Locale    string
	Units     measurement.UnitSystem
	Step      wizard.Step
	Steps     []wizard.Step
	Record    measurement.Record
	Result    *estimate.Result
	UpdatedAt time.Time
}

// Service hosts questionnaire sessions in memory. Sessions are never persisted.
// Lock order: the service mutex is never acquired while a session is locked.
type Service struct {
	logger    *slog.Logger
	estimator Estimator
	msgBus    MessageBus
	gauge     SessionGauge
	cfg       Config

	mu      sync.Mutex
	entries map[string]*entry
	stop    chan struct{}
	stopped sync.Once
	wg      sync.WaitGroup
	now     func() time.Time
}

func New(
	logger *slog.Logger,
	estimator Estimator,
	msgBus MessageBus,
	gauge SessionGauge,
	cfg Config,
) *Service {
	s := &Service{
		logger:    logger,
		estimator: estimator,
		msgBus:    msgBus,
		gauge:     gauge,
		cfg:       cfg,
		entries:   make(map[string]*entry),
		stop:      make(chan struct{}),
		now:       time.Now,
	}
	if cfg.SessionTTL > 0 {
		s.wg.Add(1)
		go s.cleanupLoop()
	}
	return s
}

func (s *Service) Start(_ context.Context, locale string, system measurement.UnitSystem) (View, error) {
	session := wizard.NewSession(uuid.NewString(), locale, system)

	s.mu.Lock()
	s.entries[session.ID] = &entry{session: session}
	n := len(s.entries)
	s.mu.Unlock()

	s.gauge.SetActiveSessions(n)
	s.logger.Debug("questionnaire started", "session_id", session.ID, "locale", locale, "units", system)

	session.Lock()
	defer session.Unlock()
	return viewOf(session), nil
}

func (s *Service) Get(_ context.Context, id string) (View, error) {
	return s.withSession(id, func(*entry) error {
		return nil
	})
}

func (s *Service) Next(_ context.Context, id string) (View, error) {
	return s.withSession(id, func(e *entry) error {
		return e.session.Next()
	})
}

// Answer stores the answer for the active step. Completing the last step
// computes the result right away and arms the loading timer.
func (s *Service) Answer(ctx context.Context, id string, step wizard.Step, raw ...string) (View, error) {
	var recomputed domain.Event
	view, err := s.withSession(id, func(e *entry) error {
		if err := e.session.Answer(step, raw...); err != nil {
			return err
		}
		if e.session.Step() != wizard.StepLoading {
			return nil
		}
		var err error
		recomputed, err = s.complete(ctx, e)
		return err
	})
	if recomputed != nil {
		s.publish(recomputed)
	}
	return view, err
}

func (s *Service) Back(_ context.Context, id string) (View, error) {
	return s.withSession(id, func(e *entry) error {
		if err := e.session.Back(); err != nil {
			return err
		}
		s.cancelLoading(e)
		return nil
	})
}

func (s *Service) Reset(_ context.Context, id string) (View, error) {
	return s.withSession(id, func(e *entry) error {
		s.cancelLoading(e)
		e.lastCompleted = nil
		e.session.Reset()
		return nil
	})
}

// Reveal skips the rest of the loading delay.
func (s *Service) Reveal(ctx context.Context, id string) (View, error) {
	return s.withSession(id, func(e *entry) error {
		if e.session.Step() != wizard.StepLoading {
			return wizard.ErrNotLoading
		}
		if e.pending == nil {
			result, err := s.estimator.Estimate(ctx, e.session.Record())
			if err != nil {
				return err
			}
			e.pending = &result
		}
		result := *e.pending
		s.cancelLoading(e)
		return e.session.Reveal(result)
	})
}

// Close cancels every loading timer and stops the cleanup loop. Calls after
// the first are no-ops.
func (s *Service) Close() {
	s.stopped.Do(s.close)
}

func (s *Service) close() {
	close(s.stop)
	s.wg.Wait()

	s.mu.Lock()
	entries := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.Unlock()

	for _, e := range entries {
		e.session.Lock()
		s.cancelLoading(e)
		e.session.Unlock()
	}
}

func (s *Service) lookup(id string) (*entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return e, nil
}

func (s *Service) withSession(id string, do func(e *entry) error) (View, error) {
	e, err := s.lookup(id)
	if err != nil {
		return View{}, err
	}

	e.session.Lock()
	err = do(e)
	view := viewOf(e.session)
	events := e.session.PopEvents()
	e.session.Unlock()

	s.publish(events...)
	return view, err
}

func (s *Service) publish(events ...domain.Event) {
	if len(events) == 0 {
		return
	}
	if err := s.msgBus.PublishEvents(events...); err != nil {
		s.logger.Error("failed to publish events", "error", err)
	}
}

func viewOf(session *wizard.Session) View {
	return View{
		ID:        session.ID,
		Locale:    session.Locale,
		Units:     session.Units,
		Step:      session.Step(),
		Steps:     session.Steps(),
		Record:    session.Record(),
		Result:    session.Result(),
		UpdatedAt: session.UpdatedAt,
	}
}
