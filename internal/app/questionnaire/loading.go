package questionnaire

import (
	"context"
	"github.com/burenotti/go_bodyfat_backend/internal/domain"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/wizard"
	"github.com/r3labs/diff"
	"github.com/samber/lo"
	"strings"
	"time"
)

const EventRecomputed = "questionnaire.recomputed"

// RecomputedEvent is raised when a session completes again after its answers
// were edited. Changed lists the record fields that differ.
type RecomputedEvent struct {
	domain.BaseEvent
	SessionID string
	Changed   []string
}

func (*RecomputedEvent) Type() string {
	return EventRecomputed
}

// complete runs with the session locked, right after it entered the loading step.
func (s *Service) complete(ctx context.Context, e *entry) (domain.Event, error) {
	record := e.session.Record()
	snapshot := record.Snapshot()

	var recomputed domain.Event
	if e.lastCompleted != nil {
		changelog, err := diff.Diff(*e.lastCompleted, snapshot)
		if err != nil {
			s.logger.Warn("failed to diff records", "session_id", e.session.ID, "error", err)
		} else {
			recomputed = &RecomputedEvent{
				BaseEvent: domain.NewBaseEvent(),
				SessionID: e.session.ID,
				Changed: lo.Map(changelog, func(c diff.Change, _ int) string {
					return strings.Join(c.Path, ".")
				}),
			}
		}
	}
	e.lastCompleted = &snapshot

	result, err := s.estimator.Estimate(ctx, record)
	if err != nil {
		return recomputed, err
	}
	e.pending = &result
	s.armLoading(e)
	return recomputed, nil
}

func (s *Service) armLoading(e *entry) {
	e.generation++
	if s.cfg.LoadingDelay <= 0 {
		if err := e.session.Reveal(*e.pending); err != nil {
			s.logger.Error("failed to reveal results", "session_id", e.session.ID, "error", err)
		}
		return
	}

	id, generation := e.session.ID, e.generation
	e.timer = time.AfterFunc(s.cfg.LoadingDelay, func() {
		s.revealAfterDelay(id, generation)
	})
}

func (s *Service) revealAfterDelay(id string, generation int) {
	e, err := s.lookup(id)
	if err != nil {
		return
	}

	e.session.Lock()
	defer e.session.Unlock()

	// a Back or Reset since the timer was armed makes it stale
	if e.generation != generation || e.session.Step() != wizard.StepLoading || e.pending == nil {
		return
	}
	if err := e.session.Reveal(*e.pending); err != nil {
		s.logger.Error("failed to reveal results", "session_id", id, "error", err)
		return
	}
	e.timer = nil
	s.logger.Debug("results revealed", "session_id", id)
}

func (s *Service) cancelLoading(e *entry) {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.generation++
	e.pending = nil
}

func cleanupInterval(ttl time.Duration) time.Duration {
	return max(min(ttl/2, maxCleanupInterval), minCleanupInterval)
}

func (s *Service) cleanupLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(cleanupInterval(s.cfg.SessionTTL))
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stop:
			return
		}
	}
}

func (s *Service) cleanup() {
	s.mu.Lock()
	now := s.now()
	for id, e := range s.entries {
		e.session.Lock()
		if now.Sub(e.session.UpdatedAt) > s.cfg.SessionTTL {
			s.cancelLoading(e)
			delete(s.entries, id)
			s.logger.Debug("questionnaire expired", "session_id", id)
		}
		e.session.Unlock()
	}
	n := len(s.entries)
	s.mu.Unlock()

	s.gauge.SetActiveSessions(n)
}
