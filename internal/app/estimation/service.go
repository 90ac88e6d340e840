package estimation

import (
	"context"
	"errors"
	"github.com/burenotti/go_bodyfat_backend/internal/domain"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/estimate"
	"github.com/burenotti/go_bodyfat_backend/internal/domain/measurement"
	"log/slog"
)

var (
	ErrIncompleteRecord = errors.New("calculation error: measurement record is incomplete")
)

const EventComputed = "estimate.computed"

type ComputedEvent struct {
	domain.BaseEvent
	Sex       measurement.Sex
	Category  estimate.Category
	AverageBf *float64
	Cached    bool
}

func (*ComputedEvent) Type() string {
	return EventComputed
}

type Cache interface {
	Get(ctx context.Context, key string) (estimate.Result, bool, error)
	Set(ctx context.Context, key string, result estimate.Result) error
}

type Metrics interface {
	ObserveEstimate(sex measurement.Sex, category estimate.Category, averageBf *float64)
}

type MessageBus interface {
	PublishEvents(events ...domain.Event) error
}

type Service struct {
	logger  *slog.Logger
	cache   Cache
	metrics Metrics
	msgBus  MessageBus
}

func New(logger *slog.Logger, cache Cache, metrics Metrics, msgBus MessageBus) *Service {
	return &Service{
		logger:  logger,
		cache:   cache,
		metrics: metrics,
		msgBus:  msgBus,
	}
}

// Estimate runs the engine on a complete record. Cache failures degrade to a
// fresh computation.
func (s *Service) Estimate(ctx context.Context, r measurement.Record) (estimate.Result, error) {
	if !r.Complete() {
		return estimate.Result{}, ErrIncompleteRecord
	}

	key := Key(r)
	result, cached, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("failed to read cached estimate", "key", key, "error", err)
		cached = false
	}

	if !cached {
		var ok bool
		if result, ok = estimate.Estimate(r); !ok {
			return estimate.Result{}, ErrIncompleteRecord
		}
		if err := s.cache.Set(ctx, key, result); err != nil {
			s.logger.Warn("failed to cache estimate", "key", key, "error", err)
		}
	}

	category := result.Category(r.Sex)
	s.metrics.ObserveEstimate(*r.Sex, category, result.AverageBf)
	s.logger.Debug("estimate computed", "sex", *r.Sex, "category", category, "cached", cached)

	event := &ComputedEvent{
		BaseEvent: domain.NewBaseEvent(),
		Sex:       *r.Sex,
		Category:  category,
		AverageBf: result.AverageBf,
		Cached:    cached,
	}
	if err := s.msgBus.PublishEvents(event); err != nil {
		s.logger.Error("failed to publish events", "error", err)
	}

	return result, nil
}
