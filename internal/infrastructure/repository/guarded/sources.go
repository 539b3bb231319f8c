package guarded

import (
	"context"
	"errors"

	"github.com/riskibarqy/fixture-reconciler/internal/domain/fixturematch"
	"github.com/riskibarqy/fixture-reconciler/internal/platform/logging"
	"github.com/riskibarqy/fixture-reconciler/internal/platform/resilience"
)

// Sources puts a circuit breaker in front of the schedule and event sources.
// Each source gets its own breaker; a missing competition season is an answer,
// not a failure, and never trips it.
type Sources struct {
	schedule        fixturematch.ScheduleSource
	events          fixturematch.EventSource
	scheduleBreaker *resilience.CircuitBreaker
	eventsBreaker   *resilience.CircuitBreaker
}

func NewSources(
	schedule fixturematch.ScheduleSource,
	events fixturematch.EventSource,
	cfg resilience.CircuitBreakerConfig,
	logger *logging.Logger,
) *Sources {
	if logger == nil {
		logger = logging.Default()
	}

	s := &Sources{schedule: schedule, events: events}
	if cfg.Enabled {
		s.scheduleBreaker = newBreaker("schedule", cfg, logger)
		s.eventsBreaker = newBreaker("events", cfg, logger)
	}
	return s
}

func newBreaker(name string, cfg resilience.CircuitBreakerConfig, logger *logging.Logger) *resilience.CircuitBreaker {
	return resilience.NewCircuitBreaker(cfg,
		resilience.WithFailureClassifier(func(err error) bool {
			return !errors.Is(err, fixturematch.ErrSourceNotFound)
		}),
		resilience.WithStateChangeHook(func(from, to resilience.CircuitState) {
			logger.Warn("source circuit breaker state changed",
				"source", name,
				"from", string(from),
				"to", string(to),
			)
		}),
	)
}

func (s *Sources) ListFixtures(ctx context.Context, competitionCode, season string) ([]fixturematch.Fixture, error) {
	return resilience.Execute(ctx, s.scheduleBreaker, func(ctx context.Context) ([]fixturematch.Fixture, error) {
		return s.schedule.ListFixtures(ctx, competitionCode, season)
	})
}

func (s *Sources) ListCandidates(ctx context.Context, competitionCode, season string) ([]fixturematch.CandidateMatch, error) {
	return resilience.Execute(ctx, s.eventsBreaker, func(ctx context.Context) ([]fixturematch.CandidateMatch, error) {
		return s.events.ListCandidates(ctx, competitionCode, season)
	})
}
