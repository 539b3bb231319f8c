package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fixture-reconciler/internal/domain/fixturematch"
	"github.com/riskibarqy/fixture-reconciler/internal/platform/logging"
	"github.com/riskibarqy/fixture-reconciler/internal/platform/parallel"
	"go.opentelemetry.io/otel/attribute"
)

const maxReconcileWorkers = 64

type ReconcileServiceConfig struct {
	DefaultMaxWorkers int
}

type ReconcileBatchInput struct {
	CompetitionCode string
	Season          string
	Fixtures        []fixturematch.Fixture
	Candidates      []fixturematch.CandidateMatch
	MaxWorkers      int
}

// ReconcileItem is the outcome for the fixture at Index in the input batch.
type ReconcileItem struct {
	Index      int
	Fixture    fixturematch.Fixture
	WindowSize int
	Result     fixturematch.MatchResult
}

type ReconcileBatchResult struct {
	CompetitionCode string
	Season          string
	WorkerCount     int
	CandidateCount  int
	Items           []ReconcileItem
	MatchedCount    int
	StrongCount     int
	FallbackCount   int
	UnmatchedCount  int
	DurationMs      int64
}

// ReconcileService links schedule fixtures to event-detail candidates in
// batches, one engine call per fixture on a bounded worker pool.
type ReconcileService struct {
	aliases        *fixturematch.AliasTables
	schedule       fixturematch.ScheduleSource
	events         fixturematch.EventSource
	defaultWorkers int
	logger         *logging.Logger
}

func NewReconcileService(
	aliases *fixturematch.AliasTables,
	schedule fixturematch.ScheduleSource,
	events fixturematch.EventSource,
	cfg ReconcileServiceConfig,
	logger *logging.Logger,
) *ReconcileService {
	if aliases == nil {
		aliases = fixturematch.DefaultAliasTables()
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.DefaultMaxWorkers <= 0 {
		cfg.DefaultMaxWorkers = parallel.DefaultMaxWorkers
	}

	return &ReconcileService{
		aliases:        aliases,
		schedule:       schedule,
		events:         events,
		defaultWorkers: cfg.DefaultMaxWorkers,
		logger:         logger,
	}
}

func (s *ReconcileService) ReconcileBatch(ctx context.Context, input ReconcileBatchInput) (ReconcileBatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.ReconcileBatch")
	defer span.End()

	if input.MaxWorkers < 0 {
		return ReconcileBatchResult{}, fmt.Errorf("%w: max workers must be >= 0", ErrInvalidInput)
	}
	if input.MaxWorkers > maxReconcileWorkers {
		return ReconcileBatchResult{}, fmt.Errorf("%w: max workers must be <= %d", ErrInvalidInput, maxReconcileWorkers)
	}

	competitionCode := strings.TrimSpace(input.CompetitionCode)
	if competitionCode == "" {
		return ReconcileBatchResult{}, fmt.Errorf("%w: competition code is required", ErrInvalidInput)
	}
	requestedWorkers := input.MaxWorkers
	if requestedWorkers == 0 {
		requestedWorkers = s.defaultWorkers
	}
	workerCount := parallel.NormalizeWorkerCount(requestedWorkers, len(input.Fixtures))

	started := time.Now()
	index := fixturematch.BuildCandidateIndex(input.Candidates)

	items, err := parallel.Map(ctx, workerCount, input.Fixtures,
		func(_ context.Context, i int, f fixturematch.Fixture) (ReconcileItem, error) {
			pool := index.Window(f.FixtureDate)
			return ReconcileItem{
				Index:      i,
				Fixture:    f,
				WindowSize: len(pool),
				Result:     s.aliases.Reconcile(f, pool, competitionCode),
			}, nil
		},
	)
	if err != nil {
		span.RecordError(err)
		return ReconcileBatchResult{}, crerr.Wrap(err, "reconcile fixtures")
	}

	result := ReconcileBatchResult{
		CompetitionCode: competitionCode,
		Season:          strings.TrimSpace(input.Season),
		WorkerCount:     workerCount,
		CandidateCount:  len(input.Candidates),
		Items:           items,
		DurationMs:      time.Since(started).Milliseconds(),
	}
	for _, item := range items {
		switch item.Result.Confidence {
		case fixturematch.ConfidenceStrong:
			result.StrongCount++
		case fixturematch.ConfidenceFallback:
			result.FallbackCount++
		}
		if item.Result.Matched() {
			result.MatchedCount++
			continue
		}
		result.UnmatchedCount++
		s.logger.DebugContext(ctx, "fixture not reconciled",
			"competition", competitionCode,
			"index", item.Index,
			"home_team", item.Fixture.HomeTeamName,
			"away_team", item.Fixture.AwayTeamName,
			"fixture_date", item.Fixture.FixtureDate,
			"reason", string(item.Result.Reason),
			"score", item.Result.Score,
			"window_size", item.WindowSize,
		)
	}

	span.SetAttributes(
		attribute.String("reconcile.competition", competitionCode),
		attribute.Int("reconcile.fixtures", len(input.Fixtures)),
		attribute.Int("reconcile.matched", result.MatchedCount),
	)
	s.logger.InfoContext(ctx, "fixture batch reconciled",
		"competition", competitionCode,
		"season", result.Season,
		"fixtures", len(input.Fixtures),
		"candidates", result.CandidateCount,
		"indexed_candidates", index.Len(),
		"workers", workerCount,
		"matched", result.MatchedCount,
		"strong", result.StrongCount,
		"fallback", result.FallbackCount,
		"unmatched", result.UnmatchedCount,
		"duration_ms", result.DurationMs,
	)

	return result, nil
}

// ReconcileCompetition pulls both datasets for a competition season from the
// configured sources and reconciles them.
func (s *ReconcileService) ReconcileCompetition(
	ctx context.Context,
	competitionCode string,
	season string,
	maxWorkers int,
) (ReconcileBatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReconcileService.ReconcileCompetition")
	defer span.End()

	competitionCode = strings.TrimSpace(competitionCode)
	season = strings.TrimSpace(season)
	if competitionCode == "" {
		return ReconcileBatchResult{}, fmt.Errorf("%w: competition code is required", ErrInvalidInput)
	}
	if season == "" {
		return ReconcileBatchResult{}, fmt.Errorf("%w: season is required", ErrInvalidInput)
	}
	if s.schedule == nil || s.events == nil {
		return ReconcileBatchResult{}, fmt.Errorf("%w: reconcile sources are not configured", ErrDependencyUnavailable)
	}

	fixtures, err := s.schedule.ListFixtures(ctx, competitionCode, season)
	if err != nil {
		return ReconcileBatchResult{}, s.sourceError(ctx, err, "list schedule fixtures", competitionCode, season)
	}
	candidates, err := s.events.ListCandidates(ctx, competitionCode, season)
	if err != nil {
		return ReconcileBatchResult{}, s.sourceError(ctx, err, "list event candidates", competitionCode, season)
	}

	return s.ReconcileBatch(ctx, ReconcileBatchInput{
		CompetitionCode: competitionCode,
		Season:          season,
		Fixtures:        fixtures,
		Candidates:      candidates,
		MaxWorkers:      maxWorkers,
	})
}

// sourceError maps a source failure onto a use-case sentinel. The source's own
// message stays out of the returned text, which reaches API clients; it is
// logged here and kept as a secondary error for verbose formatting.
func (s *ReconcileService) sourceError(ctx context.Context, err error, op, competitionCode, season string) error {
	sentinel := ErrDependencyUnavailable
	if errors.Is(err, fixturematch.ErrSourceNotFound) {
		sentinel = ErrNotFound
	}
	s.logger.WarnContext(ctx, "reconcile source failed",
		"op", op,
		"competition", competitionCode,
		"season", season,
		"error", err,
	)
	return crerr.WithSecondaryError(
		crerr.Wrapf(sentinel, "%s competition=%s season=%s", op, competitionCode, season),
		err,
	)
}
