package cache

import (
	"context"
	"strings"

	"github.com/riskibarqy/fixture-reconciler/internal/domain/fixturematch"
	basecache "github.com/riskibarqy/fixture-reconciler/internal/platform/cache"
)

type ScheduleSource struct {
	next  fixturematch.ScheduleSource
	cache *basecache.Store[[]fixturematch.Fixture]
}

func NewScheduleSource(next fixturematch.ScheduleSource, cache *basecache.Store[[]fixturematch.Fixture]) *ScheduleSource {
	return &ScheduleSource{next: next, cache: cache}
}

func (s *ScheduleSource) ListFixtures(ctx context.Context, competitionCode, season string) ([]fixturematch.Fixture, error) {
	key := sourceKey("fixtures", competitionCode, season)
	items, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]fixturematch.Fixture, error) {
		items, err := s.next.ListFixtures(ctx, competitionCode, season)
		if err != nil {
			return nil, err
		}
		return append([]fixturematch.Fixture(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]fixturematch.Fixture(nil), items...), nil
}

type EventSource struct {
	next  fixturematch.EventSource
	cache *basecache.Store[[]fixturematch.CandidateMatch]
}

func NewEventSource(next fixturematch.EventSource, cache *basecache.Store[[]fixturematch.CandidateMatch]) *EventSource {
	return &EventSource{next: next, cache: cache}
}

func (s *EventSource) ListCandidates(ctx context.Context, competitionCode, season string) ([]fixturematch.CandidateMatch, error) {
	key := sourceKey("candidates", competitionCode, season)
	items, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) ([]fixturematch.CandidateMatch, error) {
		items, err := s.next.ListCandidates(ctx, competitionCode, season)
		if err != nil {
			return nil, err
		}
		return append([]fixturematch.CandidateMatch(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	return append([]fixturematch.CandidateMatch(nil), items...), nil
}

func sourceKey(kind, competitionCode, season string) string {
	return kind + ":" + strings.ToUpper(strings.TrimSpace(competitionCode)) + ":" + strings.TrimSpace(season)
}
