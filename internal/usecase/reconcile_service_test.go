package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/fixture-reconciler/internal/domain/fixturematch"
	fixturematchmock "github.com/riskibarqy/fixture-reconciler/internal/mocks/domain/fixturematch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func laLigaFixtures() []fixturematch.Fixture {
	return []fixturematch.Fixture{
		{HomeTeamName: "Real Madrid", AwayTeamName: "Barcelona", FixtureDate: "2024-05-01"},
		{HomeTeamName: "Athletic Club", AwayTeamName: "Real Betis", FixtureDate: "2024-05-02"},
		{HomeTeamName: "Getafe", AwayTeamName: "Osasuna", FixtureDate: "2024-05-03"},
		{HomeTeamName: "Girona", AwayTeamName: "Villarreal", FixtureDate: ""},
		{HomeTeamName: "Sevilla", AwayTeamName: "Valencia", FixtureDate: "2024-05-04"},
	}
}

func laLigaCandidates() []fixturematch.CandidateMatch {
	return []fixturematch.CandidateMatch{
		{ID: 1, HomeTeamName: "Real Madrid CF", AwayTeamName: "FC Barcelona", MatchDate: "2024-05-01"},
		{ID: 2, HomeTeamName: "Real Sociedad", AwayTeamName: "Celta Vigo", MatchDate: "2024-05-01"},
		// Provider stored the fixture a day later and with swapped sides.
		{ID: 3, HomeTeamName: "Real Betis Balompié", AwayTeamName: "Athletic Bilbao", MatchDate: "2024-05-03"},
		{ID: 4, HomeTeamName: "Girona FC", AwayTeamName: "Villarreal CF", MatchDate: "2024-05-05"},
		{ID: 5, HomeTeamName: "Sevilla FC", AwayTeamName: "Unknown", MatchDate: "2024-05-04"},
	}
}

func TestReconcileService_ReconcileBatch(t *testing.T) {
	t.Parallel()

	service := NewReconcileService(nil, nil, nil, ReconcileServiceConfig{}, nil)
	got, err := service.ReconcileBatch(context.Background(), ReconcileBatchInput{
		CompetitionCode: " PD ",
		Season:          "2023-2024",
		Fixtures:        laLigaFixtures(),
		Candidates:      laLigaCandidates(),
		MaxWorkers:      3,
	})
	require.NoError(t, err)

	assert.Equal(t, "PD", got.CompetitionCode)
	assert.Equal(t, "2023-2024", got.Season)
	assert.Equal(t, 3, got.WorkerCount)
	assert.Equal(t, 5, got.CandidateCount)
	require.Len(t, got.Items, 5)
	for i, item := range got.Items {
		assert.Equal(t, i, item.Index)
		assert.Equal(t, laLigaFixtures()[i], item.Fixture)
	}

	first := got.Items[0].Result
	require.True(t, first.Matched())
	assert.Equal(t, int64(1), *first.CandidateID)
	assert.Equal(t, fixturematch.ConfidenceStrong, first.Confidence)

	second := got.Items[1].Result
	require.True(t, second.Matched())
	assert.Equal(t, int64(3), *second.CandidateID)
	assert.True(t, second.Swapped)
	assert.Equal(t, fixturematch.ConfidenceStrong, second.Confidence)

	third := got.Items[2]
	assert.False(t, third.Result.Matched())
	assert.Equal(t, fixturematch.ReasonLowScore, third.Result.Reason)

	// A fixture without a date is never windowed.
	fourth := got.Items[3]
	assert.Equal(t, 0, fourth.WindowSize)
	assert.Equal(t, fixturematch.ReasonNoCandidates, fourth.Result.Reason)

	fifth := got.Items[4].Result
	require.True(t, fifth.Matched())
	assert.Equal(t, fixturematch.ConfidenceFallback, fifth.Confidence)

	assert.Equal(t, 3, got.MatchedCount)
	assert.Equal(t, 2, got.StrongCount)
	assert.Equal(t, 1, got.FallbackCount)
	assert.Equal(t, 2, got.UnmatchedCount)
}

func TestReconcileService_ReconcileBatch_OrderIndependentOfWorkers(t *testing.T) {
	t.Parallel()

	service := NewReconcileService(nil, nil, nil, ReconcileServiceConfig{DefaultMaxWorkers: 2}, nil)
	input := ReconcileBatchInput{
		CompetitionCode: "PD",
		Fixtures:        laLigaFixtures(),
		Candidates:      laLigaCandidates(),
	}

	sequential := input
	sequential.MaxWorkers = 1
	want, err := service.ReconcileBatch(context.Background(), sequential)
	require.NoError(t, err)

	got, err := service.ReconcileBatch(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, 2, got.WorkerCount)
	assert.Equal(t, want.Items, got.Items)
}

func TestReconcileService_ReconcileBatch_InvalidWorkers(t *testing.T) {
	t.Parallel()

	service := NewReconcileService(nil, nil, nil, ReconcileServiceConfig{}, nil)
	for _, workers := range []int{-1, maxReconcileWorkers + 1} {
		_, err := service.ReconcileBatch(context.Background(), ReconcileBatchInput{MaxWorkers: workers})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("workers=%d: expected ErrInvalidInput, got %v", workers, err)
		}
	}
}

func TestReconcileService_ReconcileBatch_BlankCompetition(t *testing.T) {
	t.Parallel()

	service := NewReconcileService(nil, nil, nil, ReconcileServiceConfig{}, nil)
	for _, code := range []string{"", "   ", "\t\n"} {
		_, err := service.ReconcileBatch(context.Background(), ReconcileBatchInput{
			CompetitionCode: code,
			Fixtures:        laLigaFixtures(),
			Candidates:      laLigaCandidates(),
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("code=%q: expected ErrInvalidInput, got %v", code, err)
		}
	}
}

func TestReconcileService_ReconcileBatch_EmptyFixtures(t *testing.T) {
	t.Parallel()

	service := NewReconcileService(nil, nil, nil, ReconcileServiceConfig{}, nil)
	got, err := service.ReconcileBatch(context.Background(), ReconcileBatchInput{
		CompetitionCode: "PL",
		Candidates:      laLigaCandidates(),
	})
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Equal(t, 1, got.WorkerCount)
}

func TestReconcileService_ReconcileCompetition(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	schedule := fixturematchmock.NewScheduleSource(t)
	events := fixturematchmock.NewEventSource(t)
	schedule.On("ListFixtures", mock.Anything, "PD", "2023-2024").Return(laLigaFixtures(), nil).Once()
	events.On("ListCandidates", mock.Anything, "PD", "2023-2024").Return(laLigaCandidates(), nil).Once()

	service := NewReconcileService(nil, schedule, events, ReconcileServiceConfig{}, nil)
	got, err := service.ReconcileCompetition(ctx, "PD", " 2023-2024 ", 0)
	require.NoError(t, err)
	assert.Len(t, got.Items, 5)
	assert.Equal(t, 3, got.MatchedCount)
}

func TestReconcileService_ReconcileCompetition_Errors(t *testing.T) {
	t.Parallel()

	errUpstream := errors.New("upstream timeout")
	tests := []struct {
		name         string
		competition  string
		season       string
		setup        func(*fixturematchmock.ScheduleSource, *fixturematchmock.EventSource)
		nilSources   bool
		wantErr      error
		hiddenDetail string
	}{
		{name: "missing competition", competition: " ", season: "2024", wantErr: ErrInvalidInput},
		{name: "missing season", competition: "PD", season: "", wantErr: ErrInvalidInput},
		{name: "sources not configured", competition: "PD", season: "2024", nilSources: true, wantErr: ErrDependencyUnavailable},
		{
			name:        "schedule not found",
			competition: "PD",
			season:      "2024",
			setup: func(s *fixturematchmock.ScheduleSource, _ *fixturematchmock.EventSource) {
				s.On("ListFixtures", mock.Anything, "PD", "2024").
					Return(nil, fmt.Errorf("feed https://feeds.example.com/competitions/PD: %w", fixturematch.ErrSourceNotFound)).
					Once()
			},
			wantErr:      ErrNotFound,
			hiddenDetail: "feeds.example.com",
		},
		{
			name:        "events unavailable",
			competition: "PD",
			season:      "2024",
			setup: func(s *fixturematchmock.ScheduleSource, e *fixturematchmock.EventSource) {
				s.On("ListFixtures", mock.Anything, "PD", "2024").Return(laLigaFixtures(), nil).Once()
				e.On("ListCandidates", mock.Anything, "PD", "2024").Return(nil, errUpstream).Once()
			},
			wantErr:      ErrDependencyUnavailable,
			hiddenDetail: errUpstream.Error(),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			schedule := fixturematchmock.NewScheduleSource(t)
			events := fixturematchmock.NewEventSource(t)
			if tc.setup != nil {
				tc.setup(schedule, events)
			}

			var service *ReconcileService
			if tc.nilSources {
				service = NewReconcileService(nil, nil, nil, ReconcileServiceConfig{}, nil)
			} else {
				service = NewReconcileService(nil, schedule, events, ReconcileServiceConfig{}, nil)
			}

			_, err := service.ReconcileCompetition(context.Background(), tc.competition, tc.season, 0)
			require.ErrorIs(t, err, tc.wantErr)
			if tc.hiddenDetail != "" {
				assert.NotContains(t, err.Error(), tc.hiddenDetail)
				assert.Contains(t, fmt.Sprintf("%+v", err), tc.hiddenDetail)
			}
		})
	}
}
