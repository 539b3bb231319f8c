package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fixture-reconciler/internal/domain/fixturematch"
	fixturematchmock "github.com/riskibarqy/fixture-reconciler/internal/mocks/domain/fixturematch"
	basecache "github.com/riskibarqy/fixture-reconciler/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestScheduleSource_CachesPerCompetitionSeason(t *testing.T) {
	t.Parallel()

	next := fixturematchmock.NewScheduleSource(t)
	next.On("ListFixtures", mock.Anything, "PL", "2024").
		Return([]fixturematch.Fixture{{HomeTeamName: "Arsenal", AwayTeamName: "Spurs", FixtureDate: "2024-04-28"}}, nil).
		Once()

	source := NewScheduleSource(next, basecache.NewStore[[]fixturematch.Fixture](time.Minute))
	ctx := context.Background()

	first, err := source.ListFixtures(ctx, "PL", "2024")
	require.NoError(t, err)
	first[0].HomeTeamName = "mutated"

	// Same key after normalisation of the competition code.
	second, err := source.ListFixtures(ctx, " pl", "2024")
	require.NoError(t, err)
	assert.Equal(t, "Arsenal", second[0].HomeTeamName)

}

func TestEventSource_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	errDown := errors.New("provider down")
	next := fixturematchmock.NewEventSource(t)
	next.On("ListCandidates", mock.Anything, "SA", "2024").Return(nil, errDown).Once()
	next.On("ListCandidates", mock.Anything, "SA", "2024").
		Return([]fixturematch.CandidateMatch{{ID: 7, HomeTeamName: "Lazio", AwayTeamName: "Roma", MatchDate: "2024-04-06"}}, nil).
		Once()

	source := NewEventSource(next, basecache.NewStore[[]fixturematch.CandidateMatch](time.Minute))
	ctx := context.Background()

	_, err := source.ListCandidates(ctx, "SA", "2024")
	require.ErrorIs(t, err, errDown)

	items, err := source.ListCandidates(ctx, "SA", "2024")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].ID)

	items, err = source.ListCandidates(ctx, "SA", "2024")
	require.NoError(t, err)
	assert.Len(t, items, 1)

}
