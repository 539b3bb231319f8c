package fixturematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateIDs(items []CandidateMatch) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestCandidateIndex_Window(t *testing.T) {
	t.Parallel()

	idx := BuildCandidateIndex([]CandidateMatch{
		{ID: 1, MatchDate: "2024-04-29"},
		{ID: 2, MatchDate: "2024-04-30"},
		{ID: 3, MatchDate: "2024-05-01"},
		{ID: 4, MatchDate: "2024-05-02"},
		{ID: 5, MatchDate: "2024-05-03"},
		{ID: 6, MatchDate: ""},
		{ID: 7, MatchDate: "01/05/2024"},
		{ID: 8, MatchDate: " 2024-05-01 "},
	})

	assert.Equal(t, 6, idx.Len())
	assert.Equal(t, []int64{2, 3, 8, 4}, candidateIDs(idx.Window("2024-05-01")))
	assert.Empty(t, idx.Window(""))
	assert.Empty(t, idx.Window("not-a-date"))
	assert.NotNil(t, idx.Window(""))
}

func TestCandidateIndex_WindowCrossesMonthAndYear(t *testing.T) {
	t.Parallel()

	idx := BuildCandidateIndex([]CandidateMatch{
		{ID: 10, MatchDate: "2023-12-31"},
		{ID: 11, MatchDate: "2024-01-01"},
		{ID: 12, MatchDate: "2024-02-29"},
		{ID: 13, MatchDate: "2024-03-01"},
	})

	assert.Equal(t, []int64{10, 11}, candidateIDs(idx.Window("2024-01-01")))
	assert.Equal(t, []int64{12, 13}, candidateIDs(idx.Window("2024-03-01")))
}

func TestNewCandidateIndex_DeduplicatesByID(t *testing.T) {
	t.Parallel()

	idx := NewCandidateIndex(map[string][]CandidateMatch{
		"2024-05-01": {{ID: 1}, {ID: 2}},
		"2024-05-02": {{ID: 2}, {ID: 3}},
	})

	require.Equal(t, []int64{1, 2, 3}, candidateIDs(idx.Window("2024-05-01")))
}

func TestNewCandidateIndex_RekeysByParsedDate(t *testing.T) {
	t.Parallel()

	idx := NewCandidateIndex(map[string][]CandidateMatch{
		" 2024-05-01 ": {{ID: 1}},
		"2024-5-2":     {{ID: 2}},
		"yesterday":    {{ID: 3}},
		"2024-05-03":   {{ID: 4}},
	})

	assert.Equal(t, 2, idx.Len())
	require.Equal(t, []int64{1}, candidateIDs(idx.Window("2024-04-30")))
	require.Equal(t, []int64{1, 4}, candidateIDs(idx.Window("2024-05-02")))
}

func TestDateOffsetDays(t *testing.T) {
	t.Parallel()

	got := dateOffsetDays("2024-05-02", "2024-05-01")
	require.NotNil(t, got)
	assert.Equal(t, 1.0, *got)

	assert.Nil(t, dateOffsetDays("", "2024-05-01"))
	assert.Nil(t, dateOffsetDays("2024-05-01", "garbage"))
}
