package fixturematch

import (
	"math"
	"sort"
)

// Thresholds were tuned against real provider pairs. Changing any of them
// changes which fixtures get linked and needs sign-off from the data owners.
//
// Scores within ScoreTieTolerance compare as equal, which is not transitive:
// 1.000 ~ 1.009 ~ 1.018 while 1.000 < 1.018. When such a chain is decided by
// the later tie-breaks, the winner depends on candidate order.
const (
	ScoreTieTolerance = 0.01
	FallbackThreshold = 0.95
	StrongThreshold   = 1.15

	missingDateOffset = 999.0
)

// SelectBest ranks evaluated orientations and converts the winner into a
// confidence-banded result.
func SelectBest(evaluated []EvaluatedOrientation) MatchResult {
	if len(evaluated) == 0 {
		return MatchResult{Reason: ReasonNoCandidates}
	}

	ranked := append([]EvaluatedOrientation(nil), evaluated...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranksBefore(ranked[i], ranked[j])
	})

	best := ranked[0]
	if best.Score < FallbackThreshold {
		return MatchResult{
			Score:  best.Score,
			Reason: ReasonLowScore,
		}
	}

	confidence := ConfidenceFallback
	if best.Score >= StrongThreshold {
		confidence = ConfidenceStrong
	}

	candidateID := best.CandidateID
	return MatchResult{
		CandidateID: &candidateID,
		Swapped:     best.Swapped,
		Score:       best.Score,
		Confidence:  confidence,
	}
}

func ranksBefore(a, b EvaluatedOrientation) bool {
	if !withinTolerance(a.Score, b.Score) {
		return a.Score > b.Score
	}
	if a.ExactCount != b.ExactCount {
		return a.ExactCount > b.ExactCount
	}
	if a.ContainsCount != b.ContainsCount {
		return a.ContainsCount > b.ContainsCount
	}
	if !withinTolerance(a.MinComponent, b.MinComponent) {
		return a.MinComponent > b.MinComponent
	}
	if a.Swapped != b.Swapped {
		return !a.Swapped
	}
	if offsetA, offsetB := offsetOrMissing(a.DateOffsetDays), offsetOrMissing(b.DateOffsetDays); offsetA != offsetB {
		return offsetA < offsetB
	}
	return a.CandidateID < b.CandidateID
}

func withinTolerance(a, b float64) bool {
	return math.Abs(a-b) <= ScoreTieTolerance
}

func offsetOrMissing(v *float64) float64 {
	if v == nil {
		return missingDateOffset
	}
	return *v
}
