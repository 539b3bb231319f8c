package fixturematch

import (
	"math"
	"strings"
)

const (
	exactScore    = 1.0
	containsScore = 0.9
	tokenScoreCap = 0.85
)

// MatchTeams scores how likely two raw team names denote the same club.
// Exact key identity scores 1.0, key containment 0.9 and plain token overlap
// is capped at 0.85 so that shared generic words never reach the upper tiers.
func (t *AliasTables) MatchTeams(a, b, competitionCode string) TeamMatch {
	left := t.Normalize(a, competitionCode)
	right := t.Normalize(b, competitionCode)
	return compareCanonical(left, right)
}

func compareCanonical(left, right CanonicalName) TeamMatch {
	if left.IsEmpty() || right.IsEmpty() {
		return TeamMatch{}
	}

	exact := left.Key == right.Key
	contains := !exact && (strings.Contains(left.Key, right.Key) || strings.Contains(right.Key, left.Key))
	tokenScore := jaccard(left.tokenSet(), right.tokenSet())

	score := math.Min(tokenScoreCap, tokenScore)
	switch {
	case exact:
		score = exactScore
	case contains:
		score = containsScore
	}

	return TeamMatch{
		Score:      score,
		Exact:      exact,
		Contains:   contains,
		TokenScore: tokenScore,
	}
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for token := range a {
		if _, ok := b[token]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
