package fixturematch

import "math"

// EvaluateCandidates compares the fixture with every candidate twice: once
// direct (home vs home) and once swapped (candidate home vs fixture away).
func (t *AliasTables) EvaluateCandidates(f Fixture, candidates []CandidateMatch, competitionCode string) []EvaluatedOrientation {
	if len(candidates) == 0 {
		return nil
	}

	fixtureHome := t.Normalize(f.HomeTeamName, competitionCode)
	fixtureAway := t.Normalize(f.AwayTeamName, competitionCode)

	out := make([]EvaluatedOrientation, 0, len(candidates)*2)
	for _, candidate := range candidates {
		candidateHome := t.Normalize(candidate.HomeTeamName, competitionCode)
		candidateAway := t.Normalize(candidate.AwayTeamName, competitionCode)
		offset := dateOffsetDays(f.FixtureDate, candidate.MatchDate)

		direct := evaluateOrientation(
			compareCanonical(candidateHome, fixtureHome),
			compareCanonical(candidateAway, fixtureAway),
		)
		direct.CandidateID = candidate.ID
		direct.DateOffsetDays = offset

		swapped := evaluateOrientation(
			compareCanonical(candidateHome, fixtureAway),
			compareCanonical(candidateAway, fixtureHome),
		)
		swapped.CandidateID = candidate.ID
		swapped.Swapped = true
		swapped.DateOffsetDays = cloneOffset(offset)

		out = append(out, direct, swapped)
	}
	return out
}

func evaluateOrientation(home, away TeamMatch) EvaluatedOrientation {
	return EvaluatedOrientation{
		Score:         home.Score + away.Score,
		ExactCount:    boolToInt(home.Exact) + boolToInt(away.Exact),
		ContainsCount: boolToInt(home.Contains) + boolToInt(away.Contains),
		MinComponent:  math.Min(home.Score, away.Score),
	}
}

func cloneOffset(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
