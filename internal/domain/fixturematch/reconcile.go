package fixturematch

// Reconcile links one schedule fixture to the best event-detail candidate.
// The caller supplies a pool that is already date-windowed, typically via
// CandidateIndex.Window. It never fails: bad input simply does not match.
func (t *AliasTables) Reconcile(f Fixture, candidates []CandidateMatch, competitionCode string) MatchResult {
	return SelectBest(t.EvaluateCandidates(f, candidates, competitionCode))
}

// Reconcile uses the bundled alias tables.
func Reconcile(f Fixture, candidates []CandidateMatch, competitionCode string) MatchResult {
	return DefaultAliasTables().Reconcile(f, candidates, competitionCode)
}
