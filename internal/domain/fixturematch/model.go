package fixturematch

import "errors"

var ErrSourceNotFound = errors.New("source data not found")

// Fixture is one schedule-provider match. Blank strings mean absent.
type Fixture struct {
	HomeTeamName string
	AwayTeamName string
	FixtureDate  string
}

// CandidateMatch is one event-detail-provider match.
type CandidateMatch struct {
	ID           int64
	HomeTeamName string
	AwayTeamName string
	MatchDate    string
}

// CanonicalName is the identity of a team name after normalization.
type CanonicalName struct {
	Key    string
	Tokens []string
}

func (c CanonicalName) IsEmpty() bool {
	return c.Key == ""
}

func (c CanonicalName) tokenSet() map[string]struct{} {
	out := make(map[string]struct{}, len(c.Tokens))
	for _, token := range c.Tokens {
		out[token] = struct{}{}
	}
	return out
}

// TeamMatch is the similarity of two team names. Score is within [0, 1].
type TeamMatch struct {
	Score      float64
	Exact      bool
	Contains   bool
	TokenScore float64
}

// EvaluatedOrientation is one candidate compared in one orientation.
type EvaluatedOrientation struct {
	CandidateID    int64
	Swapped        bool
	Score          float64
	ExactCount     int
	ContainsCount  int
	MinComponent   float64
	DateOffsetDays *float64
}

type Confidence string

const (
	ConfidenceNone     Confidence = ""
	ConfidenceStrong   Confidence = "strong"
	ConfidenceFallback Confidence = "fallback"
)

type Reason string

const (
	ReasonNone         Reason = ""
	ReasonNoCandidates Reason = "no_candidates"
	ReasonLowScore     Reason = "low_score"
)

// MatchResult is the outcome of reconciling one fixture.
// CandidateID is nil when no candidate was accepted.
type MatchResult struct {
	CandidateID *int64
	Swapped     bool
	Score       float64
	Confidence  Confidence
	Reason      Reason
}

func (r MatchResult) Matched() bool {
	return r.CandidateID != nil
}
