package httpapi

import (
	"github.com/riskibarqy/fixture-reconciler/internal/domain/fixturematch"
	"github.com/riskibarqy/fixture-reconciler/internal/usecase"
)

type reconcileRequest struct {
	CompetitionCode string                  `json:"competitionCode" validate:"required,max=16"`
	Season          string                  `json:"season" validate:"omitempty,max=32"`
	MaxWorkers      int                     `json:"maxWorkers" validate:"min=0,max=64"`
	Fixtures        []fixtureDTO            `json:"fixtures" validate:"required,max=5000,dive"`
	Candidates      []candidateMatchRequest `json:"candidates" validate:"max=50000,dive"`
}

type fixtureDTO struct {
	HomeTeamName string `json:"homeTeamName" validate:"max=200"`
	AwayTeamName string `json:"awayTeamName" validate:"max=200"`
	FixtureDate  string `json:"fixtureDate" validate:"max=32"`
}

type candidateMatchRequest struct {
	ID           int64  `json:"id"`
	HomeTeamName string `json:"homeTeamName" validate:"max=200"`
	AwayTeamName string `json:"awayTeamName" validate:"max=200"`
	MatchDate    string `json:"matchDate" validate:"max=32"`
}

func (r reconcileRequest) toInput() usecase.ReconcileBatchInput {
	fixtures := make([]fixturematch.Fixture, 0, len(r.Fixtures))
	for _, f := range r.Fixtures {
		fixtures = append(fixtures, fixturematch.Fixture{
			HomeTeamName: f.HomeTeamName,
			AwayTeamName: f.AwayTeamName,
			FixtureDate:  f.FixtureDate,
		})
	}

	candidates := make([]fixturematch.CandidateMatch, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		candidates = append(candidates, fixturematch.CandidateMatch{
			ID:           c.ID,
			HomeTeamName: c.HomeTeamName,
			AwayTeamName: c.AwayTeamName,
			MatchDate:    c.MatchDate,
		})
	}

	return usecase.ReconcileBatchInput{
		CompetitionCode: r.CompetitionCode,
		Season:          r.Season,
		Fixtures:        fixtures,
		Candidates:      candidates,
		MaxWorkers:      r.MaxWorkers,
	}
}

type reconcileResultDTO struct {
	CompetitionCode string                  `json:"competitionCode"`
	Season          string                  `json:"season,omitempty"`
	WorkerCount     int                     `json:"workerCount"`
	CandidateCount  int                     `json:"candidateCount"`
	Matched         int                     `json:"matched"`
	Strong          int                     `json:"strong"`
	Fallback        int                     `json:"fallback"`
	Unmatched       int                     `json:"unmatched"`
	DurationMs      int64                   `json:"durationMs"`
	Items           []reconcileItemResponse `json:"items"`
}

// Absent values are encoded as JSON null rather than omitted.
type reconcileItemResponse struct {
	Index       int        `json:"index"`
	Fixture     fixtureDTO `json:"fixture"`
	WindowSize  int        `json:"windowSize"`
	CandidateID *int64     `json:"candidateId"`
	Swapped     bool       `json:"swapped"`
	Score       float64    `json:"score"`
	Confidence  *string    `json:"confidence"`
	Reason      *string    `json:"reason"`
}

func reconcileResultToDTO(v usecase.ReconcileBatchResult) reconcileResultDTO {
	items := make([]reconcileItemResponse, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, reconcileItemToDTO(item))
	}

	return reconcileResultDTO{
		CompetitionCode: v.CompetitionCode,
		Season:          v.Season,
		WorkerCount:     v.WorkerCount,
		CandidateCount:  v.CandidateCount,
		Matched:         v.MatchedCount,
		Strong:          v.StrongCount,
		Fallback:        v.FallbackCount,
		Unmatched:       v.UnmatchedCount,
		DurationMs:      v.DurationMs,
		Items:           items,
	}
}

func reconcileItemToDTO(item usecase.ReconcileItem) reconcileItemResponse {
	out := reconcileItemResponse{
		Index: item.Index,
		Fixture: fixtureDTO{
			HomeTeamName: item.Fixture.HomeTeamName,
			AwayTeamName: item.Fixture.AwayTeamName,
			FixtureDate:  item.Fixture.FixtureDate,
		},
		WindowSize: item.WindowSize,
		Swapped:    item.Result.Swapped,
		Score:      item.Result.Score,
	}
	if item.Result.CandidateID != nil {
		id := *item.Result.CandidateID
		out.CandidateID = &id
	}
	if item.Result.Confidence != fixturematch.ConfidenceNone {
		confidence := string(item.Result.Confidence)
		out.Confidence = &confidence
	}
	if item.Result.Reason != fixturematch.ReasonNone {
		reason := string(item.Result.Reason)
		out.Reason = &reason
	}
	return out
}
