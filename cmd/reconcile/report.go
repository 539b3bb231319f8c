package main

import (
	"github.com/riskibarqy/fixture-reconciler/internal/domain/fixturematch"
	"github.com/riskibarqy/fixture-reconciler/internal/usecase"
)

type report struct {
	Competitions []competitionReport `json:"competitions"`
	Matched      int                 `json:"matched"`
	Unmatched    int                 `json:"unmatched"`
}

type competitionReport struct {
	CompetitionCode string       `json:"competitionCode"`
	Season          string       `json:"season"`
	WorkerCount     int          `json:"workerCount"`
	Matched         int          `json:"matched"`
	Strong          int          `json:"strong"`
	Fallback        int          `json:"fallback"`
	Unmatched       int          `json:"unmatched"`
	DurationMs      int64        `json:"durationMs"`
	Items           []itemReport `json:"items"`
}

type itemReport struct {
	Index        int     `json:"index"`
	HomeTeamName string  `json:"homeTeamName"`
	AwayTeamName string  `json:"awayTeamName"`
	FixtureDate  string  `json:"fixtureDate"`
	CandidateID  *int64  `json:"candidateId"`
	Swapped      bool    `json:"swapped"`
	Score        float64 `json:"score"`
	Confidence   *string `json:"confidence"`
	Reason       *string `json:"reason"`
}

func newReport(results []usecase.ReconcileBatchResult) report {
	out := report{Competitions: make([]competitionReport, 0, len(results))}
	for _, result := range results {
		items := make([]itemReport, 0, len(result.Items))
		for _, item := range result.Items {
			items = append(items, newItemReport(item))
		}

		out.Matched += result.MatchedCount
		out.Unmatched += result.UnmatchedCount
		out.Competitions = append(out.Competitions, competitionReport{
			CompetitionCode: result.CompetitionCode,
			Season:          result.Season,
			WorkerCount:     result.WorkerCount,
			Matched:         result.MatchedCount,
			Strong:          result.StrongCount,
			Fallback:        result.FallbackCount,
			Unmatched:       result.UnmatchedCount,
			DurationMs:      result.DurationMs,
			Items:           items,
		})
	}
	return out
}

func newItemReport(item usecase.ReconcileItem) itemReport {
	out := itemReport{
		Index:        item.Index,
		HomeTeamName: item.Fixture.HomeTeamName,
		AwayTeamName: item.Fixture.AwayTeamName,
		FixtureDate:  item.Fixture.FixtureDate,
		CandidateID:  item.Result.CandidateID,
		Swapped:      item.Result.Swapped,
		Score:        item.Result.Score,
	}
	if item.Result.Confidence != fixturematch.ConfidenceNone {
		v := string(item.Result.Confidence)
		out.Confidence = &v
	}
	if item.Result.Reason != fixturematch.ReasonNone {
		v := string(item.Result.Reason)
		out.Reason = &v
	}
	return out
}
