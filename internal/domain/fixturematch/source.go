package fixturematch

import "context"

// ScheduleSource supplies schedule-provider fixtures for a competition season.
type ScheduleSource interface {
	ListFixtures(ctx context.Context, competitionCode, season string) ([]Fixture, error)
}

// EventSource supplies the event-detail candidate pool for a competition season.
type EventSource interface {
	ListCandidates(ctx context.Context, competitionCode, season string) ([]CandidateMatch, error)
}
