package memory

import "github.com/riskibarqy/fixture-reconciler/internal/domain/fixturematch"

const SeedSeason = "2023-2024"

// SeedDataset is served when no dataset file is configured. Candidate names
// are spelled the way event feeds usually spell them, with club suffixes,
// swapped sides and a one day date drift on some rows.
func SeedDataset() *Dataset {
	dataset, err := NewDataset([]CompetitionSeason{
		{
			Competition: "PL",
			Season:      SeedSeason,
			Fixtures: []fixturematch.Fixture{
				{HomeTeamName: "Arsenal", AwayTeamName: "Tottenham Hotspur", FixtureDate: "2024-04-28"},
				{HomeTeamName: "Man Utd", AwayTeamName: "Man City", FixtureDate: "2024-03-03"},
				{HomeTeamName: "Nott'm Forest", AwayTeamName: "Wolves", FixtureDate: "2024-05-11"},
				{HomeTeamName: "Brighton & Hove Albion", AwayTeamName: "Newcastle", FixtureDate: "2024-05-19"},
			},
			Candidates: []fixturematch.CandidateMatch{
				{ID: 1001, HomeTeamName: "Tottenham Hotspur FC", AwayTeamName: "Arsenal FC", MatchDate: "2024-04-28"},
				{ID: 1002, HomeTeamName: "Manchester City FC", AwayTeamName: "Manchester United FC", MatchDate: "2024-03-03"},
				{ID: 1003, HomeTeamName: "Nottingham Forest FC", AwayTeamName: "Wolverhampton Wanderers FC", MatchDate: "2024-05-11"},
				{ID: 1004, HomeTeamName: "Brighton and Hove Albion FC", AwayTeamName: "Newcastle United FC", MatchDate: "2024-05-19"},
			},
		},
		{
			Competition: "PD",
			Season:      SeedSeason,
			Fixtures: []fixturematch.Fixture{
				{HomeTeamName: "Real Madrid", AwayTeamName: "Barcelona", FixtureDate: "2024-04-21"},
				{HomeTeamName: "Atlético de Madrid", AwayTeamName: "Athletic Club", FixtureDate: "2024-04-27"},
				{HomeTeamName: "Celta", AwayTeamName: "Deportivo Alavés", FixtureDate: "2024-05-04"},
			},
			Candidates: []fixturematch.CandidateMatch{
				{ID: 2001, HomeTeamName: "Real Madrid CF", AwayTeamName: "FC Barcelona", MatchDate: "2024-04-21"},
				{ID: 2002, HomeTeamName: "Atletico Madrid", AwayTeamName: "Athletic Bilbao", MatchDate: "2024-04-28"},
				{ID: 2003, HomeTeamName: "RC Celta de Vigo", AwayTeamName: "Alaves", MatchDate: "2024-05-04"},
			},
		},
		{
			Competition: "SA",
			Season:      SeedSeason,
			Fixtures: []fixturematch.Fixture{
				{HomeTeamName: "Inter", AwayTeamName: "AC Milan", FixtureDate: "2024-04-22"},
				{HomeTeamName: "Lazio", AwayTeamName: "Roma", FixtureDate: "2024-04-06"},
			},
			Candidates: []fixturematch.CandidateMatch{
				{ID: 3001, HomeTeamName: "AC Milan", AwayTeamName: "FC Internazionale Milano", MatchDate: "2024-04-22"},
				{ID: 3002, HomeTeamName: "SS Lazio", AwayTeamName: "AS Roma", MatchDate: "2024-04-06"},
			},
		},
	})
	if err != nil {
		panic(err)
	}
	return dataset
}
