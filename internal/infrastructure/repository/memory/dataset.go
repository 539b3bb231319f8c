package memory

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fixture-reconciler/internal/domain/fixturematch"
)

var ErrInvalidDataset = crerr.New("invalid dataset")

type datasetDocument struct {
	Competitions []competitionDocument `json:"competitions"`
}

type competitionDocument struct {
	Code       string              `json:"code"`
	Season     string              `json:"season"`
	Fixtures   []fixtureDocument   `json:"fixtures"`
	Candidates []candidateDocument `json:"candidates"`
}

type fixtureDocument struct {
	HomeTeamName string `json:"homeTeamName"`
	AwayTeamName string `json:"awayTeamName"`
	FixtureDate  string `json:"fixtureDate"`
}

type candidateDocument struct {
	ID           int64  `json:"id"`
	HomeTeamName string `json:"homeTeamName"`
	AwayTeamName string `json:"awayTeamName"`
	MatchDate    string `json:"matchDate"`
}

type datasetKey struct {
	competition string
	season      string
}

type CompetitionSeason struct {
	Competition string
	Season      string
	Fixtures    []fixturematch.Fixture
	Candidates  []fixturematch.CandidateMatch
}

// Dataset holds the schedule fixtures and event candidates of each
// competition season.
type Dataset struct {
	entries map[datasetKey]CompetitionSeason
}

func NewDataset(items []CompetitionSeason) (*Dataset, error) {
	entries := make(map[datasetKey]CompetitionSeason, len(items))
	for i, item := range items {
		key := newDatasetKey(item.Competition, item.Season)
		if key.competition == "" || key.season == "" {
			return nil, crerr.Wrapf(ErrInvalidDataset, "entry %d: competition code and season are required", i)
		}
		if _, exists := entries[key]; exists {
			return nil, crerr.Wrapf(ErrInvalidDataset, "entry %d: duplicate competition=%s season=%s", i, key.competition, key.season)
		}

		seen := make(map[int64]struct{}, len(item.Candidates))
		for _, candidate := range item.Candidates {
			if _, dup := seen[candidate.ID]; dup {
				return nil, crerr.Wrapf(ErrInvalidDataset, "competition=%s season=%s: duplicate candidate id %d", key.competition, key.season, candidate.ID)
			}
			seen[candidate.ID] = struct{}{}
		}

		entries[key] = CompetitionSeason{
			Competition: key.competition,
			Season:      key.season,
			Fixtures:    append([]fixturematch.Fixture(nil), item.Fixtures...),
			Candidates:  append([]fixturematch.CandidateMatch(nil), item.Candidates...),
		}
	}
	return &Dataset{entries: entries}, nil
}

func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "open dataset %s", path)
	}
	defer f.Close()

	dataset, err := DecodeDataset(f)
	if err != nil {
		return nil, crerr.Wrapf(err, "load dataset %s", path)
	}
	return dataset, nil
}

func DecodeDataset(r io.Reader) (*Dataset, error) {
	var doc datasetDocument
	if err := sonic.ConfigDefault.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode dataset: %w", ErrInvalidDataset, err)
	}

	items := make([]CompetitionSeason, 0, len(doc.Competitions))
	for _, competition := range doc.Competitions {
		item := CompetitionSeason{
			Competition: competition.Code,
			Season:      competition.Season,
			Fixtures:    make([]fixturematch.Fixture, 0, len(competition.Fixtures)),
			Candidates:  make([]fixturematch.CandidateMatch, 0, len(competition.Candidates)),
		}
		for _, f := range competition.Fixtures {
			item.Fixtures = append(item.Fixtures, fixturematch.Fixture{
				HomeTeamName: f.HomeTeamName,
				AwayTeamName: f.AwayTeamName,
				FixtureDate:  f.FixtureDate,
			})
		}
		for _, c := range competition.Candidates {
			item.Candidates = append(item.Candidates, fixturematch.CandidateMatch{
				ID:           c.ID,
				HomeTeamName: c.HomeTeamName,
				AwayTeamName: c.AwayTeamName,
				MatchDate:    c.MatchDate,
			})
		}
		items = append(items, item)
	}

	return NewDataset(items)
}

// Keys lists the loaded competition seasons sorted by competition then season.
func (d *Dataset) Keys() []CompetitionSeason {
	out := make([]CompetitionSeason, 0, len(d.entries))
	for key := range d.entries {
		out = append(out, CompetitionSeason{Competition: key.competition, Season: key.season})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Competition != out[j].Competition {
			return out[i].Competition < out[j].Competition
		}
		return out[i].Season < out[j].Season
	})
	return out
}

func (d *Dataset) lookup(competitionCode, season string) (CompetitionSeason, bool) {
	item, ok := d.entries[newDatasetKey(competitionCode, season)]
	return item, ok
}

func newDatasetKey(competitionCode, season string) datasetKey {
	return datasetKey{
		competition: strings.ToUpper(strings.TrimSpace(competitionCode)),
		season:      strings.TrimSpace(season),
	}
}

// DatasetRepository serves a Dataset as both schedule and event source. The
// dataset can be swapped at runtime with Replace.
type DatasetRepository struct {
	mu      sync.RWMutex
	dataset *Dataset
}

func NewDatasetRepository(dataset *Dataset) *DatasetRepository {
	if dataset == nil {
		dataset = &Dataset{entries: map[datasetKey]CompetitionSeason{}}
	}
	return &DatasetRepository{dataset: dataset}
}

func (r *DatasetRepository) Replace(dataset *Dataset) {
	if dataset == nil {
		return
	}
	r.mu.Lock()
	r.dataset = dataset
	r.mu.Unlock()
}

func (r *DatasetRepository) ListFixtures(_ context.Context, competitionCode, season string) ([]fixturematch.Fixture, error) {
	item, err := r.get(competitionCode, season)
	if err != nil {
		return nil, err
	}
	return append([]fixturematch.Fixture(nil), item.Fixtures...), nil
}

func (r *DatasetRepository) ListCandidates(_ context.Context, competitionCode, season string) ([]fixturematch.CandidateMatch, error) {
	item, err := r.get(competitionCode, season)
	if err != nil {
		return nil, err
	}
	return append([]fixturematch.CandidateMatch(nil), item.Candidates...), nil
}

func (r *DatasetRepository) get(competitionCode, season string) (CompetitionSeason, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.dataset.lookup(competitionCode, season)
	if !ok {
		return CompetitionSeason{}, crerr.Wrapf(fixturematch.ErrSourceNotFound, "competition=%s season=%s", competitionCode, season)
	}
	return item, nil
}
