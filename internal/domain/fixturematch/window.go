package fixturematch

import (
	"math"
	"sort"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// CandidateIndex buckets event-detail candidates by calendar date.
type CandidateIndex struct {
	byDate map[string][]CandidateMatch
}

// BuildCandidateIndex indexes candidates by MatchDate. Candidates without a
// parseable date are left out because their date cannot be windowed.
func BuildCandidateIndex(candidates []CandidateMatch) CandidateIndex {
	byDate := make(map[string][]CandidateMatch)
	for _, candidate := range candidates {
		day, ok := parseDate(candidate.MatchDate)
		if !ok {
			continue
		}
		key := day.Format(dateLayout)
		byDate[key] = append(byDate[key], candidate)
	}
	return CandidateIndex{byDate: byDate}
}

// NewCandidateIndex wraps a pool that a provider already grouped by date.
// Keys are re-parsed: a bucket whose key is not a YYYY-MM-DD date, such as
// "2024-5-1", is dropped, and buckets naming the same day are merged.
func NewCandidateIndex(byDate map[string][]CandidateMatch) CandidateIndex {
	keys := make([]string, 0, len(byDate))
	for date := range byDate {
		keys = append(keys, date)
	}
	sort.Strings(keys)

	rekeyed := make(map[string][]CandidateMatch, len(byDate))
	for _, date := range keys {
		day, ok := parseDate(date)
		if !ok {
			continue
		}
		key := day.Format(dateLayout)
		rekeyed[key] = append(rekeyed[key], byDate[date]...)
	}
	return CandidateIndex{byDate: rekeyed}
}

func (idx CandidateIndex) Len() int {
	total := 0
	for _, items := range idx.byDate {
		total += len(items)
	}
	return total
}

// Window returns candidates dated the day before, the day of and the day
// after date, de-duplicated by ID. A blank or unparseable date yields nothing.
func (idx CandidateIndex) Window(date string) []CandidateMatch {
	day, ok := parseDate(date)
	if !ok {
		return []CandidateMatch{}
	}

	seen := make(map[int64]struct{})
	out := make([]CandidateMatch, 0)
	for offset := -1; offset <= 1; offset++ {
		key := day.AddDate(0, 0, offset).Format(dateLayout)
		for _, candidate := range idx.byDate[key] {
			if _, dup := seen[candidate.ID]; dup {
				continue
			}
			seen[candidate.ID] = struct{}{}
			out = append(out, candidate)
		}
	}
	return out
}

func parseDate(v string) (time.Time, bool) {
	trimmed := strings.TrimSpace(v)
	if trimmed == "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation(dateLayout, trimmed, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// dateOffsetDays is the absolute calendar-day distance, or nil when either
// date is missing or unparseable.
func dateOffsetDays(a, b string) *float64 {
	left, ok := parseDate(a)
	if !ok {
		return nil
	}
	right, ok := parseDate(b)
	if !ok {
		return nil
	}
	days := math.Abs(right.Sub(left).Hours() / 24)
	return &days
}
