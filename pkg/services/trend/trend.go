// Package trend builds zero-filled monthly histograms of timestamped events.
package trend

import (
	"time"

	"github.com/de-tools/maturity-atlas/pkg/models/domain"
)

// MonthKeyLayout formats bucket keys as YYYY-MM.
const MonthKeyLayout = "2006-01"

// Buckets is an ordered month -> count map. Its key set is fixed at
// construction, so months without events are never missing.
type Buckets struct {
	keys   []string
	counts map[string]int
	loc    *time.Location
}

// Streams holds the four event categories tallied per month.
type Streams struct {
	Risks           []domain.TrendEvent
	Nonconformities []domain.TrendEvent
	Actions         []domain.TrendEvent
	Incidents       []domain.TrendEvent
}

func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// PeriodStart returns the first day of the earliest month of the window, so that
// the window covers exactly period.Months() calendar months including now's month.
func PeriodStart(period domain.Period, now time.Time) (time.Time, error) {
	months := period.Months()
	if months == 0 {
		return time.Time{}, domain.InvalidField("period", string(period))
	}
	return time.Date(now.Year(), now.Month()-time.Month(months-1), 1, 0, 0, 0, 0, now.Location()), nil
}

// BuildBuckets returns one zero-valued bucket per calendar month from start's
// month through now's month inclusive, in chronological order.
func BuildBuckets(start, now time.Time) Buckets {
	loc := now.Location()
	b := Buckets{
		keys:   make([]string, 0),
		counts: make(map[string]int),
		loc:    loc,
	}

	start = start.In(loc)
	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, loc)
	last := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	for !cursor.After(last) {
		key := MonthKey(cursor)
		b.keys = append(b.keys, key)
		b.counts[key] = 0
		cursor = cursor.AddDate(0, 1, 0)
	}
	return b
}

// Keys returns the bucket keys in chronological order.
func (b Buckets) Keys() []string {
	keys := make([]string, len(b.keys))
	copy(keys, b.keys)
	return keys
}

func (b Buckets) Len() int {
	return len(b.keys)
}

// Count returns the tally of key and whether key is inside the window.
func (b Buckets) Count(key string) (int, bool) {
	c, ok := b.counts[key]
	return c, ok
}

// Tally returns a copy of b with every in-window event counted in its
// creation month. Events outside the window are dropped.
func (b Buckets) Tally(events []domain.TrendEvent) Buckets {
	out := Buckets{
		keys:   b.keys,
		counts: make(map[string]int, len(b.counts)),
		loc:    b.loc,
	}
	for k, v := range b.counts {
		out.counts[k] = v
	}

	for _, e := range events {
		key := MonthKey(e.CreatedAt.In(b.location()))
		if _, ok := out.counts[key]; ok {
			out.counts[key]++
		}
	}
	return out
}

func (b Buckets) location() *time.Location {
	if b.loc == nil {
		return time.UTC
	}
	return b.loc
}

// BuildRows tallies every stream against the same template and zips them by month.
func BuildRows(template Buckets, streams Streams) []domain.TrendRow {
	risks := template.Tally(streams.Risks)
	ncs := template.Tally(streams.Nonconformities)
	actions := template.Tally(streams.Actions)
	incidents := template.Tally(streams.Incidents)

	rows := make([]domain.TrendRow, 0, template.Len())
	for _, key := range template.keys {
		rows = append(rows, domain.TrendRow{
			Month:     key,
			Risks:     risks.counts[key],
			NCs:       ncs.counts[key],
			Actions:   actions.counts[key],
			Incidents: incidents.counts[key],
		})
	}
	return rows
}

// Build returns the trend rows of period ending at now.
func Build(period domain.Period, now time.Time, streams Streams) ([]domain.TrendRow, error) {
	start, err := PeriodStart(period, now)
	if err != nil {
		return nil, err
	}
	return BuildRows(BuildBuckets(start, now), streams), nil
}
