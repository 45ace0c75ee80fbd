package domain

import "time"

// Period selects the lookback window of trend analytics.
type Period string

const (
	Period3Months  Period = "3m"
	Period6Months  Period = "6m"
	Period12Months Period = "12m"
)

var periodMonths = map[Period]int{
	Period3Months:  3,
	Period6Months:  6,
	Period12Months: 12,
}

func ParsePeriod(s string) (Period, error) {
	p := Period(s)
	if _, ok := periodMonths[p]; !ok {
		return "", InvalidField("period", s)
	}
	return p, nil
}

// Months returns the number of calendar months covered by p, or 0 when p is unknown.
func (p Period) Months() int {
	return periodMonths[p]
}

type EventKind string

const (
	EventRisk          EventKind = "risk"
	EventNonconformity EventKind = "nonconformity"
	EventActionPlan    EventKind = "action_plan"
	EventIncident      EventKind = "incident"
)

var EventKinds = []EventKind{EventRisk, EventNonconformity, EventActionPlan, EventIncident}

// TrendEvent is any record exposing a creation timestamp.
type TrendEvent struct {
	Kind      EventKind
	CreatedAt time.Time
}

type TrendRow struct {
	Month     string // YYYY-MM
	Risks     int
	NCs       int
	Actions   int
	Incidents int
}
