package config

import (
	"fmt"
	"time"
)

// DateLayout is the date format sreport accepts for start= and end=.
const DateLayout = "2006-01-02"

// Period is a half-open calendar interval [Start, End) at midnight
// resolution. End is exclusive, matching sreport's end= semantics.
type Period struct {
	Start time.Time
	End   time.Time
}

// StartDate renders the inclusive lower bound for sreport.
func (p Period) StartDate() string { return p.Start.Format(DateLayout) }

// EndDate renders the exclusive upper bound for sreport.
func (p Period) EndDate() string { return p.End.Format(DateLayout) }

// ParseDay parses "2006-01-02" into the single covered day.
func ParseDay(s string) (Period, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return Period{}, fmt.Errorf("invalid day %q, expected YYYY-MM-DD", s)
	}
	return Period{Start: t, End: t.AddDate(0, 0, 1)}, nil
}

// ParseMonth parses "2006-01" into the covered calendar month.
func ParseMonth(s string) (Period, error) {
	t, err := time.ParseInLocation("2006-01", s, time.UTC)
	if err != nil {
		return Period{}, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return Period{Start: t, End: t.AddDate(0, 1, 0)}, nil
}

// ParseYear parses "2006" into the covered calendar year.
func ParseYear(s string) (Period, error) {
	t, err := time.ParseInLocation("2006", s, time.UTC)
	if err != nil {
		return Period{}, fmt.Errorf("invalid year %q, expected YYYY", s)
	}
	return Period{Start: t, End: t.AddDate(1, 0, 0)}, nil
}

// PreviousMonth returns the last complete calendar month before now, the
// default reporting period when no selector flag is given.
func PreviousMonth(now time.Time) Period {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: first.AddDate(0, -1, 0), End: first}
}
