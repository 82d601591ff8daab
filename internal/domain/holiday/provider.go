package holiday

import (
	"context"
	"time"
)

// Set is a calendar-year-scoped snapshot of public holiday dates.
// Keys are dates formatted as "2006-01-02".
type Set map[string]struct{}

func NewSet(dates ...time.Time) Set {
	s := make(Set, len(dates))
	for _, d := range dates {
		s.Add(d)
	}
	return s
}

func (s Set) Add(date time.Time) {
	s[date.Format("2006-01-02")] = struct{}{}
}

func (s Set) Contains(date time.Time) bool {
	_, ok := s[date.Format("2006-01-02")]
	return ok
}

// Merge returns a new set containing the dates of both sets.
func (s Set) Merge(other Set) Set {
	merged := make(Set, len(s)+len(other))
	for k := range s {
		merged[k] = struct{}{}
	}
	for k := range other {
		merged[k] = struct{}{}
	}
	return merged
}

// Provider supplies public holiday dates for a country and year.
//
// Implementations must fail with ErrUpstreamUnavailable when the data source
// cannot be reached. Callers must never substitute an empty set on failure;
// a zero-holiday fallback would corrupt working-day counts.
type Provider interface {
	Fetch(ctx context.Context, country string, year int) (Set, error)
}
