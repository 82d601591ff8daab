package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/leaveease/leaveease-backend-go/internal/domain/holiday"
)

// WorkdayCalculator computes business-day counts over inclusive date ranges,
// excluding weekends and the public holidays of the configured country.
type WorkdayCalculator struct {
	provider holiday.Provider
	country  string
}

func NewWorkdayCalculator(provider holiday.Provider, country string) *WorkdayCalculator {
	return &WorkdayCalculator{
		provider: provider,
		country:  country,
	}
}

// CountWorkdays walks [start, end] inclusive and counts days whose weekday is
// Monday through Friday and which are not in holidays. Pure and deterministic.
func CountWorkdays(start, end time.Time, holidays holiday.Set) int {
	days := 0
	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		if current.Weekday() == time.Saturday || current.Weekday() == time.Sunday {
			continue
		}
		if holidays.Contains(current) {
			continue
		}
		days++
	}
	return days
}

// BusinessDays counts the working days in [start, end], fetching holidays for
// every distinct calendar year the range touches. A range crossing a year
// boundary therefore sees the holidays of both years.
func (c *WorkdayCalculator) BusinessDays(ctx context.Context, start, end time.Time) (int, error) {
	holidays := holiday.Set{}
	for year := start.Year(); year <= end.Year(); year++ {
		yearSet, err := c.provider.Fetch(ctx, c.country, year)
		if err != nil {
			return 0, fmt.Errorf("fetch holidays for %d: %w", year, err)
		}
		holidays = holidays.Merge(yearSet)
	}

	return CountWorkdays(start, end, holidays), nil
}
