// Package valueobject contains domain value objects for the budget backend.
package valueobject

import "time"

// Period represents the recurrence window of a budget.
type Period string

const (
	PeriodWeekly    Period = "weekly"
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

// IsValid reports whether the period is supported.
func (p Period) IsValid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	}
	return false
}

// EndFrom returns the last day (inclusive) of a period beginning on start.
func (p Period) EndFrom(start time.Time) time.Time {
	start = StartOfDay(start)

	switch p {
	case PeriodWeekly:
		return start.AddDate(0, 0, 6)
	case PeriodMonthly:
		return start.AddDate(0, 1, -1)
	case PeriodQuarterly:
		return start.AddDate(0, 3, -1)
	case PeriodYearly:
		return start.AddDate(1, 0, -1)
	default:
		return start
	}
}

// BoundsContaining returns the calendar period containing date.
// Weeks start on Monday.
func (p Period) BoundsContaining(date time.Time) (start, end time.Time) {
	loc := date.Location()

	switch p {
	case PeriodWeekly:
		weekday := int(date.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start = time.Date(date.Year(), date.Month(), date.Day()-(weekday-1), 0, 0, 0, 0, loc)
	case PeriodMonthly:
		start = time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, loc)
	case PeriodQuarterly:
		quarter := (int(date.Month()) - 1) / 3
		start = time.Date(date.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, loc)
	case PeriodYearly:
		start = time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, loc)
	default:
		start = StartOfDay(date)
		return start, start
	}
	return start, p.EndFrom(start)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last instant of the day containing t.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
