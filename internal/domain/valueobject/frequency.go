package valueobject

import "time"

// Frequency represents how often an auto-save rule fires.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// IsValid reports whether the frequency is supported.
func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Next returns the occurrence following from.
// Monthly steps keep the day of month, clamped to the last day of shorter months.
func (f Frequency) Next(from time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyMonthly:
		return addMonthClamped(from)
	default:
		return from
	}
}

func addMonthClamped(from time.Time) time.Time {
	year, month, day := from.Date()
	firstOfNext := time.Date(year, month+1, 1, 0, 0, 0, 0, from.Location())
	lastDay := firstOfNext.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfNext.Year(), firstOfNext.Month(), day,
		from.Hour(), from.Minute(), from.Second(), from.Nanosecond(), from.Location())
}
