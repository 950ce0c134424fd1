// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"fmt"
	"time"
)

var monthAbbreviations = map[time.Month]string{
	time.January:   "Jan",
	time.February:  "Feb",
	time.March:     "Mar",
	time.April:     "Apr",
	time.May:       "May",
	time.June:      "Jun",
	time.July:      "Jul",
	time.August:    "Aug",
	time.September: "Sep",
	time.October:   "Oct",
	time.November:  "Nov",
	time.December:  "Dec",
}

// MonthBounds returns the first and last day of the month containing date.
func MonthBounds(date time.Time) (start, end time.Time) {
	start = time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	end = start.AddDate(0, 1, -1)
	return start, end
}

// PeriodLabel generates a human-readable label for a date range.
// Formats:
// - Single month: "Mar 2025"
// - Single quarter: "Q1 2025"
// - Otherwise: "Jan 2025 - Jun 2025"
func PeriodLabel(startDate, endDate time.Time) string {
	if startDate.Year() == endDate.Year() && startDate.Month() == endDate.Month() {
		return monthLabel(startDate)
	}

	startQuarter := (int(startDate.Month())-1)/3 + 1
	endQuarter := (int(endDate.Month())-1)/3 + 1
	if startDate.Year() == endDate.Year() && startQuarter == endQuarter {
		return fmt.Sprintf("Q%d %d", startQuarter, startDate.Year())
	}

	return fmt.Sprintf("%s - %s", monthLabel(startDate), monthLabel(endDate))
}

func monthLabel(date time.Time) string {
	return fmt.Sprintf("%s %d", monthAbbreviations[date.Month()], date.Year())
}
