package valueobject

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestPeriod_EndFrom(t *testing.T) {
	tests := []struct {
		name     string
		period   Period
		start    time.Time
		expected time.Time
	}{
		{"weekly", PeriodWeekly, date(2024, 3, 4), date(2024, 3, 10)},
		{"monthly", PeriodMonthly, date(2024, 3, 1), date(2024, 3, 31)},
		{"monthly mid-month", PeriodMonthly, date(2024, 1, 15), date(2024, 2, 14)},
		{"quarterly", PeriodQuarterly, date(2024, 1, 1), date(2024, 3, 31)},
		{"yearly", PeriodYearly, date(2024, 1, 1), date(2024, 12, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.period.EndFrom(tt.start)
			if !got.Equal(tt.expected) {
				t.Errorf("expected %s, got %s", tt.expected.Format(time.DateOnly), got.Format(time.DateOnly))
			}
		})
	}
}

func TestPeriod_BoundsContaining(t *testing.T) {
	t.Run("weekly starts on Monday", func(t *testing.T) {
		start, end := PeriodWeekly.BoundsContaining(date(2024, 3, 7)) // Thursday
		if !start.Equal(date(2024, 3, 4)) || !end.Equal(date(2024, 3, 10)) {
			t.Errorf("unexpected bounds %s..%s", start.Format(time.DateOnly), end.Format(time.DateOnly))
		}
	})

	t.Run("sunday belongs to the previous week", func(t *testing.T) {
		start, _ := PeriodWeekly.BoundsContaining(date(2024, 3, 10))
		if !start.Equal(date(2024, 3, 4)) {
			t.Errorf("expected 2024-03-04, got %s", start.Format(time.DateOnly))
		}
	})

	t.Run("quarterly", func(t *testing.T) {
		start, end := PeriodQuarterly.BoundsContaining(date(2024, 5, 20))
		if !start.Equal(date(2024, 4, 1)) || !end.Equal(date(2024, 6, 30)) {
			t.Errorf("unexpected bounds %s..%s", start.Format(time.DateOnly), end.Format(time.DateOnly))
		}
	})

	t.Run("yearly", func(t *testing.T) {
		start, end := PeriodYearly.BoundsContaining(date(2024, 5, 20))
		if !start.Equal(date(2024, 1, 1)) || !end.Equal(date(2024, 12, 31)) {
			t.Errorf("unexpected bounds %s..%s", start.Format(time.DateOnly), end.Format(time.DateOnly))
		}
	})
}

func TestPeriod_IsValid(t *testing.T) {
	for _, p := range []Period{PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly} {
		if !p.IsValid() {
			t.Errorf("expected %q to be valid", p)
		}
	}
	if Period("daily").IsValid() {
		t.Error("expected daily to be invalid for budgets")
	}
}

func TestFrequency_Next(t *testing.T) {
	tests := []struct {
		name      string
		frequency Frequency
		from      time.Time
		expected  time.Time
	}{
		{"daily", FrequencyDaily, date(2024, 2, 28), date(2024, 2, 29)},
		{"weekly", FrequencyWeekly, date(2024, 2, 26), date(2024, 3, 4)},
		{"monthly", FrequencyMonthly, date(2024, 1, 15), date(2024, 2, 15)},
		{"monthly clamps to end of february", FrequencyMonthly, date(2024, 1, 31), date(2024, 2, 29)},
		{"monthly clamps in non-leap year", FrequencyMonthly, date(2023, 1, 31), date(2023, 2, 28)},
		{"monthly crosses year", FrequencyMonthly, date(2024, 12, 31), date(2025, 1, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.frequency.Next(tt.from)
			if !got.Equal(tt.expected) {
				t.Errorf("expected %s, got %s", tt.expected.Format(time.DateOnly), got.Format(time.DateOnly))
			}
		})
	}
}

func TestFrequency_NextKeepsTimeOfDay(t *testing.T) {
	from := time.Date(2024, 1, 31, 9, 30, 0, 0, time.UTC)
	got := FrequencyMonthly.Next(from)
	if got.Hour() != 9 || got.Minute() != 30 {
		t.Errorf("expected 09:30, got %s", got.Format(time.TimeOnly))
	}
}
