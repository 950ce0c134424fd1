package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/domain/valueobject"
)

func newBudget(amount, spent int64, threshold int) *Budget {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	budget := NewBudget(uuid.New(), uuid.New(), "Food", decimal.NewFromInt(amount), valueobject.PeriodMonthly,
		start, valueobject.PeriodMonthly.EndFrom(start), threshold, true)
	budget.Spent = decimal.NewFromInt(spent)
	return budget
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name     string
		part     decimal.Decimal
		whole    decimal.Decimal
		expected string
	}{
		{"half", decimal.NewFromInt(50), decimal.NewFromInt(100), "50"},
		{"rounded to two decimals", decimal.NewFromInt(1), decimal.NewFromInt(3), "33.33"},
		{"zero target", decimal.NewFromInt(50), decimal.Zero, "0"},
		{"negative target", decimal.NewFromInt(50), decimal.NewFromInt(-10), "0"},
		{"over budget", decimal.NewFromInt(150), decimal.NewFromInt(100), "150"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentage(tt.part, tt.whole)
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestBudget_Status(t *testing.T) {
	tests := []struct {
		name     string
		spent    int64
		expected BudgetStatus
	}{
		{"on track", 500, BudgetStatusOnTrack},
		{"warning at threshold", 800, BudgetStatusWarning},
		{"exceeded at 100%", 1000, BudgetStatusExceeded},
		{"exceeded above 100%", 1200, BudgetStatusExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget := newBudget(1000, tt.spent, 80)
			if got := budget.Status(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestBudget_ShouldAlert(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	t.Run("fires at threshold when never alerted", func(t *testing.T) {
		budget := newBudget(1000, 850, 80)
		if !budget.ShouldAlert(now) {
			t.Error("expected alert")
		}
	})

	t.Run("below threshold", func(t *testing.T) {
		budget := newBudget(1000, 700, 80)
		if budget.ShouldAlert(now) {
			t.Error("expected no alert")
		}
	})

	t.Run("notifications disabled", func(t *testing.T) {
		budget := newBudget(1000, 900, 80)
		budget.NotificationsEnabled = false
		if budget.ShouldAlert(now) {
			t.Error("expected no alert")
		}
	})

	t.Run("suppressed within 24 hours", func(t *testing.T) {
		budget := newBudget(1000, 900, 80)
		budget.MarkAlerted(now.Add(-23 * time.Hour))
		if budget.ShouldAlert(now) {
			t.Error("expected alert to be suppressed")
		}
	})

	t.Run("fires again after 24 hours", func(t *testing.T) {
		budget := newBudget(1000, 900, 80)
		budget.MarkAlerted(now.Add(-24 * time.Hour))
		if !budget.ShouldAlert(now) {
			t.Error("expected alert")
		}
	})
}

func TestBudget_Covers(t *testing.T) {
	budget := newBudget(1000, 0, 80)

	for _, tt := range []struct {
		date     time.Time
		expected bool
	}{
		{time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC), true},
		{time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), false},
		{time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), false},
	} {
		if got := budget.Covers(tt.date); got != tt.expected {
			t.Errorf("Covers(%s): expected %v, got %v", tt.date.Format(time.DateOnly), tt.expected, got)
		}
	}
}
