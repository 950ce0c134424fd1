package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/domain/valueobject"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func newSavingsGoal(target int64) *Goal {
	return NewGoal(uuid.New(), "Vacation", d(target), time.Now().AddDate(1, 0, 0), GoalPriorityMedium)
}

func TestGoal_AddContribution(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

	t.Run("milestone reached without completing", func(t *testing.T) {
		goal := newSavingsGoal(500000)
		goal.CurrentAmount = d(450000)
		if _, err := goal.AddMilestone("Almost there", d(480000)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		outcome, err := goal.AddContribution(d(40000), "bonus", ContributionSourceBonus, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !goal.CurrentAmount.Equal(d(490000)) {
			t.Errorf("expected 490000, got %s", goal.CurrentAmount)
		}
		if len(outcome.AchievedMilestones) != 1 || !goal.Milestones[0].Achieved {
			t.Error("expected the 480000 milestone to be achieved")
		}
		if goal.Milestones[0].AchievedAt == nil || !goal.Milestones[0].AchievedAt.Equal(now) {
			t.Error("expected achievedAt to be set")
		}
		if outcome.Completed || goal.Status != GoalStatusActive {
			t.Errorf("expected goal to stay active, got %s", goal.Status)
		}
		if len(goal.Contributions) != 1 || goal.Contributions[0].Source != ContributionSourceBonus {
			t.Error("expected one bonus contribution")
		}
	})

	t.Run("target reached completes the goal", func(t *testing.T) {
		goal := newSavingsGoal(1000)
		goal.CurrentAmount = d(900)

		outcome, err := goal.AddContribution(d(100), "", ContributionSourceManual, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !outcome.Completed || goal.Status != GoalStatusCompleted {
			t.Errorf("expected completed, got %s", goal.Status)
		}
		if goal.CompletedAt == nil {
			t.Error("expected completedAt to be set")
		}
	})

	t.Run("completed goals reject further contributions", func(t *testing.T) {
		goal := newSavingsGoal(1000)
		if _, err := goal.AddContribution(d(1000), "", ContributionSourceManual, now); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		_, err := goal.AddContribution(d(50), "", ContributionSourceManual, now)
		if !errors.Is(err, domainerror.ErrGoalNotAcceptingContributions) {
			t.Fatalf("expected ErrGoalNotAcceptingContributions, got %v", err)
		}
		if goal.Status != GoalStatusCompleted {
			t.Errorf("expected completed, got %s", goal.Status)
		}
		if !goal.CurrentAmount.Equal(d(1000)) {
			t.Errorf("expected saved amount unchanged, got %s", goal.CurrentAmount)
		}
	})

	t.Run("milestones never revert", func(t *testing.T) {
		goal := newSavingsGoal(1000)
		_, _ = goal.AddMilestone("Half", d(500))
		_, _ = goal.AddContribution(d(600), "", ContributionSourceManual, now)

		outcome, _ := goal.AddContribution(d(10), "", ContributionSourceManual, now.Add(time.Hour))
		if len(outcome.AchievedMilestones) != 0 {
			t.Error("already achieved milestone reported again")
		}
		if !goal.Milestones[0].AchievedAt.Equal(now) {
			t.Error("achievedAt must not move")
		}
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		goal := newSavingsGoal(1000)
		for _, amount := range []decimal.Decimal{decimal.Zero, d(-10)} {
			_, err := goal.AddContribution(amount, "", ContributionSourceManual, now)
			if !errors.Is(err, domainerror.ErrInvalidAmount) {
				t.Errorf("expected ErrInvalidAmount, got %v", err)
			}
		}
		if !goal.CurrentAmount.IsZero() || len(goal.Contributions) != 0 {
			t.Error("goal must be unchanged after a rejected contribution")
		}
	})

	t.Run("rejects paused and cancelled goals", func(t *testing.T) {
		for _, status := range []GoalStatus{GoalStatusPaused, GoalStatusCancelled} {
			goal := newSavingsGoal(1000)
			goal.Status = status
			_, err := goal.AddContribution(d(10), "", ContributionSourceManual, now)
			if !errors.Is(err, domainerror.ErrInvariantViolation) {
				t.Errorf("expected ErrInvariantViolation for %s, got %v", status, err)
			}
		}
	})
}

func TestGoal_AddMilestoneKeepsOrder(t *testing.T) {
	goal := newSavingsGoal(1000)
	_, _ = goal.AddMilestone("75%", d(750))
	_, _ = goal.AddMilestone("25%", d(250))
	_, _ = goal.AddMilestone("50%", d(500))

	for i := 1; i < len(goal.Milestones); i++ {
		if goal.Milestones[i-1].Amount.GreaterThan(goal.Milestones[i].Amount) {
			t.Fatalf("milestones not sorted: %+v", goal.Milestones)
		}
	}

	if _, err := goal.AddMilestone("invalid", decimal.Zero); !errors.Is(err, domainerror.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestGoal_AutoSave(t *testing.T) {
	now := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	t.Run("first run defaults to one step after now", func(t *testing.T) {
		goal := newSavingsGoal(1000)
		err := goal.ConfigureAutoSave(AutoSaveRule{Enabled: true, Amount: d(50), Frequency: valueobject.FrequencyWeekly}, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !goal.AutoSave.NextDate.Equal(now.AddDate(0, 0, 7)) {
			t.Errorf("unexpected next date %s", goal.AutoSave.NextDate)
		}
	})

	t.Run("invalid rules are rejected", func(t *testing.T) {
		goal := newSavingsGoal(1000)
		err := goal.ConfigureAutoSave(AutoSaveRule{Enabled: true, Amount: decimal.Zero, Frequency: valueobject.FrequencyDaily}, now)
		if !errors.Is(err, domainerror.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
		err = goal.ConfigureAutoSave(AutoSaveRule{Enabled: true, Amount: d(10), Frequency: "hourly"}, now)
		if !errors.Is(err, domainerror.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("due only when active, enabled and reached", func(t *testing.T) {
		goal := newSavingsGoal(1000)
		next := now
		goal.AutoSave = AutoSaveRule{Enabled: true, Amount: d(50), Frequency: valueobject.FrequencyMonthly, NextDate: &next}

		if !goal.IsAutoSaveDue(now) {
			t.Error("expected due")
		}
		if goal.IsAutoSaveDue(now.Add(-time.Second)) {
			t.Error("expected not yet due")
		}
		goal.Status = GoalStatusPaused
		if goal.IsAutoSaveDue(now) {
			t.Error("paused goals are never due")
		}
	})

	t.Run("advance moves by one frequency step", func(t *testing.T) {
		goal := newSavingsGoal(1000)
		next := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
		goal.AutoSave = AutoSaveRule{Enabled: true, Amount: d(50), Frequency: valueobject.FrequencyMonthly, NextDate: &next}

		goal.AdvanceAutoSave()
		if !goal.AutoSave.NextDate.Equal(time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected next date %s", goal.AutoSave.NextDate)
		}
	})
}

func TestGoalStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     GoalStatus
		to       GoalStatus
		expected bool
	}{
		{GoalStatusActive, GoalStatusPaused, true},
		{GoalStatusPaused, GoalStatusActive, true},
		{GoalStatusActive, GoalStatusCancelled, true},
		{GoalStatusActive, GoalStatusCompleted, false},
		{GoalStatusCompleted, GoalStatusActive, false},
		{GoalStatusCancelled, GoalStatusActive, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestGoal_ProgressAndRemaining(t *testing.T) {
	goal := newSavingsGoal(400)
	goal.CurrentAmount = d(100)

	if !goal.ProgressPercentage().Equal(d(25)) {
		t.Errorf("expected 25, got %s", goal.ProgressPercentage())
	}
	if !goal.Remaining().Equal(d(300)) {
		t.Errorf("expected 300, got %s", goal.Remaining())
	}

	goal.CurrentAmount = d(500)
	if !goal.Remaining().IsZero() {
		t.Errorf("expected 0 remaining, got %s", goal.Remaining())
	}
}
