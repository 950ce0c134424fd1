package goal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter/adaptertest"
	"github.com/AminataF33/gestionbudgetback/internal/application/service"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/domain/valueobject"
)

var now = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

type fixture struct {
	store  *adaptertest.Store
	events *adaptertest.EventRecorder
	emails *adaptertest.EmailRecorder
	user   *entity.User
}

func newFixture() *fixture {
	f := &fixture{
		store:  adaptertest.NewStore(),
		events: &adaptertest.EventRecorder{},
		emails: &adaptertest.EmailRecorder{},
		user:   entity.NewUser("moussa@example.com", "Moussa", "hash", now),
	}
	f.store.SeedUser(f.user)
	return f
}

func (f *fixture) contribute() *AddContributionUseCase {
	return NewAddContributionUseCase(
		f.store.Goals(),
		f.store.Transactor(),
		service.NewContributionTracker(f.store.Goals()),
		service.NewGoalCompletionNotifier(f.store.Users(), f.emails),
		service.NewEventDispatcher(f.events),
	)
}

func (f *fixture) createGoal(t *testing.T, input CreateGoalInput) *GoalOutput {
	t.Helper()
	input.UserID = f.user.ID
	input.Now = now
	if input.Name == "" {
		input.Name = "Laptop"
	}
	if input.TargetDate.IsZero() {
		input.TargetDate = now.AddDate(1, 0, 0)
	}
	output, err := NewCreateGoalUseCase(f.store.Goals()).Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return output.Goal
}

func TestCreateGoal_Validation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateGoalInput
		wantErr error
	}{
		{
			name:    "zero target",
			input:   CreateGoalInput{Name: "Car", TargetAmount: decimal.Zero, TargetDate: now.AddDate(1, 0, 0)},
			wantErr: domainerror.ErrInvalidGoalTarget,
		},
		{
			name:    "target date in the past",
			input:   CreateGoalInput{Name: "Car", TargetAmount: d(100), TargetDate: now.AddDate(0, 0, -1)},
			wantErr: domainerror.ErrGoalTargetDateInPast,
		},
		{
			name:    "blank name",
			input:   CreateGoalInput{Name: " ", TargetAmount: d(100), TargetDate: now.AddDate(1, 0, 0)},
			wantErr: domainerror.ErrValidation,
		},
		{
			name:    "bad priority",
			input:   CreateGoalInput{Name: "Car", TargetAmount: d(100), TargetDate: now.AddDate(1, 0, 0), Priority: "urgent"},
			wantErr: domainerror.ErrInvalidGoalPriority,
		},
		{
			name:    "non positive milestone",
			input:   CreateGoalInput{Name: "Car", TargetAmount: d(100), TargetDate: now.AddDate(1, 0, 0), Milestones: []MilestoneInput{{Amount: d(-5)}}},
			wantErr: domainerror.ErrInvalidMilestoneAmount,
		},
		{
			name: "auto-save without amount",
			input: CreateGoalInput{Name: "Car", TargetAmount: d(100), TargetDate: now.AddDate(1, 0, 0),
				AutoSave: &AutoSaveInput{Enabled: true, Frequency: valueobject.FrequencyWeekly}},
			wantErr: domainerror.ErrInvalidAutoSaveAmount,
		},
		{
			name: "auto-save with unknown frequency",
			input: CreateGoalInput{Name: "Car", TargetAmount: d(100), TargetDate: now.AddDate(1, 0, 0),
				AutoSave: &AutoSaveInput{Enabled: true, Amount: d(10), Frequency: "hourly"}},
			wantErr: domainerror.ErrInvalidAutoSaveFrequency,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			tt.input.UserID = f.user.ID
			tt.input.Now = now
			_, err := NewCreateGoalUseCase(f.store.Goals()).Execute(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateGoal_Defaults(t *testing.T) {
	f := newFixture()
	goal := f.createGoal(t, CreateGoalInput{
		TargetAmount: d(1000),
		Milestones:   []MilestoneInput{{Name: "Half", Amount: d(500)}, {Amount: d(250)}},
		AutoSave:     &AutoSaveInput{Enabled: true, Amount: d(50), Frequency: valueobject.FrequencyWeekly},
	})

	if goal.Priority != entity.GoalPriorityMedium {
		t.Errorf("expected medium priority, got %s", goal.Priority)
	}
	if len(goal.Milestones) != 2 || goal.Milestones[0].Name != "250" {
		t.Errorf("expected milestones sorted by amount, got %+v", goal.Milestones)
	}
	if goal.AutoSave.NextDate == nil || !goal.AutoSave.NextDate.Equal(now.AddDate(0, 0, 7)) {
		t.Errorf("expected first auto-save one week out, got %v", goal.AutoSave.NextDate)
	}
	if goal.DaysRemaining != 365 {
		t.Errorf("expected 365 days remaining, got %d", goal.DaysRemaining)
	}
}

func TestAddContribution_MilestonesAndCompletion(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	goal := f.createGoal(t, CreateGoalInput{
		TargetAmount: d(500000),
		Milestones: []MilestoneInput{
			{Name: "25%", Amount: d(125000)},
			{Name: "50%", Amount: d(250000)},
			{Name: "75%", Amount: d(375000)},
		},
	})
	uc := f.contribute()

	output, err := uc.Execute(ctx, AddContributionInput{UserID: f.user.ID, GoalID: goal.ID, Amount: d(450000), Now: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.AchievedMilestones) != 3 {
		t.Errorf("expected 3 milestones achieved, got %d", len(output.AchievedMilestones))
	}
	if output.Completed || output.Goal.Status != entity.GoalStatusActive {
		t.Error("goal must still be active")
	}
	if output.Contribution.Source != entity.ContributionSourceManual {
		t.Errorf("expected manual source, got %s", output.Contribution.Source)
	}

	output, err = uc.Execute(ctx, AddContributionInput{UserID: f.user.ID, GoalID: goal.ID, Amount: d(40000), Now: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.AchievedMilestones) != 0 || output.Completed {
		t.Errorf("unexpected outcome %+v", output)
	}
	if !output.Goal.CurrentAmount.Equal(d(490000)) {
		t.Errorf("expected 490000, got %s", output.Goal.CurrentAmount)
	}

	output, err = uc.Execute(ctx, AddContributionInput{UserID: f.user.ID, GoalID: goal.ID, Amount: d(10000), Now: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !output.Completed || output.Goal.Status != entity.GoalStatusCompleted {
		t.Fatal("expected goal to complete")
	}
	if len(f.emails.GoalCompletion) != 1 {
		t.Errorf("expected one completion email, got %d", len(f.emails.GoalCompletion))
	}
	if len(f.events.Events(entity.EventGoalMilestoneReached)) != 3 {
		t.Error("expected three milestone events")
	}
	if len(f.events.Events(entity.EventGoalCompleted)) != 1 {
		t.Error("expected one completion event")
	}

	stored := f.store.Goal(goal.ID)
	if len(stored.Contributions) != 3 {
		t.Errorf("expected 3 stored contributions, got %d", len(stored.Contributions))
	}

	t.Run("completed goal rejects further contributions", func(t *testing.T) {
		_, err := uc.Execute(ctx, AddContributionInput{UserID: f.user.ID, GoalID: goal.ID, Amount: d(1000), Now: now})
		if !errors.Is(err, domainerror.ErrGoalNotAcceptingContributions) {
			t.Fatalf("expected ErrGoalNotAcceptingContributions, got %v", err)
		}
		if got := f.store.Goal(goal.ID); !got.CurrentAmount.Equal(d(500000)) {
			t.Errorf("expected saved amount unchanged, got %s", got.CurrentAmount)
		}
		if len(f.events.Events(entity.EventGoalCompleted)) != 1 {
			t.Error("completion must not fire twice")
		}
	})
}

func TestAddContribution_Rejections(t *testing.T) {
	ctx := context.Background()

	t.Run("paused goal", func(t *testing.T) {
		f := newFixture()
		goal := f.createGoal(t, CreateGoalInput{TargetAmount: d(1000)})
		paused := entity.GoalStatusPaused
		if _, err := NewUpdateGoalUseCase(f.store.Goals()).Execute(ctx, UpdateGoalInput{UserID: f.user.ID, GoalID: goal.ID, Status: &paused, Now: now}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := f.contribute().Execute(ctx, AddContributionInput{UserID: f.user.ID, GoalID: goal.ID, Amount: d(10), Now: now})
		if !errors.Is(err, domainerror.ErrGoalNotAcceptingContributions) {
			t.Fatalf("expected ErrGoalNotAcceptingContributions, got %v", err)
		}
	})

	t.Run("zero amount", func(t *testing.T) {
		f := newFixture()
		goal := f.createGoal(t, CreateGoalInput{TargetAmount: d(1000)})
		_, err := f.contribute().Execute(ctx, AddContributionInput{UserID: f.user.ID, GoalID: goal.ID, Amount: decimal.Zero, Now: now})
		if !errors.Is(err, domainerror.ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("another user", func(t *testing.T) {
		f := newFixture()
		goal := f.createGoal(t, CreateGoalInput{TargetAmount: d(1000)})
		_, err := f.contribute().Execute(ctx, AddContributionInput{UserID: uuid.New(), GoalID: goal.ID, Amount: d(10), Now: now})
		if !errors.Is(err, domainerror.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("failed write rolls back the contribution", func(t *testing.T) {
		f := newFixture()
		goal := f.createGoal(t, CreateGoalInput{TargetAmount: d(1000)})
		f.store.FailGoalUpdate(goal.ID, domainerror.ErrGoalConcurrentUpdate)

		_, err := f.contribute().Execute(ctx, AddContributionInput{UserID: f.user.ID, GoalID: goal.ID, Amount: d(10), Now: now})
		if !errors.Is(err, domainerror.ErrConcurrentModification) {
			t.Fatalf("expected ErrConcurrentModification, got %v", err)
		}
		stored := f.store.Goal(goal.ID)
		if len(stored.Contributions) != 0 || !stored.CurrentAmount.IsZero() {
			t.Error("contribution must be rolled back")
		}
		if len(f.events.Events("")) != 0 {
			t.Error("no event must be published")
		}
	})
}

func TestUpdateGoal_Transitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	goal := f.createGoal(t, CreateGoalInput{TargetAmount: d(1000)})
	uc := NewUpdateGoalUseCase(f.store.Goals())

	steps := []struct {
		to      entity.GoalStatus
		wantErr error
	}{
		{to: entity.GoalStatusPaused},
		{to: entity.GoalStatusActive},
		{to: entity.GoalStatusCompleted, wantErr: domainerror.ErrInvalidGoalStatusTransition},
		{to: entity.GoalStatusCancelled},
		{to: entity.GoalStatusActive, wantErr: domainerror.ErrInvalidGoalStatusTransition},
	}

	for _, step := range steps {
		status := step.to
		_, err := uc.Execute(ctx, UpdateGoalInput{UserID: f.user.ID, GoalID: goal.ID, Status: &status, Now: now})
		if step.wantErr != nil {
			if !errors.Is(err, step.wantErr) {
				t.Fatalf("to %s: expected %v, got %v", step.to, step.wantErr, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("to %s: unexpected error: %v", step.to, err)
		}
	}

	if stored := f.store.Goal(goal.ID); stored.Status != entity.GoalStatusCancelled {
		t.Errorf("expected cancelled, got %s", stored.Status)
	}
}

func TestListAndDeleteGoals(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	first := f.createGoal(t, CreateGoalInput{Name: "Trip", TargetAmount: d(1000)})
	f.createGoal(t, CreateGoalInput{Name: "Bike", TargetAmount: d(3000)})

	if _, err := f.contribute().Execute(ctx, AddContributionInput{UserID: f.user.ID, GoalID: first.ID, Amount: d(1000), Now: now}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list := NewListGoalsUseCase(f.store.Goals())
	output, err := list.Execute(ctx, ListGoalsInput{UserID: f.user.ID, Now: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Summary.ActiveCount != 1 || output.Summary.CompletedCount != 1 {
		t.Errorf("unexpected summary %+v", output.Summary)
	}
	if !output.Summary.OverallProgress.Equal(d(25)) {
		t.Errorf("expected 25%% overall progress, got %s", output.Summary.OverallProgress)
	}

	if err := NewDeleteGoalUseCase(f.store.Goals()).Execute(ctx, DeleteGoalInput{UserID: f.user.ID, GoalID: first.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	output, _ = list.Execute(ctx, ListGoalsInput{UserID: f.user.ID, Now: now})
	if len(output.Goals) != 1 {
		t.Errorf("expected 1 goal after delete, got %d", len(output.Goals))
	}

	_, err = NewGetGoalUseCase(f.store.Goals()).Execute(ctx, GetGoalInput{UserID: f.user.ID, GoalID: first.ID})
	if !errors.Is(err, domainerror.ErrNotFound) {
		t.Errorf("expected ErrNotFound for deleted goal, got %v", err)
	}
}
