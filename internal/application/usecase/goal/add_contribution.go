package goal

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/application/service"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// AddContributionInput represents the input for adding a contribution.
type AddContributionInput struct {
	UserID uuid.UUID
	GoalID uuid.UUID
	Amount decimal.Decimal
	Note   string
	Source entity.ContributionSource // Optional, defaults to manual
	Now    time.Time                 // Optional, defaults to the current time
}

// AddContributionOutput represents the output of adding a contribution.
type AddContributionOutput struct {
	Goal               *GoalOutput
	Contribution       ContributionOutput
	AchievedMilestones []MilestoneOutput
	Completed          bool
}

// AddContributionUseCase records a contribution under a row lock and reports the
// milestones and completion it caused.
type AddContributionUseCase struct {
	goalRepo   adapter.GoalRepository
	transactor adapter.Transactor
	tracker    *service.ContributionTracker
	notifier   *service.GoalCompletionNotifier
	events     *service.EventDispatcher
}

// NewAddContributionUseCase creates a new AddContributionUseCase instance.
func NewAddContributionUseCase(
	goalRepo adapter.GoalRepository,
	transactor adapter.Transactor,
	tracker *service.ContributionTracker,
	notifier *service.GoalCompletionNotifier,
	events *service.EventDispatcher,
) *AddContributionUseCase {
	return &AddContributionUseCase{
		goalRepo:   goalRepo,
		transactor: transactor,
		tracker:    tracker,
		notifier:   notifier,
		events:     events,
	}
}

// Execute performs the contribution.
func (uc *AddContributionUseCase) Execute(ctx context.Context, input AddContributionInput) (*AddContributionOutput, error) {
	now := currentTime(input.Now)
	source := input.Source
	if source == "" {
		source = entity.ContributionSourceManual
	}

	var goal *entity.Goal
	var outcome *entity.ContributionOutcome

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		goal, err = findOwnedGoal(ctx, uc.goalRepo.FindByIDForUpdate, input.UserID, input.GoalID)
		if err != nil {
			return err
		}
		outcome, err = uc.tracker.Contribute(ctx, goal, input.Amount, strings.TrimSpace(input.Note), source, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(ctx, service.ContributionEvents(goal, outcome, now)...)
	if outcome.Completed {
		uc.notifier.Notify(ctx, goal)
	}

	output := &AddContributionOutput{
		Goal: toGoalOutput(goal, now, false),
		Contribution: ContributionOutput{
			ID:     outcome.Contribution.ID,
			Amount: outcome.Contribution.Amount,
			Date:   outcome.Contribution.Date,
			Note:   outcome.Contribution.Note,
			Source: outcome.Contribution.Source,
		},
		AchievedMilestones: make([]MilestoneOutput, len(outcome.AchievedMilestones)),
		Completed:          outcome.Completed,
	}
	for i, milestone := range outcome.AchievedMilestones {
		output.AchievedMilestones[i] = MilestoneOutput{
			ID:         milestone.ID,
			Name:       milestone.Name,
			Amount:     milestone.Amount,
			Achieved:   milestone.Achieved,
			AchievedAt: milestone.AchievedAt,
		}
	}

	return output, nil
}
