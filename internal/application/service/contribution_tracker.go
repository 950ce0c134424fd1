package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// ContributionTracker records contributions against savings goals.
// Contribute must run inside a transaction on a goal loaded for update.
type ContributionTracker struct {
	goalRepo adapter.GoalRepository
}

// NewContributionTracker creates a new ContributionTracker instance.
func NewContributionTracker(goalRepo adapter.GoalRepository) *ContributionTracker {
	return &ContributionTracker{
		goalRepo: goalRepo,
	}
}

// Contribute appends a contribution to the goal and persists the contribution row,
// the new saved amount, achieved milestones and a completed status together.
func (t *ContributionTracker) Contribute(
	ctx context.Context,
	goal *entity.Goal,
	amount decimal.Decimal,
	note string,
	source entity.ContributionSource,
	now time.Time,
) (*entity.ContributionOutcome, error) {
	outcome, err := goal.AddContribution(amount, note, source, now)
	if err != nil {
		return nil, err
	}

	if err := t.goalRepo.AddContribution(ctx, &outcome.Contribution); err != nil {
		return nil, fmt.Errorf("failed to save contribution: %w", err)
	}

	if err := t.goalRepo.Update(ctx, goal); err != nil {
		if errors.Is(err, domainerror.ErrConcurrentModification) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalConcurrentUpdate,
				"goal was modified concurrently, retry the contribution",
				err,
			)
		}
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return outcome, nil
}

// ContributionEvents builds the events describing a contribution outcome.
func ContributionEvents(goal *entity.Goal, outcome *entity.ContributionOutcome, now time.Time) []entity.DomainEvent {
	events := []entity.DomainEvent{
		entity.NewDomainEvent(entity.EventGoalContribution, goal.UserID, goal.ID, now, map[string]interface{}{
			"contribution_id": outcome.Contribution.ID.String(),
			"amount":          outcome.Contribution.Amount.String(),
			"source":          string(outcome.Contribution.Source),
			"current_amount":  goal.CurrentAmount.String(),
		}),
	}

	for _, milestone := range outcome.AchievedMilestones {
		events = append(events, entity.NewDomainEvent(entity.EventGoalMilestoneReached, goal.UserID, goal.ID, now, map[string]interface{}{
			"milestone_id": milestone.ID.String(),
			"name":         milestone.Name,
			"amount":       milestone.Amount.String(),
		}))
	}

	if outcome.Completed {
		events = append(events, entity.NewDomainEvent(entity.EventGoalCompleted, goal.UserID, goal.ID, now, map[string]interface{}{
			"target_amount":  goal.TargetAmount.String(),
			"current_amount": goal.CurrentAmount.String(),
		}))
	}

	return events
}
