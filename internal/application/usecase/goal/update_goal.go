package goal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// UpdateGoalInput represents the input for goal update.
// The saved amount only changes through contributions.
type UpdateGoalInput struct {
	UserID      uuid.UUID
	GoalID      uuid.UUID
	Name        *string
	Description *string
	TargetDate  *time.Time
	Category    *string
	Priority    *entity.GoalPriority
	Status      *entity.GoalStatus
	Milestones  []MilestoneInput // Appended to the existing milestones
	AutoSave    *AutoSaveInput
	Now         time.Time // Optional, defaults to the current time
}

// UpdateGoalUseCase handles goal update logic.
type UpdateGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*GoalOutput, error) {
	now := currentTime(input.Now)

	goal, err := findOwnedGoal(ctx, uc.goalRepo.FindByID, input.UserID, input.GoalID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		goal.Name = name
	}
	if input.Description != nil {
		goal.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		goal.Category = strings.TrimSpace(*input.Category)
	}
	if input.TargetDate != nil {
		if err := validateTargetDate(*input.TargetDate, now); err != nil {
			return nil, err
		}
		goal.TargetDate = *input.TargetDate
	}
	if input.Priority != nil {
		if err := validatePriority(*input.Priority); err != nil {
			return nil, err
		}
		goal.Priority = *input.Priority
	}
	if input.Status != nil {
		if err := goal.TransitionTo(*input.Status, now); err != nil {
			return nil, err
		}
	}
	if err := addMilestones(goal, input.Milestones); err != nil {
		return nil, err
	}
	if input.AutoSave != nil {
		if err := goal.ConfigureAutoSave(toAutoSaveRule(*input.AutoSave), now); err != nil {
			return nil, err
		}
	}
	goal.UpdatedAt = now

	if err := uc.goalRepo.Update(ctx, goal); err != nil {
		if errors.Is(err, domainerror.ErrConcurrentModification) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalConcurrentUpdate,
				"goal was modified concurrently, reload and retry",
				err,
			)
		}
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return toGoalOutput(goal, now, false), nil
}
