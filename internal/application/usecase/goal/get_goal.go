package goal

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
)

// GetGoalInput represents the input for fetching a goal.
type GetGoalInput struct {
	UserID uuid.UUID
	GoalID uuid.UUID
	Now    time.Time // Optional, defaults to the current time
}

// GetGoalUseCase returns a goal with its milestones and contribution history.
type GetGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(goalRepo adapter.GoalRepository) *GetGoalUseCase {
	return &GetGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the goal lookup.
func (uc *GetGoalUseCase) Execute(ctx context.Context, input GetGoalInput) (*GoalOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo.FindByID, input.UserID, input.GoalID)
	if err != nil {
		return nil, err
	}
	return toGoalOutput(goal, currentTime(input.Now), true), nil
}
