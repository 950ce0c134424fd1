package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
)

// DeleteGoalInput represents the input for goal deletion.
type DeleteGoalInput struct {
	UserID uuid.UUID
	GoalID uuid.UUID
}

// DeleteGoalUseCase soft-deletes a goal.
type DeleteGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewDeleteGoalUseCase creates a new DeleteGoalUseCase instance.
func NewDeleteGoalUseCase(goalRepo adapter.GoalRepository) *DeleteGoalUseCase {
	return &DeleteGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the goal deletion.
func (uc *DeleteGoalUseCase) Execute(ctx context.Context, input DeleteGoalInput) error {
	goal, err := findOwnedGoal(ctx, uc.goalRepo.FindByID, input.UserID, input.GoalID)
	if err != nil {
		return err
	}

	if err := uc.goalRepo.Delete(ctx, goal.ID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}
