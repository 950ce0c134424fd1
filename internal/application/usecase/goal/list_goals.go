package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	UserID uuid.UUID
	Status *entity.GoalStatus // Optional filter
	Now    time.Time          // Optional, defaults to the current time
}

// GoalSummaryOutput aggregates progress over active and completed goals.
type GoalSummaryOutput struct {
	ActiveCount     int
	CompletedCount  int
	TotalSaved      decimal.Decimal
	TotalTarget     decimal.Decimal
	OverallProgress decimal.Decimal
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Goals   []*GoalOutput
	Summary GoalSummaryOutput
}

// ListGoalsUseCase handles listing goals logic.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the goal listing.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	now := currentTime(input.Now)

	goals, err := uc.goalRepo.FindByUserID(ctx, input.UserID, input.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	summary := entity.SummarizeGoals(goals)
	output := &ListGoalsOutput{
		Goals: make([]*GoalOutput, len(goals)),
		Summary: GoalSummaryOutput{
			ActiveCount:     summary.ActiveCount,
			CompletedCount:  summary.CompletedCount,
			TotalSaved:      summary.TotalSaved,
			TotalTarget:     summary.TotalTarget,
			OverallProgress: summary.OverallProgress,
		},
	}
	for i, goal := range goals {
		output.Goals[i] = toGoalOutput(goal, now, false)
	}

	return output, nil
}
