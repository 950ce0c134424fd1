package goal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID       uuid.UUID
	Name         string
	Description  string
	TargetAmount decimal.Decimal
	TargetDate   time.Time
	Category     string
	Priority     entity.GoalPriority // Optional, defaults to medium
	Milestones   []MilestoneInput
	AutoSave     *AutoSaveInput
	Now          time.Time // Optional, defaults to the current time
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *GoalOutput
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo adapter.GoalRepository
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo: goalRepo,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	now := currentTime(input.Now)

	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	// Validate target amount
	if !input.TargetAmount.IsPositive() {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalTarget,
			"target amount must be greater than zero",
			domainerror.ErrInvalidGoalTarget,
		)
	}

	if err := validateTargetDate(input.TargetDate, now); err != nil {
		return nil, err
	}

	// Apply defaults
	priority := entity.GoalPriorityMedium
	if input.Priority != "" {
		priority = input.Priority
	}
	if err := validatePriority(priority); err != nil {
		return nil, err
	}

	goal := entity.NewGoal(input.UserID, name, input.TargetAmount, input.TargetDate, priority)
	goal.Description = strings.TrimSpace(input.Description)
	goal.Category = strings.TrimSpace(input.Category)

	if err := addMilestones(goal, input.Milestones); err != nil {
		return nil, err
	}

	if input.AutoSave != nil {
		if err := goal.ConfigureAutoSave(toAutoSaveRule(*input.AutoSave), now); err != nil {
			return nil, err
		}
	}

	// Save goal with milestones
	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return &CreateGoalOutput{
		Goal: toGoalOutput(goal, now, false),
	}, nil
}
