// Package goal contains savings goal use cases.
package goal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/domain/valueobject"
)

// MaxGoalNameLength is the maximum allowed length for goal names.
const MaxGoalNameLength = 100

// MilestoneInput describes a milestone to create with a goal.
type MilestoneInput struct {
	Name   string
	Amount decimal.Decimal
}

// AutoSaveInput describes an auto-save rule.
type AutoSaveInput struct {
	Enabled   bool
	Amount    decimal.Decimal
	Frequency valueobject.Frequency
	NextDate  *time.Time // Optional, defaults to one frequency step after now
}

// MilestoneOutput represents a milestone in the output.
type MilestoneOutput struct {
	ID         uuid.UUID
	Name       string
	Amount     decimal.Decimal
	Achieved   bool
	AchievedAt *time.Time
}

// ContributionOutput represents a contribution in the output.
type ContributionOutput struct {
	ID     uuid.UUID
	Amount decimal.Decimal
	Date   time.Time
	Note   string
	Source entity.ContributionSource
}

// AutoSaveOutput represents the auto-save rule in the output.
type AutoSaveOutput struct {
	Enabled   bool
	Amount    decimal.Decimal
	Frequency valueobject.Frequency
	NextDate  *time.Time
}

// GoalOutput represents a single goal with its derived progress.
type GoalOutput struct {
	ID                 uuid.UUID
	Name               string
	Description        string
	TargetAmount       decimal.Decimal
	CurrentAmount      decimal.Decimal
	Remaining          decimal.Decimal
	ProgressPercentage decimal.Decimal
	TargetDate         time.Time
	DaysRemaining      int
	Category           string
	Priority           entity.GoalPriority
	Status             entity.GoalStatus
	Milestones         []MilestoneOutput
	Contributions      []ContributionOutput
	AutoSave           AutoSaveOutput
	CompletedAt        *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// toGoalOutput builds the output; contributions are only listed when requested.
func toGoalOutput(goal *entity.Goal, now time.Time, withContributions bool) *GoalOutput {
	output := &GoalOutput{
		ID:                 goal.ID,
		Name:               goal.Name,
		Description:        goal.Description,
		TargetAmount:       goal.TargetAmount,
		CurrentAmount:      goal.CurrentAmount,
		Remaining:          goal.Remaining(),
		ProgressPercentage: goal.ProgressPercentage(),
		TargetDate:         goal.TargetDate,
		DaysRemaining:      goal.DaysRemaining(now),
		Category:           goal.Category,
		Priority:           goal.Priority,
		Status:             goal.Status,
		Milestones:         make([]MilestoneOutput, len(goal.Milestones)),
		AutoSave: AutoSaveOutput{
			Enabled:   goal.AutoSave.Enabled,
			Amount:    goal.AutoSave.Amount,
			Frequency: goal.AutoSave.Frequency,
			NextDate:  goal.AutoSave.NextDate,
		},
		CompletedAt: goal.CompletedAt,
		CreatedAt:   goal.CreatedAt,
		UpdatedAt:   goal.UpdatedAt,
	}

	for i, milestone := range goal.Milestones {
		output.Milestones[i] = MilestoneOutput{
			ID:         milestone.ID,
			Name:       milestone.Name,
			Amount:     milestone.Amount,
			Achieved:   milestone.Achieved,
			AchievedAt: milestone.AchievedAt,
		}
	}

	if withContributions {
		output.Contributions = make([]ContributionOutput, len(goal.Contributions))
		for i, contribution := range goal.Contributions {
			output.Contributions[i] = ContributionOutput{
				ID:     contribution.ID,
				Amount: contribution.Amount,
				Date:   contribution.Date,
				Note:   contribution.Note,
				Source: contribution.Source,
			}
		}
	}

	return output
}

// findOwnedGoal loads a goal and hides goals of other users.
func findOwnedGoal(ctx context.Context, find func(context.Context, uuid.UUID) (*entity.Goal, error), userID, goalID uuid.UUID) (*entity.Goal, error) {
	goal, err := find(ctx, goalID)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, goalNotFound()
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	if goal.UserID != userID {
		return nil, goalNotFound()
	}
	return goal, nil
}

func goalNotFound() error {
	return domainerror.NewGoalError(
		domainerror.ErrCodeGoalNotFound,
		"goal not found",
		domainerror.ErrGoalNotFound,
	)
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxGoalNameLength {
		return "", domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalFields,
			fmt.Sprintf("goal name is required and must not exceed %d characters", MaxGoalNameLength),
			domainerror.ErrValidation,
		)
	}
	return name, nil
}

func validateTargetDate(targetDate, now time.Time) error {
	if !targetDate.After(now) {
		return domainerror.NewGoalError(
			domainerror.ErrCodeGoalTargetDateInPast,
			"target date must be in the future",
			domainerror.ErrGoalTargetDateInPast,
		)
	}
	return nil
}

func validatePriority(priority entity.GoalPriority) error {
	if !priority.IsValid() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalPriority,
			"priority must be 'low', 'medium' or 'high'",
			domainerror.ErrInvalidGoalPriority,
		)
	}
	return nil
}

func toAutoSaveRule(input AutoSaveInput) entity.AutoSaveRule {
	return entity.AutoSaveRule{
		Enabled:   input.Enabled,
		Amount:    input.Amount,
		Frequency: input.Frequency,
		NextDate:  input.NextDate,
	}
}

// addMilestones registers the milestones on the goal, naming unnamed ones after their amount.
func addMilestones(goal *entity.Goal, milestones []MilestoneInput) error {
	for _, input := range milestones {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			name = input.Amount.String()
		}
		if _, err := goal.AddMilestone(name, input.Amount); err != nil {
			return err
		}
	}
	return nil
}

// currentTime returns now, or the wall clock when now is zero.
func currentTime(now time.Time) time.Time {
	if now.IsZero() {
		return time.Now().UTC()
	}
	return now
}
