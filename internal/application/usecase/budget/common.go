// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/domain/valueobject"
)

// BudgetOutput represents a single budget with its derived consumption.
type BudgetOutput struct {
	ID                   uuid.UUID
	CategoryID           uuid.UUID
	CategoryName         string
	Name                 string
	Amount               decimal.Decimal
	Spent                decimal.Decimal
	Remaining            decimal.Decimal
	PercentageUsed       decimal.Decimal
	Status               entity.BudgetStatus
	Period               valueobject.Period
	StartDate            time.Time
	EndDate              time.Time
	AlertThreshold       int
	NotificationsEnabled bool
	LastAlertAt          *time.Time
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func toBudgetOutput(budget *entity.Budget, category *entity.Category) *BudgetOutput {
	output := &BudgetOutput{
		ID:                   budget.ID,
		CategoryID:           budget.CategoryID,
		Name:                 budget.Name,
		Amount:               budget.Amount,
		Spent:                budget.Spent,
		Remaining:            budget.Remaining(),
		PercentageUsed:       budget.PercentageUsed(),
		Status:               budget.Status(),
		Period:               budget.Period,
		StartDate:            budget.StartDate,
		EndDate:              budget.EndDate,
		AlertThreshold:       budget.AlertThreshold,
		NotificationsEnabled: budget.NotificationsEnabled,
		LastAlertAt:          budget.LastAlertAt,
		IsActive:             budget.IsActive,
		CreatedAt:            budget.CreatedAt,
		UpdatedAt:            budget.UpdatedAt,
	}
	if category != nil {
		output.CategoryName = category.Name
	}
	return output
}

// findOwnedBudget loads a budget and hides budgets of other users.
func findOwnedBudget(ctx context.Context, repo adapter.BudgetRepository, userID, budgetID uuid.UUID) (*entity.Budget, error) {
	budget, err := repo.FindByID(ctx, budgetID)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, budgetNotFound()
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}
	if budget.UserID != userID {
		return nil, budgetNotFound()
	}
	return budget, nil
}

func budgetNotFound() error {
	return domainerror.NewBudgetError(
		domainerror.ErrCodeBudgetNotFound,
		"budget not found",
		domainerror.ErrBudgetNotFound,
	)
}

// findExpenseCategory loads a category visible to the user and checks it tracks expenses.
func findExpenseCategory(ctx context.Context, repo adapter.CategoryRepository, userID, categoryID uuid.UUID) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, categoryID)
	if err != nil && !errors.Is(err, domainerror.ErrNotFound) {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if err != nil || !category.IsVisibleTo(userID) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotFound,
			"category not found",
			domainerror.ErrBudgetCategoryNotFound,
		)
	}
	if category.Type != entity.CategoryTypeExpense {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotExpense,
			"budgets can only track expense categories",
			domainerror.ErrBudgetCategoryNotExpense,
		)
	}
	return category, nil
}

// lookupCategory returns the budget category for display, or nil when it is gone.
func lookupCategory(ctx context.Context, repo adapter.CategoryRepository, categoryID uuid.UUID) *entity.Category {
	category, err := repo.FindByID(ctx, categoryID)
	if err != nil {
		return nil
	}
	return category
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"budget amount must be greater than zero",
			domainerror.ErrInvalidBudgetAmount,
		)
	}
	return nil
}

func validateThreshold(threshold int) error {
	if threshold < 1 || threshold > 100 {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidAlertThreshold,
			"alert threshold must be between 1 and 100",
			domainerror.ErrInvalidAlertThreshold,
		)
	}
	return nil
}

func validateDates(start, end time.Time) error {
	if !start.Before(end) {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetDates,
			"start date must be before end date",
			domainerror.ErrInvalidBudgetDates,
		)
	}
	return nil
}

// ensureNoOverlap rejects a second active budget for the same category and range.
func ensureNoOverlap(ctx context.Context, repo adapter.BudgetRepository, budget *entity.Budget, excludeID *uuid.UUID) error {
	overlapping, err := repo.ExistsOverlapping(ctx, budget.UserID, budget.CategoryID, budget.StartDate, budget.EndDate, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check overlapping budgets: %w", err)
	}
	if overlapping {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetOverlap,
			"an active budget already covers this category for the selected dates",
			domainerror.ErrBudgetOverlap,
		)
	}
	return nil
}
