package budget

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/application/service"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/domain/valueobject"
)

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	UserID               uuid.UUID
	CategoryID           uuid.UUID
	Name                 string // Optional, defaults to the category name
	Amount               decimal.Decimal
	Period               valueobject.Period
	StartDate            time.Time
	EndDate              *time.Time // Optional, derived from the period when absent
	AlertThreshold       *int       // Optional, defaults to entity.DefaultAlertThreshold
	NotificationsEnabled *bool      // Optional, defaults to true
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget *BudgetOutput
}

// CreateBudgetUseCase handles budget creation logic.
type CreateBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	transactor   adapter.Transactor
	aggregator   *service.SpendAggregator
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	transactor adapter.Transactor,
	aggregator *service.SpendAggregator,
) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		transactor:   transactor,
		aggregator:   aggregator,
	}
}

// Execute performs the budget creation.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}

	// Validate period
	if !input.Period.IsValid() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"period must be 'weekly', 'monthly', 'quarterly' or 'yearly'",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}

	// Resolve the date range; the end date is inclusive
	start := valueobject.StartOfDay(input.StartDate)
	end := input.Period.EndFrom(start)
	if input.EndDate != nil {
		end = valueobject.StartOfDay(*input.EndDate)
	}
	if err := validateDates(start, end); err != nil {
		return nil, err
	}

	// Apply defaults
	threshold := entity.DefaultAlertThreshold
	if input.AlertThreshold != nil {
		threshold = *input.AlertThreshold
	}
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}
	notifications := true
	if input.NotificationsEnabled != nil {
		notifications = *input.NotificationsEnabled
	}

	category, err := findExpenseCategory(ctx, uc.categoryRepo, input.UserID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = category.Name
	}

	budget := entity.NewBudget(input.UserID, category.ID, name, input.Amount, input.Period, start, end, threshold, notifications)

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.budgetRepo.LockScope(ctx, budget.UserID, budget.CategoryID); err != nil {
			return fmt.Errorf("failed to lock budgets of category: %w", err)
		}
		if err := ensureNoOverlap(ctx, uc.budgetRepo, budget, nil); err != nil {
			return err
		}

		// Entries may already exist in the range
		if err := uc.aggregator.Refresh(ctx, budget); err != nil {
			return err
		}

		if err := uc.budgetRepo.Create(ctx, budget); err != nil {
			return fmt.Errorf("failed to create budget: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateBudgetOutput{
		Budget: toBudgetOutput(budget, category),
	}, nil
}
