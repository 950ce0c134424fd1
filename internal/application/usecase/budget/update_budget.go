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
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/domain/valueobject"
)

// UpdateBudgetInput represents the input for budget update.
type UpdateBudgetInput struct {
	UserID               uuid.UUID
	BudgetID             uuid.UUID
	Name                 *string
	Amount               *decimal.Decimal
	StartDate            *time.Time
	EndDate              *time.Time
	AlertThreshold       *int
	NotificationsEnabled *bool
	IsActive             *bool
}

// UpdateBudgetUseCase handles budget update logic.
type UpdateBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	transactor   adapter.Transactor
	aggregator   *service.SpendAggregator
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	transactor adapter.Transactor,
	aggregator *service.SpendAggregator,
) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		transactor:   transactor,
		aggregator:   aggregator,
	}
}

// Execute performs the budget update.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*BudgetOutput, error) {
	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.UserID, input.BudgetID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeMissingBudgetFields,
				"budget name must not be blank",
				domainerror.ErrValidation,
			)
		}
		budget.Name = name
	}
	if input.Amount != nil {
		if err := validateAmount(*input.Amount); err != nil {
			return nil, err
		}
		budget.Amount = *input.Amount
	}
	if input.AlertThreshold != nil {
		if err := validateThreshold(*input.AlertThreshold); err != nil {
			return nil, err
		}
		budget.AlertThreshold = *input.AlertThreshold
	}
	if input.NotificationsEnabled != nil {
		budget.NotificationsEnabled = *input.NotificationsEnabled
	}

	// Date and activation changes must keep budgets of a category disjoint
	rangeChanged := false
	if input.StartDate != nil {
		budget.StartDate = valueobject.StartOfDay(*input.StartDate)
		rangeChanged = true
	}
	if input.EndDate != nil {
		budget.EndDate = valueobject.StartOfDay(*input.EndDate)
		rangeChanged = true
	}
	if err := validateDates(budget.StartDate, budget.EndDate); err != nil {
		return nil, err
	}
	reactivated := input.IsActive != nil && *input.IsActive && !budget.IsActive
	if input.IsActive != nil {
		budget.IsActive = *input.IsActive
	}
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if budget.IsActive && (rangeChanged || reactivated) {
			if err := uc.budgetRepo.LockScope(ctx, budget.UserID, budget.CategoryID); err != nil {
				return fmt.Errorf("failed to lock budgets of category: %w", err)
			}
			if err := ensureNoOverlap(ctx, uc.budgetRepo, budget, &budget.ID); err != nil {
				return err
			}
		}

		if err := uc.aggregator.Refresh(ctx, budget); err != nil {
			return err
		}
		budget.UpdatedAt = time.Now().UTC()

		if err := uc.budgetRepo.Update(ctx, budget); err != nil {
			return fmt.Errorf("failed to update budget: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toBudgetOutput(budget, lookupCategory(ctx, uc.categoryRepo, budget.CategoryID)), nil
}
