package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/application/service"
)

// GetBudgetInput represents the input for fetching a budget.
type GetBudgetInput struct {
	UserID   uuid.UUID
	BudgetID uuid.UUID
}

// GetBudgetUseCase returns a budget with spend recomputed from the ledger.
type GetBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	aggregator   *service.SpendAggregator
}

// NewGetBudgetUseCase creates a new GetBudgetUseCase instance.
func NewGetBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	aggregator *service.SpendAggregator,
) *GetBudgetUseCase {
	return &GetBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		aggregator:   aggregator,
	}
}

// Execute performs the budget lookup.
func (uc *GetBudgetUseCase) Execute(ctx context.Context, input GetBudgetInput) (*BudgetOutput, error) {
	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.UserID, input.BudgetID)
	if err != nil {
		return nil, err
	}

	if err := uc.aggregator.Refresh(ctx, budget); err != nil {
		return nil, err
	}

	return toBudgetOutput(budget, lookupCategory(ctx, uc.categoryRepo, budget.CategoryID)), nil
}
