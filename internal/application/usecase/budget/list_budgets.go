package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/application/service"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// ListBudgetsInput represents the input for listing budgets.
type ListBudgetsInput struct {
	UserID     uuid.UUID
	ActiveOnly bool
	CategoryID *uuid.UUID
	CoversDate *time.Time
}

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Budgets []*BudgetOutput
}

// ListBudgetsUseCase lists budgets with spend recomputed from the ledger.
type ListBudgetsUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	aggregator   *service.SpendAggregator
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	aggregator *service.SpendAggregator,
) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		aggregator:   aggregator,
	}
}

// Execute performs the budget listing.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	budgets, err := uc.budgetRepo.FindByFilter(ctx, adapter.BudgetFilter{
		UserID:     input.UserID,
		ActiveOnly: input.ActiveOnly,
		CategoryID: input.CategoryID,
		CoversDate: input.CoversDate,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	categories := make(map[uuid.UUID]*entity.Category)
	output := &ListBudgetsOutput{
		Budgets: make([]*BudgetOutput, len(budgets)),
	}
	for i, budget := range budgets {
		if err := uc.aggregator.Refresh(ctx, budget); err != nil {
			return nil, err
		}

		category, ok := categories[budget.CategoryID]
		if !ok {
			category = lookupCategory(ctx, uc.categoryRepo, budget.CategoryID)
			categories[budget.CategoryID] = category
		}
		output.Budgets[i] = toBudgetOutput(budget, category)
	}

	return output, nil
}
