package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
)

// DeleteBudgetInput represents the input for budget deletion.
type DeleteBudgetInput struct {
	UserID   uuid.UUID
	BudgetID uuid.UUID
}

// DeleteBudgetUseCase soft-deletes a budget.
type DeleteBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewDeleteBudgetUseCase creates a new DeleteBudgetUseCase instance.
func NewDeleteBudgetUseCase(budgetRepo adapter.BudgetRepository) *DeleteBudgetUseCase {
	return &DeleteBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute performs the budget deletion.
func (uc *DeleteBudgetUseCase) Execute(ctx context.Context, input DeleteBudgetInput) error {
	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.UserID, input.BudgetID)
	if err != nil {
		return err
	}

	if err := uc.budgetRepo.Delete(ctx, budget.ID); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}
