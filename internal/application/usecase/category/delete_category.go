package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
}

// DeleteCategoryUseCase handles category deletion logic.
type DeleteCategoryUseCase struct {
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
	budgetRepo      adapter.BudgetRepository
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
	budgetRepo adapter.BudgetRepository,
) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
	}
}

// Execute performs the category deletion. Categories still referenced by entries
// or budgets are kept.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	category, err := findModifiableCategory(ctx, uc.categoryRepo, input.UserID, input.CategoryID)
	if err != nil {
		return err
	}

	transactions, err := uc.transactionRepo.CountByCategory(ctx, category.ID)
	if err != nil {
		return fmt.Errorf("failed to count category transactions: %w", err)
	}
	budgets, err := uc.budgetRepo.CountByCategory(ctx, category.ID)
	if err != nil {
		return fmt.Errorf("failed to count category budgets: %w", err)
	}
	if transactions > 0 || budgets > 0 {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryInUse,
			fmt.Sprintf("category is used by %d transactions and %d budgets", transactions, budgets),
			domainerror.ErrCategoryInUse,
		)
	}

	if err := uc.categoryRepo.Delete(ctx, category.ID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
