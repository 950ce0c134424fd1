package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// SpendAggregator derives budget consumption from the ledger on demand.
type SpendAggregator struct {
	transactionRepo adapter.TransactionRepository
}

// NewSpendAggregator creates a new SpendAggregator instance.
func NewSpendAggregator(transactionRepo adapter.TransactionRepository) *SpendAggregator {
	return &SpendAggregator{
		transactionRepo: transactionRepo,
	}
}

// ComputeSpent sums the completed expense entries of the budget owner in the budget
// category whose date falls in [start, end].
func (a *SpendAggregator) ComputeSpent(ctx context.Context, budget *entity.Budget) (decimal.Decimal, error) {
	spent, err := a.transactionRepo.SumCompletedExpenses(ctx, adapter.SpendQuery{
		UserID:     budget.UserID,
		CategoryID: budget.CategoryID,
		StartDate:  budget.StartDate,
		EndDate:    budget.EndDate,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute budget spend: %w", err)
	}
	return spent, nil
}

// Refresh recomputes and stores the spent amount on the budget entity.
func (a *SpendAggregator) Refresh(ctx context.Context, budget *entity.Budget) error {
	spent, err := a.ComputeSpent(ctx, budget)
	if err != nil {
		return err
	}
	budget.Spent = spent
	return nil
}
