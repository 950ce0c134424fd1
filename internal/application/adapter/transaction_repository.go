// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID      uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	AccountID   *uuid.UUID // Matches source or destination account
	CategoryIDs []uuid.UUID
	Type        *entity.TransactionType
	Status      *entity.TransactionStatus
	Search      string // Case-insensitive description match
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// SpendQuery selects the completed expense entries counted against a budget.
type SpendQuery struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	StartDate  time.Time
	EndDate    time.Time // Inclusive
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByIDForUpdate retrieves a transaction and locks its row until the surrounding
	// transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByIDWithDetails retrieves a transaction with its category and accounts.
	FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.TransactionWithDetails, error)

	// FindByFilter retrieves transactions based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*entity.TransactionListResult, error)

	// GetTotals calculates totals of completed transactions matching the filter.
	GetTotals(ctx context.Context, filter TransactionFilter) (*entity.TransactionTotals, error)

	// SumCompletedExpenses sums completed expense amounts for a category and date range.
	SumCompletedExpenses(ctx context.Context, query SpendQuery) (decimal.Decimal, error)

	// SumExpensesByCategory groups completed expenses matching the filter by category,
	// largest amount first. Uncategorized expenses are reported with a nil CategoryID.
	SumExpensesByCategory(ctx context.Context, filter TransactionFilter) ([]entity.CategorySpend, error)

	// CountByCategory counts live transactions referencing a category.
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// Update writes the mutable fields of a live transaction. It returns
	// domainerror.ErrTransactionNotFound when the row is missing or soft-deleted.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete soft-deletes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
