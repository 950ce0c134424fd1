package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID      uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	AccountID   *uuid.UUID
	CategoryIDs []uuid.UUID
	Type        *entity.TransactionType
	Status      *entity.TransactionStatus
	Search      string
	Page        int
	Limit       int
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// TotalsOutput represents aggregated totals in the output.
type TotalsOutput struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Pagination   PaginationOutput
	Totals       TotalsOutput
}

// ListTransactionsUseCase handles listing transactions logic.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the transaction listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	// Set default pagination values
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	// Build filter
	filter := adapter.TransactionFilter{
		UserID:      input.UserID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		AccountID:   input.AccountID,
		CategoryIDs: input.CategoryIDs,
		Type:        input.Type,
		Status:      input.Status,
		Search:      input.Search,
	}

	// Fetch transactions
	result, err := uc.transactionRepo.FindByFilter(ctx, filter, adapter.TransactionPagination{
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	// Get totals
	totals, err := uc.transactionRepo.GetTotals(ctx, filter)
	if err != nil {
		slog.Warn("Failed to compute transaction totals", "user_id", input.UserID, "error", err)
		totals = &entity.TransactionTotals{}
	}

	// Build output
	output := &ListTransactionsOutput{
		Transactions: make([]*TransactionOutput, len(result.Transactions)),
		Pagination: PaginationOutput{
			Page:       result.Page,
			Limit:      result.Limit,
			Total:      result.Total,
			TotalPages: result.TotalPages,
		},
		Totals: TotalsOutput{
			IncomeTotal:  totals.IncomeTotal,
			ExpenseTotal: totals.ExpenseTotal,
			NetTotal:     totals.NetTotal,
		},
	}

	for i, details := range result.Transactions {
		output.Transactions[i] = toTransactionOutput(details.Transaction, details.Category, details.Account, details.DestinationAccount)
	}

	return output, nil
}
