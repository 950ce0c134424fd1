package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// GetTransactionInput represents the input for fetching one transaction.
type GetTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// GetTransactionUseCase returns one ledger entry with its references.
type GetTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(transactionRepo adapter.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute fetches the transaction.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, input GetTransactionInput) (*TransactionOutput, error) {
	details, err := uc.transactionRepo.FindByIDWithDetails(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, transactionNotFound()
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if details.Transaction.UserID != input.UserID {
		return nil, transactionNotFound()
	}

	return toTransactionOutput(details.Transaction, details.Category, details.Account, details.DestinationAccount), nil
}
