package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/application/service"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// DeleteTransactionUseCase soft-deletes a ledger entry and reverses its balance effect.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	transactor      adapter.Transactor
	balanceUpdater  *service.BalanceUpdater
	events          *service.EventDispatcher
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	transactor adapter.Transactor,
	balanceUpdater *service.BalanceUpdater,
	events *service.EventDispatcher,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		transactor:      transactor,
		balanceUpdater:  balanceUpdater,
		events:          events,
	}
}

// Execute performs the transaction deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	var deleted *entity.Transaction

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		transaction, err := uc.transactionRepo.FindByIDForUpdate(ctx, input.TransactionID)
		if err != nil {
			if errors.Is(err, domainerror.ErrNotFound) {
				return transactionNotFound()
			}
			return fmt.Errorf("failed to find transaction: %w", err)
		}

		// Verify ownership
		if transaction.UserID != input.UserID {
			return transactionNotFound()
		}

		if err := uc.transactionRepo.Delete(ctx, transaction.ID); err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}

		deleted = transaction
		return uc.balanceUpdater.ApplyDeleted(ctx, transaction)
	})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	deleted.DeletedAt = &now
	uc.events.Dispatch(ctx, transactionEvent(entity.EventTransactionDeleted, deleted))
	return nil
}
