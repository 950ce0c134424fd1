package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/application/service"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/domain/valueobject"
)

// UpdateTransactionInput represents the input for transaction update.
// Nil fields are left unchanged.
type UpdateTransactionInput struct {
	TransactionID        uuid.UUID
	UserID               uuid.UUID
	AccountID            *uuid.UUID
	DestinationAccountID *uuid.UUID
	CategoryID           *uuid.UUID
	Type                 *entity.TransactionType
	Amount               *decimal.Decimal
	Description          *string
	Date                 *time.Time
	PaymentMethod        *entity.PaymentMethod
	Currency             *string
	Status               *entity.TransactionStatus
	Tags                 *[]string
	Notes                *string
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase edits a ledger entry, reversing its previous balance effect
// and applying the new one in the same database transaction.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	refs            references
	transactor      adapter.Transactor
	balanceUpdater  *service.BalanceUpdater
	events          *service.EventDispatcher
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
	transactor adapter.Transactor,
	balanceUpdater *service.BalanceUpdater,
	events *service.EventDispatcher,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		refs:            references{accountRepo: accountRepo, categoryRepo: categoryRepo},
		transactor:      transactor,
		balanceUpdater:  balanceUpdater,
		events:          events,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	var (
		updated *entity.Transaction
		refs    *resolved
	)

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		// Lock the entry so the reversal below uses the committed amount
		existing, err := uc.transactionRepo.FindByIDForUpdate(ctx, input.TransactionID)
		if err != nil {
			if errors.Is(err, domainerror.ErrNotFound) {
				return transactionNotFound()
			}
			return fmt.Errorf("failed to find transaction: %w", err)
		}

		// Verify ownership
		if existing.UserID != input.UserID {
			return transactionNotFound()
		}

		updated = existing.Clone()
		applyChanges(updated, input)

		if err := updated.Validate(); err != nil {
			return err
		}

		refs, err = uc.refs.resolve(ctx, updated)
		if err != nil {
			return err
		}

		if err := uc.transactionRepo.Update(ctx, updated); err != nil {
			if errors.Is(err, domainerror.ErrNotFound) {
				return transactionNotFound()
			}
			return fmt.Errorf("failed to update transaction: %w", err)
		}

		return uc.balanceUpdater.ApplyUpdated(ctx, existing, updated)
	})
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(ctx, transactionEvent(entity.EventTransactionUpdated, updated))

	return &UpdateTransactionOutput{
		Transaction: toTransactionOutput(updated, refs.category, refs.account, refs.destination),
	}, nil
}

// applyChanges copies the provided fields onto the entry.
func applyChanges(transaction *entity.Transaction, input UpdateTransactionInput) {
	if input.AccountID != nil {
		transaction.AccountID = *input.AccountID
	}
	if input.Type != nil {
		transaction.Type = *input.Type
	}
	if input.DestinationAccountID != nil {
		destination := *input.DestinationAccountID
		transaction.DestinationAccountID = &destination
	}
	if !transaction.IsTransfer() {
		transaction.DestinationAccountID = nil
	}
	if input.CategoryID != nil {
		category := *input.CategoryID
		transaction.CategoryID = &category
	}
	if input.Amount != nil {
		transaction.Amount = *input.Amount
	}
	if input.Description != nil {
		transaction.Description = strings.TrimSpace(*input.Description)
	}
	if input.Date != nil {
		transaction.Date = valueobject.StartOfDay(*input.Date)
	}
	if input.PaymentMethod != nil {
		transaction.PaymentMethod = *input.PaymentMethod
	}
	if input.Currency != nil {
		transaction.Currency = strings.ToUpper(*input.Currency)
	}
	if input.Status != nil {
		transaction.Status = *input.Status
	}
	if input.Tags != nil {
		transaction.Tags = normalizeTags(*input.Tags)
	}
	if input.Notes != nil {
		transaction.Notes = *input.Notes
	}
	transaction.UpdatedAt = time.Now().UTC()
}
