package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/application/service"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	"github.com/AminataF33/gestionbudgetback/internal/domain/valueobject"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID               uuid.UUID
	AccountID            uuid.UUID
	DestinationAccountID *uuid.UUID
	CategoryID           *uuid.UUID
	Type                 entity.TransactionType
	Amount               decimal.Decimal
	Description          string
	Date                 time.Time
	PaymentMethod        entity.PaymentMethod     // Optional, defaults to other
	Currency             string                   // Optional, defaults to the account currency
	Status               *entity.TransactionStatus // Optional, defaults to completed
	Tags                 []string
	Notes                string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase records a ledger entry and applies its balance effect atomically.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	refs            references
	transactor      adapter.Transactor
	balanceUpdater  *service.BalanceUpdater
	events          *service.EventDispatcher
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	categoryRepo adapter.CategoryRepository,
	transactor adapter.Transactor,
	balanceUpdater *service.BalanceUpdater,
	events *service.EventDispatcher,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		refs:            references{accountRepo: accountRepo, categoryRepo: categoryRepo},
		transactor:      transactor,
		balanceUpdater:  balanceUpdater,
		events:          events,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	// Build entity with defaults
	transaction := entity.NewTransaction(
		input.UserID,
		input.AccountID,
		input.Type,
		input.Amount,
		strings.TrimSpace(input.Description),
		valueobject.StartOfDay(input.Date),
	)
	transaction.DestinationAccountID = input.DestinationAccountID
	transaction.CategoryID = input.CategoryID
	transaction.Notes = input.Notes
	transaction.Tags = normalizeTags(input.Tags)
	if input.PaymentMethod != "" {
		transaction.PaymentMethod = input.PaymentMethod
	}
	if input.Status != nil {
		transaction.Status = *input.Status
	}

	// Validate entry rules before touching storage
	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	// Validate referenced accounts and category
	refs, err := uc.refs.resolve(ctx, transaction)
	if err != nil {
		return nil, err
	}

	transaction.Currency = refs.account.Currency
	if input.Currency != "" {
		transaction.Currency = strings.ToUpper(input.Currency)
	}

	// Save entry and apply balances in one transaction
	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}
		return uc.balanceUpdater.ApplyCreated(ctx, transaction)
	})
	if err != nil {
		return nil, err
	}

	uc.events.Dispatch(ctx, transactionEvent(entity.EventTransactionCreated, transaction))

	return &CreateTransactionOutput{
		Transaction: toTransactionOutput(transaction, refs.category, refs.account, refs.destination),
	}, nil
}

// normalizeTags trims tags and drops blanks and duplicates.
func normalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		normalized = append(normalized, tag)
	}
	return normalized
}
