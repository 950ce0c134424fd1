// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// TransactionOutput represents a single transaction in the output.
type TransactionOutput struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	AccountID            uuid.UUID
	Account              *AccountOutput
	DestinationAccountID *uuid.UUID
	DestinationAccount   *AccountOutput
	CategoryID           *uuid.UUID
	Category             *CategoryOutput
	Type                 entity.TransactionType
	Amount               decimal.Decimal
	Description          string
	Date                 time.Time
	PaymentMethod        entity.PaymentMethod
	Currency             string
	Status               entity.TransactionStatus
	Tags                 []string
	Notes                string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// CategoryOutput represents category information in transaction output.
type CategoryOutput struct {
	ID    uuid.UUID
	Name  string
	Color string
	Icon  string
	Type  entity.CategoryType
}

// AccountOutput represents account information in transaction output.
type AccountOutput struct {
	ID   uuid.UUID
	Name string
	Kind entity.AccountKind
}

// toTransactionOutput builds the output from an entry and its optional references.
func toTransactionOutput(transaction *entity.Transaction, category *entity.Category, account, destination *entity.Account) *TransactionOutput {
	output := &TransactionOutput{
		ID:                   transaction.ID,
		UserID:               transaction.UserID,
		AccountID:            transaction.AccountID,
		DestinationAccountID: transaction.DestinationAccountID,
		CategoryID:           transaction.CategoryID,
		Type:                 transaction.Type,
		Amount:               transaction.Amount,
		Description:          transaction.Description,
		Date:                 transaction.Date,
		PaymentMethod:        transaction.PaymentMethod,
		Currency:             transaction.Currency,
		Status:               transaction.Status,
		Tags:                 transaction.Tags,
		Notes:                transaction.Notes,
		CreatedAt:            transaction.CreatedAt,
		UpdatedAt:            transaction.UpdatedAt,
	}

	if category != nil {
		output.Category = &CategoryOutput{
			ID:    category.ID,
			Name:  category.Name,
			Color: category.Color,
			Icon:  category.Icon,
			Type:  category.Type,
		}
	}
	if account != nil {
		output.Account = &AccountOutput{ID: account.ID, Name: account.Name, Kind: account.Kind}
	}
	if destination != nil {
		output.DestinationAccount = &AccountOutput{ID: destination.ID, Name: destination.Name, Kind: destination.Kind}
	}

	return output
}

// references resolves and checks the accounts and category an entry points to.
type references struct {
	accountRepo  adapter.AccountRepository
	categoryRepo adapter.CategoryRepository
}

// resolved holds the entities an entry references.
type resolved struct {
	account     *entity.Account
	destination *entity.Account
	category    *entity.Category
}

// resolve loads the source and destination accounts and the category of the entry and
// verifies they are visible to its owner, active, and consistent with its type.
func (r references) resolve(ctx context.Context, transaction *entity.Transaction) (*resolved, error) {
	account, err := r.activeAccount(ctx, transaction.UserID, transaction.AccountID)
	if err != nil {
		return nil, err
	}
	result := &resolved{account: account}

	if transaction.DestinationAccountID != nil {
		destination, err := r.activeAccount(ctx, transaction.UserID, *transaction.DestinationAccountID)
		if err != nil {
			return nil, err
		}
		result.destination = destination
	}

	if transaction.CategoryID != nil {
		category, err := r.categoryRepo.FindByID(ctx, *transaction.CategoryID)
		if err != nil {
			if errors.Is(err, domainerror.ErrNotFound) {
				return nil, categoryNotFound()
			}
			return nil, fmt.Errorf("failed to find category: %w", err)
		}
		if !category.IsVisibleTo(transaction.UserID) {
			return nil, categoryNotFound()
		}
		if !transaction.IsTransfer() && string(category.Type) != string(transaction.Type) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeCategoryTypeMismatch,
				fmt.Sprintf("a %s transaction needs a %s category", transaction.Type, transaction.Type),
				domainerror.ErrCategoryTypeMismatch,
			)
		}
		result.category = category
	}

	return result, nil
}

func (r references) activeAccount(ctx context.Context, userID, accountID uuid.UUID) (*entity.Account, error) {
	account, err := r.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, accountNotFound()
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	// Verify account ownership
	if account.UserID != userID {
		return nil, accountNotFound()
	}

	if !account.IsActive {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnAccountInactive,
			"account is inactive",
			domainerror.ErrAccountInactive,
		)
	}

	return account, nil
}

func accountNotFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTxnAccountNotFound,
		"account not found",
		domainerror.ErrAccountNotFound,
	)
}

func categoryNotFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTxnCategoryNotFound,
		"category not found",
		domainerror.ErrCategoryNotFoundForTransaction,
	)
}

func transactionNotFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"transaction not found",
		domainerror.ErrTransactionNotFound,
	)
}

// transactionEvent builds the event describing a ledger change.
func transactionEvent(eventType entity.EventType, transaction *entity.Transaction) entity.DomainEvent {
	payload := map[string]interface{}{
		"type":       string(transaction.Type),
		"status":     string(transaction.Status),
		"amount":     transaction.Amount.String(),
		"account_id": transaction.AccountID.String(),
		"date":       transaction.Date.Format(time.DateOnly),
	}
	if transaction.DestinationAccountID != nil {
		payload["destination_account_id"] = transaction.DestinationAccountID.String()
	}
	if transaction.CategoryID != nil {
		payload["category_id"] = transaction.CategoryID.String()
	}
	return entity.NewDomainEvent(eventType, transaction.UserID, transaction.ID, time.Now().UTC(), payload)
}
