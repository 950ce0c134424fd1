package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	UserID         uuid.UUID
	Name           string
	Institution    string
	Kind           entity.AccountKind
	InitialBalance decimal.Decimal
	Currency       string // Optional, defaults to entity.DefaultCurrency
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *AccountOutput
}

// CreateAccountUseCase handles account creation logic.
type CreateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(accountRepo adapter.AccountRepository) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account creation.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	name, err := uc.validate(input)
	if err != nil {
		return nil, err
	}

	currency := entity.DefaultCurrency
	if input.Currency != "" {
		if currency, err = normalizeCurrency(input.Currency); err != nil {
			return nil, err
		}
	}

	account := entity.NewAccount(
		input.UserID,
		name,
		strings.TrimSpace(input.Institution),
		input.Kind,
		input.InitialBalance,
		currency,
	)

	// Save account to database
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &CreateAccountOutput{
		Account: toAccountOutput(account),
	}, nil
}

func (uc *CreateAccountUseCase) validate(input CreateAccountInput) (string, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return "", err
	}

	// Validate account kind
	if !input.Kind.IsValid() {
		return "", domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountKind,
			"account kind must be 'checking', 'savings', 'credit' or 'investment'",
			domainerror.ErrInvalidAccountKind,
		)
	}

	// Only credit accounts may open with a negative balance; it is stored as owed amount
	if input.InitialBalance.IsNegative() && input.Kind != entity.AccountKindCredit {
		return "", domainerror.NewAccountError(
			domainerror.ErrCodeInvalidInitialBalance,
			"initial balance must not be negative",
			domainerror.ErrInvalidInitialBalance,
		)
	}

	return name, nil
}
