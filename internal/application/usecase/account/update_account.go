package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
)

// UpdateAccountInput represents the input for account update.
// The balance is derived from ledger entries and cannot be edited.
type UpdateAccountInput struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	Name        *string
	Institution *string
	Currency    *string
}

// UpdateAccountUseCase handles account update logic.
type UpdateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewUpdateAccountUseCase creates a new UpdateAccountUseCase instance.
func NewUpdateAccountUseCase(accountRepo adapter.AccountRepository) *UpdateAccountUseCase {
	return &UpdateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account update.
func (uc *UpdateAccountUseCase) Execute(ctx context.Context, input UpdateAccountInput) (*AccountOutput, error) {
	account, err := findOwnedAccount(ctx, uc.accountRepo, input.UserID, input.AccountID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		account.Name = name
	}
	if input.Institution != nil {
		account.Institution = strings.TrimSpace(*input.Institution)
	}
	if input.Currency != nil {
		currency, err := normalizeCurrency(*input.Currency)
		if err != nil {
			return nil, err
		}
		account.Currency = currency
	}
	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	return toAccountOutput(account), nil
}
