package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
)

// GetAccountInput represents the input for fetching an account.
type GetAccountInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

// GetAccountUseCase handles fetching a single account.
type GetAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewGetAccountUseCase creates a new GetAccountUseCase instance.
func NewGetAccountUseCase(accountRepo adapter.AccountRepository) *GetAccountUseCase {
	return &GetAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute returns the account when it belongs to the user.
func (uc *GetAccountUseCase) Execute(ctx context.Context, input GetAccountInput) (*AccountOutput, error) {
	account, err := findOwnedAccount(ctx, uc.accountRepo, input.UserID, input.AccountID)
	if err != nil {
		return nil, err
	}
	return toAccountOutput(account), nil
}
