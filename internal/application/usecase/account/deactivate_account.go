package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
)

// DeactivateAccountInput represents the input for account deactivation.
type DeactivateAccountInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

// DeactivateAccountUseCase soft-deletes an account. Its entries and balance are kept,
// but it no longer accepts new entries and is left out of totals.
type DeactivateAccountUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewDeactivateAccountUseCase creates a new DeactivateAccountUseCase instance.
func NewDeactivateAccountUseCase(accountRepo adapter.AccountRepository) *DeactivateAccountUseCase {
	return &DeactivateAccountUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account deactivation. Deactivating twice is a no-op.
func (uc *DeactivateAccountUseCase) Execute(ctx context.Context, input DeactivateAccountInput) error {
	account, err := findOwnedAccount(ctx, uc.accountRepo, input.UserID, input.AccountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return nil
	}

	account.IsActive = false
	account.UpdatedAt = time.Now().UTC()
	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	return nil
}
