// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence operations.
type AccountRepository interface {
	// Create creates a new account in the database.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByUserID retrieves the accounts of a user, optionally including deactivated ones.
	FindByUserID(ctx context.Context, userID uuid.UUID, includeInactive bool) ([]*entity.Account, error)

	// Update persists descriptive fields and the active flag. The balance is never written here.
	Update(ctx context.Context, account *entity.Account) error

	// ApplyBalanceDelta atomically adds delta to the account balance.
	// Non-credit accounts are guarded so the stored balance never drops below zero;
	// a rejected change returns domainerror.ErrAccountInsufficientFunds.
	ApplyBalanceDelta(ctx context.Context, accountID uuid.UUID, delta decimal.Decimal) error
}
