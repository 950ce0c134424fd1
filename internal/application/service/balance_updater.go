// Package service contains domain services shared by several use cases.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// BalanceUpdater keeps account balances in step with the ledger.
// Every method must run inside the transaction that writes the entry itself,
// so that a rejected balance change rolls the entry write back too.
type BalanceUpdater struct {
	accountRepo adapter.AccountRepository
}

// NewBalanceUpdater creates a new BalanceUpdater instance.
func NewBalanceUpdater(accountRepo adapter.AccountRepository) *BalanceUpdater {
	return &BalanceUpdater{
		accountRepo: accountRepo,
	}
}

// ApplyCreated applies the effect of a newly recorded entry.
func (u *BalanceUpdater) ApplyCreated(ctx context.Context, transaction *entity.Transaction) error {
	return u.apply(ctx, transaction.BalanceEffects())
}

// ApplyUpdated reverses the effect of before and applies the effect of after.
// Both are folded per account first, so an edit is only rejected when its final
// balance would be invalid.
func (u *BalanceUpdater) ApplyUpdated(ctx context.Context, before, after *entity.Transaction) error {
	return u.apply(ctx, entity.ReverseEffects(before.BalanceEffects()), after.BalanceEffects())
}

// ApplyDeleted reverses the effect of a removed entry.
func (u *BalanceUpdater) ApplyDeleted(ctx context.Context, transaction *entity.Transaction) error {
	return u.apply(ctx, entity.ReverseEffects(transaction.BalanceEffects()))
}

func (u *BalanceUpdater) apply(ctx context.Context, effects ...[]entity.BalanceEffect) error {
	for _, effect := range entity.NetEffects(effects...) {
		err := u.accountRepo.ApplyBalanceDelta(ctx, effect.AccountID, effect.Delta)
		if err == nil {
			continue
		}

		switch {
		case errors.Is(err, domainerror.ErrInsufficientFunds):
			return domainerror.NewAccountError(
				domainerror.ErrCodeInsufficientFunds,
				"insufficient funds in account",
				err,
			)
		case errors.Is(err, domainerror.ErrNotFound):
			return domainerror.NewAccountError(
				domainerror.ErrCodeAccountNotFound,
				"account not found",
				err,
			)
		default:
			return fmt.Errorf("failed to update balance of account %s: %w", effect.AccountID, err)
		}
	}
	return nil
}
