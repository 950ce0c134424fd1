package adaptertest

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// Accounts returns an account repository backed by the store.
func (s *Store) Accounts() adapter.AccountRepository {
	return &accountRepository{store: s}
}

// SeedAccount stores an account as-is.
func (s *Store) SeedAccount(account *entity.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.ID] = cloneAccount(account)
}

// Balance returns the stored balance of an account.
func (s *Store) Balance(accountID uuid.UUID) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if account, ok := s.accounts[accountID]; ok {
		return account.Balance
	}
	return decimal.Zero
}

type accountRepository struct {
	store *Store
}

func (r *accountRepository) Create(_ context.Context, account *entity.Account) error {
	r.store.SeedAccount(account)
	return nil
}

func (r *accountRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[id]
	if !ok {
		return nil, domainerror.ErrAccountNotFound
	}
	return cloneAccount(account), nil
}

func (r *accountRepository) FindByUserID(_ context.Context, userID uuid.UUID, includeInactive bool) ([]*entity.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	accounts := make([]*entity.Account, 0)
	for _, account := range r.store.accounts {
		if account.UserID != userID || (!includeInactive && !account.IsActive) {
			continue
		}
		accounts = append(accounts, cloneAccount(account))
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].CreatedAt.Before(accounts[j].CreatedAt)
	})
	return accounts, nil
}

func (r *accountRepository) Update(_ context.Context, account *entity.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.accounts[account.ID]
	if !ok {
		return domainerror.ErrAccountNotFound
	}
	stored.Name = account.Name
	stored.Institution = account.Institution
	stored.Currency = account.Currency
	stored.IsActive = account.IsActive
	stored.UpdatedAt = account.UpdatedAt
	return nil
}

func (r *accountRepository) ApplyBalanceDelta(_ context.Context, accountID uuid.UUID, delta decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[accountID]
	if !ok {
		return domainerror.ErrAccountNotFound
	}

	next := account.Balance.Add(delta)
	if next.IsNegative() && !account.AllowsNegativeBalance() {
		return domainerror.ErrAccountInsufficientFunds
	}
	account.Balance = next
	account.Version++
	return nil
}
