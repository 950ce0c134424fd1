// Package adaptertest provides in-memory implementations of the application adapters
// for use case tests. A Store keeps every aggregate in maps and its Transactor restores
// a snapshot when the unit of work fails, mirroring a database rollback.
package adaptertest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// Store holds the in-memory state shared by the fake repositories.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	accounts     map[uuid.UUID]*entity.Account
	transactions map[uuid.UUID]*entity.Transaction
	categories   map[uuid.UUID]*entity.Category
	budgets      map[uuid.UUID]*entity.Budget
	goals        map[uuid.UUID]*entity.Goal
	users        map[uuid.UUID]*entity.User

	goalUpdateFailures     map[uuid.UUID]error
	lockedTransactionReads map[uuid.UUID]int
	budgetScopeLocks       map[uuid.UUID]int
	budgetUpdateFailures   map[uuid.UUID]error

	// Commits counts successful units of work.
	Commits int
	// Rollbacks counts failed units of work.
	Rollbacks int
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts:     make(map[uuid.UUID]*entity.Account),
		transactions: make(map[uuid.UUID]*entity.Transaction),
		categories:   make(map[uuid.UUID]*entity.Category),
		budgets:      make(map[uuid.UUID]*entity.Budget),
		goals:        make(map[uuid.UUID]*entity.Goal),
		users:        make(map[uuid.UUID]*entity.User),

		goalUpdateFailures:     make(map[uuid.UUID]error),
		lockedTransactionReads: make(map[uuid.UUID]int),
		budgetScopeLocks:       make(map[uuid.UUID]int),
		budgetUpdateFailures:   make(map[uuid.UUID]error),
	}
}

type snapshot struct {
	accounts     map[uuid.UUID]*entity.Account
	transactions map[uuid.UUID]*entity.Transaction
	categories   map[uuid.UUID]*entity.Category
	budgets      map[uuid.UUID]*entity.Budget
	goals        map[uuid.UUID]*entity.Goal
	users        map[uuid.UUID]*entity.User
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		accounts:     make(map[uuid.UUID]*entity.Account, len(s.accounts)),
		transactions: make(map[uuid.UUID]*entity.Transaction, len(s.transactions)),
		categories:   make(map[uuid.UUID]*entity.Category, len(s.categories)),
		budgets:      make(map[uuid.UUID]*entity.Budget, len(s.budgets)),
		goals:        make(map[uuid.UUID]*entity.Goal, len(s.goals)),
		users:        make(map[uuid.UUID]*entity.User, len(s.users)),
	}
	for id, v := range s.accounts {
		snap.accounts[id] = cloneAccount(v)
	}
	for id, v := range s.transactions {
		snap.transactions[id] = v.Clone()
	}
	for id, v := range s.categories {
		snap.categories[id] = cloneCategory(v)
	}
	for id, v := range s.budgets {
		snap.budgets[id] = cloneBudget(v)
	}
	for id, v := range s.goals {
		snap.goals[id] = v.Clone()
	}
	for id, v := range s.users {
		user := *v
		snap.users[id] = &user
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = snap.accounts
	s.transactions = snap.transactions
	s.categories = snap.categories
	s.budgets = snap.budgets
	s.goals = snap.goals
	s.users = snap.users
}

type txKey struct{}

// Transactor returns an adapter.Transactor with rollback semantics over the store.
func (s *Store) Transactor() adapter.Transactor {
	return &transactor{store: s}
}

type transactor struct {
	store *Store
}

func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()

	snap := t.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		t.store.restore(snap)
		t.store.Rollbacks++
		return err
	}
	t.store.Commits++
	return nil
}

func cloneAccount(a *entity.Account) *entity.Account {
	clone := *a
	return &clone
}

func cloneCategory(c *entity.Category) *entity.Category {
	clone := *c
	if c.OwnerID != nil {
		owner := *c.OwnerID
		clone.OwnerID = &owner
	}
	return &clone
}

func cloneBudget(b *entity.Budget) *entity.Budget {
	clone := *b
	if b.LastAlertAt != nil {
		alertedAt := *b.LastAlertAt
		clone.LastAlertAt = &alertedAt
	}
	return &clone
}
