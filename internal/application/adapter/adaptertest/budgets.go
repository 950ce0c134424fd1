package adaptertest

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// Budgets returns a budget repository backed by the store.
func (s *Store) Budgets() adapter.BudgetRepository {
	return &budgetRepository{store: s}
}

// SeedBudget stores a budget as-is.
func (s *Store) SeedBudget(budget *entity.Budget) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[budget.ID] = cloneBudget(budget)
}

// Budget returns the stored copy of a budget, or nil.
func (s *Store) Budget(id uuid.UUID) *entity.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	if budget, ok := s.budgets[id]; ok {
		return cloneBudget(budget)
	}
	return nil
}

// FailBudgetUpdate makes every Update of the budget fail with err.
func (s *Store) FailBudgetUpdate(budgetID uuid.UUID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgetUpdateFailures[budgetID] = err
}

// BudgetScopeLocks returns how many times budget writes were serialized for a category.
func (s *Store) BudgetScopeLocks(categoryID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgetScopeLocks[categoryID]
}

type budgetRepository struct {
	store *Store
}

func (r *budgetRepository) Create(_ context.Context, budget *entity.Budget) error {
	r.store.SeedBudget(budget)
	return nil
}

func (r *budgetRepository) LockScope(ctx context.Context, _, categoryID uuid.UUID) error {
	if ctx.Value(txKey{}) == nil {
		return errors.New("budget scope lock taken outside a transaction")
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.budgetScopeLocks[categoryID]++
	return nil
}

func (r *budgetRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Budget, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	budget, ok := r.store.budgets[id]
	if !ok || budget.DeletedAt != nil {
		return nil, domainerror.ErrBudgetNotFound
	}
	return cloneBudget(budget), nil
}

func (r *budgetRepository) FindByFilter(_ context.Context, filter adapter.BudgetFilter) ([]*entity.Budget, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	budgets := make([]*entity.Budget, 0)
	for _, budget := range r.store.budgets {
		if budget.DeletedAt != nil || budget.UserID != filter.UserID {
			continue
		}
		if filter.ActiveOnly && !budget.IsActive {
			continue
		}
		if filter.CategoryID != nil && budget.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.CoversDate != nil && !budget.Covers(*filter.CoversDate) {
			continue
		}
		budgets = append(budgets, cloneBudget(budget))
	}
	sort.Slice(budgets, func(i, j int) bool {
		return budgets[i].StartDate.Before(budgets[j].StartDate)
	})
	return budgets, nil
}

func (r *budgetRepository) ExistsOverlapping(_ context.Context, userID, categoryID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, budget := range r.store.budgets {
		if budget.DeletedAt != nil || !budget.IsActive || budget.UserID != userID || budget.CategoryID != categoryID {
			continue
		}
		if excludeID != nil && budget.ID == *excludeID {
			continue
		}
		if budget.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *budgetRepository) CountByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, budget := range r.store.budgets {
		if budget.DeletedAt == nil && budget.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (r *budgetRepository) Update(_ context.Context, budget *entity.Budget) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.budgetUpdateFailures[budget.ID]; err != nil {
		return err
	}
	if _, ok := r.store.budgets[budget.ID]; !ok {
		return domainerror.ErrBudgetNotFound
	}
	r.store.budgets[budget.ID] = cloneBudget(budget)
	return nil
}

func (r *budgetRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	budget, ok := r.store.budgets[id]
	if !ok || budget.DeletedAt != nil {
		return domainerror.ErrBudgetNotFound
	}
	deletedAt := budget.UpdatedAt
	budget.DeletedAt = &deletedAt
	return nil
}
