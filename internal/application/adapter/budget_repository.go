// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// BudgetFilter defines filter options for listing budgets.
type BudgetFilter struct {
	UserID     uuid.UUID
	ActiveOnly bool
	CategoryID *uuid.UUID
	CoversDate *time.Time // Only budgets whose range includes this date
}

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget in the database.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByFilter retrieves budgets matching the filter, ordered by start date.
	FindByFilter(ctx context.Context, filter BudgetFilter) ([]*entity.Budget, error)

	// ExistsOverlapping checks whether an active budget of the user for the category
	// intersects [start, end], ignoring excludeID when set.
	ExistsOverlapping(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error)

	// LockScope serializes budget writes for a user and category until the surrounding
	// transaction ends. It must be called inside Transactor.WithinTransaction.
	LockScope(ctx context.Context, userID, categoryID uuid.UUID) error

	// CountByCategory counts live budgets referencing a category.
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// Update updates an existing budget in the database.
	Update(ctx context.Context, budget *entity.Budget) error

	// Delete soft-deletes a budget from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
