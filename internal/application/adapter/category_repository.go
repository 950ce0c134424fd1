// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindVisible retrieves default categories plus those owned by the user,
	// optionally restricted to one type.
	FindVisible(ctx context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error)

	// ExistsByName checks whether a category with the name and type is visible to the user.
	// The comparison is case-insensitive and covers default categories.
	ExistsByName(ctx context.Context, userID uuid.UUID, name string, categoryType entity.CategoryType, excludeID *uuid.UUID) (bool, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// Delete soft-deletes a category from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// SeedDefaults inserts the default categories that are not present yet.
	// Returns the number of categories created.
	SeedDefaults(ctx context.Context, categories []*entity.Category) (int, error)
}
