package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// SeedDefaultCategoriesUseCase inserts the system categories that are missing.
// Running it repeatedly is safe.
type SeedDefaultCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewSeedDefaultCategoriesUseCase creates a new SeedDefaultCategoriesUseCase instance.
func NewSeedDefaultCategoriesUseCase(categoryRepo adapter.CategoryRepository) *SeedDefaultCategoriesUseCase {
	return &SeedDefaultCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute seeds the defaults and returns how many were created.
func (uc *SeedDefaultCategoriesUseCase) Execute(ctx context.Context) (int, error) {
	created, err := uc.categoryRepo.SeedDefaults(ctx, entity.DefaultCategories())
	if err != nil {
		return 0, fmt.Errorf("failed to seed default categories: %w", err)
	}
	if created > 0 {
		slog.Info("Seeded default categories", "count", created)
	}
	return created, nil
}
