package category

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	UserID       uuid.UUID
	CategoryType *entity.CategoryType // Optional filter by category type
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*CategoryOutput
}

// ListCategoriesUseCase lists the default categories plus the ones the user owns.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	if input.CategoryType != nil && !input.CategoryType.IsValid() {
		input.CategoryType = nil
	}

	categories, err := uc.categoryRepo.FindVisible(ctx, input.UserID, input.CategoryType)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	// Defaults first, then by type and name
	sort.SliceStable(categories, func(i, j int) bool {
		a, b := categories[i], categories[j]
		if a.IsDefault != b.IsDefault {
			return a.IsDefault
		}
		if a.Type != b.Type {
			return a.Type < b.Type
		}
		return a.Name < b.Name
	})

	output := &ListCategoriesOutput{
		Categories: make([]*CategoryOutput, len(categories)),
	}
	for i, category := range categories {
		output.Categories[i] = toCategoryOutput(category)
	}

	return output, nil
}
