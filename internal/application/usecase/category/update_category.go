package category

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
)

// UpdateCategoryInput represents the input for category update.
type UpdateCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
	Name       *string // Optional
	Color      *string // Optional
	Icon       *string // Optional
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *CategoryOutput
}

// UpdateCategoryUseCase handles category update logic.
type UpdateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(categoryRepo adapter.CategoryRepository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	category, err := findModifiableCategory(ctx, uc.categoryRepo, input.UserID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	// Update name if provided
	if input.Name != nil {
		name, err := validateName(*input.Name)
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(name, category.Name) {
			if err := ensureUniqueName(ctx, uc.categoryRepo, input.UserID, name, category.Type, &category.ID); err != nil {
				return nil, err
			}
		}
		category.Name = name
	}

	// Update color if provided
	if input.Color != nil {
		if err := validateColor(*input.Color); err != nil {
			return nil, err
		}
		category.Color = *input.Color
	}

	// Update icon if provided
	if input.Icon != nil {
		if err := validateIcon(*input.Icon); err != nil {
			return nil, err
		}
		category.Icon = *input.Icon
	}

	category.UpdatedAt = time.Now().UTC()

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &UpdateCategoryOutput{
		Category: toCategoryOutput(category),
	}, nil
}
