package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	UserID uuid.UUID
	Name   string
	Color  string // Optional, defaults to DefaultCategoryColor
	Icon   string // Optional, defaults to DefaultCategoryIcon
	Type   entity.CategoryType
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *CategoryOutput
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(categoryRepo adapter.CategoryRepository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	name, err := validateName(input.Name)
	if err != nil {
		return nil, err
	}

	// Validate category type
	if !input.Type.IsValid() {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryType,
			"category type must be 'expense' or 'income'",
			domainerror.ErrInvalidCategoryType,
		)
	}

	// Apply default values for optional fields
	color := input.Color
	if color == "" {
		color = entity.DefaultCategoryColor
	}
	if err := validateColor(color); err != nil {
		return nil, err
	}
	icon := input.Icon
	if icon == "" {
		icon = entity.DefaultCategoryIcon
	}
	if err := validateIcon(icon); err != nil {
		return nil, err
	}

	if err := ensureUniqueName(ctx, uc.categoryRepo, input.UserID, name, input.Type, nil); err != nil {
		return nil, err
	}

	category := entity.NewCategory(name, color, icon, input.UserID, input.Type)

	// Save category to database
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &CreateCategoryOutput{
		Category: toCategoryOutput(category),
	}, nil
}
