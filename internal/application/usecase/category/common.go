// Package category contains category-related use cases.
package category

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

const (
	// MaxCategoryNameLength is the maximum allowed length for category names.
	MaxCategoryNameLength = 50
	// MaxIconLength is the maximum allowed length for icon names.
	MaxIconLength = 50
)

// hexColorRegex is compiled once at package level for performance.
var hexColorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

// CategoryOutput represents a single category in the output.
type CategoryOutput struct {
	ID        uuid.UUID
	Name      string
	Color     string
	Icon      string
	Type      entity.CategoryType
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func toCategoryOutput(category *entity.Category) *CategoryOutput {
	return &CategoryOutput{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		Type:      category.Type,
		IsDefault: category.IsDefault,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
}

// findModifiableCategory loads a category the user owns. Defaults are visible but read-only.
func findModifiableCategory(ctx context.Context, repo adapter.CategoryRepository, userID, categoryID uuid.UUID) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, categoryNotFound()
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	if !category.IsVisibleTo(userID) {
		return nil, categoryNotFound()
	}
	if category.IsDefault {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeDefaultCategoryReadOnly,
			"default categories cannot be modified",
			domainerror.ErrDefaultCategoryReadOnly,
		)
	}
	return category, nil
}

func categoryNotFound() error {
	return domainerror.NewCategoryError(
		domainerror.ErrCodeCategoryNotFound,
		"category not found",
		domainerror.ErrCategoryNotFound,
	)
}

// validateName trims a category name and checks its length.
func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			"category name is required",
			domainerror.ErrValidation,
		)
	}
	if len(name) > MaxCategoryNameLength {
		return "", domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}
	return name, nil
}

// validateColor checks a hex color (#XXXXXX or #XXX).
func validateColor(color string) error {
	if !hexColorRegex.MatchString(color) {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidColorFormat,
			"color must be a valid hex format (#XXXXXX)",
			domainerror.ErrInvalidColorFormat,
		)
	}
	return nil
}

// validateIcon checks the icon name length.
func validateIcon(icon string) error {
	if len(icon) > MaxIconLength {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeMissingCategoryFields,
			fmt.Sprintf("icon must not exceed %d characters", MaxIconLength),
			domainerror.ErrValidation,
		)
	}
	return nil
}

// ensureUniqueName rejects a name already used by a category visible to the user,
// defaults included, for the same type.
func ensureUniqueName(ctx context.Context, repo adapter.CategoryRepository, userID uuid.UUID, name string, categoryType entity.CategoryType, excludeID *uuid.UUID) error {
	exists, err := repo.ExistsByName(ctx, userID, name, categoryType, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check category name existence: %w", err)
	}
	if exists {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			"a category with this name already exists",
			domainerror.ErrCategoryNameExists,
		)
	}
	return nil
}
