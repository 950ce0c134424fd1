package dto

import (
	"time"

	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/category"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=50"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
	Type  string `json:"type" binding:"required,oneof=expense income"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,min=1,max=50"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	Type      string    `json:"type"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a CategoryOutput to a CategoryResponse DTO.
func ToCategoryResponse(output *category.CategoryOutput) CategoryResponse {
	return CategoryResponse{
		ID:        output.ID.String(),
		Name:      output.Name,
		Color:     output.Color,
		Icon:      output.Icon,
		Type:      string(output.Type),
		IsDefault: output.IsDefault,
		CreatedAt: output.CreatedAt,
		UpdatedAt: output.UpdatedAt,
	}
}

// ToCategoryListResponse converts a list of CategoryOutput to CategoryListResponse.
func ToCategoryListResponse(outputs []*category.CategoryOutput) CategoryListResponse {
	categories := make([]CategoryResponse, len(outputs))
	for i, output := range outputs {
		categories[i] = ToCategoryResponse(output)
	}
	return CategoryListResponse{
		Categories: categories,
	}
}
