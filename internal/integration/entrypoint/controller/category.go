package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/category"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/integration/entrypoint/dto"
)

// CategoryController handles category-related HTTP requests.
type CategoryController struct {
	listUseCase   *category.ListCategoriesUseCase
	createUseCase *category.CreateCategoryUseCase
	updateUseCase *category.UpdateCategoryUseCase
	deleteUseCase *category.DeleteCategoryUseCase
}

// NewCategoryController creates a new CategoryController.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	createUseCase *category.CreateCategoryUseCase,
	updateUseCase *category.UpdateCategoryUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /categories requests.
// Returns the default categories plus the user's own, optionally filtered by type.
func (c *CategoryController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	input := category.ListCategoriesInput{UserID: userID}
	if typeStr := ctx.Query("type"); typeStr != "" {
		categoryType := entity.CategoryType(typeStr)
		if !categoryType.IsValid() {
			badRequest(ctx, "Invalid category type", string(domainerror.ErrCodeInvalidCategoryType))
			return
		}
		input.CategoryType = &categoryType
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output.Categories))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingCategoryFields))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		UserID: userID,
		Name:   req.Name,
		Color:  req.Color,
		Icon:   req.Icon,
		Type:   entity.CategoryType(req.Type),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}

// Update handles PATCH /categories/:id requests.
func (c *CategoryController) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	categoryID, ok := uuidParam(ctx, "id", string(domainerror.ErrCodeCategoryNotFound))
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingCategoryFields))
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), category.UpdateCategoryInput{
		UserID:     userID,
		CategoryID: categoryID,
		Name:       req.Name,
		Color:      req.Color,
		Icon:       req.Icon,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(output.Category))
}

// Delete handles DELETE /categories/:id requests.
func (c *CategoryController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	categoryID, ok := uuidParam(ctx, "id", string(domainerror.ErrCodeCategoryNotFound))
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), category.DeleteCategoryInput{
		UserID:     userID,
		CategoryID: categoryID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
