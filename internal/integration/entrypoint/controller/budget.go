package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/budget"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/domain/valueobject"
	"github.com/AminataF33/gestionbudgetback/internal/integration/entrypoint/dto"
)

// BudgetController handles budget endpoints.
type BudgetController struct {
	createUseCase  *budget.CreateBudgetUseCase
	getUseCase     *budget.GetBudgetUseCase
	listUseCase    *budget.ListBudgetsUseCase
	updateUseCase  *budget.UpdateBudgetUseCase
	deleteUseCase  *budget.DeleteBudgetUseCase
	refreshUseCase *budget.RefreshBudgetUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	createUseCase *budget.CreateBudgetUseCase,
	getUseCase *budget.GetBudgetUseCase,
	listUseCase *budget.ListBudgetsUseCase,
	updateUseCase *budget.UpdateBudgetUseCase,
	deleteUseCase *budget.DeleteBudgetUseCase,
	refreshUseCase *budget.RefreshBudgetUseCase,
) *BudgetController {
	return &BudgetController{
		createUseCase:  createUseCase,
		getUseCase:     getUseCase,
		listUseCase:    listUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
		refreshUseCase: refreshUseCase,
	}
}

// Create handles POST /budgets requests.
func (c *BudgetController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingBudgetFields))
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		badRequest(ctx, "Invalid start_date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidBudgetDates))
		return
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		badRequest(ctx, "Invalid end_date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidBudgetDates))
		return
	}
	categoryID, _ := uuid.Parse(req.CategoryID)

	output, err := c.createUseCase.Execute(ctx.Request.Context(), budget.CreateBudgetInput{
		UserID:               userID,
		CategoryID:           categoryID,
		Name:                 req.Name,
		Amount:               req.Amount,
		Period:               valueobject.Period(req.Period),
		StartDate:            startDate,
		EndDate:              endDate,
		AlertThreshold:       req.AlertThreshold,
		NotificationsEnabled: req.NotificationsEnabled,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBudgetResponse(output.Budget))
}

// Get handles GET /budgets/:id requests.
func (c *BudgetController) Get(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	budgetID, ok := uuidParam(ctx, "id", string(domainerror.ErrCodeBudgetNotFound))
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), budget.GetBudgetInput{
		UserID:   userID,
		BudgetID: budgetID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output))
}

// List handles GET /budgets requests.
// Supports active_only, category_id and date (YYYY-MM-DD) filters.
func (c *BudgetController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	input := budget.ListBudgetsInput{
		UserID:     userID,
		ActiveOnly: ctx.Query("active_only") == "true",
	}
	if categoryIDStr := ctx.Query("category_id"); categoryIDStr != "" {
		categoryID, err := uuid.Parse(categoryIDStr)
		if err != nil {
			badRequest(ctx, "Invalid category_id", string(domainerror.ErrCodeBudgetCategoryNotFound))
			return
		}
		input.CategoryID = &categoryID
	}
	if dateStr := ctx.Query("date"); dateStr != "" {
		date, err := parseDate(dateStr)
		if err != nil {
			badRequest(ctx, "Invalid date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidBudgetDates))
			return
		}
		input.CoversDate = &date
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output.Budgets))
}

// Update handles PATCH /budgets/:id requests.
func (c *BudgetController) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	budgetID, ok := uuidParam(ctx, "id", string(domainerror.ErrCodeBudgetNotFound))
	if !ok {
		return
	}

	var req dto.UpdateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingBudgetFields))
		return
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		badRequest(ctx, "Invalid start_date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidBudgetDates))
		return
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		badRequest(ctx, "Invalid end_date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidBudgetDates))
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), budget.UpdateBudgetInput{
		UserID:               userID,
		BudgetID:             budgetID,
		Name:                 req.Name,
		Amount:               req.Amount,
		StartDate:            startDate,
		EndDate:              endDate,
		AlertThreshold:       req.AlertThreshold,
		NotificationsEnabled: req.NotificationsEnabled,
		IsActive:             req.IsActive,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output))
}

// Delete handles DELETE /budgets/:id requests.
func (c *BudgetController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	budgetID, ok := uuidParam(ctx, "id", string(domainerror.ErrCodeBudgetNotFound))
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), budget.DeleteBudgetInput{
		UserID:   userID,
		BudgetID: budgetID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Refresh handles POST /budgets/:id/refresh requests.
// Recomputes the spent amount from ledger entries and raises the alert when crossed.
func (c *BudgetController) Refresh(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	budgetID, ok := uuidParam(ctx, "id", string(domainerror.ErrCodeBudgetNotFound))
	if !ok {
		return
	}

	output, err := c.refreshUseCase.Execute(ctx.Request.Context(), budget.RefreshBudgetInput{
		UserID:   userID,
		BudgetID: budgetID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BudgetRefreshResponse{
		Budget:      dto.ToBudgetResponse(output.Budget),
		AlertRaised: output.AlertRaised,
		EmailQueued: output.EmailQueued,
	})
}
