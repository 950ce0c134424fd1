package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/dashboard"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	getSummaryUseCase           *dashboard.GetSummaryUseCase
	getCategoryBreakdownUseCase *dashboard.GetCategoryBreakdownUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	getSummaryUseCase *dashboard.GetSummaryUseCase,
	getCategoryBreakdownUseCase *dashboard.GetCategoryBreakdownUseCase,
) *DashboardController {
	return &DashboardController{
		getSummaryUseCase:           getSummaryUseCase,
		getCategoryBreakdownUseCase: getCategoryBreakdownUseCase,
	}
}

// GetSummary handles GET /dashboard/summary requests.
func (c *DashboardController) GetSummary(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	output, err := c.getSummaryUseCase.Execute(ctx.Request.Context(), dashboard.GetSummaryInput{
		UserID: userID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardSummaryResponse(output))
}

// GetCategoryBreakdown handles GET /dashboard/category-breakdown requests.
func (c *DashboardController) GetCategoryBreakdown(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	startDateStr := ctx.Query("start_date")
	endDateStr := ctx.Query("end_date")

	if startDateStr == "" {
		badRequest(ctx, "start_date is required", string(domainerror.ErrCodeMissingStartDate))
		return
	}
	if endDateStr == "" {
		badRequest(ctx, "end_date is required", string(domainerror.ErrCodeMissingEndDate))
		return
	}

	startDate, err := parseDate(startDateStr)
	if err != nil {
		badRequest(ctx, "Invalid start_date format, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidDateRange))
		return
	}
	endDate, err := parseDate(endDateStr)
	if err != nil {
		badRequest(ctx, "Invalid end_date format, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidDateRange))
		return
	}

	input := dashboard.GetCategoryBreakdownInput{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	}
	if accountIDStr := ctx.Query("account_id"); accountIDStr != "" {
		accountID, err := uuid.Parse(accountIDStr)
		if err != nil {
			badRequest(ctx, "Invalid account_id", string(domainerror.ErrCodeAccountNotFound))
			return
		}
		input.AccountID = &accountID
	}

	output, err := c.getCategoryBreakdownUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(output))
}
