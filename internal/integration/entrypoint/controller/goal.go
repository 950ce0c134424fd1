package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/goal"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/domain/valueobject"
	"github.com/AminataF33/gestionbudgetback/internal/integration/entrypoint/dto"
)

// GoalController handles goal-related HTTP requests.
type GoalController struct {
	listUseCase         *goal.ListGoalsUseCase
	getUseCase          *goal.GetGoalUseCase
	createUseCase       *goal.CreateGoalUseCase
	updateUseCase       *goal.UpdateGoalUseCase
	deleteUseCase       *goal.DeleteGoalUseCase
	contributionUseCase *goal.AddContributionUseCase
}

// NewGoalController creates a new GoalController.
func NewGoalController(
	listUseCase *goal.ListGoalsUseCase,
	getUseCase *goal.GetGoalUseCase,
	createUseCase *goal.CreateGoalUseCase,
	updateUseCase *goal.UpdateGoalUseCase,
	deleteUseCase *goal.DeleteGoalUseCase,
	contributionUseCase *goal.AddContributionUseCase,
) *GoalController {
	return &GoalController{
		listUseCase:         listUseCase,
		getUseCase:          getUseCase,
		createUseCase:       createUseCase,
		updateUseCase:       updateUseCase,
		deleteUseCase:       deleteUseCase,
		contributionUseCase: contributionUseCase,
	}
}

// List handles GET /goals requests.
func (c *GoalController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	input := goal.ListGoalsInput{UserID: userID}
	if statusStr := ctx.Query("status"); statusStr != "" {
		status := entity.GoalStatus(statusStr)
		input.Status = &status
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalListResponse(output))
}

// Get handles GET /goals/:id requests.
func (c *GoalController) Get(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := uuidParam(ctx, "id", string(domainerror.ErrCodeGoalNotFound))
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), goal.GetGoalInput{
		UserID: userID,
		GoalID: goalID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output))
}

// Create handles POST /goals requests.
func (c *GoalController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingGoalFields))
		return
	}

	targetDate, err := parseDate(req.TargetDate)
	if err != nil {
		badRequest(ctx, "Invalid target_date, expected YYYY-MM-DD", string(domainerror.ErrCodeMissingGoalFields))
		return
	}
	autoSave, err := toAutoSaveInput(req.AutoSave)
	if err != nil {
		badRequest(ctx, "Invalid auto_save.next_date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidAutoSave))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), goal.CreateGoalInput{
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		TargetDate:   targetDate,
		Category:     req.Category,
		Priority:     entity.GoalPriority(req.Priority),
		Milestones:   toMilestoneInputs(req.Milestones),
		AutoSave:     autoSave,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToGoalResponse(output.Goal))
}

// Update handles PATCH /goals/:id requests.
func (c *GoalController) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := uuidParam(ctx, "id", string(domainerror.ErrCodeGoalNotFound))
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingGoalFields))
		return
	}

	targetDate, err := parseOptionalDate(req.TargetDate)
	if err != nil {
		badRequest(ctx, "Invalid target_date, expected YYYY-MM-DD", string(domainerror.ErrCodeMissingGoalFields))
		return
	}
	autoSave, err := toAutoSaveInput(req.AutoSave)
	if err != nil {
		badRequest(ctx, "Invalid auto_save.next_date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidAutoSave))
		return
	}

	input := goal.UpdateGoalInput{
		UserID:      userID,
		GoalID:      goalID,
		Name:        req.Name,
		Description: req.Description,
		TargetDate:  targetDate,
		Category:    req.Category,
		Milestones:  toMilestoneInputs(req.Milestones),
		AutoSave:    autoSave,
	}
	if req.Priority != nil {
		priority := entity.GoalPriority(*req.Priority)
		input.Priority = &priority
	}
	if req.Status != nil {
		status := entity.GoalStatus(*req.Status)
		input.Status = &status
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToGoalResponse(output))
}

// Delete handles DELETE /goals/:id requests.
func (c *GoalController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := uuidParam(ctx, "id", string(domainerror.ErrCodeGoalNotFound))
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), goal.DeleteGoalInput{
		UserID: userID,
		GoalID: goalID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AddContribution handles POST /goals/:id/contributions requests.
func (c *GoalController) AddContribution(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	goalID, ok := uuidParam(ctx, "id", string(domainerror.ErrCodeGoalNotFound))
	if !ok {
		return
	}

	var req dto.AddContributionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeInvalidContribution))
		return
	}

	output, err := c.contributionUseCase.Execute(ctx.Request.Context(), goal.AddContributionInput{
		UserID: userID,
		GoalID: goalID,
		Amount: req.Amount,
		Note:   req.Note,
		Source: entity.ContributionSource(req.Source),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToContributionResultResponse(output))
}

func toMilestoneInputs(requests []dto.MilestoneRequest) []goal.MilestoneInput {
	if len(requests) == 0 {
		return nil
	}
	inputs := make([]goal.MilestoneInput, len(requests))
	for i, m := range requests {
		inputs[i] = goal.MilestoneInput{Name: m.Name, Amount: m.Amount}
	}
	return inputs
}

func toAutoSaveInput(req *dto.AutoSaveRequest) (*goal.AutoSaveInput, error) {
	if req == nil {
		return nil, nil
	}
	nextDate, err := parseOptionalDate(req.NextDate)
	if err != nil {
		return nil, err
	}
	return &goal.AutoSaveInput{
		Enabled:   req.Enabled,
		Amount:    req.Amount,
		Frequency: valueobject.Frequency(req.Frequency),
		NextDate:  nextDate,
	}, nil
}
