package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/auth"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/integration/entrypoint/dto"
)

// UserController handles the authenticated user's profile endpoints.
type UserController struct {
	getProfileUseCase        *auth.GetProfileUseCase
	updatePreferencesUseCase *auth.UpdatePreferencesUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	getProfileUseCase *auth.GetProfileUseCase,
	updatePreferencesUseCase *auth.UpdatePreferencesUseCase,
) *UserController {
	return &UserController{
		getProfileUseCase:        getProfileUseCase,
		updatePreferencesUseCase: updatePreferencesUseCase,
	}
}

// GetProfile handles GET /users/me requests.
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	user, err := c.getProfileUseCase.Execute(ctx.Request.Context(), userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdatePreferences handles PATCH /users/me requests.
func (c *UserController) UpdatePreferences(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.UpdatePreferencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingFields))
		return
	}

	user, err := c.updatePreferencesUseCase.Execute(ctx.Request.Context(), auth.UpdatePreferencesInput{
		UserID:             userID,
		Name:               req.Name,
		EmailNotifications: req.EmailNotifications,
		BudgetAlerts:       req.BudgetAlerts,
		GoalAlerts:         req.GoalAlerts,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(user))
}
