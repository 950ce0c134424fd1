// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/auth"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/integration/entrypoint/dto"
)

// AuthController handles authentication endpoints.
type AuthController struct {
	registerUseCase     *auth.RegisterUserUseCase
	loginUseCase        *auth.LoginUserUseCase
	refreshTokenUseCase *auth.RefreshTokenUseCase
	logoutUseCase       *auth.LogoutUserUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	registerUseCase *auth.RegisterUserUseCase,
	loginUseCase *auth.LoginUserUseCase,
	refreshTokenUseCase *auth.RefreshTokenUseCase,
	logoutUseCase *auth.LogoutUserUseCase,
) *AuthController {
	return &AuthController{
		registerUseCase:     registerUseCase,
		loginUseCase:        loginUseCase,
		refreshTokenUseCase: refreshTokenUseCase,
		logoutUseCase:       logoutUseCase,
	}
}

// Register handles POST /auth/register requests.
// The response includes the default accounts opened for the new user.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingFields))
		return
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		Email:         req.Email,
		Name:          req.Name,
		Password:      req.Password,
		TermsAccepted: req.TermsAccepted,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAuthResponse(output.AccessToken, output.RefreshToken, output.User, output.Accounts))
}

// Login handles POST /auth/login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingFields))
		return
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAuthResponse(output.AccessToken, output.RefreshToken, output.User, output.Accounts))
}

// RefreshToken handles POST /auth/refresh requests.
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeMissingToken))
		return
	}

	output, err := c.refreshTokenUseCase.Execute(ctx.Request.Context(), auth.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
	})
}

// Logout handles POST /auth/logout requests.
// Unknown or malformed tokens still get a 200 so the client can drop its session.
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.LogoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusOK, dto.LogoutResponse{Message: "Successfully logged out"})
		return
	}

	output, err := c.logoutUseCase.Execute(ctx.Request.Context(), auth.LogoutUserInput{
		RefreshToken: req.RefreshToken,
		AllSessions:  req.AllSessions,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LogoutResponse{Message: output.Message, Revoked: output.Revoked})
}
