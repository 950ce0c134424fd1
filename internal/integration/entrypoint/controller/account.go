package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/account"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/integration/entrypoint/dto"
)

// AccountController handles account endpoints.
type AccountController struct {
	createUseCase     *account.CreateAccountUseCase
	getUseCase        *account.GetAccountUseCase
	listUseCase       *account.ListAccountsUseCase
	updateUseCase     *account.UpdateAccountUseCase
	deactivateUseCase *account.DeactivateAccountUseCase
}

// NewAccountController creates a new account controller instance.
func NewAccountController(
	createUseCase *account.CreateAccountUseCase,
	getUseCase *account.GetAccountUseCase,
	listUseCase *account.ListAccountsUseCase,
	updateUseCase *account.UpdateAccountUseCase,
	deactivateUseCase *account.DeactivateAccountUseCase,
) *AccountController {
	return &AccountController{
		createUseCase:     createUseCase,
		getUseCase:        getUseCase,
		listUseCase:       listUseCase,
		updateUseCase:     updateUseCase,
		deactivateUseCase: deactivateUseCase,
	}
}

// Create handles POST /accounts requests.
func (c *AccountController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeInvalidAccountKind))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), account.CreateAccountInput{
		UserID:         userID,
		Name:           req.Name,
		Institution:    req.Institution,
		Kind:           entity.AccountKind(req.Kind),
		InitialBalance: req.InitialBalance,
		Currency:       req.Currency,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToAccountResponse(output.Account))
}

// Get handles GET /accounts/:id requests.
func (c *AccountController) Get(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	accountID, ok := uuidParam(ctx, "id", string(domainerror.ErrCodeAccountNotFound))
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), account.GetAccountInput{
		UserID:    userID,
		AccountID: accountID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountResponse(output))
}

// List handles GET /accounts requests.
// Pass include_inactive=true to include deactivated accounts.
func (c *AccountController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), account.ListAccountsInput{
		UserID:          userID,
		IncludeInactive: ctx.Query("include_inactive") == "true",
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountListResponse(output))
}

// Update handles PATCH /accounts/:id requests.
func (c *AccountController) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	accountID, ok := uuidParam(ctx, "id", string(domainerror.ErrCodeAccountNotFound))
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeAccountNameRequired))
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), account.UpdateAccountInput{
		UserID:      userID,
		AccountID:   accountID,
		Name:        req.Name,
		Institution: req.Institution,
		Currency:    req.Currency,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAccountResponse(output))
}

// Deactivate handles DELETE /accounts/:id requests.
func (c *AccountController) Deactivate(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	accountID, ok := uuidParam(ctx, "id", string(domainerror.ErrCodeAccountNotFound))
	if !ok {
		return
	}

	err := c.deactivateUseCase.Execute(ctx.Request.Context(), account.DeactivateAccountInput{
		UserID:    userID,
		AccountID: accountID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
