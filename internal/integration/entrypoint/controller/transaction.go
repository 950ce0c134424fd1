package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/transaction"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction-related HTTP requests.
type TransactionController struct {
	listUseCase   *transaction.ListTransactionsUseCase
	getUseCase    *transaction.GetTransactionUseCase
	createUseCase *transaction.CreateTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
}

// NewTransactionController creates a new TransactionController.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	getUseCase *transaction.GetTransactionUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:   listUseCase,
		getUseCase:    getUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	input := transaction.ListTransactionsInput{
		UserID: userID,
		Search: ctx.Query("search"),
	}

	if startDateStr := ctx.Query("startDate"); startDateStr != "" {
		startDate, err := parseDate(startDateStr)
		if err != nil {
			badRequest(ctx, "Invalid startDate, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidTransactionDate))
			return
		}
		input.StartDate = &startDate
	}
	if endDateStr := ctx.Query("endDate"); endDateStr != "" {
		endDate, err := parseDate(endDateStr)
		if err != nil {
			badRequest(ctx, "Invalid endDate, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidTransactionDate))
			return
		}
		input.EndDate = &endDate
	}

	if accountIDStr := ctx.Query("accountId"); accountIDStr != "" {
		accountID, err := uuid.Parse(accountIDStr)
		if err != nil {
			badRequest(ctx, "Invalid accountId", string(domainerror.ErrCodeTxnAccountNotFound))
			return
		}
		input.AccountID = &accountID
	}

	if categoryIDsStr := ctx.Query("categoryIds"); categoryIDsStr != "" {
		for _, idStr := range strings.Split(categoryIDsStr, ",") {
			if id, err := uuid.Parse(strings.TrimSpace(idStr)); err == nil {
				input.CategoryIDs = append(input.CategoryIDs, id)
			}
		}
	}

	if typeStr := ctx.Query("type"); typeStr != "" {
		txnType := entity.TransactionType(typeStr)
		input.Type = &txnType
	}
	if statusStr := ctx.Query("status"); statusStr != "" {
		status := entity.TransactionStatus(statusStr)
		input.Status = &status
	}

	if page, err := strconv.Atoi(ctx.Query("page")); err == nil {
		input.Page = page
	}
	if limit, err := strconv.Atoi(ctx.Query("limit")); err == nil {
		input.Limit = limit
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Get handles GET /transactions/:id requests.
func (c *TransactionController) Get(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := uuidParam(ctx, "id", string(domainerror.ErrCodeTransactionNotFound))
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeInvalidTransactionType))
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		badRequest(ctx, "Invalid date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidTransactionDate))
		return
	}
	accountID, _ := uuid.Parse(req.AccountID)
	destinationID, err := parseOptionalUUID(req.DestinationAccountID)
	if err != nil {
		badRequest(ctx, "Invalid destination_account_id", string(domainerror.ErrCodeInvalidTransfer))
		return
	}
	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		badRequest(ctx, "Invalid category_id", string(domainerror.ErrCodeTxnCategoryNotFound))
		return
	}

	input := transaction.CreateTransactionInput{
		UserID:               userID,
		AccountID:            accountID,
		DestinationAccountID: destinationID,
		CategoryID:           categoryID,
		Type:                 entity.TransactionType(req.Type),
		Amount:               req.Amount,
		Description:          req.Description,
		Date:                 date,
		PaymentMethod:        entity.PaymentMethod(req.PaymentMethod),
		Currency:             req.Currency,
		Tags:                 req.Tags,
		Notes:                req.Notes,
	}
	if req.Status != nil {
		status := entity.TransactionStatus(*req.Status)
		input.Status = &status
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Update handles PATCH /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := uuidParam(ctx, "id", string(domainerror.ErrCodeTransactionNotFound))
	if !ok {
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeInvalidTransactionType))
		return
	}

	input := transaction.UpdateTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
		Amount:        req.Amount,
		Description:   req.Description,
		Currency:      req.Currency,
		Tags:          req.Tags,
		Notes:         req.Notes,
	}

	var err error
	if input.AccountID, err = parseOptionalUUID(req.AccountID); err != nil {
		badRequest(ctx, "Invalid account_id", string(domainerror.ErrCodeTxnAccountNotFound))
		return
	}
	if input.DestinationAccountID, err = parseOptionalUUID(req.DestinationAccountID); err != nil {
		badRequest(ctx, "Invalid destination_account_id", string(domainerror.ErrCodeInvalidTransfer))
		return
	}
	if input.CategoryID, err = parseOptionalUUID(req.CategoryID); err != nil {
		badRequest(ctx, "Invalid category_id", string(domainerror.ErrCodeTxnCategoryNotFound))
		return
	}
	if input.Date, err = parseOptionalDate(req.Date); err != nil {
		badRequest(ctx, "Invalid date, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidTransactionDate))
		return
	}
	if req.Type != nil {
		txnType := entity.TransactionType(*req.Type)
		input.Type = &txnType
	}
	if req.PaymentMethod != nil {
		method := entity.PaymentMethod(*req.PaymentMethod)
		input.PaymentMethod = &method
	}
	if req.Status != nil {
		status := entity.TransactionStatus(*req.Status)
		input.Status = &status
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
// Deleting a completed transaction reverses its effect on account balances.
func (c *TransactionController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	transactionID, ok := uuidParam(ctx, "id", string(domainerror.ErrCodeTransactionNotFound))
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		TransactionID: transactionID,
		UserID:        userID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
