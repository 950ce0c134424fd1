package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/integration/entrypoint/dto"
	"github.com/AminataF33/gestionbudgetback/internal/integration/entrypoint/middleware"
)

// StatusForError maps a domain error kind to an HTTP status code.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, domainerror.ErrValidation),
		errors.Is(err, domainerror.ErrInvalidAmount),
		errors.Is(err, domainerror.ErrInvalidTransfer):
		return http.StatusBadRequest
	case errors.Is(err, domainerror.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domainerror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domainerror.ErrDuplicateResource),
		errors.Is(err, domainerror.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, domainerror.ErrInsufficientFunds),
		errors.Is(err, domainerror.ErrInvariantViolation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error response for err.
// Coded domain errors expose their message and code; anything else is logged and hidden.
func respondError(ctx *gin.Context, err error) {
	status := StatusForError(err)

	var coded domainerror.CodedError
	if errors.As(err, &coded) && status != http.StatusInternalServerError {
		ctx.JSON(status, dto.ErrorResponse{
			Error: coded.PublicMessage(),
			Code:  coded.ErrorCode(),
		})
		return
	}

	if status != http.StatusInternalServerError {
		ctx.JSON(status, dto.ErrorResponse{Error: err.Error()})
		return
	}

	slog.ErrorContext(ctx.Request.Context(), "Request failed",
		"method", ctx.Request.Method,
		"path", ctx.FullPath(),
		"error", err,
	)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// badRequest writes a 400 response with the given message and code.
func badRequest(ctx *gin.Context, message, code string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// currentUserID returns the authenticated user or writes a 401 response.
func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	owner, ok := middleware.OwnerFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return owner.ID, true
}

// uuidParam parses a UUID path parameter or writes a 400 response.
func uuidParam(ctx *gin.Context, name, code string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		badRequest(ctx, "Invalid "+name, code)
		return uuid.Nil, false
	}
	return id, true
}

// parseDate parses a YYYY-MM-DD date in UTC.
func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation(dto.DateLayout, value, time.UTC)
}

// parseOptionalDate parses a date pointer, returning nil when absent.
func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	date, err := parseDate(*value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// parseOptionalUUID parses a UUID pointer, returning nil when absent.
func parseOptionalUUID(value *string) (*uuid.UUID, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
