// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/integration/entrypoint/dto"
)

const ownerKey = "ledger_owner"

// Owner is the authenticated user every account, entry, budget and goal lookup is scoped to.
type Owner struct {
	ID    uuid.UUID
	Email string
}

// AuthMiddleware resolves the bearer token to the request's Owner.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// Authenticate rejects requests without a valid access token and stores the Owner otherwise.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required", domainerror.ErrCodeMissingToken)
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			abortUnauthorized(c, "Invalid authorization header format", domainerror.ErrCodeInvalidToken)
			return
		}
		token = strings.TrimSpace(token)
		if token == "" {
			abortUnauthorized(c, "Token is required", domainerror.ErrCodeMissingToken)
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil || claims.UserID == uuid.Nil {
			abortUnauthorized(c, "Invalid or expired token", domainerror.ErrCodeInvalidToken)
			return
		}

		SetOwner(c, Owner{ID: claims.UserID, Email: claims.Email})
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string, code domainerror.AuthErrorCode) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: message,
		Code:  string(code),
	})
}

// SetOwner scopes the rest of the request to owner.
func SetOwner(c *gin.Context, owner Owner) {
	c.Set(ownerKey, owner)
}

// OwnerFromContext returns the Owner stored by Authenticate.
func OwnerFromContext(c *gin.Context) (Owner, bool) {
	value, exists := c.Get(ownerKey)
	if !exists {
		return Owner{}, false
	}
	owner, ok := value.(Owner)
	return owner, ok && owner.ID != uuid.Nil
}
