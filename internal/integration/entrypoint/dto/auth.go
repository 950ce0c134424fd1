// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Name          string `json:"name" binding:"required,min=1,max=100"`
	Password      string `json:"password" binding:"required,min=8"`
	TermsAccepted bool   `json:"terms_accepted" binding:"required"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the request body for user logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
	AllSessions  bool   `json:"all_sessions"`
}

// LogoutResponse reports whether a live session was closed.
type LogoutResponse struct {
	Message string `json:"message"`
	Revoked bool   `json:"revoked"`
}

// UpdatePreferencesRequest represents the request body for profile updates.
type UpdatePreferencesRequest struct {
	Name               *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	EmailNotifications *bool   `json:"email_notifications,omitempty"`
	BudgetAlerts       *bool   `json:"budget_alerts,omitempty"`
	GoalAlerts         *bool   `json:"goal_alerts,omitempty"`
}

// AuthResponse represents the response for authentication endpoints.
type AuthResponse struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	User         UserResponse      `json:"user"`
	Accounts     []AccountResponse `json:"accounts,omitempty"`
}

// TokenResponse represents the response for token refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserResponse represents the user data in API responses.
type UserResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Currency           string    `json:"currency"`
	EmailNotifications bool      `json:"email_notifications"`
	BudgetAlerts       bool      `json:"budget_alerts"`
	GoalAlerts         bool      `json:"goal_alerts"`
	CreatedAt          time.Time `json:"created_at"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:                 user.ID.String(),
		Email:              user.Email,
		Name:               user.Name,
		Currency:           user.Currency,
		EmailNotifications: user.EmailNotifications,
		BudgetAlerts:       user.BudgetAlerts,
		GoalAlerts:         user.GoalAlerts,
		CreatedAt:          user.CreatedAt,
	}
}

// ToAuthResponse builds an AuthResponse, including the accounts created at registration.
func ToAuthResponse(accessToken, refreshToken string, user *entity.User, accounts []*entity.Account) AuthResponse {
	response := AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         ToUserResponse(user),
	}
	for _, account := range accounts {
		response.Accounts = append(response.Accounts, AccountResponse{
			ID:          account.ID.String(),
			Name:        account.Name,
			Institution: account.Institution,
			Kind:        string(account.Kind),
			Balance:     account.Balance.String(),
			Currency:    account.Currency,
			IsActive:    account.IsActive,
			CreatedAt:   account.CreatedAt,
			UpdatedAt:   account.UpdatedAt,
		})
	}
	return response
}
