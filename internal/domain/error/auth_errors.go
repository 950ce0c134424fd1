package error

import "fmt"

// Authentication domain errors.
var (
	// ErrUserNotFound is returned when a user is not found in the system.
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

	// ErrEmailAlreadyExists is returned when attempting to register with an existing email.
	ErrEmailAlreadyExists = fmt.Errorf("email already exists: %w", ErrDuplicateResource)

	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)

	// ErrInvalidToken is returned when a token is invalid or malformed.
	ErrInvalidToken = fmt.Errorf("invalid token: %w", ErrUnauthorized)

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = fmt.Errorf("token has expired: %w", ErrUnauthorized)

	// ErrSessionRevoked is returned when a refresh token was rotated or logged out.
	ErrSessionRevoked = fmt.Errorf("session has been revoked: %w", ErrUnauthorized)

	// ErrSessionOwnerGone is returned when a token outlives the user it was issued to.
	ErrSessionOwnerGone = fmt.Errorf("session owner no longer exists: %w", ErrUnauthorized)

	// ErrTermsNotAccepted is returned when user has not accepted the terms of service.
	ErrTermsNotAccepted = fmt.Errorf("terms of service must be accepted: %w", ErrValidation)

	// ErrWeakPassword is returned when the provided password does not meet requirements.
	ErrWeakPassword = fmt.Errorf("password does not meet minimum requirements: %w", ErrValidation)

	// ErrMissingName is returned when the display name is blank.
	ErrMissingName = fmt.Errorf("name is required: %w", ErrValidation)

	// ErrInvalidEmail is returned when the provided email format is invalid.
	ErrInvalidEmail = fmt.Errorf("invalid email format: %w", ErrValidation)
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Registration errors (01XXXX)
	ErrCodeEmailExists      AuthErrorCode = "AUTH-010001"
	ErrCodeTermsNotAccepted AuthErrorCode = "AUTH-010002"
	ErrCodeWeakPassword     AuthErrorCode = "AUTH-010003"
	ErrCodeInvalidEmail     AuthErrorCode = "AUTH-010004"
	ErrCodeMissingFields    AuthErrorCode = "AUTH-010005"

	// Login errors (02XXXX)
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeUserNotFound       AuthErrorCode = "AUTH-020002"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"

	// Token errors (03XXXX)
	ErrCodeInvalidToken     AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken     AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken     AuthErrorCode = "AUTH-030003"
	ErrCodeSessionRevoked   AuthErrorCode = "AUTH-030004"
	ErrCodeSessionOwnerGone AuthErrorCode = "AUTH-030005"
)

// AuthError represents an authentication error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the stable error code.
func (e *AuthError) ErrorCode() string {
	return string(e.Code)
}

// PublicMessage returns the message safe to show to API clients.
func (e *AuthError) PublicMessage() string {
	return e.Message
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
