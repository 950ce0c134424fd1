package error

import "fmt"

// Account domain errors.
var (
	// ErrAccountNotFound is returned when an account does not exist or belongs to another user.
	ErrAccountNotFound = fmt.Errorf("account %w", ErrNotFound)

	// ErrInvalidAccountKind is returned when the account kind is not one of the supported kinds.
	ErrInvalidAccountKind = fmt.Errorf("account kind: %w", ErrValidation)

	// ErrInvalidInitialBalance is returned when a non-credit account is opened with a negative balance.
	ErrInvalidInitialBalance = fmt.Errorf("initial balance: %w", ErrInvalidAmount)

	// ErrAccountInsufficientFunds is returned when a debit would take a non-credit account below zero.
	ErrAccountInsufficientFunds = fmt.Errorf("account: %w", ErrInsufficientFunds)

	// ErrAccountInactive is returned when an entry targets a deactivated account.
	ErrAccountInactive = fmt.Errorf("account is inactive: %w", ErrInvariantViolation)

	// ErrAccountNameRequired is returned when the account name is blank.
	ErrAccountNameRequired = fmt.Errorf("account name is required: %w", ErrValidation)

	// ErrInvalidCurrency is returned when the currency is not a three-letter code.
	ErrInvalidCurrency = fmt.Errorf("currency must be a 3-letter code: %w", ErrValidation)
)

// AccountErrorCode defines error codes for account errors.
// Format: ACC-XXYYYY where XX is category and YYYY is specific error.
type AccountErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeAccountNotFound       AccountErrorCode = "ACC-010001"
	ErrCodeInvalidAccountKind    AccountErrorCode = "ACC-010002"
	ErrCodeInvalidInitialBalance AccountErrorCode = "ACC-010003"
	ErrCodeAccountNameRequired   AccountErrorCode = "ACC-010004"
	ErrCodeInvalidCurrency       AccountErrorCode = "ACC-010005"

	// Balance errors (02XXXX)
	ErrCodeInsufficientFunds AccountErrorCode = "ACC-020001"
	ErrCodeAccountInactive   AccountErrorCode = "ACC-020002"
)

// AccountError represents an account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the stable error code.
func (e *AccountError) ErrorCode() string {
	return string(e.Code)
}

// PublicMessage returns the message safe to show to API clients.
func (e *AccountError) PublicMessage() string {
	return e.Message
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
