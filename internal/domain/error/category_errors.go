package error

import "fmt"

// Category domain errors.
var (
	// ErrCategoryNotFound is returned when a category does not exist or is not visible to the user.
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)

	// ErrCategoryNameExists is returned when the (name, type, owner) combination is already taken.
	ErrCategoryNameExists = fmt.Errorf("category name already exists: %w", ErrDuplicateResource)

	// ErrCategoryNameTooLong is returned when the category name exceeds the maximum length.
	ErrCategoryNameTooLong = fmt.Errorf("category name too long: %w", ErrValidation)

	// ErrInvalidColorFormat is returned when the category color is not a #RRGGBB value.
	ErrInvalidColorFormat = fmt.Errorf("invalid color format: %w", ErrValidation)

	// ErrInvalidCategoryType is returned when the category type is invalid.
	ErrInvalidCategoryType = fmt.Errorf("category type: %w", ErrValidation)

	// ErrDefaultCategoryReadOnly is returned when a default category is modified or deleted.
	ErrDefaultCategoryReadOnly = fmt.Errorf("default categories are read-only: %w", ErrInvariantViolation)

	// ErrCategoryInUse is returned when a category referenced by ledger entries or budgets is deleted.
	ErrCategoryInUse = fmt.Errorf("category is referenced by transactions or budgets: %w", ErrInvariantViolation)
)

// CategoryErrorCode defines error codes for category errors.
// Format: CAT-XXYYYY where XX is category and YYYY is specific error.
type CategoryErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryNameTooLong   CategoryErrorCode = "CAT-010001"
	ErrCodeInvalidColorFormat    CategoryErrorCode = "CAT-010002"
	ErrCodeCategoryNotFound      CategoryErrorCode = "CAT-010004"
	ErrCodeCategoryNameExists    CategoryErrorCode = "CAT-010005"
	ErrCodeInvalidCategoryType   CategoryErrorCode = "CAT-010007"
	ErrCodeMissingCategoryFields CategoryErrorCode = "CAT-010008"

	// Lifecycle errors (02XXXX)
	ErrCodeDefaultCategoryReadOnly CategoryErrorCode = "CAT-020001"
	ErrCodeCategoryInUse           CategoryErrorCode = "CAT-020002"
)

// CategoryError represents a category error with code and message.
type CategoryError struct {
	Code    CategoryErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategoryError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategoryError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the stable error code.
func (e *CategoryError) ErrorCode() string {
	return string(e.Code)
}

// PublicMessage returns the message safe to show to API clients.
func (e *CategoryError) PublicMessage() string {
	return e.Message
}

// NewCategoryError creates a new CategoryError with the given code and message.
func NewCategoryError(code CategoryErrorCode, message string, err error) *CategoryError {
	return &CategoryError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
