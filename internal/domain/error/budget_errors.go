package error

import "fmt"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget does not exist or belongs to another user.
	ErrBudgetNotFound = fmt.Errorf("budget %w", ErrNotFound)

	// ErrInvalidBudgetAmount is returned when the budget target is zero or negative.
	ErrInvalidBudgetAmount = fmt.Errorf("budget amount: %w", ErrInvalidAmount)

	// ErrInvalidBudgetPeriod is returned when the period is not weekly, monthly, quarterly or yearly.
	ErrInvalidBudgetPeriod = fmt.Errorf("budget period: %w", ErrValidation)

	// ErrInvalidBudgetDates is returned when the start date is not before the end date.
	ErrInvalidBudgetDates = fmt.Errorf("budget start date must be before end date: %w", ErrInvariantViolation)

	// ErrInvalidAlertThreshold is returned when the alert threshold is outside 1..100.
	ErrInvalidAlertThreshold = fmt.Errorf("alert threshold must be between 1 and 100: %w", ErrValidation)

	// ErrBudgetOverlap is returned when an active budget already covers the category for the period.
	ErrBudgetOverlap = fmt.Errorf("an active budget already covers this category and period: %w", ErrDuplicateResource)

	// ErrBudgetCategoryNotFound is returned when the budget category is not visible to the user.
	ErrBudgetCategoryNotFound = fmt.Errorf("budget category %w", ErrNotFound)

	// ErrBudgetCategoryNotExpense is returned when a budget targets an income category.
	ErrBudgetCategoryNotExpense = fmt.Errorf("budgets can only track expense categories: %w", ErrInvariantViolation)
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBudgetNotFound           BudgetErrorCode = "BUD-010001"
	ErrCodeInvalidBudgetAmount      BudgetErrorCode = "BUD-010002"
	ErrCodeInvalidBudgetPeriod      BudgetErrorCode = "BUD-010003"
	ErrCodeInvalidBudgetDates       BudgetErrorCode = "BUD-010004"
	ErrCodeInvalidAlertThreshold    BudgetErrorCode = "BUD-010005"
	ErrCodeBudgetCategoryNotFound   BudgetErrorCode = "BUD-010006"
	ErrCodeBudgetCategoryNotExpense BudgetErrorCode = "BUD-010007"
	ErrCodeMissingBudgetFields      BudgetErrorCode = "BUD-010008"

	// Conflict errors (02XXXX)
	ErrCodeBudgetOverlap BudgetErrorCode = "BUD-020001"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the stable error code.
func (e *BudgetError) ErrorCode() string {
	return string(e.Code)
}

// PublicMessage returns the message safe to show to API clients.
func (e *BudgetError) PublicMessage() string {
	return e.Message
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
