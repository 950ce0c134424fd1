package error

import "fmt"

// Dashboard domain errors.
var (
	// ErrMissingStartDate is returned when start_date is not provided.
	ErrMissingStartDate = fmt.Errorf("start_date is required: %w", ErrValidation)

	// ErrMissingEndDate is returned when end_date is not provided.
	ErrMissingEndDate = fmt.Errorf("end_date is required: %w", ErrValidation)

	// ErrInvalidDateRange is returned when end_date is before start_date.
	ErrInvalidDateRange = fmt.Errorf("end_date must be after start_date: %w", ErrValidation)
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingStartDate DashboardErrorCode = "DSH-010001"
	ErrCodeMissingEndDate   DashboardErrorCode = "DSH-010002"
	ErrCodeInvalidDateRange DashboardErrorCode = "DSH-010003"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the stable error code.
func (e *DashboardError) ErrorCode() string {
	return string(e.Code)
}

// PublicMessage returns the message safe to show to API clients.
func (e *DashboardError) PublicMessage() string {
	return e.Message
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
