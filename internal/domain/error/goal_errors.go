package error

import "fmt"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal does not exist or belongs to another user.
	ErrGoalNotFound = fmt.Errorf("goal %w", ErrNotFound)

	// ErrInvalidGoalTarget is returned when the goal target amount is zero or negative.
	ErrInvalidGoalTarget = fmt.Errorf("goal target amount: %w", ErrInvalidAmount)

	// ErrInvalidContributionAmount is returned when a contribution amount is zero or negative.
	ErrInvalidContributionAmount = fmt.Errorf("contribution amount: %w", ErrInvalidAmount)

	// ErrInvalidMilestoneAmount is returned when a milestone threshold is zero or negative.
	ErrInvalidMilestoneAmount = fmt.Errorf("milestone amount: %w", ErrInvalidAmount)

	// ErrInvalidAutoSaveAmount is returned when an enabled auto-save rule has no positive amount.
	ErrInvalidAutoSaveAmount = fmt.Errorf("auto-save amount: %w", ErrInvalidAmount)

	// ErrInvalidAutoSaveFrequency is returned when the auto-save frequency is unknown.
	ErrInvalidAutoSaveFrequency = fmt.Errorf("auto-save frequency: %w", ErrValidation)

	// ErrGoalTargetDateInPast is returned when the target date is not in the future.
	ErrGoalTargetDateInPast = fmt.Errorf("goal target date must be in the future: %w", ErrInvariantViolation)

	// ErrInvalidGoalPriority is returned when the priority is not low, medium or high.
	ErrInvalidGoalPriority = fmt.Errorf("goal priority: %w", ErrValidation)

	// ErrInvalidGoalStatus is returned when the status value is unknown.
	ErrInvalidGoalStatus = fmt.Errorf("goal status: %w", ErrValidation)

	// ErrInvalidContributionSource is returned when the contribution source is unknown.
	ErrInvalidContributionSource = fmt.Errorf("contribution source: %w", ErrValidation)

	// ErrInvalidGoalStatusTransition is returned when a status change is not allowed.
	ErrInvalidGoalStatusTransition = fmt.Errorf("goal status transition not allowed: %w", ErrInvariantViolation)

	// ErrGoalNotAcceptingContributions is returned when a goal that is not active receives a contribution.
	ErrGoalNotAcceptingContributions = fmt.Errorf("goal is not accepting contributions: %w", ErrInvariantViolation)

	// ErrGoalConcurrentUpdate is returned when the goal version changed under a write.
	ErrGoalConcurrentUpdate = fmt.Errorf("goal was modified concurrently: %w", ErrConcurrentModification)
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeGoalNotFound              GoalErrorCode = "GOL-010001"
	ErrCodeInvalidGoalTarget         GoalErrorCode = "GOL-010002"
	ErrCodeInvalidContribution       GoalErrorCode = "GOL-010003"
	ErrCodeInvalidMilestone          GoalErrorCode = "GOL-010004"
	ErrCodeInvalidAutoSave           GoalErrorCode = "GOL-010005"
	ErrCodeGoalTargetDateInPast      GoalErrorCode = "GOL-010006"
	ErrCodeInvalidGoalPriority       GoalErrorCode = "GOL-010007"
	ErrCodeMissingGoalFields         GoalErrorCode = "GOL-010008"
	ErrCodeInvalidGoalStatus         GoalErrorCode = "GOL-010009"
	ErrCodeInvalidContributionSource GoalErrorCode = "GOL-010010"

	// Lifecycle errors (02XXXX)
	ErrCodeInvalidStatusTransition GoalErrorCode = "GOL-020001"
	ErrCodeGoalNotAccepting        GoalErrorCode = "GOL-020002"
	ErrCodeGoalConcurrentUpdate    GoalErrorCode = "GOL-020003"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the stable error code.
func (e *GoalError) ErrorCode() string {
	return string(e.Code)
}

// PublicMessage returns the message safe to show to API clients.
func (e *GoalError) PublicMessage() string {
	return e.Message
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
