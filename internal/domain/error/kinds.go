// Package error defines domain-specific errors for the budget backend.
package error

import "errors"

// Error kinds. Every coded domain error wraps exactly one of these so callers can
// classify failures with errors.Is regardless of the aggregate that produced them.
var (
	// ErrInvalidAmount is returned when a monetary amount is zero, negative or otherwise unusable.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidTransfer is returned when a transfer has no destination or targets its own source.
	ErrInvalidTransfer = errors.New("invalid transfer")

	// ErrInsufficientFunds is returned when a balance change would make a non-credit account negative.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNotFound is returned when a resource does not exist or is not owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateResource is returned when a uniqueness rule would be broken.
	ErrDuplicateResource = errors.New("duplicate resource")

	// ErrInvariantViolation is returned when an operation would break a domain rule.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrValidation is returned when input is malformed (missing fields, unknown enum values).
	ErrValidation = errors.New("validation failed")

	// ErrConcurrentModification is returned when a row changed between read and write.
	ErrConcurrentModification = errors.New("concurrent modification")

	// ErrUnauthorized is returned when the caller identity cannot be established.
	ErrUnauthorized = errors.New("unauthorized")
)

// CodedError is implemented by every domain error that carries a stable error code.
type CodedError interface {
	error
	ErrorCode() string
	PublicMessage() string
}
