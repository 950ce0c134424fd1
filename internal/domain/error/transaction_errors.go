package error

import "fmt"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction does not exist or belongs to another user.
	ErrTransactionNotFound = fmt.Errorf("transaction %w", ErrNotFound)

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = fmt.Errorf("transaction type: %w", ErrValidation)

	// ErrInvalidTransactionStatus is returned when the transaction status is invalid.
	ErrInvalidTransactionStatus = fmt.Errorf("transaction status: %w", ErrValidation)

	// ErrInvalidPaymentMethod is returned when the payment method is invalid.
	ErrInvalidPaymentMethod = fmt.Errorf("payment method: %w", ErrValidation)

	// ErrInvalidTransactionDate is returned when the transaction date is missing.
	ErrInvalidTransactionDate = fmt.Errorf("transaction date: %w", ErrValidation)

	// ErrInvalidTransactionAmount is returned when the transaction amount is zero or negative.
	ErrInvalidTransactionAmount = fmt.Errorf("transaction amount: %w", ErrInvalidAmount)

	// ErrMissingTransferDestination is returned when a transfer has no destination account.
	ErrMissingTransferDestination = fmt.Errorf("missing destination account: %w", ErrInvalidTransfer)

	// ErrTransferToSameAccount is returned when a transfer destination equals its source.
	ErrTransferToSameAccount = fmt.Errorf("destination equals source: %w", ErrInvalidTransfer)

	// ErrUnexpectedDestination is returned when a non-transfer entry names a destination account.
	ErrUnexpectedDestination = fmt.Errorf("only transfers have a destination account: %w", ErrInvalidTransfer)

	// ErrCategoryRequired is returned when an income or expense entry has no category.
	ErrCategoryRequired = fmt.Errorf("category is required: %w", ErrValidation)

	// ErrCategoryNotFoundForTransaction is returned when the specified category is not visible to the user.
	ErrCategoryNotFoundForTransaction = fmt.Errorf("transaction category %w", ErrNotFound)

	// ErrCategoryTypeMismatch is returned when the category kind differs from the entry type.
	ErrCategoryTypeMismatch = fmt.Errorf("category type does not match transaction type: %w", ErrInvariantViolation)

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = fmt.Errorf("description too long: %w", ErrValidation)

	// ErrNotesTooLong is returned when the transaction notes exceed the maximum length.
	ErrNotesTooLong = fmt.Errorf("notes too long: %w", ErrValidation)
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010004"
	ErrCodeInvalidTransactionStatus TransactionErrorCode = "TXN-010005"
	ErrCodeTxnCategoryNotFound      TransactionErrorCode = "TXN-010006"
	ErrCodeTxnCategoryRequired      TransactionErrorCode = "TXN-010007"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010008"
	ErrCodeNotesTooLong             TransactionErrorCode = "TXN-010009"
	ErrCodeInvalidPaymentMethod     TransactionErrorCode = "TXN-010010"

	// Transfer and consistency errors (02XXXX)
	ErrCodeInvalidTransfer         TransactionErrorCode = "TXN-020001"
	ErrCodeCategoryTypeMismatch    TransactionErrorCode = "TXN-020002"
	ErrCodeTxnAccountNotFound      TransactionErrorCode = "TXN-020003"
	ErrCodeTxnAccountInactive      TransactionErrorCode = "TXN-020004"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the stable error code.
func (e *TransactionError) ErrorCode() string {
	return string(e.Code)
}

// PublicMessage returns the message safe to show to API clients.
func (e *TransactionError) PublicMessage() string {
	return e.Message
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
