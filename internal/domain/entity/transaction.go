package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// Field length limits for ledger entries.
const (
	MaxTransactionDescriptionLength = 255
	MaxTransactionNotesLength       = 1000
)

// TransactionType represents the type of a ledger entry.
type TransactionType string

const (
	TransactionTypeExpense  TransactionType = "expense"
	TransactionTypeIncome   TransactionType = "income"
	TransactionTypeTransfer TransactionType = "transfer"
)

// IsValid reports whether the type is income, expense or transfer.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeExpense, TransactionTypeIncome, TransactionTypeTransfer:
		return true
	}
	return false
}

// TransactionStatus represents the lifecycle state of a ledger entry.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// IsValid reports whether the status is pending, completed or cancelled.
func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusCompleted, TransactionStatusCancelled:
		return true
	}
	return false
}

// PaymentMethod represents how a ledger entry was paid.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodMobileMoney  PaymentMethod = "mobile_money"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodOther        PaymentMethod = "other"
)

// IsValid reports whether the payment method is supported.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer,
		PaymentMethodMobileMoney, PaymentMethodCheck, PaymentMethodOther:
		return true
	}
	return false
}

// Transaction represents a ledger entry moving money into, out of, or between accounts.
type Transaction struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	AccountID            uuid.UUID
	DestinationAccountID *uuid.UUID // Set for transfers only
	CategoryID           *uuid.UUID // Required for income and expense
	Type                 TransactionType
	Amount               decimal.Decimal // Always positive, the type carries the sign
	Description          string
	Date                 time.Time
	PaymentMethod        PaymentMethod
	Currency             string
	Status               TransactionStatus
	Tags                 []string
	Notes                string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time // Soft-delete support
}

// NewTransaction creates a new completed Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	accountID uuid.UUID,
	transactionType TransactionType,
	amount decimal.Decimal,
	description string,
	date time.Time,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		AccountID:     accountID,
		Type:          transactionType,
		Amount:        amount,
		Description:   description,
		Date:          date,
		PaymentMethod: PaymentMethodOther,
		Currency:      DefaultCurrency,
		Status:        TransactionStatusCompleted,
		Tags:          []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate checks the rules an entry must satisfy before it is persisted.
func (t *Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if !t.Type.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be 'income', 'expense' or 'transfer'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if !t.Status.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionStatus,
			"status must be 'pending', 'completed' or 'cancelled'",
			domainerror.ErrInvalidTransactionStatus,
		)
	}

	if !t.PaymentMethod.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidPaymentMethod,
			"payment method is not supported",
			domainerror.ErrInvalidPaymentMethod,
		)
	}

	if t.Date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	if len(t.Description) > MaxTransactionDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			"description must be at most 255 characters",
			domainerror.ErrDescriptionTooLong,
		)
	}

	if len(t.Notes) > MaxTransactionNotesLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNotesTooLong,
			"notes must be at most 1000 characters",
			domainerror.ErrNotesTooLong,
		)
	}

	if t.IsTransfer() {
		if t.DestinationAccountID == nil {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransfer,
				"transfer requires a destination account",
				domainerror.ErrMissingTransferDestination,
			)
		}
		if *t.DestinationAccountID == t.AccountID {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidTransfer,
				"transfer destination must differ from the source account",
				domainerror.ErrTransferToSameAccount,
			)
		}
		return nil
	}

	if t.DestinationAccountID != nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransfer,
			"only transfers can have a destination account",
			domainerror.ErrUnexpectedDestination,
		)
	}

	if t.CategoryID == nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryRequired,
			"category is required for income and expense",
			domainerror.ErrCategoryRequired,
		)
	}

	return nil
}

// IsTransfer reports whether the entry moves money between two accounts.
func (t *Transaction) IsTransfer() bool {
	return t.Type == TransactionTypeTransfer
}

// AffectsBalances reports whether the entry currently contributes to account balances.
func (t *Transaction) AffectsBalances() bool {
	return t.Status == TransactionStatusCompleted
}

// Clone returns a deep copy of the entry.
func (t *Transaction) Clone() *Transaction {
	clone := *t
	if t.DestinationAccountID != nil {
		dest := *t.DestinationAccountID
		clone.DestinationAccountID = &dest
	}
	if t.CategoryID != nil {
		category := *t.CategoryID
		clone.CategoryID = &category
	}
	if t.DeletedAt != nil {
		deletedAt := *t.DeletedAt
		clone.DeletedAt = &deletedAt
	}
	clone.Tags = append([]string{}, t.Tags...)
	return &clone
}

// BalanceEffect is a signed change to apply to one account balance.
type BalanceEffect struct {
	AccountID uuid.UUID
	Delta     decimal.Decimal
}

// BalanceEffects returns the balance changes implied by the entry.
// Pending and cancelled entries have no effect.
func (t *Transaction) BalanceEffects() []BalanceEffect {
	if !t.AffectsBalances() {
		return nil
	}

	switch t.Type {
	case TransactionTypeIncome:
		return []BalanceEffect{{AccountID: t.AccountID, Delta: t.Amount}}
	case TransactionTypeExpense:
		return []BalanceEffect{{AccountID: t.AccountID, Delta: t.Amount.Neg()}}
	case TransactionTypeTransfer:
		if t.DestinationAccountID == nil {
			return nil
		}
		return []BalanceEffect{
			{AccountID: t.AccountID, Delta: t.Amount.Neg()},
			{AccountID: *t.DestinationAccountID, Delta: t.Amount},
		}
	}
	return nil
}

// ReverseEffects negates every effect, undoing them when applied.
func ReverseEffects(effects []BalanceEffect) []BalanceEffect {
	reversed := make([]BalanceEffect, len(effects))
	for i, effect := range effects {
		reversed[i] = BalanceEffect{AccountID: effect.AccountID, Delta: effect.Delta.Neg()}
	}
	return reversed
}

// NetEffects folds effects into one delta per account, keeping first-seen order and
// dropping accounts whose changes cancel out.
func NetEffects(effects ...[]BalanceEffect) []BalanceEffect {
	order := make([]uuid.UUID, 0)
	totals := make(map[uuid.UUID]decimal.Decimal)
	for _, group := range effects {
		for _, effect := range group {
			current, seen := totals[effect.AccountID]
			if !seen {
				order = append(order, effect.AccountID)
				current = decimal.Zero
			}
			totals[effect.AccountID] = current.Add(effect.Delta)
		}
	}

	net := make([]BalanceEffect, 0, len(order))
	for _, accountID := range order {
		if totals[accountID].IsZero() {
			continue
		}
		net = append(net, BalanceEffect{AccountID: accountID, Delta: totals[accountID]})
	}
	return net
}

// TransactionWithDetails represents a ledger entry with its display references.
type TransactionWithDetails struct {
	Transaction        *Transaction
	Category           *Category
	Account            *Account
	DestinationAccount *Account
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*TransactionWithDetails
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionTotals represents aggregated totals of completed entries.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
}

// CategorySpend is the completed expense total of one category over a period.
type CategorySpend struct {
	CategoryID       *uuid.UUID
	Amount           decimal.Decimal
	TransactionCount int
}
