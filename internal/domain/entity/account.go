package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountKind represents the kind of a bank account.
type AccountKind string

const (
	AccountKindChecking   AccountKind = "checking"
	AccountKindSavings    AccountKind = "savings"
	AccountKindCredit     AccountKind = "credit"
	AccountKindInvestment AccountKind = "investment"
)

// IsValid reports whether the kind is one of the supported account kinds.
func (k AccountKind) IsValid() bool {
	switch k {
	case AccountKindChecking, AccountKindSavings, AccountKindCredit, AccountKindInvestment:
		return true
	}
	return false
}

// DefaultCurrency is used when an account or entry does not specify one.
const DefaultCurrency = "XOF"

// Account represents a bank account owned by a user.
type Account struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Institution string
	Kind        AccountKind
	Balance     decimal.Decimal
	Currency    string
	IsActive    bool
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewAccount creates a new active Account.
// The opening balance of a credit account is stored as its absolute value.
func NewAccount(userID uuid.UUID, name, institution string, kind AccountKind, balance decimal.Decimal, currency string) *Account {
	now := time.Now().UTC()

	if kind == AccountKindCredit {
		balance = balance.Abs()
	}

	return &Account{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Institution: institution,
		Kind:        kind,
		Balance:     balance,
		Currency:    currency,
		IsActive:    true,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AllowsNegativeBalance reports whether the account balance may drop below zero.
func (a *Account) AllowsNegativeBalance() bool {
	return a.Kind == AccountKindCredit
}

// IsLiability reports whether the balance counts against net worth.
func (a *Account) IsLiability() bool {
	return a.Kind == AccountKindCredit
}

// DefaultAccounts returns the accounts every newly registered user starts with.
func DefaultAccounts(userID uuid.UUID, currency string) []*Account {
	return []*Account{
		NewAccount(userID, "Main Account", "", AccountKindChecking, decimal.Zero, currency),
		NewAccount(userID, "Savings", "", AccountKindSavings, decimal.Zero, currency),
	}
}

// AccountTotals aggregates balances across a user's active accounts.
type AccountTotals struct {
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
	NetWorth    decimal.Decimal
}

// SummarizeAccounts computes asset, liability and net worth totals for active accounts.
func SummarizeAccounts(accounts []*Account) AccountTotals {
	totals := AccountTotals{
		Assets:      decimal.Zero,
		Liabilities: decimal.Zero,
	}
	for _, account := range accounts {
		if !account.IsActive {
			continue
		}
		if account.IsLiability() {
			totals.Liabilities = totals.Liabilities.Add(account.Balance)
			continue
		}
		totals.Assets = totals.Assets.Add(account.Balance)
	}
	totals.NetWorth = totals.Assets.Sub(totals.Liabilities)
	return totals
}
