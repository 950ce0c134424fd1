package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestNewAccount_NormalizesCreditBalance(t *testing.T) {
	tests := []struct {
		name     string
		kind     AccountKind
		balance  int64
		expected int64
	}{
		{"credit negative becomes absolute", AccountKindCredit, -500, 500},
		{"credit positive unchanged", AccountKindCredit, 500, 500},
		{"checking kept as given", AccountKindChecking, 1000, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := NewAccount(uuid.New(), "acc", "", tt.kind, decimal.NewFromInt(tt.balance), DefaultCurrency)
			if !account.Balance.Equal(decimal.NewFromInt(tt.expected)) {
				t.Errorf("expected %d, got %s", tt.expected, account.Balance)
			}
			if !account.IsActive {
				t.Error("expected new account to be active")
			}
		})
	}
}

func TestDefaultAccounts(t *testing.T) {
	userID := uuid.New()
	accounts := DefaultAccounts(userID, "EUR")

	if len(accounts) != 2 {
		t.Fatalf("expected 2 default accounts, got %d", len(accounts))
	}
	if accounts[0].Kind != AccountKindChecking || accounts[1].Kind != AccountKindSavings {
		t.Errorf("unexpected kinds %s, %s", accounts[0].Kind, accounts[1].Kind)
	}
	for _, account := range accounts {
		if account.UserID != userID || !account.Balance.IsZero() || account.Currency != "EUR" {
			t.Errorf("unexpected default account %+v", account)
		}
	}
}

func TestSummarizeAccounts(t *testing.T) {
	userID := uuid.New()
	checking := NewAccount(userID, "main", "", AccountKindChecking, decimal.NewFromInt(1000), DefaultCurrency)
	savings := NewAccount(userID, "savings", "", AccountKindSavings, decimal.NewFromInt(500), DefaultCurrency)
	credit := NewAccount(userID, "card", "", AccountKindCredit, decimal.NewFromInt(300), DefaultCurrency)
	closed := NewAccount(userID, "old", "", AccountKindChecking, decimal.NewFromInt(9999), DefaultCurrency)
	closed.IsActive = false

	totals := SummarizeAccounts([]*Account{checking, savings, credit, closed})

	if !totals.Assets.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected assets 1500, got %s", totals.Assets)
	}
	if !totals.Liabilities.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected liabilities 300, got %s", totals.Liabilities)
	}
	if !totals.NetWorth.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("expected net worth 1200, got %s", totals.NetWorth)
	}
}
