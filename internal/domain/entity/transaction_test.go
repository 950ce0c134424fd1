package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

func newEntry(t TransactionType, amount int64) *Transaction {
	categoryID := uuid.New()
	entry := NewTransaction(uuid.New(), uuid.New(), t, decimal.NewFromInt(amount), "entry", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	if t != TransactionTypeTransfer {
		entry.CategoryID = &categoryID
	}
	return entry
}

func TestTransaction_Validate(t *testing.T) {
	t.Run("defaults to completed", func(t *testing.T) {
		entry := newEntry(TransactionTypeExpense, 100)
		if entry.Status != TransactionStatusCompleted {
			t.Errorf("expected completed, got %s", entry.Status)
		}
		if err := entry.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	tests := []struct {
		name     string
		mutate   func(*Transaction)
		expected error
	}{
		{"zero amount", func(e *Transaction) { e.Amount = decimal.Zero }, domainerror.ErrInvalidAmount},
		{"negative amount", func(e *Transaction) { e.Amount = decimal.NewFromInt(-5) }, domainerror.ErrInvalidAmount},
		{"transfer without destination", func(e *Transaction) {
			e.Type = TransactionTypeTransfer
			e.CategoryID = nil
		}, domainerror.ErrInvalidTransfer},
		{"transfer to itself", func(e *Transaction) {
			e.Type = TransactionTypeTransfer
			e.DestinationAccountID = &e.AccountID
		}, domainerror.ErrInvalidTransfer},
		{"expense with destination", func(e *Transaction) {
			dest := uuid.New()
			e.DestinationAccountID = &dest
		}, domainerror.ErrInvalidTransfer},
		{"expense without category", func(e *Transaction) { e.CategoryID = nil }, domainerror.ErrValidation},
		{"unknown type", func(e *Transaction) { e.Type = "refund" }, domainerror.ErrValidation},
		{"unknown status", func(e *Transaction) { e.Status = "draft" }, domainerror.ErrValidation},
		{"unknown payment method", func(e *Transaction) { e.PaymentMethod = "barter" }, domainerror.ErrValidation},
		{"missing date", func(e *Transaction) { e.Date = time.Time{} }, domainerror.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := newEntry(TransactionTypeExpense, 100)
			tt.mutate(entry)

			err := entry.Validate()
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}

			var txnErr *domainerror.TransactionError
			if !errors.As(err, &txnErr) {
				t.Errorf("expected a TransactionError, got %T", err)
			}
		})
	}
}

func TestTransaction_BalanceEffects(t *testing.T) {
	t.Run("income credits the account", func(t *testing.T) {
		entry := newEntry(TransactionTypeIncome, 250)
		effects := entry.BalanceEffects()
		if len(effects) != 1 || !effects[0].Delta.Equal(decimal.NewFromInt(250)) {
			t.Errorf("unexpected effects %+v", effects)
		}
	})

	t.Run("expense debits the account", func(t *testing.T) {
		entry := newEntry(TransactionTypeExpense, 250)
		effects := entry.BalanceEffects()
		if len(effects) != 1 || !effects[0].Delta.Equal(decimal.NewFromInt(-250)) {
			t.Errorf("unexpected effects %+v", effects)
		}
	})

	t.Run("transfer debits source and credits destination", func(t *testing.T) {
		entry := newEntry(TransactionTypeTransfer, 40)
		dest := uuid.New()
		entry.DestinationAccountID = &dest

		effects := entry.BalanceEffects()
		if len(effects) != 2 {
			t.Fatalf("expected 2 effects, got %d", len(effects))
		}
		if effects[0].AccountID != entry.AccountID || !effects[0].Delta.Equal(decimal.NewFromInt(-40)) {
			t.Errorf("unexpected source effect %+v", effects[0])
		}
		if effects[1].AccountID != dest || !effects[1].Delta.Equal(decimal.NewFromInt(40)) {
			t.Errorf("unexpected destination effect %+v", effects[1])
		}
	})

	t.Run("pending and cancelled entries have no effect", func(t *testing.T) {
		for _, status := range []TransactionStatus{TransactionStatusPending, TransactionStatusCancelled} {
			entry := newEntry(TransactionTypeExpense, 10)
			entry.Status = status
			if effects := entry.BalanceEffects(); len(effects) != 0 {
				t.Errorf("expected no effects for %s, got %+v", status, effects)
			}
		}
	})
}

func TestNetEffects(t *testing.T) {
	accountA := uuid.New()
	accountB := uuid.New()

	before := []BalanceEffect{{AccountID: accountA, Delta: decimal.NewFromInt(-15000)}}
	after := []BalanceEffect{{AccountID: accountA, Delta: decimal.NewFromInt(-20000)}}

	t.Run("reverse then apply nets to the difference", func(t *testing.T) {
		net := NetEffects(ReverseEffects(before), after)
		if len(net) != 1 || !net[0].Delta.Equal(decimal.NewFromInt(-5000)) {
			t.Errorf("expected single -5000 effect, got %+v", net)
		}
	})

	t.Run("cancelling effects are dropped", func(t *testing.T) {
		net := NetEffects(ReverseEffects(before), before)
		if len(net) != 0 {
			t.Errorf("expected no effects, got %+v", net)
		}
	})

	t.Run("moving an entry between accounts keeps both", func(t *testing.T) {
		moved := []BalanceEffect{{AccountID: accountB, Delta: decimal.NewFromInt(-15000)}}
		net := NetEffects(ReverseEffects(before), moved)
		if len(net) != 2 {
			t.Fatalf("expected 2 effects, got %+v", net)
		}
		if net[0].AccountID != accountA || !net[0].Delta.Equal(decimal.NewFromInt(15000)) {
			t.Errorf("unexpected first effect %+v", net[0])
		}
		if net[1].AccountID != accountB || !net[1].Delta.Equal(decimal.NewFromInt(-15000)) {
			t.Errorf("unexpected second effect %+v", net[1])
		}
	})
}
