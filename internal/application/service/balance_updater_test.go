package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter/adaptertest"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

func amount(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func seedAccount(store *adaptertest.Store, userID uuid.UUID, kind entity.AccountKind, balance int64) *entity.Account {
	account := entity.NewAccount(userID, string(kind), "", kind, amount(balance), entity.DefaultCurrency)
	store.SeedAccount(account)
	return account
}

func expense(userID, accountID uuid.UUID, value int64) *entity.Transaction {
	categoryID := uuid.New()
	txn := entity.NewTransaction(userID, accountID, entity.TransactionTypeExpense, amount(value), "groceries", time.Now())
	txn.CategoryID = &categoryID
	return txn
}

func TestBalanceUpdater_EditAndDeleteScenario(t *testing.T) {
	ctx := context.Background()
	store := adaptertest.NewStore()
	updater := NewBalanceUpdater(store.Accounts())
	userID := uuid.New()
	checking := seedAccount(store, userID, entity.AccountKindChecking, 100000)

	entry := expense(userID, checking.ID, 15000)
	if err := updater.ApplyCreated(ctx, entry); err != nil {
		t.Fatalf("create: unexpected error: %v", err)
	}
	if got := store.Balance(checking.ID); !got.Equal(amount(85000)) {
		t.Fatalf("expected 85000 after create, got %s", got)
	}

	edited := entry.Clone()
	edited.Amount = amount(20000)
	if err := updater.ApplyUpdated(ctx, entry, edited); err != nil {
		t.Fatalf("update: unexpected error: %v", err)
	}
	if got := store.Balance(checking.ID); !got.Equal(amount(80000)) {
		t.Fatalf("expected 80000 after edit, got %s", got)
	}

	if err := updater.ApplyDeleted(ctx, edited); err != nil {
		t.Fatalf("delete: unexpected error: %v", err)
	}
	if got := store.Balance(checking.ID); !got.Equal(amount(100000)) {
		t.Fatalf("expected 100000 after delete, got %s", got)
	}
}

func TestBalanceUpdater_Transfer(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("moves money between accounts", func(t *testing.T) {
		store := adaptertest.NewStore()
		updater := NewBalanceUpdater(store.Accounts())
		source := seedAccount(store, userID, entity.AccountKindChecking, 500)
		dest := seedAccount(store, userID, entity.AccountKindSavings, 0)

		transfer := entity.NewTransaction(userID, source.ID, entity.TransactionTypeTransfer, amount(200), "save", time.Now())
		transfer.DestinationAccountID = &dest.ID

		if err := updater.ApplyCreated(ctx, transfer); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !store.Balance(source.ID).Equal(amount(300)) || !store.Balance(dest.ID).Equal(amount(200)) {
			t.Errorf("unexpected balances %s / %s", store.Balance(source.ID), store.Balance(dest.ID))
		}
	})

	t.Run("insufficient funds leaves both balances unchanged", func(t *testing.T) {
		store := adaptertest.NewStore()
		updater := NewBalanceUpdater(store.Accounts())
		transactor := store.Transactor()
		source := seedAccount(store, userID, entity.AccountKindChecking, 100)
		dest := seedAccount(store, userID, entity.AccountKindSavings, 0)

		transfer := entity.NewTransaction(userID, source.ID, entity.TransactionTypeTransfer, amount(200), "save", time.Now())
		transfer.DestinationAccountID = &dest.ID

		err := transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			return updater.ApplyCreated(ctx, transfer)
		})
		if !errors.Is(err, domainerror.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
		if !store.Balance(source.ID).Equal(amount(100)) || !store.Balance(dest.ID).IsZero() {
			t.Errorf("balances changed: %s / %s", store.Balance(source.ID), store.Balance(dest.ID))
		}
	})
}

func TestBalanceUpdater_Guards(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("checking cannot go negative", func(t *testing.T) {
		store := adaptertest.NewStore()
		updater := NewBalanceUpdater(store.Accounts())
		checking := seedAccount(store, userID, entity.AccountKindChecking, 50)

		err := updater.ApplyCreated(ctx, expense(userID, checking.ID, 51))
		var accErr *domainerror.AccountError
		if !errors.As(err, &accErr) || accErr.Code != domainerror.ErrCodeInsufficientFunds {
			t.Fatalf("expected insufficient funds account error, got %v", err)
		}
		if !store.Balance(checking.ID).Equal(amount(50)) {
			t.Errorf("expected balance unchanged, got %s", store.Balance(checking.ID))
		}
	})

	t.Run("credit accounts may go negative", func(t *testing.T) {
		store := adaptertest.NewStore()
		updater := NewBalanceUpdater(store.Accounts())
		credit := seedAccount(store, userID, entity.AccountKindCredit, 0)

		if err := updater.ApplyCreated(ctx, expense(userID, credit.ID, 75)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !store.Balance(credit.ID).Equal(amount(-75)) {
			t.Errorf("expected -75, got %s", store.Balance(credit.ID))
		}
	})

	t.Run("pending entries do not move balances", func(t *testing.T) {
		store := adaptertest.NewStore()
		updater := NewBalanceUpdater(store.Accounts())
		checking := seedAccount(store, userID, entity.AccountKindChecking, 10)

		pending := expense(userID, checking.ID, 500)
		pending.Status = entity.TransactionStatusPending
		if err := updater.ApplyCreated(ctx, pending); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		completed := pending.Clone()
		completed.Status = entity.TransactionStatusCompleted
		err := updater.ApplyUpdated(ctx, pending, completed)
		if !errors.Is(err, domainerror.ErrInsufficientFunds) {
			t.Fatalf("expected completing the entry to be rejected, got %v", err)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		store := adaptertest.NewStore()
		updater := NewBalanceUpdater(store.Accounts())

		err := updater.ApplyCreated(ctx, expense(userID, uuid.New(), 5))
		if !errors.Is(err, domainerror.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestBalanceUpdater_IncomeEditNetsReversal(t *testing.T) {
	ctx := context.Background()
	store := adaptertest.NewStore()
	updater := NewBalanceUpdater(store.Accounts())
	userID := uuid.New()
	checking := seedAccount(store, userID, entity.AccountKindChecking, 50)

	categoryID := uuid.New()
	income := entity.NewTransaction(userID, checking.ID, entity.TransactionTypeIncome, amount(100), "salary", time.Now())
	income.CategoryID = &categoryID

	edited := income.Clone()
	edited.Amount = amount(90)

	// Reversing 100 alone would take the balance to -50; the net change is only -10.
	if err := updater.ApplyUpdated(ctx, income, edited); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.Balance(checking.ID).Equal(amount(40)) {
		t.Errorf("expected 40, got %s", store.Balance(checking.ID))
	}
}
