package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/integration/persistence/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(model.All()...)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedAccount(t *testing.T, repo adapter.AccountRepository, userID uuid.UUID, kind entity.AccountKind, balance int64) *entity.Account {
	t.Helper()
	account := entity.NewAccount(userID, string(kind), "Bank", kind, decimal.NewFromInt(balance), entity.DefaultCurrency)
	if err := repo.Create(context.Background(), account); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}
	return account
}

func TestAccountRepository_ApplyBalanceDelta(t *testing.T) {
	db := openTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	checking := seedAccount(t, repo, userID, entity.AccountKindChecking, 1000)
	credit := seedAccount(t, repo, userID, entity.AccountKindCredit, 0)

	t.Run("credits and debits within balance", func(t *testing.T) {
		if err := repo.ApplyBalanceDelta(ctx, checking.ID, decimal.NewFromInt(-400)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.ApplyBalanceDelta(ctx, checking.ID, decimal.NewFromInt(150)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored, err := repo.FindByID(ctx, checking.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !stored.Balance.Equal(decimal.NewFromInt(750)) {
			t.Errorf("expected balance 750, got %s", stored.Balance)
		}
		if stored.Version != checking.Version+2 {
			t.Errorf("expected version %d, got %d", checking.Version+2, stored.Version)
		}
	})

	t.Run("rejects overdraft on non-credit account", func(t *testing.T) {
		err := repo.ApplyBalanceDelta(ctx, checking.ID, decimal.NewFromInt(-751))
		if !errors.Is(err, domainerror.ErrInsufficientFunds) {
			t.Fatalf("expected insufficient funds, got %v", err)
		}

		stored, _ := repo.FindByID(ctx, checking.ID)
		if !stored.Balance.Equal(decimal.NewFromInt(750)) {
			t.Errorf("expected balance unchanged at 750, got %s", stored.Balance)
		}
	})

	t.Run("credit account may go negative", func(t *testing.T) {
		if err := repo.ApplyBalanceDelta(ctx, credit.ID, decimal.NewFromInt(-300)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		stored, _ := repo.FindByID(ctx, credit.ID)
		if !stored.Balance.Equal(decimal.NewFromInt(-300)) {
			t.Errorf("expected balance -300, got %s", stored.Balance)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		err := repo.ApplyBalanceDelta(ctx, uuid.New(), decimal.NewFromInt(10))
		if !errors.Is(err, domainerror.ErrNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
	})
}

func TestTransactor_WithinTransaction(t *testing.T) {
	db := openTestDB(t)
	transactor := NewTransactor(db)
	accounts := NewAccountRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	account := seedAccount(t, accounts, userID, entity.AccountKindChecking, 500)

	t.Run("rolls back every write on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
			if err := accounts.ApplyBalanceDelta(txCtx, account.ID, decimal.NewFromInt(200)); err != nil {
				return err
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}

		stored, _ := accounts.FindByID(ctx, account.ID)
		if !stored.Balance.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected balance 500 after rollback, got %s", stored.Balance)
		}
	})

	t.Run("nested call joins the outer transaction", func(t *testing.T) {
		boom := errors.New("outer failure")
		err := transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
			inner := transactor.WithinTransaction(txCtx, func(innerCtx context.Context) error {
				return accounts.ApplyBalanceDelta(innerCtx, account.ID, decimal.NewFromInt(100))
			})
			if inner != nil {
				return inner
			}
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected outer failure, got %v", err)
		}

		stored, _ := accounts.FindByID(ctx, account.ID)
		if !stored.Balance.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected inner write rolled back, got %s", stored.Balance)
		}
	})

	t.Run("commits on success", func(t *testing.T) {
		err := transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
			return accounts.ApplyBalanceDelta(txCtx, account.ID, decimal.NewFromInt(-50))
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored, _ := accounts.FindByID(ctx, account.ID)
		if !stored.Balance.Equal(decimal.NewFromInt(450)) {
			t.Errorf("expected balance 450, got %s", stored.Balance)
		}
	})
}

func TestTransactionRepository_Aggregates(t *testing.T) {
	db := openTestDB(t)
	accounts := NewAccountRepository(db)
	categories := NewCategoryRepository(db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	account := seedAccount(t, accounts, userID, entity.AccountKindChecking, 0)
	food := entity.NewCategory("Food", "#f00", "utensils", userID, entity.CategoryTypeExpense)
	rent := entity.NewCategory("Rent", "#0f0", "home", userID, entity.CategoryTypeExpense)
	for _, c := range []*entity.Category{food, rent} {
		if err := categories.Create(ctx, c); err != nil {
			t.Fatalf("failed to create category: %v", err)
		}
	}

	day := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	create := func(txType entity.TransactionType, amount int64, categoryID *uuid.UUID, status entity.TransactionStatus, date time.Time) {
		txn := entity.NewTransaction(userID, account.ID, txType, decimal.NewFromInt(amount), "entry", date)
		txn.CategoryID = categoryID
		txn.Status = status
		if err := repo.Create(ctx, txn); err != nil {
			t.Fatalf("failed to create transaction: %v", err)
		}
	}

	create(entity.TransactionTypeIncome, 300000, nil, entity.TransactionStatusCompleted, day)
	create(entity.TransactionTypeExpense, 20000, &food.ID, entity.TransactionStatusCompleted, day)
	create(entity.TransactionTypeExpense, 5000, &food.ID, entity.TransactionStatusCompleted, day.AddDate(0, 0, 5))
	create(entity.TransactionTypeExpense, 100000, &rent.ID, entity.TransactionStatusCompleted, day)
	create(entity.TransactionTypeExpense, 7000, &food.ID, entity.TransactionStatusPending, day)
	create(entity.TransactionTypeExpense, 9000, &food.ID, entity.TransactionStatusCompleted, day.AddDate(0, 1, 0))

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	t.Run("totals ignore pending entries", func(t *testing.T) {
		totals, err := repo.GetTotals(ctx, adapter.TransactionFilter{UserID: userID, StartDate: &start, EndDate: &end})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !totals.IncomeTotal.Equal(decimal.NewFromInt(300000)) {
			t.Errorf("expected income 300000, got %s", totals.IncomeTotal)
		}
		if !totals.ExpenseTotal.Equal(decimal.NewFromInt(125000)) {
			t.Errorf("expected expenses 125000, got %s", totals.ExpenseTotal)
		}
		if !totals.NetTotal.Equal(decimal.NewFromInt(175000)) {
			t.Errorf("expected net 175000, got %s", totals.NetTotal)
		}
	})

	t.Run("category spend over inclusive range", func(t *testing.T) {
		sum, err := repo.SumCompletedExpenses(ctx, adapter.SpendQuery{
			UserID:     userID,
			CategoryID: food.ID,
			StartDate:  start,
			EndDate:    day.AddDate(0, 0, 5),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !sum.Equal(decimal.NewFromInt(25000)) {
			t.Errorf("expected 25000, got %s", sum)
		}
	})

	t.Run("breakdown is ordered by amount", func(t *testing.T) {
		rows, err := repo.SumExpensesByCategory(ctx, adapter.TransactionFilter{UserID: userID, StartDate: &start, EndDate: &end})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		if rows[0].CategoryID == nil || *rows[0].CategoryID != rent.ID {
			t.Errorf("expected rent first, got %v", rows[0].CategoryID)
		}
		if rows[1].TransactionCount != 2 {
			t.Errorf("expected 2 food entries, got %d", rows[1].TransactionCount)
		}
	})
}

func TestTransactionRepository_Update(t *testing.T) {
	db := openTestDB(t)
	accounts := NewAccountRepository(db)
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	account := seedAccount(t, accounts, userID, entity.AccountKindChecking, 0)
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	t.Run("writes a live entry", func(t *testing.T) {
		txn := entity.NewTransaction(userID, account.ID, entity.TransactionTypeExpense, decimal.NewFromInt(1500), "lunch", day)
		if err := repo.Create(ctx, txn); err != nil {
			t.Fatalf("failed to create transaction: %v", err)
		}

		locked, err := repo.FindByIDForUpdate(ctx, txn.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		locked.Amount = decimal.NewFromInt(2500)
		locked.Tags = []string{"work"}
		if err := repo.Update(ctx, locked); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stored, err := repo.FindByID(ctx, txn.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !stored.Amount.Equal(decimal.NewFromInt(2500)) {
			t.Errorf("expected amount 2500, got %s", stored.Amount)
		}
		if len(stored.Tags) != 1 || stored.Tags[0] != "work" {
			t.Errorf("expected tags [work], got %v", stored.Tags)
		}
	})

	t.Run("does not restore a deleted entry", func(t *testing.T) {
		txn := entity.NewTransaction(userID, account.ID, entity.TransactionTypeExpense, decimal.NewFromInt(1500), "dinner", day)
		if err := repo.Create(ctx, txn); err != nil {
			t.Fatalf("failed to create transaction: %v", err)
		}
		stale, err := repo.FindByIDForUpdate(ctx, txn.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.Delete(ctx, txn.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		stale.Amount = decimal.NewFromInt(9000)
		if err := repo.Update(ctx, stale); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Fatalf("expected ErrTransactionNotFound, got %v", err)
		}
		if _, err := repo.FindByID(ctx, txn.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected entry to stay deleted, got %v", err)
		}
		if _, err := repo.FindByIDForUpdate(ctx, txn.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected locked read to miss deleted entry, got %v", err)
		}
	})
}

func TestGoalRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	goal := entity.NewGoal(userID, "Laptop", decimal.NewFromInt(500000), now.AddDate(1, 0, 0), entity.GoalPriorityMedium)
	if _, err := goal.AddMilestone("Half", decimal.NewFromInt(250000)); err != nil {
		t.Fatalf("failed to add milestone: %v", err)
	}
	if err := repo.Create(ctx, goal); err != nil {
		t.Fatalf("failed to create goal: %v", err)
	}

	t.Run("stale version is rejected", func(t *testing.T) {
		first, err := repo.FindByID(ctx, goal.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, _ := repo.FindByID(ctx, goal.ID)

		first.Name = "Laptop Pro"
		if err := repo.Update(ctx, first); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first.Version != goal.Version+1 {
			t.Errorf("expected version %d, got %d", goal.Version+1, first.Version)
		}

		second.Name = "Stale"
		err = repo.Update(ctx, second)
		if !errors.Is(err, domainerror.ErrConcurrentModification) {
			t.Errorf("expected concurrent modification, got %v", err)
		}
	})

	t.Run("contributions and milestones round trip", func(t *testing.T) {
		stored, err := repo.FindByID(ctx, goal.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		outcome, err := stored.AddContribution(decimal.NewFromInt(300000), "bonus", entity.ContributionSourceManual, now)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.AddContribution(ctx, &outcome.Contribution); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := repo.Update(ctx, stored); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		reloaded, err := repo.FindByIDForUpdate(ctx, goal.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(reloaded.Contributions) != 1 {
			t.Errorf("expected 1 contribution, got %d", len(reloaded.Contributions))
		}
		if len(reloaded.Milestones) != 1 || !reloaded.Milestones[0].Achieved {
			t.Errorf("expected achieved milestone, got %+v", reloaded.Milestones)
		}
		if !reloaded.CurrentAmount.Equal(decimal.NewFromInt(300000)) {
			t.Errorf("expected current 300000, got %s", reloaded.CurrentAmount)
		}
	})

	t.Run("unknown goal", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		if !errors.Is(err, domainerror.ErrGoalNotFound) {
			t.Errorf("expected goal not found, got %v", err)
		}
	})
}

func TestGoalRepository_FindDueAutoSaves(t *testing.T) {
	db := openTestDB(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	seed := func(next time.Time, enabled bool, status entity.GoalStatus) uuid.UUID {
		goal := entity.NewGoal(userID, "Goal", decimal.NewFromInt(100000), now.AddDate(1, 0, 0), entity.GoalPriorityLow)
		goal.Status = status
		goal.AutoSave = entity.AutoSaveRule{
			Enabled:   enabled,
			Amount:    decimal.NewFromInt(1000),
			Frequency: "weekly",
			NextDate:  &next,
		}
		if err := repo.Create(ctx, goal); err != nil {
			t.Fatalf("failed to create goal: %v", err)
		}
		return goal.ID
	}

	older := seed(now.AddDate(0, 0, -3), true, entity.GoalStatusActive)
	newer := seed(now.AddDate(0, 0, -1), true, entity.GoalStatusActive)
	seed(now.AddDate(0, 0, 1), true, entity.GoalStatusActive)
	seed(now.AddDate(0, 0, -2), false, entity.GoalStatusActive)
	seed(now.AddDate(0, 0, -2), true, entity.GoalStatusPaused)

	due, err := repo.FindDueAutoSaves(ctx, now, nil, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("expected 2 due goals, got %d", len(due))
	}
	if due[0].GoalID != older || due[1].GoalID != newer {
		t.Errorf("expected oldest first, got %v", due)
	}

	t.Run("pages with a cursor", func(t *testing.T) {
		first, err := repo.FindDueAutoSaves(ctx, now, nil, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(first) != 1 || first[0].GoalID != older {
			t.Fatalf("expected the oldest goal on the first page, got %v", first)
		}

		second, err := repo.FindDueAutoSaves(ctx, now, &first[0], 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(second) != 1 || second[0].GoalID != newer {
			t.Fatalf("expected the newer goal on the second page, got %v", second)
		}

		last, err := repo.FindDueAutoSaves(ctx, now, &second[0], 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(last) != 0 {
			t.Errorf("expected no goals after the last page, got %v", last)
		}
	})
}

func TestCategoryAndBudgetRepositories(t *testing.T) {
	db := openTestDB(t)
	categories := NewCategoryRepository(db)
	budgets := NewBudgetRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	created, err := categories.SeedDefaults(ctx, entity.DefaultCategories())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == 0 {
		t.Fatal("expected default categories to be created")
	}
	again, err := categories.SeedDefaults(ctx, entity.DefaultCategories())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != 0 {
		t.Errorf("expected seeding to be idempotent, got %d new", again)
	}

	custom := entity.NewCategory("Pets", "#123456", "paw", userID, entity.CategoryTypeExpense)
	if err := categories.Create(ctx, custom); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	t.Run("name check is case-insensitive", func(t *testing.T) {
		exists, err := categories.ExistsByName(ctx, userID, "PETS", entity.CategoryTypeExpense, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !exists {
			t.Error("expected PETS to collide with Pets")
		}

		exists, _ = categories.ExistsByName(ctx, uuid.New(), "Pets", entity.CategoryTypeExpense, nil)
		if exists {
			t.Error("expected other users not to see Pets")
		}

		exists, _ = categories.ExistsByName(ctx, userID, "Pets", entity.CategoryTypeExpense, &custom.ID)
		if exists {
			t.Error("expected excluded id to be ignored")
		}
	})

	t.Run("overlap check", func(t *testing.T) {
		start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
		budget := entity.NewBudget(userID, custom.ID, "Pets", decimal.NewFromInt(10000), "monthly", start, end, 80, true)
		if err := budgets.Create(ctx, budget); err != nil {
			t.Fatalf("failed to create budget: %v", err)
		}

		overlapping, err := budgets.ExistsOverlapping(ctx, userID, custom.ID, end, end.AddDate(0, 1, 0), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !overlapping {
			t.Error("expected boundary day to overlap")
		}

		overlapping, _ = budgets.ExistsOverlapping(ctx, userID, custom.ID, end.AddDate(0, 0, 1), end.AddDate(0, 1, 0), nil)
		if overlapping {
			t.Error("expected next month not to overlap")
		}

		covering := end
		found, err := budgets.FindByFilter(ctx, adapter.BudgetFilter{UserID: userID, CoversDate: &covering})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(found) != 1 {
			t.Errorf("expected 1 covering budget, got %d", len(found))
		}
	})
}
