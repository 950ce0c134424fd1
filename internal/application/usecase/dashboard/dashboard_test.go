package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter/adaptertest"
	"github.com/AminataF33/gestionbudgetback/internal/application/service"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/domain/valueobject"
)

type fixture struct {
	store     *adaptertest.Store
	userID    uuid.UUID
	checking  *entity.Account
	card      *entity.Account
	food      *entity.Category
	transport *entity.Category
	salary    *entity.Category
}

func newFixture() *fixture {
	store := adaptertest.NewStore()
	f := &fixture{store: store, userID: uuid.New()}

	f.checking = entity.NewAccount(f.userID, "Main", "", entity.AccountKindChecking, decimal.NewFromInt(250000), "XOF")
	f.card = entity.NewAccount(f.userID, "Card", "", entity.AccountKindCredit, decimal.NewFromInt(40000), "XOF")
	store.SeedAccount(f.checking)
	store.SeedAccount(f.card)

	f.food = entity.NewDefaultCategory("Food", "#F97316", "utensils", entity.CategoryTypeExpense)
	f.transport = entity.NewDefaultCategory("Transport", "#3B82F6", "car", entity.CategoryTypeExpense)
	f.salary = entity.NewDefaultCategory("Salary", "#10B981", "briefcase", entity.CategoryTypeIncome)
	store.SeedCategory(f.food)
	store.SeedCategory(f.transport)
	store.SeedCategory(f.salary)

	return f
}

func (f *fixture) entry(category *entity.Category, kind entity.TransactionType, amount int64, date time.Time, status entity.TransactionStatus) {
	transaction := entity.NewTransaction(f.userID, f.checking.ID, kind, decimal.NewFromInt(amount), "entry", date)
	transaction.CategoryID = &category.ID
	transaction.Status = status
	f.store.SeedTransaction(transaction)
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.March, 20, 12, 0, 0, 0, time.UTC)
	f := newFixture()

	f.entry(f.salary, entity.TransactionTypeIncome, 300000, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), entity.TransactionStatusCompleted)
	f.entry(f.food, entity.TransactionTypeExpense, 45000, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), entity.TransactionStatusCompleted)
	f.entry(f.transport, entity.TransactionTypeExpense, 12000, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), entity.TransactionStatusCompleted)
	f.entry(f.food, entity.TransactionTypeExpense, 9000, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), entity.TransactionStatusPending)
	f.entry(f.food, entity.TransactionTypeExpense, 70000, time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), entity.TransactionStatusCompleted)

	march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	foodBudget := entity.NewBudget(f.userID, f.food.ID, "Food", decimal.NewFromInt(50000), valueobject.PeriodMonthly,
		march, valueobject.PeriodMonthly.EndFrom(march), 80, true)
	transportBudget := entity.NewBudget(f.userID, f.transport.ID, "Transport", decimal.NewFromInt(10000), valueobject.PeriodMonthly,
		march, valueobject.PeriodMonthly.EndFrom(march), 80, true)
	febStart := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	pastBudget := entity.NewBudget(f.userID, f.food.ID, "Old food", decimal.NewFromInt(50000), valueobject.PeriodMonthly,
		febStart, valueobject.PeriodMonthly.EndFrom(febStart), 80, true)
	f.store.SeedBudget(foodBudget)
	f.store.SeedBudget(transportBudget)
	f.store.SeedBudget(pastBudget)

	active := entity.NewGoal(f.userID, "Laptop", decimal.NewFromInt(400000), now.AddDate(1, 0, 0), entity.GoalPriorityMedium)
	active.CurrentAmount = decimal.NewFromInt(100000)
	done := entity.NewGoal(f.userID, "Phone", decimal.NewFromInt(100000), now.AddDate(1, 0, 0), entity.GoalPriorityLow)
	done.CurrentAmount = decimal.NewFromInt(100000)
	done.Status = entity.GoalStatusCompleted
	cancelled := entity.NewGoal(f.userID, "Car", decimal.NewFromInt(5000000), now.AddDate(3, 0, 0), entity.GoalPriorityLow)
	cancelled.Status = entity.GoalStatusCancelled
	f.store.SeedGoal(active)
	f.store.SeedGoal(done)
	f.store.SeedGoal(cancelled)

	uc := NewGetSummaryUseCase(
		f.store.Accounts(),
		f.store.Transactions(),
		f.store.Budgets(),
		f.store.Goals(),
		service.NewSpendAggregator(f.store.Transactions()),
	)

	output, err := uc.Execute(ctx, GetSummaryInput{UserID: f.userID, Now: now})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("accounts", func(t *testing.T) {
		if output.Accounts.Count != 2 {
			t.Errorf("expected 2 accounts, got %d", output.Accounts.Count)
		}
		if !output.Accounts.NetWorth.Equal(decimal.NewFromInt(210000)) {
			t.Errorf("expected net worth 210000, got %s", output.Accounts.NetWorth)
		}
	})

	t.Run("current month counts completed entries only", func(t *testing.T) {
		if !output.Month.Income.Equal(decimal.NewFromInt(300000)) {
			t.Errorf("expected income 300000, got %s", output.Month.Income)
		}
		if !output.Month.Expenses.Equal(decimal.NewFromInt(57000)) {
			t.Errorf("expected expenses 57000, got %s", output.Month.Expenses)
		}
		if output.Month.PeriodLabel != "Mar 2024" {
			t.Errorf("expected label Mar 2024, got %s", output.Month.PeriodLabel)
		}
	})

	t.Run("budgets grouped by status", func(t *testing.T) {
		if len(output.Budgets.Warning) != 1 || output.Budgets.Warning[0].ID != foodBudget.ID {
			t.Errorf("expected food budget in warning, got %+v", output.Budgets.Warning)
		}
		if len(output.Budgets.Exceeded) != 1 || output.Budgets.Exceeded[0].ID != transportBudget.ID {
			t.Errorf("expected transport budget exceeded, got %+v", output.Budgets.Exceeded)
		}
		if len(output.Budgets.OnTrack) != 0 {
			t.Errorf("expected past budget excluded, got %+v", output.Budgets.OnTrack)
		}
		if !output.Budgets.Warning[0].Spent.Equal(decimal.NewFromInt(45000)) {
			t.Errorf("expected recomputed spent 45000, got %s", output.Budgets.Warning[0].Spent)
		}
	})

	t.Run("goals", func(t *testing.T) {
		if output.Goals.ActiveCount != 1 || output.Goals.CompletedCount != 1 {
			t.Errorf("expected 1 active and 1 completed, got %+v", output.Goals)
		}
		if !output.Goals.TotalSaved.Equal(decimal.NewFromInt(200000)) {
			t.Errorf("expected 200000 saved, got %s", output.Goals.TotalSaved)
		}
		if !output.Goals.OverallProgress.Equal(decimal.NewFromInt(40)) {
			t.Errorf("expected 40%% progress, got %s", output.Goals.OverallProgress)
		}
	})
}

func TestGetCategoryBreakdown(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.entry(f.food, entity.TransactionTypeExpense, 30000, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), entity.TransactionStatusCompleted)
	f.entry(f.food, entity.TransactionTypeExpense, 30000, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), entity.TransactionStatusCompleted)
	f.entry(f.transport, entity.TransactionTypeExpense, 20000, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), entity.TransactionStatusCompleted)
	f.entry(f.transport, entity.TransactionTypeExpense, 5000, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), entity.TransactionStatusCancelled)
	f.entry(f.salary, entity.TransactionTypeIncome, 300000, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), entity.TransactionStatusCompleted)

	uc := NewGetCategoryBreakdownUseCase(f.store.Transactions(), f.store.Categories())

	t.Run("groups completed expenses", func(t *testing.T) {
		output, err := uc.Execute(ctx, GetCategoryBreakdownInput{
			UserID:    f.userID,
			StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.TotalExpenses.Equal(decimal.NewFromInt(80000)) {
			t.Errorf("expected total 80000, got %s", output.TotalExpenses)
		}
		if len(output.Categories) != 2 {
			t.Fatalf("expected 2 categories, got %d", len(output.Categories))
		}
		first := output.Categories[0]
		if first.CategoryName != "Food" || first.TransactionCount != 2 {
			t.Errorf("expected Food first with 2 entries, got %+v", first)
		}
		if !first.Percentage.Equal(decimal.NewFromInt(75)) {
			t.Errorf("expected 75%%, got %s", first.Percentage)
		}
		if output.Period.PeriodLabel != "Mar 2024" {
			t.Errorf("expected label Mar 2024, got %s", output.Period.PeriodLabel)
		}
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name  string
			input GetCategoryBreakdownInput
			code  domainerror.DashboardErrorCode
		}{
			{
				name:  "missing start",
				input: GetCategoryBreakdownInput{UserID: f.userID, EndDate: time.Now()},
				code:  domainerror.ErrCodeMissingStartDate,
			},
			{
				name:  "missing end",
				input: GetCategoryBreakdownInput{UserID: f.userID, StartDate: time.Now()},
				code:  domainerror.ErrCodeMissingEndDate,
			},
			{
				name: "inverted range",
				input: GetCategoryBreakdownInput{
					UserID:    f.userID,
					StartDate: time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
					EndDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				},
				code: domainerror.ErrCodeInvalidDateRange,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := uc.Execute(ctx, tt.input)
				var dashErr *domainerror.DashboardError
				if !errors.As(err, &dashErr) {
					t.Fatalf("expected DashboardError, got %v", err)
				}
				if dashErr.Code != tt.code {
					t.Errorf("expected code %s, got %s", tt.code, dashErr.Code)
				}
				if !errors.Is(err, domainerror.ErrValidation) {
					t.Error("expected validation kind")
				}
			})
		}
	})
}

func TestPeriodLabel(t *testing.T) {
	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected string
	}{
		{"single month", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), "Mar 2025"},
		{"single quarter", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), "Q1 2025"},
		{"range", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), "Jan 2025 - Jun 2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PeriodLabel(tt.start, tt.end); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}
