package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/application/service"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// GetSummaryInput represents the input for the dashboard summary.
type GetSummaryInput struct {
	UserID uuid.UUID
	Now    time.Time
}

// AccountsSummary holds balance totals over active accounts.
type AccountsSummary struct {
	Count       int
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
	NetWorth    decimal.Decimal
}

// MonthSummary holds completed income and expense totals for the current month.
type MonthSummary struct {
	StartDate   time.Time
	EndDate     time.Time
	PeriodLabel string
	Income      decimal.Decimal
	Expenses    decimal.Decimal
	Net         decimal.Decimal
}

// BudgetSummaryItem is a budget with its freshly computed consumption.
type BudgetSummaryItem struct {
	ID             uuid.UUID
	CategoryID     uuid.UUID
	Name           string
	Amount         decimal.Decimal
	Spent          decimal.Decimal
	Remaining      decimal.Decimal
	PercentageUsed decimal.Decimal
	Status         entity.BudgetStatus
}

// BudgetsSummary groups the budgets running today by status.
type BudgetsSummary struct {
	OnTrack  []BudgetSummaryItem
	Warning  []BudgetSummaryItem
	Exceeded []BudgetSummaryItem
}

// GoalsSummary aggregates active and completed goals.
type GoalsSummary struct {
	ActiveCount     int
	CompletedCount  int
	TotalSaved      decimal.Decimal
	TotalTarget     decimal.Decimal
	OverallProgress decimal.Decimal
}

// GetSummaryOutput represents the dashboard summary.
type GetSummaryOutput struct {
	Accounts AccountsSummary
	Month    MonthSummary
	Budgets  BudgetsSummary
	Goals    GoalsSummary
}

// GetSummaryUseCase builds the user's financial overview.
type GetSummaryUseCase struct {
	accountRepo     adapter.AccountRepository
	transactionRepo adapter.TransactionRepository
	budgetRepo      adapter.BudgetRepository
	goalRepo        adapter.GoalRepository
	aggregator      *service.SpendAggregator
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(
	accountRepo adapter.AccountRepository,
	transactionRepo adapter.TransactionRepository,
	budgetRepo adapter.BudgetRepository,
	goalRepo adapter.GoalRepository,
	aggregator *service.SpendAggregator,
) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		goalRepo:        goalRepo,
		aggregator:      aggregator,
	}
}

// Execute computes net worth, the current month totals, today's budgets and goal progress.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	output := &GetSummaryOutput{}

	// Accounts
	accounts, err := uc.accountRepo.FindByUserID(ctx, input.UserID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	totals := entity.SummarizeAccounts(accounts)
	output.Accounts = AccountsSummary{
		Count:       len(accounts),
		Assets:      totals.Assets,
		Liabilities: totals.Liabilities,
		NetWorth:    totals.NetWorth,
	}

	// Current month
	start, end := MonthBounds(now)
	monthTotals, err := uc.transactionRepo.GetTotals(ctx, adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get month totals: %w", err)
	}
	output.Month = MonthSummary{
		StartDate:   start,
		EndDate:     end,
		PeriodLabel: PeriodLabel(start, end),
		Income:      monthTotals.IncomeTotal,
		Expenses:    monthTotals.ExpenseTotal,
		Net:         monthTotals.NetTotal,
	}

	// Budgets running today, spent recomputed from the ledger
	budgets, err := uc.budgetRepo.FindByFilter(ctx, adapter.BudgetFilter{
		UserID:     input.UserID,
		ActiveOnly: true,
		CoversDate: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	output.Budgets = BudgetsSummary{
		OnTrack:  []BudgetSummaryItem{},
		Warning:  []BudgetSummaryItem{},
		Exceeded: []BudgetSummaryItem{},
	}
	for _, budget := range budgets {
		if err := uc.aggregator.Refresh(ctx, budget); err != nil {
			return nil, err
		}
		item := BudgetSummaryItem{
			ID:             budget.ID,
			CategoryID:     budget.CategoryID,
			Name:           budget.Name,
			Amount:         budget.Amount,
			Spent:          budget.Spent,
			Remaining:      budget.Remaining(),
			PercentageUsed: budget.PercentageUsed(),
			Status:         budget.Status(),
		}
		switch item.Status {
		case entity.BudgetStatusExceeded:
			output.Budgets.Exceeded = append(output.Budgets.Exceeded, item)
		case entity.BudgetStatusWarning:
			output.Budgets.Warning = append(output.Budgets.Warning, item)
		default:
			output.Budgets.OnTrack = append(output.Budgets.OnTrack, item)
		}
	}

	// Goals
	goals, err := uc.goalRepo.FindByUserID(ctx, input.UserID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	goalSummary := entity.SummarizeGoals(goals)
	output.Goals = GoalsSummary{
		ActiveCount:     goalSummary.ActiveCount,
		CompletedCount:  goalSummary.CompletedCount,
		TotalSaved:      goalSummary.TotalSaved,
		TotalTarget:     goalSummary.TotalTarget,
		OverallProgress: goalSummary.OverallProgress,
	}

	return output, nil
}
