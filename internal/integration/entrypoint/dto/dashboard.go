package dto

import (
	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/dashboard"
)

// PeriodResponse represents a reporting period.
type PeriodResponse struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	PeriodLabel string `json:"period_label"`
}

// CategoryBreakdownItemResponse represents one category in a spending breakdown.
type CategoryBreakdownItemResponse struct {
	CategoryID       string `json:"category_id"`
	CategoryName     string `json:"category_name"`
	CategoryColor    string `json:"category_color"`
	CategoryIcon     string `json:"category_icon"`
	Amount           string `json:"amount"`
	Percentage       string `json:"percentage"`
	TransactionCount int    `json:"transaction_count"`
}

// CategoryBreakdownResponse represents the response for the category breakdown endpoint.
type CategoryBreakdownResponse struct {
	Period        PeriodResponse                  `json:"period"`
	TotalExpenses string                          `json:"total_expenses"`
	Categories    []CategoryBreakdownItemResponse `json:"categories"`
}

// DashboardAccountsResponse represents account totals on the dashboard.
type DashboardAccountsResponse struct {
	Count       int    `json:"count"`
	Assets      string `json:"assets"`
	Liabilities string `json:"liabilities"`
	NetWorth    string `json:"net_worth"`
}

// DashboardMonthResponse represents the current month cash flow.
type DashboardMonthResponse struct {
	PeriodResponse
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Net      string `json:"net"`
}

// DashboardBudgetResponse represents one budget on the dashboard.
type DashboardBudgetResponse struct {
	ID             string `json:"id"`
	CategoryID     string `json:"category_id"`
	Name           string `json:"name"`
	Amount         string `json:"amount"`
	Spent          string `json:"spent"`
	Remaining      string `json:"remaining"`
	PercentageUsed string `json:"percentage_used"`
	Status         string `json:"status"`
}

// DashboardBudgetsResponse groups budgets by status.
type DashboardBudgetsResponse struct {
	OnTrack  []DashboardBudgetResponse `json:"on_track"`
	Warning  []DashboardBudgetResponse `json:"warning"`
	Exceeded []DashboardBudgetResponse `json:"exceeded"`
}

// DashboardSummaryResponse represents the response for the dashboard summary endpoint.
type DashboardSummaryResponse struct {
	Accounts DashboardAccountsResponse `json:"accounts"`
	Month    DashboardMonthResponse    `json:"month"`
	Budgets  DashboardBudgetsResponse  `json:"budgets"`
	Goals    GoalSummaryResponse       `json:"goals"`
}

// ToCategoryBreakdownResponse converts a GetCategoryBreakdownOutput to its response DTO.
func ToCategoryBreakdownResponse(output *dashboard.GetCategoryBreakdownOutput) CategoryBreakdownResponse {
	categories := make([]CategoryBreakdownItemResponse, len(output.Categories))
	for i, c := range output.Categories {
		categories[i] = CategoryBreakdownItemResponse{
			CategoryID:       c.CategoryID,
			CategoryName:     c.CategoryName,
			CategoryColor:    c.CategoryColor,
			CategoryIcon:     c.CategoryIcon,
			Amount:           c.Amount.String(),
			Percentage:       c.Percentage.StringFixed(2),
			TransactionCount: c.TransactionCount,
		}
	}

	return CategoryBreakdownResponse{
		Period: PeriodResponse{
			StartDate:   output.Period.StartDate.Format(DateLayout),
			EndDate:     output.Period.EndDate.Format(DateLayout),
			PeriodLabel: output.Period.PeriodLabel,
		},
		TotalExpenses: output.TotalExpenses.String(),
		Categories:    categories,
	}
}

func toDashboardBudgets(items []dashboard.BudgetSummaryItem) []DashboardBudgetResponse {
	budgets := make([]DashboardBudgetResponse, len(items))
	for i, b := range items {
		budgets[i] = DashboardBudgetResponse{
			ID:             b.ID.String(),
			CategoryID:     b.CategoryID.String(),
			Name:           b.Name,
			Amount:         b.Amount.String(),
			Spent:          b.Spent.String(),
			Remaining:      b.Remaining.String(),
			PercentageUsed: b.PercentageUsed.StringFixed(2),
			Status:         string(b.Status),
		}
	}
	return budgets
}

// ToDashboardSummaryResponse converts a GetSummaryOutput to its response DTO.
func ToDashboardSummaryResponse(output *dashboard.GetSummaryOutput) DashboardSummaryResponse {
	return DashboardSummaryResponse{
		Accounts: DashboardAccountsResponse{
			Count:       output.Accounts.Count,
			Assets:      output.Accounts.Assets.String(),
			Liabilities: output.Accounts.Liabilities.String(),
			NetWorth:    output.Accounts.NetWorth.String(),
		},
		Month: DashboardMonthResponse{
			PeriodResponse: PeriodResponse{
				StartDate:   output.Month.StartDate.Format(DateLayout),
				EndDate:     output.Month.EndDate.Format(DateLayout),
				PeriodLabel: output.Month.PeriodLabel,
			},
			Income:   output.Month.Income.String(),
			Expenses: output.Month.Expenses.String(),
			Net:      output.Month.Net.String(),
		},
		Budgets: DashboardBudgetsResponse{
			OnTrack:  toDashboardBudgets(output.Budgets.OnTrack),
			Warning:  toDashboardBudgets(output.Budgets.Warning),
			Exceeded: toDashboardBudgets(output.Budgets.Exceeded),
		},
		Goals: GoalSummaryResponse{
			ActiveCount:     output.Goals.ActiveCount,
			CompletedCount:  output.Goals.CompletedCount,
			TotalSaved:      output.Goals.TotalSaved.String(),
			TotalTarget:     output.Goals.TotalTarget.String(),
			OverallProgress: output.Goals.OverallProgress.StringFixed(2),
		},
	}
}
