package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// UncategorizedID is a constant string used to represent uncategorized expenses.
const UncategorizedID = "uncategorized"

// UncategorizedName is the default name for uncategorized expenses.
const UncategorizedName = "Uncategorized"

// UncategorizedColor is the default color for uncategorized expenses.
const UncategorizedColor = "#6B7280"

// UncategorizedIcon is the default icon for uncategorized expenses.
const UncategorizedIcon = "question-mark"

// GetCategoryBreakdownInput represents the input for getting category breakdown.
type GetCategoryBreakdownInput struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
	AccountID *uuid.UUID
}

// CategoryBreakdownItem represents a single category in the breakdown.
type CategoryBreakdownItem struct {
	CategoryID       string
	CategoryName     string
	CategoryColor    string
	CategoryIcon     string
	Amount           decimal.Decimal
	Percentage       decimal.Decimal
	TransactionCount int
}

// BreakdownPeriod represents the period information for category breakdown.
type BreakdownPeriod struct {
	StartDate   time.Time
	EndDate     time.Time
	PeriodLabel string
}

// GetCategoryBreakdownOutput represents the output of getting category breakdown.
type GetCategoryBreakdownOutput struct {
	Period        BreakdownPeriod
	TotalExpenses decimal.Decimal
	Categories    []CategoryBreakdownItem
}

// GetCategoryBreakdownUseCase handles getting spending breakdown by category.
type GetCategoryBreakdownUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
}

// NewGetCategoryBreakdownUseCase creates a new GetCategoryBreakdownUseCase instance.
func NewGetCategoryBreakdownUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
) *GetCategoryBreakdownUseCase {
	return &GetCategoryBreakdownUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
	}
}

// Execute retrieves completed spending grouped by category for the given period.
func (uc *GetCategoryBreakdownUseCase) Execute(
	ctx context.Context,
	input GetCategoryBreakdownInput,
) (*GetCategoryBreakdownOutput, error) {
	// Validate input
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	spends, err := uc.transactionRepo.SumExpensesByCategory(ctx, adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: &input.StartDate,
		EndDate:   &input.EndDate,
		AccountID: input.AccountID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get category breakdown: %w", err)
	}

	expenseType := entity.CategoryTypeExpense
	categories, err := uc.categoryRepo.FindVisible(ctx, input.UserID, &expenseType)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	byID := make(map[uuid.UUID]*entity.Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}

	totalExpenses := decimal.Zero
	for _, spend := range spends {
		totalExpenses = totalExpenses.Add(spend.Amount)
	}

	// Convert aggregated rows to output format
	items := make([]CategoryBreakdownItem, 0, len(spends))
	for _, spend := range spends {
		item := CategoryBreakdownItem{
			CategoryID:       UncategorizedID,
			CategoryName:     UncategorizedName,
			CategoryColor:    UncategorizedColor,
			CategoryIcon:     UncategorizedIcon,
			Amount:           spend.Amount,
			Percentage:       entity.Percentage(spend.Amount, totalExpenses),
			TransactionCount: spend.TransactionCount,
		}
		if spend.CategoryID != nil {
			item.CategoryID = spend.CategoryID.String()
			if category, ok := byID[*spend.CategoryID]; ok {
				item.CategoryName = category.Name
				if category.Color != "" {
					item.CategoryColor = category.Color
				}
				if category.Icon != "" {
					item.CategoryIcon = category.Icon
				}
			}
		}
		items = append(items, item)
	}

	return &GetCategoryBreakdownOutput{
		Period: BreakdownPeriod{
			StartDate:   input.StartDate,
			EndDate:     input.EndDate,
			PeriodLabel: PeriodLabel(input.StartDate, input.EndDate),
		},
		TotalExpenses: totalExpenses,
		Categories:    items,
	}, nil
}

// validateInput validates the input parameters.
func (uc *GetCategoryBreakdownUseCase) validateInput(input GetCategoryBreakdownInput) error {
	if input.StartDate.IsZero() {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeMissingStartDate,
			"start_date is required",
			domainerror.ErrMissingStartDate,
		)
	}

	if input.EndDate.IsZero() {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeMissingEndDate,
			"end_date is required",
			domainerror.ErrMissingEndDate,
		)
	}

	if input.EndDate.Before(input.StartDate) {
		return domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidDateRange,
			"end_date must be after start_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	return nil
}
