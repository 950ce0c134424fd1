package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/domain/valueobject"
	"github.com/AminataF33/gestionbudgetback/internal/integration/persistence/model"
)

const defaultTransactionPageSize = 20

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := conn(ctx, r.db).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := conn(ctx, r.db).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByIDForUpdate retrieves a transaction and locks its row for the current transaction.
func (r *transactionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByIDWithDetails retrieves a transaction with its category and accounts.
func (r *transactionRepository) FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.TransactionWithDetails, error) {
	var transactionModel model.TransactionModel
	result := withDetails(conn(ctx, r.db)).
		Where("id = ?", id).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntityWithDetails(), nil
}

// FindByFilter retrieves transactions based on filter criteria with pagination.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	query := applyTransactionFilter(conn(ctx, r.db).Model(&model.TransactionModel{}), filter)

	// Get total count
	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	// Calculate pagination
	page := pagination.Page
	if page < 1 {
		page = 1
	}
	limit := pagination.Limit
	if limit < 1 {
		limit = defaultTransactionPageSize
	}
	offset := (page - 1) * limit
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages == 0 {
		totalPages = 1
	}

	// Fetch transactions with display relations preloaded
	var transactionModels []model.TransactionModel
	result := withDetails(query).
		Order("date DESC, created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions := make([]*entity.TransactionWithDetails, len(transactionModels))
	for i, tm := range transactionModels {
		transactions[i] = tm.ToEntityWithDetails()
	}

	return &entity.TransactionListResult{
		Transactions: transactions,
		Total:        total,
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages,
	}, nil
}

type totalsRow struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
}

// GetTotals calculates income and expense totals of completed transactions matching the filter.
func (r *transactionRepository) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	var row totalsRow
	result := applyTransactionFilter(conn(ctx, r.db).Model(&model.TransactionModel{}), filter).
		Where("status = ?", string(entity.TransactionStatusCompleted)).
		Select(
			"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS income_total, "+
				"COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE 0 END), 0) AS expense_total",
			string(entity.TransactionTypeIncome),
			string(entity.TransactionTypeExpense),
		).
		Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}

	return &entity.TransactionTotals{
		IncomeTotal:  row.IncomeTotal,
		ExpenseTotal: row.ExpenseTotal,
		NetTotal:     row.IncomeTotal.Sub(row.ExpenseTotal),
	}, nil
}

// SumCompletedExpenses sums completed expense amounts for a category over an inclusive date range.
func (r *transactionRepository) SumCompletedExpenses(ctx context.Context, query adapter.SpendQuery) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := conn(ctx, r.db).Model(&model.TransactionModel{}).
		Where("user_id = ?", query.UserID).
		Where("category_id = ?", query.CategoryID).
		Where("type = ?", string(entity.TransactionTypeExpense)).
		Where("status = ?", string(entity.TransactionStatusCompleted)).
		Where("date >= ?", valueobject.StartOfDay(query.StartDate)).
		Where("date <= ?", valueobject.EndOfDay(query.EndDate)).
		Select("COALESCE(SUM(amount), 0)").
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

type categorySpendRow struct {
	CategoryID       *uuid.UUID
	Amount           decimal.Decimal
	TransactionCount int
}

// SumExpensesByCategory groups completed expenses matching the filter by category.
func (r *transactionRepository) SumExpensesByCategory(ctx context.Context, filter adapter.TransactionFilter) ([]entity.CategorySpend, error) {
	var rows []categorySpendRow
	result := applyTransactionFilter(conn(ctx, r.db).Model(&model.TransactionModel{}), filter).
		Where("type = ?", string(entity.TransactionTypeExpense)).
		Where("status = ?", string(entity.TransactionStatusCompleted)).
		Select("category_id, COALESCE(SUM(amount), 0) AS amount, COUNT(*) AS transaction_count").
		Group("category_id").
		Order("SUM(amount) DESC").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	spends := make([]entity.CategorySpend, len(rows))
	for i, row := range rows {
		spends[i] = entity.CategorySpend{
			CategoryID:       row.CategoryID,
			Amount:           row.Amount,
			TransactionCount: row.TransactionCount,
		}
	}
	return spends, nil
}

// CountByCategory counts live transactions referencing a category.
func (r *transactionRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	result := conn(ctx, r.db).Model(&model.TransactionModel{}).
		Where("category_id = ?", categoryID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// Update writes the mutable fields of a live transaction. Soft-deleted rows are never
// matched, so an edit racing a delete fails instead of restoring the entry.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := conn(ctx, r.db).Model(transactionModel).
		Select(
			"account_id", "destination_account_id", "category_id", "type", "amount",
			"description", "date", "payment_method", "currency", "status", "tags",
			"notes", "updated_at",
		).
		Updates(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// Delete soft-deletes a transaction from the database.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&model.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

func withDetails(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Category", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Account").
		Preload("DestinationAccount")
}

func applyTransactionFilter(query *gorm.DB, filter adapter.TransactionFilter) *gorm.DB {
	query = query.Where("user_id = ?", filter.UserID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", valueobject.StartOfDay(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", valueobject.EndOfDay(*filter.EndDate))
	}
	if filter.AccountID != nil {
		query = query.Where("(account_id = ? OR destination_account_id = ?)", *filter.AccountID, *filter.AccountID)
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(description) LIKE ?", searchPattern)
	}
	return query
}
