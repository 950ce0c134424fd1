package adaptertest

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/domain/valueobject"
)

// Transactions returns a transaction repository backed by the store.
func (s *Store) Transactions() adapter.TransactionRepository {
	return &transactionRepository{store: s}
}

// SeedTransaction stores a transaction as-is, without touching balances.
func (s *Store) SeedTransaction(transaction *entity.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[transaction.ID] = transaction.Clone()
}

// TransactionCount returns the number of live transactions.
func (s *Store) TransactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, transaction := range s.transactions {
		if transaction.DeletedAt == nil {
			count++
		}
	}
	return count
}

// LockedTransactionReads returns how many times a transaction was read for update.
func (s *Store) LockedTransactionReads(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lockedTransactionReads[id]
}

type transactionRepository struct {
	store *Store
}

func (r *transactionRepository) Create(_ context.Context, transaction *entity.Transaction) error {
	r.store.SeedTransaction(transaction)
	return nil
}

func (r *transactionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	transaction, ok := r.store.transactions[id]
	if !ok || transaction.DeletedAt != nil {
		return nil, domainerror.ErrTransactionNotFound
	}
	return transaction.Clone(), nil
}

func (r *transactionRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	transaction, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.lockedTransactionReads[id]++
	return transaction, nil
}

func (r *transactionRepository) FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.TransactionWithDetails, error) {
	transaction, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.details(transaction), nil
}

func (r *transactionRepository) details(transaction *entity.Transaction) *entity.TransactionWithDetails {
	result := &entity.TransactionWithDetails{Transaction: transaction}
	if transaction.CategoryID != nil {
		if category, ok := r.store.categories[*transaction.CategoryID]; ok {
			result.Category = cloneCategory(category)
		}
	}
	if account, ok := r.store.accounts[transaction.AccountID]; ok {
		result.Account = cloneAccount(account)
	}
	if transaction.DestinationAccountID != nil {
		if account, ok := r.store.accounts[*transaction.DestinationAccountID]; ok {
			result.DestinationAccount = cloneAccount(account)
		}
	}
	return result
}

func (r *transactionRepository) matching(filter adapter.TransactionFilter) []*entity.Transaction {
	matches := make([]*entity.Transaction, 0)
	for _, transaction := range r.store.transactions {
		if transaction.DeletedAt != nil || transaction.UserID != filter.UserID {
			continue
		}
		if filter.StartDate != nil && transaction.Date.Before(valueobject.StartOfDay(*filter.StartDate)) {
			continue
		}
		if filter.EndDate != nil && transaction.Date.After(valueobject.EndOfDay(*filter.EndDate)) {
			continue
		}
		if filter.AccountID != nil && transaction.AccountID != *filter.AccountID &&
			(transaction.DestinationAccountID == nil || *transaction.DestinationAccountID != *filter.AccountID) {
			continue
		}
		if len(filter.CategoryIDs) > 0 && !containsCategory(filter.CategoryIDs, transaction.CategoryID) {
			continue
		}
		if filter.Type != nil && transaction.Type != *filter.Type {
			continue
		}
		if filter.Status != nil && transaction.Status != *filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(transaction.Description), strings.ToLower(filter.Search)) {
			continue
		}
		matches = append(matches, transaction.Clone())
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Date.After(matches[j].Date)
	})
	return matches
}

func containsCategory(ids []uuid.UUID, categoryID *uuid.UUID) bool {
	if categoryID == nil {
		return false
	}
	for _, id := range ids {
		if id == *categoryID {
			return true
		}
	}
	return false
}

func (r *transactionRepository) FindByFilter(_ context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*entity.TransactionListResult, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	matches := r.matching(filter)
	total := len(matches)

	limit := pagination.Limit
	if limit <= 0 {
		limit = total
	}
	page := pagination.Page
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	items := make([]*entity.TransactionWithDetails, 0, end-start)
	for _, transaction := range matches[start:end] {
		items = append(items, r.details(transaction))
	}

	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return &entity.TransactionListResult{
		Transactions: items,
		Total:        int64(total),
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages,
	}, nil
}

func totalsOf(transactions []*entity.Transaction) entity.TransactionTotals {
	totals := entity.TransactionTotals{IncomeTotal: decimal.Zero, ExpenseTotal: decimal.Zero}
	for _, transaction := range transactions {
		if transaction.Status != entity.TransactionStatusCompleted {
			continue
		}
		switch transaction.Type {
		case entity.TransactionTypeIncome:
			totals.IncomeTotal = totals.IncomeTotal.Add(transaction.Amount)
		case entity.TransactionTypeExpense:
			totals.ExpenseTotal = totals.ExpenseTotal.Add(transaction.Amount)
		}
	}
	totals.NetTotal = totals.IncomeTotal.Sub(totals.ExpenseTotal)
	return totals
}

func (r *transactionRepository) GetTotals(_ context.Context, filter adapter.TransactionFilter) (*entity.TransactionTotals, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	totals := totalsOf(r.matching(filter))
	return &totals, nil
}

func (r *transactionRepository) SumCompletedExpenses(_ context.Context, query adapter.SpendQuery) (decimal.Decimal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	expense := entity.TransactionTypeExpense
	completed := entity.TransactionStatusCompleted
	matches := r.matching(adapter.TransactionFilter{
		UserID:      query.UserID,
		StartDate:   &query.StartDate,
		EndDate:     &query.EndDate,
		CategoryIDs: []uuid.UUID{query.CategoryID},
		Type:        &expense,
		Status:      &completed,
	})

	sum := decimal.Zero
	for _, transaction := range matches {
		sum = sum.Add(transaction.Amount)
	}
	return sum, nil
}

func (r *transactionRepository) SumExpensesByCategory(_ context.Context, filter adapter.TransactionFilter) ([]entity.CategorySpend, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	expense := entity.TransactionTypeExpense
	completed := entity.TransactionStatusCompleted
	filter.Type = &expense
	filter.Status = &completed

	index := make(map[uuid.UUID]int)
	spends := make([]entity.CategorySpend, 0)
	uncategorized := -1
	for _, transaction := range r.matching(filter) {
		position := uncategorized
		if transaction.CategoryID != nil {
			if existing, ok := index[*transaction.CategoryID]; ok {
				position = existing
			} else {
				position = -1
			}
		}
		if position < 0 {
			var categoryID *uuid.UUID
			if transaction.CategoryID != nil {
				id := *transaction.CategoryID
				categoryID = &id
			}
			spends = append(spends, entity.CategorySpend{CategoryID: categoryID, Amount: decimal.Zero})
			position = len(spends) - 1
			if categoryID == nil {
				uncategorized = position
			} else {
				index[*categoryID] = position
			}
		}
		spends[position].Amount = spends[position].Amount.Add(transaction.Amount)
		spends[position].TransactionCount++
	}
	sort.SliceStable(spends, func(i, j int) bool {
		return spends[i].Amount.GreaterThan(spends[j].Amount)
	})
	return spends, nil
}

func (r *transactionRepository) CountByCategory(_ context.Context, categoryID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, transaction := range r.store.transactions {
		if transaction.DeletedAt == nil && transaction.CategoryID != nil && *transaction.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (r *transactionRepository) Update(_ context.Context, transaction *entity.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.transactions[transaction.ID]
	if !ok || stored.DeletedAt != nil {
		return domainerror.ErrTransactionNotFound
	}
	r.store.transactions[transaction.ID] = transaction.Clone()
	return nil
}

func (r *transactionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	transaction, ok := r.store.transactions[id]
	if !ok || transaction.DeletedAt != nil {
		return domainerror.ErrTransactionNotFound
	}
	deletedAt := transaction.UpdatedAt
	transaction.DeletedAt = &deletedAt
	return nil
}
