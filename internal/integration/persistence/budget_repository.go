package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/domain/valueobject"
	"github.com/AminataF33/gestionbudgetback/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Create creates a new budget in the database.
func (r *budgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	budgetModel := model.BudgetFromEntity(budget)
	result := conn(ctx, r.db).Create(budgetModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a budget by its ID.
func (r *budgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := conn(ctx, r.db).Where("id = ?", id).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// FindByFilter retrieves budgets matching the filter, ordered by start date.
func (r *budgetRepository) FindByFilter(ctx context.Context, filter adapter.BudgetFilter) ([]*entity.Budget, error) {
	query := conn(ctx, r.db).Where("user_id = ?", filter.UserID)

	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.CoversDate != nil {
		query = query.
			Where("start_date <= ?", valueobject.EndOfDay(*filter.CoversDate)).
			Where("end_date >= ?", valueobject.StartOfDay(*filter.CoversDate))
	}

	var budgetModels []model.BudgetModel
	result := query.Order("start_date ASC").Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	budgets := make([]*entity.Budget, len(budgetModels))
	for i, bm := range budgetModels {
		budgets[i] = bm.ToEntity()
	}
	return budgets, nil
}

// ExistsOverlapping checks whether an active budget of the user for the category intersects [start, end].
func (r *budgetRepository) ExistsOverlapping(ctx context.Context, userID, categoryID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) (bool, error) {
	query := conn(ctx, r.db).Model(&model.BudgetModel{}).
		Where("user_id = ?", userID).
		Where("category_id = ?", categoryID).
		Where("is_active = ?", true).
		Where("start_date <= ?", valueobject.EndOfDay(end)).
		Where("end_date >= ?", valueobject.StartOfDay(start))
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// LockScope takes a transaction-scoped advisory lock on the user and category pair.
// SQLite already serializes writers, so only PostgreSQL needs the lock.
func (r *budgetRepository) LockScope(ctx context.Context, userID, categoryID uuid.UUID) error {
	db := conn(ctx, r.db)
	if db.Dialector.Name() != "postgres" {
		return nil
	}
	key := "budget:" + userID.String() + ":" + categoryID.String()
	return db.Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", key).Error
}

// CountByCategory counts live budgets referencing a category.
func (r *budgetRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	result := conn(ctx, r.db).Model(&model.BudgetModel{}).
		Where("category_id = ?", categoryID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// Update updates an existing budget in the database.
func (r *budgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	budgetModel := model.BudgetFromEntity(budget)
	result := conn(ctx, r.db).Save(budgetModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete soft-deletes a budget from the database.
func (r *budgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&model.BudgetModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBudgetNotFound
	}
	return nil
}
