package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := conn(ctx, r.db).Create(categoryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := conn(ctx, r.db).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindVisible retrieves default categories plus those owned by the user.
func (r *categoryRepository) FindVisible(ctx context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error) {
	query := visibleTo(conn(ctx, r.db), userID)
	if categoryType != nil {
		query = query.Where("type = ?", string(*categoryType))
	}

	var categoryModels []model.CategoryModel
	result := query.Order("is_default DESC, type ASC, name ASC").Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i, cm := range categoryModels {
		categories[i] = cm.ToEntity()
	}
	return categories, nil
}

// ExistsByName checks case-insensitively whether a visible category already uses the name.
func (r *categoryRepository) ExistsByName(ctx context.Context, userID uuid.UUID, name string, categoryType entity.CategoryType, excludeID *uuid.UUID) (bool, error) {
	query := visibleTo(conn(ctx, r.db).Model(&model.CategoryModel{}), userID).
		Where("type = ?", string(categoryType)).
		Where("LOWER(name) = LOWER(?)", name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update updates an existing category in the database.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := conn(ctx, r.db).Save(categoryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete soft-deletes a category from the database.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&model.CategoryModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrCategoryNotFound
	}
	return nil
}

// SeedDefaults inserts the default categories whose (name, type) is not present yet.
func (r *categoryRepository) SeedDefaults(ctx context.Context, categories []*entity.Category) (int, error) {
	created := 0
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		for _, category := range categories {
			var count int64
			err := tx.Model(&model.CategoryModel{}).
				Where("is_default = ?", true).
				Where("type = ?", string(category.Type)).
				Where("LOWER(name) = LOWER(?)", category.Name).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := tx.Create(model.CategoryFromEntity(category)).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func visibleTo(query *gorm.DB, userID uuid.UUID) *gorm.DB {
	return query.Where("(is_default = ? OR owner_id = ?)", true, userID)
}
