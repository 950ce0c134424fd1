package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/integration/persistence/model"
)

// goalRepository implements the adapter.GoalRepository interface.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new goal repository instance.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{
		db: db,
	}
}

func withChildren(query *gorm.DB) *gorm.DB {
	return query.Preload("Milestones").Preload("Contributions")
}

// Create creates a new goal with its milestones.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)
	result := conn(ctx, r.db).Create(goalModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a goal by its ID.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	return r.find(withChildren(conn(ctx, r.db)), id)
}

// FindByIDForUpdate retrieves a goal and locks its row until the surrounding transaction ends.
func (r *goalRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	query := withChildren(conn(ctx, r.db)).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.find(query, id)
}

func (r *goalRepository) find(query *gorm.DB, id uuid.UUID) (*entity.Goal, error) {
	var goalModel model.GoalModel
	result := query.Where("id = ?", id).First(&goalModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrGoalNotFound
		}
		return nil, result.Error
	}
	return goalModel.ToEntity(), nil
}

// FindByUserID retrieves the goals of a user, optionally filtered by status.
func (r *goalRepository) FindByUserID(ctx context.Context, userID uuid.UUID, status *entity.GoalStatus) ([]*entity.Goal, error) {
	query := withChildren(conn(ctx, r.db)).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var goalModels []model.GoalModel
	result := query.Order("created_at ASC").Find(&goalModels)
	if result.Error != nil {
		return nil, result.Error
	}

	goals := make([]*entity.Goal, len(goalModels))
	for i := range goalModels {
		goals[i] = goalModels[i].ToEntity()
	}
	return goals, nil
}

// FindDueAutoSaves returns active goals whose auto-save rule is due at now, oldest first.
func (r *goalRepository) FindDueAutoSaves(ctx context.Context, now time.Time, after *adapter.DueAutoSave, limit int) ([]adapter.DueAutoSave, error) {
	query := conn(ctx, r.db).Model(&model.GoalModel{}).
		Select("id", "auto_save_next_date").
		Where("status = ?", string(entity.GoalStatusActive)).
		Where("auto_save_enabled = ?", true).
		Where("auto_save_next_date IS NOT NULL").
		Where("auto_save_next_date <= ?", now)
	if after != nil {
		query = query.Where("auto_save_next_date > ? OR (auto_save_next_date = ? AND id > ?)",
			after.NextDate, after.NextDate, after.GoalID)
	}
	query = query.Order("auto_save_next_date ASC").Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []struct {
		ID               uuid.UUID
		AutoSaveNextDate time.Time
	}
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	due := make([]adapter.DueAutoSave, len(rows))
	for i, row := range rows {
		due[i] = adapter.DueAutoSave{GoalID: row.ID, NextDate: row.AutoSaveNextDate}
	}
	return due, nil
}

// Update saves the goal row and its milestones under an optimistic version check.
func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	goalModel := model.GoalFromEntity(goal)

	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.GoalModel{}).
			Where("id = ? AND version = ?", goal.ID, goal.Version).
			Updates(map[string]any{
				"name":                goalModel.Name,
				"description":         goalModel.Description,
				"target_amount":       goalModel.TargetAmount,
				"current_amount":      goalModel.CurrentAmount,
				"target_date":         goalModel.TargetDate,
				"category":            goalModel.Category,
				"priority":            goalModel.Priority,
				"status":              goalModel.Status,
				"auto_save_enabled":   goalModel.AutoSaveEnabled,
				"auto_save_amount":    goalModel.AutoSaveAmount,
				"auto_save_frequency": goalModel.AutoSaveFrequency,
				"auto_save_next_date": goalModel.AutoSaveNextDate,
				"completed_at":        goalModel.CompletedAt,
				"updated_at":          goalModel.UpdatedAt,
				"version":             gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.GoalModel{}).Where("id = ?", goal.ID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domainerror.ErrGoalNotFound
			}
			return domainerror.ErrGoalConcurrentUpdate
		}

		if len(goalModel.Milestones) == 0 {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&goalModel.Milestones).Error
	})
	if err != nil {
		return err
	}

	goal.Version++
	return nil
}

// AddContribution appends a contribution row.
func (r *goalRepository) AddContribution(ctx context.Context, contribution *entity.Contribution) error {
	result := conn(ctx, r.db).Create(model.ContributionFromEntity(contribution))
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete soft-deletes a goal from the database.
func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Where("id = ?", id).Delete(&model.GoalModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGoalNotFound
	}
	return nil
}
