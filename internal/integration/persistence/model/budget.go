package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	"github.com/AminataF33/gestionbudgetback/internal/domain/valueobject"
)

// BudgetModel represents the budgets table in the database.
type BudgetModel struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID       `gorm:"type:uuid;not null;index:idx_budgets_owner_category"`
	CategoryID           uuid.UUID       `gorm:"type:uuid;not null;index:idx_budgets_owner_category"`
	Name                 string          `gorm:"type:varchar(100);not null"`
	Amount               decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Spent                decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Period               string          `gorm:"type:varchar(20);not null"`
	StartDate            time.Time       `gorm:"type:date;not null"`
	EndDate              time.Time       `gorm:"type:date;not null"`
	AlertThreshold       int             `gorm:"not null"`
	NotificationsEnabled bool            `gorm:"not null"`
	LastAlertAt          *time.Time
	IsActive             bool            `gorm:"not null;index"`
	CreatedAt            time.Time       `gorm:"not null"`
	UpdatedAt            time.Time       `gorm:"not null"`
	DeletedAt            gorm.DeletedAt  `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Budget{
		ID:                   m.ID,
		UserID:               m.UserID,
		CategoryID:           m.CategoryID,
		Name:                 m.Name,
		Amount:               m.Amount,
		Spent:                m.Spent,
		Period:               valueobject.Period(m.Period),
		StartDate:            m.StartDate,
		EndDate:              m.EndDate,
		AlertThreshold:       m.AlertThreshold,
		NotificationsEnabled: m.NotificationsEnabled,
		LastAlertAt:          m.LastAlertAt,
		IsActive:             m.IsActive,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
		DeletedAt:            deletedAt,
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	var deletedAt gorm.DeletedAt
	if budget.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *budget.DeletedAt, Valid: true}
	}

	return &BudgetModel{
		ID:                   budget.ID,
		UserID:               budget.UserID,
		CategoryID:           budget.CategoryID,
		Name:                 budget.Name,
		Amount:               budget.Amount,
		Spent:                budget.Spent,
		Period:               string(budget.Period),
		StartDate:            budget.StartDate,
		EndDate:              budget.EndDate,
		AlertThreshold:       budget.AlertThreshold,
		NotificationsEnabled: budget.NotificationsEnabled,
		LastAlertAt:          budget.LastAlertAt,
		IsActive:             budget.IsActive,
		CreatedAt:            budget.CreatedAt,
		UpdatedAt:            budget.UpdatedAt,
		DeletedAt:            deletedAt,
	}
}
