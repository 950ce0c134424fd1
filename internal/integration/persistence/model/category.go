package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
// Default categories have no owner.
type CategoryModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name      string         `gorm:"type:varchar(50);not null"`
	Color     string         `gorm:"type:varchar(7);default:'#6366F1'"`
	Icon      string         `gorm:"type:varchar(50);default:'tag'"`
	Type      string         `gorm:"type:varchar(10);not null"`
	IsDefault bool           `gorm:"not null;default:false;index"`
	OwnerID   *uuid.UUID     `gorm:"type:uuid;index"`
	IsActive  bool           `gorm:"not null"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"` // Soft-delete support
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	return &entity.Category{
		ID:        m.ID,
		Name:      m.Name,
		Color:     m.Color,
		Icon:      m.Icon,
		Type:      entity.CategoryType(m.Type),
		IsDefault: m.IsDefault,
		OwnerID:   m.OwnerID,
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: deletedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	var deletedAt gorm.DeletedAt
	if category.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *category.DeletedAt, Valid: true}
	}

	return &CategoryModel{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		Type:      string(category.Type),
		IsDefault: category.IsDefault,
		OwnerID:   category.OwnerID,
		IsActive:  category.IsActive,
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
		DeletedAt: deletedAt,
	}
}
