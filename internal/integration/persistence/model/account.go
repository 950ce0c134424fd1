// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// AccountModel represents the accounts table in the database.
type AccountModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(100);not null"`
	Institution string          `gorm:"type:varchar(100)"`
	Kind        string          `gorm:"type:varchar(20);not null"`
	Balance     decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'XOF'"`
	IsActive    bool            `gorm:"not null;index"`
	Version     int64           `gorm:"not null;default:1"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts an AccountModel to a domain Account entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Institution: m.Institution,
		Kind:        entity.AccountKind(m.Kind),
		Balance:     m.Balance,
		Currency:    m.Currency,
		IsActive:    m.IsActive,
		Version:     m.Version,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// AccountFromEntity creates an AccountModel from a domain Account entity.
func AccountFromEntity(account *entity.Account) *AccountModel {
	return &AccountModel{
		ID:          account.ID,
		UserID:      account.UserID,
		Name:        account.Name,
		Institution: account.Institution,
		Kind:        string(account.Kind),
		Balance:     account.Balance,
		Currency:    account.Currency,
		IsActive:    account.IsActive,
		Version:     account.Version,
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
	}
}
