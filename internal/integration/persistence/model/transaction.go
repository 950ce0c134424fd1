package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
type TransactionModel struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	DestinationAccountID *uuid.UUID      `gorm:"type:uuid;index"`
	CategoryID           *uuid.UUID      `gorm:"type:uuid;index"`
	Type                 string          `gorm:"type:varchar(10);not null;index"`
	Amount               decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description          string          `gorm:"type:varchar(255);not null"`
	Date                 time.Time       `gorm:"type:date;not null;index"`
	PaymentMethod        string          `gorm:"type:varchar(20)"`
	Currency             string          `gorm:"type:varchar(3);not null;default:'XOF'"`
	Status               string          `gorm:"type:varchar(10);not null;default:'completed';index"`
	Tags                 []string        `gorm:"type:text;serializer:json"`
	Notes                string          `gorm:"type:text"`
	CreatedAt            time.Time       `gorm:"not null"`
	UpdatedAt            time.Time       `gorm:"not null"`
	DeletedAt            gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	// Relationships (not loaded by default, use Preload)
	Category           *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
	Account            *AccountModel  `gorm:"foreignKey:AccountID;references:ID"`
	DestinationAccount *AccountModel  `gorm:"foreignKey:DestinationAccountID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}

	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}

	return &entity.Transaction{
		ID:                   m.ID,
		UserID:               m.UserID,
		AccountID:            m.AccountID,
		DestinationAccountID: m.DestinationAccountID,
		CategoryID:           m.CategoryID,
		Type:                 entity.TransactionType(m.Type),
		Amount:               m.Amount,
		Description:          m.Description,
		Date:                 m.Date,
		PaymentMethod:        entity.PaymentMethod(m.PaymentMethod),
		Currency:             m.Currency,
		Status:               entity.TransactionStatus(m.Status),
		Tags:                 tags,
		Notes:                m.Notes,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
		DeletedAt:            deletedAt,
	}
}

// ToEntityWithDetails converts a TransactionModel with its preloaded relations.
func (m *TransactionModel) ToEntityWithDetails() *entity.TransactionWithDetails {
	result := &entity.TransactionWithDetails{
		Transaction: m.ToEntity(),
	}

	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}
	if m.Account != nil {
		result.Account = m.Account.ToEntity()
	}
	if m.DestinationAccount != nil {
		result.DestinationAccount = m.DestinationAccount.ToEntity()
	}

	return result
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(transaction *entity.Transaction) *TransactionModel {
	var deletedAt gorm.DeletedAt
	if transaction.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *transaction.DeletedAt, Valid: true}
	}

	return &TransactionModel{
		ID:                   transaction.ID,
		UserID:               transaction.UserID,
		AccountID:            transaction.AccountID,
		DestinationAccountID: transaction.DestinationAccountID,
		CategoryID:           transaction.CategoryID,
		Type:                 string(transaction.Type),
		Amount:               transaction.Amount,
		Description:          transaction.Description,
		Date:                 transaction.Date,
		PaymentMethod:        string(transaction.PaymentMethod),
		Currency:             transaction.Currency,
		Status:               string(transaction.Status),
		Tags:                 transaction.Tags,
		Notes:                transaction.Notes,
		CreatedAt:            transaction.CreatedAt,
		UpdatedAt:            transaction.UpdatedAt,
		DeletedAt:            deletedAt,
	}
}
