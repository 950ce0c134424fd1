package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// UserModel represents the user table in the database.
type UserModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email              string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name               string    `gorm:"type:varchar(100);not null"`
	PasswordHash       string    `gorm:"type:varchar(255);not null"`
	Currency           string    `gorm:"type:varchar(3);not null;default:'XOF'"`
	EmailNotifications bool      `gorm:"not null"`
	BudgetAlerts       bool      `gorm:"not null"`
	GoalAlerts         bool      `gorm:"not null"`
	TermsAcceptedAt    time.Time `gorm:"not null"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:                 m.ID,
		Email:              m.Email,
		Name:               m.Name,
		PasswordHash:       m.PasswordHash,
		Currency:           m.Currency,
		EmailNotifications: m.EmailNotifications,
		BudgetAlerts:       m.BudgetAlerts,
		GoalAlerts:         m.GoalAlerts,
		TermsAcceptedAt:    m.TermsAcceptedAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// UserFromEntity creates a UserModel from a domain User entity.
func UserFromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:                 user.ID,
		Email:              user.Email,
		Name:               user.Name,
		PasswordHash:       user.PasswordHash,
		Currency:           user.Currency,
		EmailNotifications: user.EmailNotifications,
		BudgetAlerts:       user.BudgetAlerts,
		GoalAlerts:         user.GoalAlerts,
		TermsAcceptedAt:    user.TermsAcceptedAt,
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
	}
}

// RefreshTokenModel represents the refresh_tokens table for token invalidation tracking.
type RefreshTokenModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token       string    `gorm:"type:varchar(500);uniqueIndex;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Invalidated bool      `gorm:"default:false"`
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the RefreshTokenModel.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
