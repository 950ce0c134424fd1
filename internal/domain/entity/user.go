// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the owner of accounts, ledger entries, budgets and goals.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	// Currency is the single working currency of the owner's ledger.
	Currency string

	// EmailNotifications is the master switch; the alert flags only matter when it is on.
	EmailNotifications bool
	BudgetAlerts       bool
	GoalAlerts         bool

	TermsAcceptedAt time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser creates a User working in DefaultCurrency with every notification enabled.
func NewUser(email, name, passwordHash string, termsAcceptedAt time.Time) *User {
	now := time.Now().UTC()
	return &User{
		ID:                 uuid.New(),
		Email:              email,
		Name:               name,
		PasswordHash:       passwordHash,
		Currency:           DefaultCurrency,
		EmailNotifications: true,
		BudgetAlerts:       true,
		GoalAlerts:         true,
		TermsAcceptedAt:    termsAcceptedAt,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// WantsBudgetAlertEmails reports whether budget threshold alerts should be emailed.
func (u *User) WantsBudgetAlertEmails() bool {
	return u.EmailNotifications && u.BudgetAlerts
}

// WantsGoalEmails reports whether goal completion should be emailed.
func (u *User) WantsGoalEmails() bool {
	return u.EmailNotifications && u.GoalAlerts
}
