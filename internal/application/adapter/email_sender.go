// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// SendEmailInput is one rendered notification. JobID identifies the queued job
// so the provider can drop a resend of the same notification.
type SendEmailInput struct {
	JobID    uuid.UUID
	Template entity.EmailTemplateType
	To       string
	Name     string
	Subject  string
	HTML     string
	Text     string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing notification emails.
type EmailService interface {
	// QueueBudgetAlertEmail queues an email warning that a budget crossed its threshold.
	QueueBudgetAlertEmail(ctx context.Context, input QueueBudgetAlertInput) error

	// QueueGoalCompletedEmail queues an email celebrating a completed goal.
	QueueGoalCompletedEmail(ctx context.Context, input QueueGoalCompletedInput) error
}

// QueueBudgetAlertInput represents the input for queueing a budget alert email.
type QueueBudgetAlertInput struct {
	UserID         uuid.UUID
	BudgetID       uuid.UUID
	UserEmail      string
	UserName       string
	BudgetName     string
	CategoryName   string
	Amount         decimal.Decimal
	Spent          decimal.Decimal
	PercentageUsed decimal.Decimal
	Threshold      int
	Currency       string
}

// QueueGoalCompletedInput represents the input for queueing a goal completed email.
type QueueGoalCompletedInput struct {
	UserID       uuid.UUID
	GoalID       uuid.UUID
	UserEmail    string
	UserName     string
	GoalName     string
	TargetAmount decimal.Decimal
	SavedAmount  decimal.Decimal
	Currency     string
}
