// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
	}
}

// QueueBudgetAlertEmail queues an email warning that a budget crossed its alert threshold.
func (s *Service) QueueBudgetAlertEmail(ctx context.Context, input adapter.QueueBudgetAlertInput) error {
	subject := fmt.Sprintf("Budget alert: %s reached %s%%", input.BudgetName, input.PercentageUsed.StringFixed(0))

	templateData := map[string]interface{}{
		"user_name":       input.UserName,
		"budget_name":     input.BudgetName,
		"category_name":   input.CategoryName,
		"amount":          formatMoney(input.Amount, input.Currency),
		"spent":           formatMoney(input.Spent, input.Currency),
		"percentage_used": input.PercentageUsed.StringFixed(0),
		"threshold":       fmt.Sprintf("%d", input.Threshold),
		"budgets_url":     s.appBaseURL + "/budgets",
	}

	job := entity.NewEmailJob(
		entity.TemplateBudgetAlert,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)
	job.UserID = input.UserID
	job.SourceID = input.BudgetID

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue budget alert email",
			err,
		)
	}

	return nil
}

// QueueGoalCompletedEmail queues an email celebrating a goal that reached its target.
func (s *Service) QueueGoalCompletedEmail(ctx context.Context, input adapter.QueueGoalCompletedInput) error {
	subject := fmt.Sprintf("Goal reached: %s", input.GoalName)

	templateData := map[string]interface{}{
		"user_name":     input.UserName,
		"goal_name":     input.GoalName,
		"target_amount": formatMoney(input.TargetAmount, input.Currency),
		"saved_amount":  formatMoney(input.SavedAmount, input.Currency),
		"goals_url":     s.appBaseURL + "/goals",
	}

	job := entity.NewEmailJob(
		entity.TemplateGoalCompleted,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)
	job.UserID = input.UserID
	job.SourceID = input.GoalID

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue goal completed email",
			err,
		)
	}

	return nil
}

func formatMoney(amount decimal.Decimal, currency string) string {
	if currency == "" {
		currency = entity.DefaultCurrency
	}
	return amount.StringFixed(2) + " " + currency
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
