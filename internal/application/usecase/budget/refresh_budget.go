package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/application/service"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// RefreshBudgetInput represents the input for refreshing a budget.
type RefreshBudgetInput struct {
	UserID   uuid.UUID
	BudgetID uuid.UUID
	Now      time.Time // Optional, defaults to the current time
}

// RefreshBudgetOutput represents the output of a budget refresh.
type RefreshBudgetOutput struct {
	Budget      *BudgetOutput
	AlertRaised bool
	EmailQueued bool
}

// RefreshBudgetUseCase recomputes and stores the cached spend of a budget and raises
// a threshold alert when one is due.
type RefreshBudgetUseCase struct {
	budgetRepo   adapter.BudgetRepository
	categoryRepo adapter.CategoryRepository
	userRepo     adapter.UserRepository
	aggregator   *service.SpendAggregator
	emailService adapter.EmailService
	events       *service.EventDispatcher
}

// NewRefreshBudgetUseCase creates a new RefreshBudgetUseCase instance.
func NewRefreshBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	userRepo adapter.UserRepository,
	aggregator *service.SpendAggregator,
	emailService adapter.EmailService,
	events *service.EventDispatcher,
) *RefreshBudgetUseCase {
	return &RefreshBudgetUseCase{
		budgetRepo:   budgetRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		aggregator:   aggregator,
		emailService: emailService,
		events:       events,
	}
}

// Execute performs the refresh.
func (uc *RefreshBudgetUseCase) Execute(ctx context.Context, input RefreshBudgetInput) (*RefreshBudgetOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.UserID, input.BudgetID)
	if err != nil {
		return nil, err
	}

	if err := uc.aggregator.Refresh(ctx, budget); err != nil {
		return nil, err
	}
	budget.UpdatedAt = now

	category := lookupCategory(ctx, uc.categoryRepo, budget.CategoryID)
	output := &RefreshBudgetOutput{}

	if budget.ShouldAlert(now) {
		output.AlertRaised = true
		budget.MarkAlerted(now)
	}

	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	// Only an alert stamped on the budget is announced, so a retry cannot send it twice
	if output.AlertRaised {
		output.EmailQueued = uc.queueAlertEmail(ctx, budget, category)
		uc.events.Dispatch(ctx, entity.NewDomainEvent(entity.EventBudgetAlert, budget.UserID, budget.ID, now, map[string]interface{}{
			"category_id":     budget.CategoryID.String(),
			"amount":          budget.Amount.String(),
			"spent":           budget.Spent.String(),
			"percentage_used": budget.PercentageUsed().String(),
			"threshold":       budget.AlertThreshold,
			"status":          string(budget.Status()),
		}))
	}

	output.Budget = toBudgetOutput(budget, category)
	return output, nil
}

// queueAlertEmail queues the alert email when the owner accepts notification emails.
// A failure is logged and does not block the refresh.
func (uc *RefreshBudgetUseCase) queueAlertEmail(ctx context.Context, budget *entity.Budget, category *entity.Category) bool {
	if uc.emailService == nil {
		return false
	}

	user, err := uc.userRepo.FindByID(ctx, budget.UserID)
	if err != nil {
		slog.Warn("Failed to load budget owner for alert email", "budget_id", budget.ID, "error", err)
		return false
	}
	if !user.WantsBudgetAlertEmails() {
		return false
	}

	categoryName := budget.Name
	if category != nil {
		categoryName = category.Name
	}

	err = uc.emailService.QueueBudgetAlertEmail(ctx, adapter.QueueBudgetAlertInput{
		UserID:         user.ID,
		BudgetID:       budget.ID,
		UserEmail:      user.Email,
		UserName:       user.Name,
		BudgetName:     budget.Name,
		CategoryName:   categoryName,
		Amount:         budget.Amount,
		Spent:          budget.Spent,
		PercentageUsed: budget.PercentageUsed(),
		Threshold:      budget.AlertThreshold,
		Currency:       user.Currency,
	})
	if err != nil {
		slog.Warn("Failed to queue budget alert email", "budget_id", budget.ID, "error", err)
		return false
	}
	return true
}
