package service

import (
	"context"
	"log/slog"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// GoalCompletionNotifier queues the goal completed email for owners who accept goal alerts.
type GoalCompletionNotifier struct {
	userRepo     adapter.UserRepository
	emailService adapter.EmailService
}

// NewGoalCompletionNotifier creates a new GoalCompletionNotifier instance.
// A nil emailService disables notifications.
func NewGoalCompletionNotifier(userRepo adapter.UserRepository, emailService adapter.EmailService) *GoalCompletionNotifier {
	return &GoalCompletionNotifier{
		userRepo:     userRepo,
		emailService: emailService,
	}
}

// Notify queues the email. Failures are logged because the contribution is already committed.
func (n *GoalCompletionNotifier) Notify(ctx context.Context, goal *entity.Goal) {
	if n == nil || n.emailService == nil {
		return
	}

	user, err := n.userRepo.FindByID(ctx, goal.UserID)
	if err != nil {
		slog.Warn("Failed to load goal owner for completion email", "goal_id", goal.ID, "error", err)
		return
	}
	if !user.WantsGoalEmails() {
		return
	}

	err = n.emailService.QueueGoalCompletedEmail(ctx, adapter.QueueGoalCompletedInput{
		UserID:       user.ID,
		GoalID:       goal.ID,
		UserEmail:    user.Email,
		UserName:     user.Name,
		GoalName:     goal.Name,
		TargetAmount: goal.TargetAmount,
		SavedAmount:  goal.CurrentAmount,
		Currency:     user.Currency,
	})
	if err != nil {
		slog.Warn("Failed to queue goal completed email", "goal_id", goal.ID, "error", err)
	}
}
