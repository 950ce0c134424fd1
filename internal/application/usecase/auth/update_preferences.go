package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// UpdatePreferencesInput represents the profile fields a user may change.
// Nil fields are left untouched.
type UpdatePreferencesInput struct {
	UserID             uuid.UUID
	Name               *string
	EmailNotifications *bool
	BudgetAlerts       *bool
	GoalAlerts         *bool
}

// UpdatePreferencesUseCase handles profile and notification preference changes.
type UpdatePreferencesUseCase struct {
	userRepo adapter.UserRepository
	profile  *GetProfileUseCase
}

// NewUpdatePreferencesUseCase creates a new UpdatePreferencesUseCase instance.
func NewUpdatePreferencesUseCase(userRepo adapter.UserRepository) *UpdatePreferencesUseCase {
	return &UpdatePreferencesUseCase{
		userRepo: userRepo,
		profile:  NewGetProfileUseCase(userRepo),
	}
}

// Execute applies the requested changes and returns the updated user.
func (uc *UpdatePreferencesUseCase) Execute(ctx context.Context, input UpdatePreferencesInput) (*entity.User, error) {
	user, err := uc.profile.Execute(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeMissingFields,
				"name is required",
				domainerror.ErrMissingName,
			)
		}
		user.Name = name
	}
	if input.EmailNotifications != nil {
		user.EmailNotifications = *input.EmailNotifications
	}
	if input.BudgetAlerts != nil {
		user.BudgetAlerts = *input.BudgetAlerts
	}
	if input.GoalAlerts != nil {
		user.GoalAlerts = *input.GoalAlerts
	}
	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}
