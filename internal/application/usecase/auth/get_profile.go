package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// GetProfileUseCase returns the authenticated user.
type GetProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(userRepo adapter.UserRepository) *GetProfileUseCase {
	return &GetProfileUseCase{
		userRepo: userRepo,
	}
}

// Execute loads the user by ID.
func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeUserNotFound,
				"user not found",
				domainerror.ErrUserNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
