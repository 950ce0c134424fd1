package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// RefreshTokenInput represents the input for token refresh.
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenOutput represents the output of token refresh.
type RefreshTokenOutput struct {
	AccessToken  string
	RefreshToken string
}

// RefreshTokenUseCase rotates a session's refresh token.
type RefreshTokenUseCase struct {
	userRepo     adapter.UserRepository
	tokenService adapter.TokenService
}

// NewRefreshTokenUseCase creates a new RefreshTokenUseCase instance.
func NewRefreshTokenUseCase(userRepo adapter.UserRepository, tokenService adapter.TokenService) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Execute swaps a live refresh token for a new pair. The old token is revoked first,
// so replaying it fails. New tokens carry the owner's current email.
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, input RefreshTokenInput) (*RefreshTokenOutput, error) {
	claims, err := uc.tokenService.ValidateRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"invalid or expired refresh token",
			domainerror.ErrInvalidToken,
		)
	}

	valid, err := uc.tokenService.IsRefreshTokenValid(ctx, input.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check token validity: %w", err)
	}
	if !valid {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeSessionRevoked,
			"refresh token has been revoked",
			domainerror.ErrSessionRevoked,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if errors.Is(err, domainerror.ErrNotFound) {
		if err := uc.tokenService.InvalidateAllUserTokens(ctx, claims.UserID); err != nil {
			return nil, fmt.Errorf("failed to revoke orphaned sessions: %w", err)
		}
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeSessionOwnerGone,
			"session owner no longer exists",
			domainerror.ErrSessionOwnerGone,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session owner: %w", err)
	}

	if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to invalidate old token: %w", err)
	}

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Email, false)
	if err != nil {
		return nil, fmt.Errorf("failed to generate new tokens: %w", err)
	}

	return &RefreshTokenOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
	}, nil
}
