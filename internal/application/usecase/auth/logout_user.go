package auth

import (
	"context"
	"fmt"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
)

// LogoutUserInput names the session to close. AllSessions closes every
// session of the token's owner.
type LogoutUserInput struct {
	RefreshToken string
	AllSessions  bool
}

// LogoutUserOutput reports whether a live session was closed.
type LogoutUserOutput struct {
	Revoked bool
	Message string
}

// LogoutUserUseCase closes sessions.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
	}
}

// Execute revokes the refresh token. An unknown or expired token is not an
// error; the output then reports that nothing was revoked.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	claims, err := uc.tokenService.ValidateRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return &LogoutUserOutput{Message: "Successfully logged out"}, nil
	}
	live, err := uc.tokenService.IsRefreshTokenValid(ctx, input.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to check token validity: %w", err)
	}

	if input.AllSessions {
		if err := uc.tokenService.InvalidateAllUserTokens(ctx, claims.UserID); err != nil {
			return nil, fmt.Errorf("failed to revoke sessions: %w", err)
		}
		return &LogoutUserOutput{Revoked: true, Message: "Logged out of all sessions"}, nil
	}
	if !live {
		return &LogoutUserOutput{Message: "Successfully logged out"}, nil
	}

	if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to revoke session: %w", err)
	}
	return &LogoutUserOutput{Revoked: true, Message: "Successfully logged out"}, nil
}
