package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// LoginUserOutput carries the session and the owner's active accounts.
type LoginUserOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
	Accounts     []*entity.Account
}

// LoginUserUseCase opens a session for a ledger owner.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	accountRepo     adapter.AccountRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	accountRepo adapter.AccountRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		accountRepo:     accountRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute checks the credentials and returns a token pair.
// An unknown email and a wrong password produce the same error.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	user, err := uc.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if errors.Is(err, domainerror.ErrNotFound) {
		return nil, invalidCredentials()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !uc.passwordService.Matches(user.PasswordHash, input.Password) {
		return nil, invalidCredentials()
	}

	accounts, err := uc.accountRepo.FindByUserID(ctx, user.ID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Email, input.RememberMe)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &LoginUserOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
		Accounts:     accounts,
	}, nil
}

func invalidCredentials() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid email or password",
		domainerror.ErrInvalidCredentials,
	)
}
