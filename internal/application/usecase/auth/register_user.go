// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Email         string
	Name          string
	Password      string
	TermsAccepted bool
}

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
	Accounts     []*entity.Account
}

// RegisterUserUseCase handles user registration logic.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	accountRepo     adapter.AccountRepository
	transactor      adapter.Transactor
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	defaultCurrency string
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	accountRepo adapter.AccountRepository,
	transactor adapter.Transactor,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	defaultCurrency string,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		accountRepo:     accountRepo,
		transactor:      transactor,
		passwordService: passwordService,
		tokenService:    tokenService,
		defaultCurrency: defaultCurrency,
	}
}

// Execute performs the user registration. The user and their default accounts
// are created in the same database transaction.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	name := strings.TrimSpace(input.Name)

	// Validate terms acceptance
	if !input.TermsAccepted {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeTermsNotAccepted,
			"terms of service must be accepted",
			domainerror.ErrTermsNotAccepted,
		)
	}

	if name == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"name is required",
			domainerror.ErrMissingName,
		)
	}

	// Validate email format
	if !isValidEmail(email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	if err := uc.passwordService.CheckStrength(input.Password); err != nil {
		return nil, err
	}

	// Check if email already exists
	exists, err := uc.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeEmailExists,
			"email already exists",
			domainerror.ErrEmailAlreadyExists,
		)
	}

	passwordHash, err := uc.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := entity.NewUser(email, name, passwordHash, time.Now().UTC())
	user.Currency = uc.defaultCurrency
	accounts := entity.DefaultAccounts(user.ID, uc.defaultCurrency)

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		for _, account := range accounts {
			if err := uc.accountRepo.Create(ctx, account); err != nil {
				return fmt.Errorf("failed to create default account: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Generate tokens
	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, user.ID, user.Email, false)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &RegisterUserOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
		Accounts:     accounts,
	}, nil
}

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
