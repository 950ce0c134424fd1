// Package account contains account-related use cases.
package account

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// MaxAccountNameLength is the maximum allowed length for account names.
const MaxAccountNameLength = 100

var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// AccountOutput represents a single account in the output.
type AccountOutput struct {
	ID          uuid.UUID
	Name        string
	Institution string
	Kind        entity.AccountKind
	Balance     decimal.Decimal
	Currency    string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func toAccountOutput(account *entity.Account) *AccountOutput {
	return &AccountOutput{
		ID:          account.ID,
		Name:        account.Name,
		Institution: account.Institution,
		Kind:        account.Kind,
		Balance:     account.Balance,
		Currency:    account.Currency,
		IsActive:    account.IsActive,
		CreatedAt:   account.CreatedAt,
		UpdatedAt:   account.UpdatedAt,
	}
}

// findOwnedAccount loads an account and hides accounts of other users.
func findOwnedAccount(ctx context.Context, repo adapter.AccountRepository, userID, accountID uuid.UUID) (*entity.Account, error) {
	account, err := repo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domainerror.ErrNotFound) {
			return nil, accountNotFound()
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	if account.UserID != userID {
		return nil, accountNotFound()
	}
	return account, nil
}

func accountNotFound() error {
	return domainerror.NewAccountError(
		domainerror.ErrCodeAccountNotFound,
		"account not found",
		domainerror.ErrAccountNotFound,
	)
}

// validateName trims and checks an account name.
func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainerror.NewAccountError(
			domainerror.ErrCodeAccountNameRequired,
			"account name is required",
			domainerror.ErrAccountNameRequired,
		)
	}
	if len(name) > MaxAccountNameLength {
		return "", domainerror.NewAccountError(
			domainerror.ErrCodeAccountNameRequired,
			fmt.Sprintf("account name must not exceed %d characters", MaxAccountNameLength),
			domainerror.ErrAccountNameRequired,
		)
	}
	return name, nil
}

// normalizeCurrency upper-cases a currency code and checks its format.
func normalizeCurrency(currency string) (string, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !currencyRegex.MatchString(currency) {
		return "", domainerror.NewAccountError(
			domainerror.ErrCodeInvalidCurrency,
			"currency must be a 3-letter ISO code",
			domainerror.ErrInvalidCurrency,
		)
	}
	return currency, nil
}
