package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// ListAccountsInput represents the input for listing accounts.
type ListAccountsInput struct {
	UserID          uuid.UUID
	IncludeInactive bool
}

// AccountTotalsOutput represents balance totals over active accounts.
type AccountTotalsOutput struct {
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
	NetWorth    decimal.Decimal
}

// ListAccountsOutput represents the output of listing accounts.
type ListAccountsOutput struct {
	Accounts []*AccountOutput
	Totals   AccountTotalsOutput
}

// ListAccountsUseCase handles listing accounts logic.
type ListAccountsUseCase struct {
	accountRepo adapter.AccountRepository
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(accountRepo adapter.AccountRepository) *ListAccountsUseCase {
	return &ListAccountsUseCase{
		accountRepo: accountRepo,
	}
}

// Execute performs the account listing.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, input ListAccountsInput) (*ListAccountsOutput, error) {
	accounts, err := uc.accountRepo.FindByUserID(ctx, input.UserID, input.IncludeInactive)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	totals := entity.SummarizeAccounts(accounts)

	output := &ListAccountsOutput{
		Accounts: make([]*AccountOutput, len(accounts)),
		Totals: AccountTotalsOutput{
			Assets:      totals.Assets,
			Liabilities: totals.Liabilities,
			NetWorth:    totals.NetWorth,
		},
	}
	for i, account := range accounts {
		output.Accounts[i] = toAccountOutput(account)
	}

	return output, nil
}
