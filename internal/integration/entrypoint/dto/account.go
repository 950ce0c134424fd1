package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/account"
)

// CreateAccountRequest represents the request body for account creation.
type CreateAccountRequest struct {
	Name           string          `json:"name" binding:"required,min=1,max=100"`
	Institution    string          `json:"institution,omitempty" binding:"omitempty,max=100"`
	Kind           string          `json:"kind" binding:"required,oneof=checking savings credit investment"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Currency       string          `json:"currency,omitempty" binding:"omitempty,len=3"`
}

// UpdateAccountRequest represents the request body for account update.
// The balance is derived from transactions and cannot be edited.
type UpdateAccountRequest struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Institution *string `json:"institution,omitempty" binding:"omitempty,max=100"`
	Currency    *string `json:"currency,omitempty" binding:"omitempty,len=3"`
}

// AccountResponse represents a single account in API responses.
type AccountResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Institution string    `json:"institution"`
	Kind        string    `json:"kind"`
	Balance     string    `json:"balance"`
	Currency    string    `json:"currency"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AccountTotalsResponse represents the net-worth totals of a user's accounts.
type AccountTotalsResponse struct {
	Assets      string `json:"assets"`
	Liabilities string `json:"liabilities"`
	NetWorth    string `json:"net_worth"`
}

// AccountListResponse represents the response for listing accounts.
type AccountListResponse struct {
	Accounts []AccountResponse    `json:"accounts"`
	Totals   AccountTotalsResponse `json:"totals"`
}

// ToAccountResponse converts an AccountOutput to an AccountResponse DTO.
func ToAccountResponse(output *account.AccountOutput) AccountResponse {
	return AccountResponse{
		ID:          output.ID.String(),
		Name:        output.Name,
		Institution: output.Institution,
		Kind:        string(output.Kind),
		Balance:     output.Balance.String(),
		Currency:    output.Currency,
		IsActive:    output.IsActive,
		CreatedAt:   output.CreatedAt,
		UpdatedAt:   output.UpdatedAt,
	}
}

// ToAccountListResponse converts a ListAccountsOutput to an AccountListResponse.
func ToAccountListResponse(output *account.ListAccountsOutput) AccountListResponse {
	accounts := make([]AccountResponse, len(output.Accounts))
	for i, a := range output.Accounts {
		accounts[i] = ToAccountResponse(a)
	}
	return AccountListResponse{
		Accounts: accounts,
		Totals: AccountTotalsResponse{
			Assets:      output.Totals.Assets.String(),
			Liabilities: output.Totals.Liabilities.String(),
			NetWorth:    output.Totals.NetWorth.String(),
		},
	}
}
