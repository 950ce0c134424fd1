package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/transaction"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	AccountID            string          `json:"account_id" binding:"required,uuid"`
	DestinationAccountID *string         `json:"destination_account_id,omitempty" binding:"omitempty,uuid"`
	CategoryID           *string         `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Type                 string          `json:"type" binding:"required,oneof=income expense transfer"`
	Amount               decimal.Decimal `json:"amount"`
	Description          string          `json:"description" binding:"required,min=1,max=255"`
	Date                 string          `json:"date" binding:"required"`
	PaymentMethod        string          `json:"payment_method,omitempty"`
	Currency             string          `json:"currency,omitempty" binding:"omitempty,len=3"`
	Status               *string         `json:"status,omitempty" binding:"omitempty,oneof=completed pending cancelled"`
	Tags                 []string        `json:"tags,omitempty"`
	Notes                string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	AccountID            *string          `json:"account_id,omitempty" binding:"omitempty,uuid"`
	DestinationAccountID *string          `json:"destination_account_id,omitempty" binding:"omitempty,uuid"`
	CategoryID           *string          `json:"category_id,omitempty" binding:"omitempty,uuid"`
	Type                 *string          `json:"type,omitempty" binding:"omitempty,oneof=income expense transfer"`
	Amount               *decimal.Decimal `json:"amount,omitempty"`
	Description          *string          `json:"description,omitempty" binding:"omitempty,min=1,max=255"`
	Date                 *string          `json:"date,omitempty"`
	PaymentMethod        *string          `json:"payment_method,omitempty"`
	Currency             *string          `json:"currency,omitempty" binding:"omitempty,len=3"`
	Status               *string          `json:"status,omitempty" binding:"omitempty,oneof=completed pending cancelled"`
	Tags                 *[]string        `json:"tags,omitempty"`
	Notes                *string          `json:"notes,omitempty" binding:"omitempty,max=1000"`
}

// TransactionCategoryResponse represents category information in transaction response.
type TransactionCategoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
	Type  string `json:"type"`
}

// TransactionAccountResponse represents account information in transaction response.
type TransactionAccountResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                   string                       `json:"id"`
	UserID               string                       `json:"user_id"`
	AccountID            string                       `json:"account_id"`
	Account              *TransactionAccountResponse  `json:"account,omitempty"`
	DestinationAccountID *string                      `json:"destination_account_id,omitempty"`
	DestinationAccount   *TransactionAccountResponse  `json:"destination_account,omitempty"`
	CategoryID           *string                      `json:"category_id,omitempty"`
	Category             *TransactionCategoryResponse `json:"category,omitempty"`
	Type                 string                       `json:"type"`
	Amount               string                       `json:"amount"`
	Description          string                       `json:"description"`
	Date                 string                       `json:"date"`
	PaymentMethod        string                       `json:"payment_method"`
	Currency             string                       `json:"currency"`
	Status               string                       `json:"status"`
	Tags                 []string                     `json:"tags"`
	Notes                string                       `json:"notes"`
	CreatedAt            time.Time                    `json:"created_at"`
	UpdatedAt            time.Time                    `json:"updated_at"`
}

// TransactionPaginationResponse represents pagination information in API responses.
type TransactionPaginationResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// TransactionTotalsResponse represents aggregated totals in API responses.
type TransactionTotalsResponse struct {
	IncomeTotal  string `json:"income_total"`
	ExpenseTotal string `json:"expense_total"`
	NetTotal     string `json:"net_total"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse         `json:"transactions"`
	Pagination   TransactionPaginationResponse `json:"pagination"`
	Totals       TransactionTotalsResponse     `json:"totals"`
}

// ToTransactionResponse converts a TransactionOutput to a TransactionResponse DTO.
func ToTransactionResponse(txn *transaction.TransactionOutput) TransactionResponse {
	tags := txn.Tags
	if tags == nil {
		tags = []string{}
	}

	response := TransactionResponse{
		ID:            txn.ID.String(),
		UserID:        txn.UserID.String(),
		AccountID:     txn.AccountID.String(),
		Type:          string(txn.Type),
		Amount:        txn.Amount.String(),
		Description:   txn.Description,
		Date:          txn.Date.Format(DateLayout),
		PaymentMethod: string(txn.PaymentMethod),
		Currency:      txn.Currency,
		Status:        string(txn.Status),
		Tags:          tags,
		Notes:         txn.Notes,
		CreatedAt:     txn.CreatedAt,
		UpdatedAt:     txn.UpdatedAt,
	}

	if txn.Account != nil {
		response.Account = &TransactionAccountResponse{
			ID:   txn.Account.ID.String(),
			Name: txn.Account.Name,
			Kind: string(txn.Account.Kind),
		}
	}

	if txn.DestinationAccountID != nil {
		destinationIDStr := txn.DestinationAccountID.String()
		response.DestinationAccountID = &destinationIDStr
	}

	if txn.DestinationAccount != nil {
		response.DestinationAccount = &TransactionAccountResponse{
			ID:   txn.DestinationAccount.ID.String(),
			Name: txn.DestinationAccount.Name,
			Kind: string(txn.DestinationAccount.Kind),
		}
	}

	if txn.CategoryID != nil {
		categoryIDStr := txn.CategoryID.String()
		response.CategoryID = &categoryIDStr
	}

	if txn.Category != nil {
		response.Category = &TransactionCategoryResponse{
			ID:    txn.Category.ID.String(),
			Name:  txn.Category.Name,
			Color: txn.Category.Color,
			Icon:  txn.Category.Icon,
			Type:  string(txn.Category.Type),
		}
	}

	return response
}

// ToTransactionListResponse converts a ListTransactionsOutput to TransactionListResponse.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, txn := range output.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}

	return TransactionListResponse{
		Transactions: transactions,
		Pagination: TransactionPaginationResponse{
			Page:       output.Pagination.Page,
			Limit:      output.Pagination.Limit,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
		Totals: TransactionTotalsResponse{
			IncomeTotal:  output.Totals.IncomeTotal.String(),
			ExpenseTotal: output.Totals.ExpenseTotal.String(),
			NetTotal:     output.Totals.NetTotal.String(),
		},
	}
}
