package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/budget"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	CategoryID           string          `json:"category_id" binding:"required,uuid"`
	Name                 string          `json:"name,omitempty" binding:"omitempty,max=100"`
	Amount               decimal.Decimal `json:"amount"`
	Period               string          `json:"period" binding:"required,oneof=weekly monthly quarterly yearly"`
	StartDate            string          `json:"start_date" binding:"required"`
	EndDate              *string         `json:"end_date,omitempty"`
	AlertThreshold       *int            `json:"alert_threshold,omitempty"`
	NotificationsEnabled *bool           `json:"notifications_enabled,omitempty"`
}

// UpdateBudgetRequest represents the request body for budget update.
type UpdateBudgetRequest struct {
	Name                 *string          `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Amount               *decimal.Decimal `json:"amount,omitempty"`
	StartDate            *string          `json:"start_date,omitempty"`
	EndDate              *string          `json:"end_date,omitempty"`
	AlertThreshold       *int             `json:"alert_threshold,omitempty"`
	NotificationsEnabled *bool            `json:"notifications_enabled,omitempty"`
	IsActive             *bool            `json:"is_active,omitempty"`
}

// BudgetResponse represents a single budget in API responses.
type BudgetResponse struct {
	ID                   string     `json:"id"`
	CategoryID           string     `json:"category_id"`
	CategoryName         string     `json:"category_name"`
	Name                 string     `json:"name"`
	Amount               string     `json:"amount"`
	Spent                string     `json:"spent"`
	Remaining            string     `json:"remaining"`
	PercentageUsed       string     `json:"percentage_used"`
	Status               string     `json:"status"`
	Period               string     `json:"period"`
	StartDate            string     `json:"start_date"`
	EndDate              string     `json:"end_date"`
	AlertThreshold       int        `json:"alert_threshold"`
	NotificationsEnabled bool       `json:"notifications_enabled"`
	LastAlertAt          *time.Time `json:"last_alert_at,omitempty"`
	IsActive             bool       `json:"is_active"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// BudgetRefreshResponse represents the response of a budget refresh.
type BudgetRefreshResponse struct {
	Budget      BudgetResponse `json:"budget"`
	AlertRaised bool           `json:"alert_raised"`
	EmailQueued bool           `json:"email_queued"`
}

// ToBudgetResponse converts a BudgetOutput to a BudgetResponse DTO.
func ToBudgetResponse(output *budget.BudgetOutput) BudgetResponse {
	return BudgetResponse{
		ID:                   output.ID.String(),
		CategoryID:           output.CategoryID.String(),
		CategoryName:         output.CategoryName,
		Name:                 output.Name,
		Amount:               output.Amount.String(),
		Spent:                output.Spent.String(),
		Remaining:            output.Remaining.String(),
		PercentageUsed:       output.PercentageUsed.StringFixed(2),
		Status:               string(output.Status),
		Period:               string(output.Period),
		StartDate:            output.StartDate.Format(DateLayout),
		EndDate:              output.EndDate.Format(DateLayout),
		AlertThreshold:       output.AlertThreshold,
		NotificationsEnabled: output.NotificationsEnabled,
		LastAlertAt:          output.LastAlertAt,
		IsActive:             output.IsActive,
		CreatedAt:            output.CreatedAt,
		UpdatedAt:            output.UpdatedAt,
	}
}

// ToBudgetListResponse converts a list of BudgetOutput to BudgetListResponse.
func ToBudgetListResponse(outputs []*budget.BudgetOutput) BudgetListResponse {
	budgets := make([]BudgetResponse, len(outputs))
	for i, output := range outputs {
		budgets[i] = ToBudgetResponse(output)
	}
	return BudgetListResponse{
		Budgets: budgets,
	}
}
