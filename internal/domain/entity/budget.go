package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/domain/valueobject"
)

// BudgetStatus classifies budget consumption.
type BudgetStatus string

const (
	BudgetStatusOnTrack  BudgetStatus = "on_track"
	BudgetStatusWarning  BudgetStatus = "warning"
	BudgetStatusExceeded BudgetStatus = "exceeded"
)

// DefaultAlertThreshold is the percentage at which budget alerts fire when none is given.
const DefaultAlertThreshold = 80

// AlertCooldown is the minimum delay between two alerts for the same budget.
const AlertCooldown = 24 * time.Hour

var hundred = decimal.NewFromInt(100)

// Budget caps spending in one expense category over a date range.
// Spent is a cached aggregate refreshed from completed expense entries.
type Budget struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	CategoryID           uuid.UUID
	Name                 string
	Amount               decimal.Decimal
	Spent                decimal.Decimal
	Period               valueobject.Period
	StartDate            time.Time
	EndDate              time.Time // Inclusive
	AlertThreshold       int       // Percentage, 1..100
	NotificationsEnabled bool
	LastAlertAt          *time.Time
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            *time.Time // Soft-delete support
}

// NewBudget creates a new active Budget entity.
func NewBudget(
	userID, categoryID uuid.UUID,
	name string,
	amount decimal.Decimal,
	period valueobject.Period,
	startDate, endDate time.Time,
	alertThreshold int,
	notificationsEnabled bool,
) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:                   uuid.New(),
		UserID:               userID,
		CategoryID:           categoryID,
		Name:                 name,
		Amount:               amount,
		Spent:                decimal.Zero,
		Period:               period,
		StartDate:            startDate,
		EndDate:              endDate,
		AlertThreshold:       alertThreshold,
		NotificationsEnabled: notificationsEnabled,
		IsActive:             true,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// Percentage returns part as a percentage of whole, rounded to two decimals.
// A non-positive whole yields zero.
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

// PercentageUsed returns the cached spend as a percentage of the budget amount.
func (b *Budget) PercentageUsed() decimal.Decimal {
	return Percentage(b.Spent, b.Amount)
}

// Remaining returns the amount left before the budget is exhausted (negative once exceeded).
func (b *Budget) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.Spent)
}

// Status classifies the budget: exceeded at 100% or more, warning at the alert threshold.
func (b *Budget) Status() BudgetStatus {
	pct := b.PercentageUsed()
	if pct.GreaterThanOrEqual(hundred) {
		return BudgetStatusExceeded
	}
	if pct.GreaterThanOrEqual(decimal.NewFromInt(int64(b.AlertThreshold))) {
		return BudgetStatusWarning
	}
	return BudgetStatusOnTrack
}

// ShouldAlert reports whether an alert is due at now: notifications are on, the threshold
// is reached and no alert was sent during the last 24 hours.
func (b *Budget) ShouldAlert(now time.Time) bool {
	if !b.NotificationsEnabled || !b.IsActive {
		return false
	}
	if b.PercentageUsed().LessThan(decimal.NewFromInt(int64(b.AlertThreshold))) {
		return false
	}
	if b.LastAlertAt == nil {
		return true
	}
	return now.Sub(*b.LastAlertAt) >= AlertCooldown
}

// MarkAlerted records that an alert was sent at now.
func (b *Budget) MarkAlerted(now time.Time) {
	alertedAt := now
	b.LastAlertAt = &alertedAt
	b.UpdatedAt = now
}

// Covers reports whether date falls inside the budget range, both ends inclusive.
func (b *Budget) Covers(date time.Time) bool {
	day := valueobject.StartOfDay(date)
	return !day.Before(valueobject.StartOfDay(b.StartDate)) && !day.After(valueobject.StartOfDay(b.EndDate))
}

// Overlaps reports whether [start, end] intersects the budget range.
func (b *Budget) Overlaps(start, end time.Time) bool {
	return !start.After(b.EndDate) && !end.Before(b.StartDate)
}

// BudgetWithCategory represents a budget with its category.
type BudgetWithCategory struct {
	Budget   *Budget
	Category *Category
}
