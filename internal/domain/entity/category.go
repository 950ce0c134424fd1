package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType represents the type of category (expense or income).
type CategoryType string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"
)

// IsValid reports whether the category type is income or expense.
func (t CategoryType) IsValid() bool {
	return t == CategoryTypeExpense || t == CategoryTypeIncome
}

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// Category classifies ledger entries and budgets.
// Default categories have no owner and are visible to every user.
type Category struct {
	ID        uuid.UUID
	Name      string
	Color     string
	Icon      string
	Type      CategoryType
	IsDefault bool
	OwnerID   *uuid.UUID
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewCategory creates a new user-owned Category entity.
// Note: Defaulting logic for color and icon should be applied in the Application layer (UseCase)
// before calling this constructor.
func NewCategory(name, color, icon string, ownerID uuid.UUID, categoryType CategoryType) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Color:     color,
		Icon:      icon,
		Type:      categoryType,
		OwnerID:   &ownerID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewDefaultCategory creates a system category shared by all users.
func NewDefaultCategory(name, color, icon string, categoryType CategoryType) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Color:     color,
		Icon:      icon,
		Type:      categoryType,
		IsDefault: true,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsVisibleTo reports whether the user may reference the category.
func (c *Category) IsVisibleTo(userID uuid.UUID) bool {
	if c.IsDefault {
		return true
	}
	return c.OwnerID != nil && *c.OwnerID == userID
}

// IsOwnedBy reports whether the category belongs to the user (defaults belong to nobody).
func (c *Category) IsOwnedBy(userID uuid.UUID) bool {
	return !c.IsDefault && c.OwnerID != nil && *c.OwnerID == userID
}

// DefaultCategories returns the system categories seeded at startup.
func DefaultCategories() []*Category {
	return []*Category{
		NewDefaultCategory("Salary", "#10B981", "briefcase", CategoryTypeIncome),
		NewDefaultCategory("Freelance", "#14B8A6", "laptop", CategoryTypeIncome),
		NewDefaultCategory("Investments", "#0EA5E9", "trending-up", CategoryTypeIncome),
		NewDefaultCategory("Other Income", "#22C55E", "plus-circle", CategoryTypeIncome),
		NewDefaultCategory("Food", "#F97316", "utensils", CategoryTypeExpense),
		NewDefaultCategory("Transport", "#F59E0B", "car", CategoryTypeExpense),
		NewDefaultCategory("Housing", "#8B5CF6", "home", CategoryTypeExpense),
		NewDefaultCategory("Utilities", "#6366F1", "zap", CategoryTypeExpense),
		NewDefaultCategory("Health", "#EF4444", "heart", CategoryTypeExpense),
		NewDefaultCategory("Education", "#3B82F6", "book", CategoryTypeExpense),
		NewDefaultCategory("Entertainment", "#EC4899", "film", CategoryTypeExpense),
		NewDefaultCategory("Shopping", "#D946EF", "shopping-bag", CategoryTypeExpense),
		NewDefaultCategory("Other Expenses", "#64748B", "tag", CategoryTypeExpense),
	}
}

// CategoryWithStats represents a category with transaction statistics.
type CategoryWithStats struct {
	Category         *Category
	TransactionCount int
}
