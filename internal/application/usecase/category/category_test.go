package category

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter/adaptertest"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

func seededStore(t *testing.T) *adaptertest.Store {
	t.Helper()
	store := adaptertest.NewStore()
	created, err := NewSeedDefaultCategoriesUseCase(store.Categories()).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != len(entity.DefaultCategories()) {
		t.Fatalf("expected %d defaults, got %d", len(entity.DefaultCategories()), created)
	}
	return store
}

func TestSeedDefaultCategories_Idempotent(t *testing.T) {
	store := seededStore(t)
	created, err := NewSeedDefaultCategoriesUseCase(store.Categories()).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created != 0 {
		t.Errorf("expected no new categories, got %d", created)
	}
}

func TestCreateCategory(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		input   CreateCategoryInput
		wantErr error
	}{
		{
			name:  "valid with defaults",
			input: CreateCategoryInput{UserID: userID, Name: "Pets", Type: entity.CategoryTypeExpense},
		},
		{
			name:  "same name as default of other type",
			input: CreateCategoryInput{UserID: userID, Name: "Food", Type: entity.CategoryTypeIncome},
		},
		{
			name:    "shadows a default category",
			input:   CreateCategoryInput{UserID: userID, Name: "food", Type: entity.CategoryTypeExpense},
			wantErr: domainerror.ErrDuplicateResource,
		},
		{
			name:    "invalid type",
			input:   CreateCategoryInput{UserID: userID, Name: "Misc", Type: "transfer"},
			wantErr: domainerror.ErrValidation,
		},
		{
			name:    "invalid color",
			input:   CreateCategoryInput{UserID: userID, Name: "Misc", Type: entity.CategoryTypeExpense, Color: "red"},
			wantErr: domainerror.ErrInvalidColorFormat,
		},
		{
			name:    "blank name",
			input:   CreateCategoryInput{UserID: userID, Name: " ", Type: entity.CategoryTypeExpense},
			wantErr: domainerror.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seededStore(t)
			output, err := NewCreateCategoryUseCase(store.Categories()).Execute(context.Background(), tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.Category.IsDefault {
				t.Error("user category must not be default")
			}
			if output.Category.Color != entity.DefaultCategoryColor {
				t.Errorf("expected default color, got %s", output.Category.Color)
			}
		})
	}
}

func TestListCategories_DefaultsAndOwned(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	userID := uuid.New()
	other := uuid.New()

	create := NewCreateCategoryUseCase(store.Categories())
	if _, err := create.Execute(ctx, CreateCategoryInput{UserID: userID, Name: "Pets", Type: entity.CategoryTypeExpense}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := create.Execute(ctx, CreateCategoryInput{UserID: other, Name: "Boat", Type: entity.CategoryTypeExpense}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expense := entity.CategoryTypeExpense
	output, err := NewListCategoriesUseCase(store.Categories()).Execute(ctx, ListCategoriesInput{UserID: userID, CategoryType: &expense})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Categories) != 10 {
		t.Fatalf("expected 9 defaults plus 1 owned, got %d", len(output.Categories))
	}
	last := output.Categories[len(output.Categories)-1]
	if last.Name != "Pets" || last.IsDefault {
		t.Errorf("expected owned category last, got %+v", last)
	}
}

func TestUpdateCategory(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	userID := uuid.New()

	created, err := NewCreateCategoryUseCase(store.Categories()).Execute(ctx, CreateCategoryInput{UserID: userID, Name: "Pets", Type: entity.CategoryTypeExpense})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	uc := NewUpdateCategoryUseCase(store.Categories())

	t.Run("rename and recolor", func(t *testing.T) {
		name := "Animals"
		color := "#123ABC"
		output, err := uc.Execute(ctx, UpdateCategoryInput{UserID: userID, CategoryID: created.Category.ID, Name: &name, Color: &color})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Category.Name != "Animals" || output.Category.Color != "#123ABC" {
			t.Errorf("unexpected output %+v", output.Category)
		}
	})

	t.Run("rename onto a default", func(t *testing.T) {
		name := "Transport"
		_, err := uc.Execute(ctx, UpdateCategoryInput{UserID: userID, CategoryID: created.Category.ID, Name: &name})
		if !errors.Is(err, domainerror.ErrCategoryNameExists) {
			t.Fatalf("expected ErrCategoryNameExists, got %v", err)
		}
	})

	t.Run("default is read-only", func(t *testing.T) {
		defaults, _ := store.Categories().FindVisible(ctx, userID, nil)
		var defaultID uuid.UUID
		for _, category := range defaults {
			if category.IsDefault {
				defaultID = category.ID
				break
			}
		}
		name := "Renamed"
		_, err := uc.Execute(ctx, UpdateCategoryInput{UserID: userID, CategoryID: defaultID, Name: &name})
		if !errors.Is(err, domainerror.ErrInvariantViolation) {
			t.Fatalf("expected ErrInvariantViolation, got %v", err)
		}
	})

	t.Run("other user sees not found", func(t *testing.T) {
		name := "Mine"
		_, err := uc.Execute(ctx, UpdateCategoryInput{UserID: uuid.New(), CategoryID: created.Category.ID, Name: &name})
		if !errors.Is(err, domainerror.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("unused category", func(t *testing.T) {
		store := seededStore(t)
		created, _ := NewCreateCategoryUseCase(store.Categories()).Execute(ctx, CreateCategoryInput{UserID: userID, Name: "Pets", Type: entity.CategoryTypeExpense})

		uc := NewDeleteCategoryUseCase(store.Categories(), store.Transactions(), store.Budgets())
		if err := uc.Execute(ctx, DeleteCategoryInput{UserID: userID, CategoryID: created.Category.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := store.Categories().FindByID(ctx, created.Category.ID); !errors.Is(err, domainerror.ErrNotFound) {
			t.Errorf("expected category to be gone, got %v", err)
		}
	})

	t.Run("referenced by an entry", func(t *testing.T) {
		store := seededStore(t)
		created, _ := NewCreateCategoryUseCase(store.Categories()).Execute(ctx, CreateCategoryInput{UserID: userID, Name: "Pets", Type: entity.CategoryTypeExpense})

		entry := entity.NewTransaction(userID, uuid.New(), entity.TransactionTypeExpense, decimal.NewFromInt(10), "Vet", time.Now())
		entry.CategoryID = &created.Category.ID
		store.SeedTransaction(entry)

		uc := NewDeleteCategoryUseCase(store.Categories(), store.Transactions(), store.Budgets())
		err := uc.Execute(ctx, DeleteCategoryInput{UserID: userID, CategoryID: created.Category.ID})
		if !errors.Is(err, domainerror.ErrCategoryInUse) {
			t.Fatalf("expected ErrCategoryInUse, got %v", err)
		}
	})
}
