package adaptertest

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// Categories returns a category repository backed by the store.
func (s *Store) Categories() adapter.CategoryRepository {
	return &categoryRepository{store: s}
}

// SeedCategory stores a category as-is.
func (s *Store) SeedCategory(category *entity.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[category.ID] = cloneCategory(category)
}

type categoryRepository struct {
	store *Store
}

func (r *categoryRepository) Create(_ context.Context, category *entity.Category) error {
	r.store.SeedCategory(category)
	return nil
}

func (r *categoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	category, ok := r.store.categories[id]
	if !ok || category.DeletedAt != nil {
		return nil, domainerror.ErrCategoryNotFound
	}
	return cloneCategory(category), nil
}

func (r *categoryRepository) FindVisible(_ context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	categories := make([]*entity.Category, 0)
	for _, category := range r.store.categories {
		if category.DeletedAt != nil || !category.IsVisibleTo(userID) {
			continue
		}
		if categoryType != nil && category.Type != *categoryType {
			continue
		}
		categories = append(categories, cloneCategory(category))
	}
	return categories, nil
}

func (r *categoryRepository) ExistsByName(_ context.Context, userID uuid.UUID, name string, categoryType entity.CategoryType, excludeID *uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, category := range r.store.categories {
		if category.DeletedAt != nil || !category.IsVisibleTo(userID) || category.Type != categoryType {
			continue
		}
		if excludeID != nil && category.ID == *excludeID {
			continue
		}
		if strings.EqualFold(category.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *categoryRepository) Update(_ context.Context, category *entity.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.categories[category.ID]; !ok {
		return domainerror.ErrCategoryNotFound
	}
	r.store.categories[category.ID] = cloneCategory(category)
	return nil
}

func (r *categoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	category, ok := r.store.categories[id]
	if !ok {
		return domainerror.ErrCategoryNotFound
	}
	deletedAt := category.UpdatedAt
	category.DeletedAt = &deletedAt
	return nil
}

func (r *categoryRepository) SeedDefaults(_ context.Context, categories []*entity.Category) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	created := 0
	for _, candidate := range categories {
		exists := false
		for _, category := range r.store.categories {
			if category.IsDefault && category.Type == candidate.Type && strings.EqualFold(category.Name, candidate.Name) {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		r.store.categories[candidate.ID] = cloneCategory(candidate)
		created++
	}
	return created, nil
}
