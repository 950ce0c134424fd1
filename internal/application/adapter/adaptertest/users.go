package adaptertest

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// Users returns a user repository backed by the store.
func (s *Store) Users() adapter.UserRepository {
	return &userRepository{store: s}
}

// SeedUser stores a user as-is.
func (s *Store) SeedUser(user *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *user
	s.users[user.ID] = &clone
}

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	r.store.SeedUser(user)
	return nil
}

func (r *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, user := range r.store.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *userRepository) Update(_ context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[user.ID]; !ok {
		return domainerror.ErrUserNotFound
	}
	clone := *user
	r.store.users[user.ID] = &clone
	return nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}
