// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// DueAutoSave identifies a goal whose auto-save rule is due. It also serves as the
// keyset cursor when paging through due goals.
type DueAutoSave struct {
	GoalID   uuid.UUID
	NextDate time.Time
}

// GoalRepository defines the interface for goal persistence operations.
// Goals are loaded with their milestones and contributions.
type GoalRepository interface {
	// Create creates a new goal with its milestones.
	Create(ctx context.Context, goal *entity.Goal) error

	// FindByID retrieves a goal by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByIDForUpdate retrieves a goal and locks its row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Goal, error)

	// FindByUserID retrieves the goals of a user, optionally filtered by status.
	FindByUserID(ctx context.Context, userID uuid.UUID, status *entity.GoalStatus) ([]*entity.Goal, error)

	// FindDueAutoSaves returns up to limit active goals whose auto-save rule is due at now,
	// ordered by next date then goal ID. When after is set, only goals ordered strictly
	// after it are returned.
	FindDueAutoSaves(ctx context.Context, now time.Time, after *DueAutoSave, limit int) ([]DueAutoSave, error)

	// Update saves the goal row and its milestones. The write only succeeds when the stored
	// version matches goal.Version, which is then incremented; otherwise
	// domainerror.ErrGoalConcurrentUpdate is returned.
	Update(ctx context.Context, goal *entity.Goal) error

	// AddContribution appends a contribution row.
	AddContribution(ctx context.Context, contribution *entity.Contribution) error

	// Delete soft-deletes a goal from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
