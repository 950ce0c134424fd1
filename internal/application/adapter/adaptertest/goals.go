package adaptertest

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
)

// Goals returns a goal repository backed by the store.
// Errors registered with FailGoalUpdate are returned by Update for that goal.
func (s *Store) Goals() adapter.GoalRepository {
	return &goalRepository{store: s}
}

// SeedGoal stores a goal as-is.
func (s *Store) SeedGoal(goal *entity.Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals[goal.ID] = goal.Clone()
}

// Goal returns the stored copy of a goal, or nil.
func (s *Store) Goal(id uuid.UUID) *entity.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if goal, ok := s.goals[id]; ok {
		return goal.Clone()
	}
	return nil
}

// FailGoalUpdate makes every Update of the goal fail with err.
func (s *Store) FailGoalUpdate(goalID uuid.UUID, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goalUpdateFailures[goalID] = err
}

type goalRepository struct {
	store *Store
}

func (r *goalRepository) Create(_ context.Context, goal *entity.Goal) error {
	r.store.SeedGoal(goal)
	return nil
}

func (r *goalRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Goal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	goal, ok := r.store.goals[id]
	if !ok || goal.DeletedAt != nil {
		return nil, domainerror.ErrGoalNotFound
	}
	return goal.Clone(), nil
}

func (r *goalRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	return r.FindByID(ctx, id)
}

func (r *goalRepository) FindByUserID(_ context.Context, userID uuid.UUID, status *entity.GoalStatus) ([]*entity.Goal, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	goals := make([]*entity.Goal, 0)
	for _, goal := range r.store.goals {
		if goal.DeletedAt != nil || goal.UserID != userID {
			continue
		}
		if status != nil && goal.Status != *status {
			continue
		}
		goals = append(goals, goal.Clone())
	}
	sort.Slice(goals, func(i, j int) bool {
		return goals[i].CreatedAt.After(goals[j].CreatedAt)
	})
	return goals, nil
}

func (r *goalRepository) FindDueAutoSaves(_ context.Context, now time.Time, after *adapter.DueAutoSave, limit int) ([]adapter.DueAutoSave, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	due := make([]adapter.DueAutoSave, 0)
	for _, goal := range r.store.goals {
		if goal.DeletedAt != nil || !goal.IsAutoSaveDue(now) {
			continue
		}
		entry := adapter.DueAutoSave{GoalID: goal.ID, NextDate: *goal.AutoSave.NextDate}
		if after != nil && !dueAfter(entry, *after) {
			continue
		}
		due = append(due, entry)
	}
	sort.Slice(due, func(i, j int) bool {
		return dueAfter(due[j], due[i])
	})

	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

// dueAfter reports whether a sorts strictly after b by next date then goal ID.
func dueAfter(a, b adapter.DueAutoSave) bool {
	if !a.NextDate.Equal(b.NextDate) {
		return a.NextDate.After(b.NextDate)
	}
	return a.GoalID.String() > b.GoalID.String()
}

func (r *goalRepository) Update(_ context.Context, goal *entity.Goal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if err := r.store.goalUpdateFailures[goal.ID]; err != nil {
		return err
	}

	stored, ok := r.store.goals[goal.ID]
	if !ok || stored.DeletedAt != nil {
		return domainerror.ErrGoalNotFound
	}
	if stored.Version != goal.Version {
		return domainerror.ErrGoalConcurrentUpdate
	}

	goal.Version++
	contributions := stored.Contributions
	updated := goal.Clone()
	updated.Contributions = contributions
	r.store.goals[goal.ID] = updated
	return nil
}

func (r *goalRepository) AddContribution(_ context.Context, contribution *entity.Contribution) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	goal, ok := r.store.goals[contribution.GoalID]
	if !ok {
		return domainerror.ErrGoalNotFound
	}
	goal.Contributions = append(goal.Contributions, *contribution)
	return nil
}

func (r *goalRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	goal, ok := r.store.goals[id]
	if !ok || goal.DeletedAt != nil {
		return domainerror.ErrGoalNotFound
	}
	deletedAt := goal.UpdatedAt
	goal.DeletedAt = &deletedAt
	return nil
}
