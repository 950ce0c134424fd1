// Package autosave contains the scheduled auto-save sweep.
package autosave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
	"github.com/AminataF33/gestionbudgetback/internal/application/service"
	"github.com/AminataF33/gestionbudgetback/internal/domain/entity"
)

// LockName identifies the auto-save sweep in the SweepLock.
const LockName = "autosave-sweep"

const (
	defaultBatchSize = 100
	defaultLockTTL   = 5 * time.Minute
)

// errNotDue is returned inside a goal transaction when another run already handled it.
var errNotDue = errors.New("auto-save no longer due")

// ProcessDueAutoSavesOutput summarizes one sweep.
type ProcessDueAutoSavesOutput struct {
	Processed int
	Skipped   int
	Failed    int
	// LockNotAcquired is true when another instance was already sweeping.
	LockNotAcquired bool
}

// ProcessDueAutoSavesUseCase contributes the configured amount to every goal whose
// auto-save rule is due, one goal per database transaction.
type ProcessDueAutoSavesUseCase struct {
	goalRepo   adapter.GoalRepository
	transactor adapter.Transactor
	lock       adapter.SweepLock
	tracker    *service.ContributionTracker
	notifier   *service.GoalCompletionNotifier
	events     *service.EventDispatcher
	batchSize  int
	lockTTL    time.Duration
}

// NewProcessDueAutoSavesUseCase creates a new ProcessDueAutoSavesUseCase instance.
// Non-positive batchSize or lockTTL fall back to defaults.
func NewProcessDueAutoSavesUseCase(
	goalRepo adapter.GoalRepository,
	transactor adapter.Transactor,
	lock adapter.SweepLock,
	tracker *service.ContributionTracker,
	notifier *service.GoalCompletionNotifier,
	events *service.EventDispatcher,
	batchSize int,
	lockTTL time.Duration,
) *ProcessDueAutoSavesUseCase {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if lockTTL <= 0 {
		lockTTL = defaultLockTTL
	}
	return &ProcessDueAutoSavesUseCase{
		goalRepo:   goalRepo,
		transactor: transactor,
		lock:       lock,
		tracker:    tracker,
		notifier:   notifier,
		events:     events,
		batchSize:  batchSize,
		lockTTL:    lockTTL,
	}
}

// Execute runs one sweep at now, paging through every due goal. A goal failing is
// logged and left due for the next sweep; it never blocks the goals ordered after it.
func (uc *ProcessDueAutoSavesUseCase) Execute(ctx context.Context, now time.Time) (*ProcessDueAutoSavesOutput, error) {
	release, acquired, err := uc.lock.TryAcquire(ctx, LockName, uc.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire auto-save lock: %w", err)
	}
	if !acquired {
		slog.Info("Auto-save sweep already running elsewhere, skipping")
		return &ProcessDueAutoSavesOutput{LockNotAcquired: true}, nil
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			slog.Warn("Failed to release auto-save lock", "error", err)
		}
	}()

	output := &ProcessDueAutoSavesOutput{}
	// A processed goal may still be due after one step; it waits for the next sweep.
	attempted := make(map[uuid.UUID]struct{})
	var cursor *adapter.DueAutoSave
	for ctx.Err() == nil {
		page, err := uc.goalRepo.FindDueAutoSaves(ctx, now, cursor, uc.batchSize)
		if err != nil {
			if cursor == nil {
				return nil, fmt.Errorf("failed to find due auto-saves: %w", err)
			}
			slog.Error("Failed to load next page of due auto-saves", "error", err)
			break
		}

		for _, due := range page {
			if ctx.Err() != nil {
				break
			}
			if _, seen := attempted[due.GoalID]; seen {
				continue
			}
			attempted[due.GoalID] = struct{}{}

			err := uc.processGoal(ctx, due.GoalID, now)
			switch {
			case err == nil:
				output.Processed++
			case errors.Is(err, errNotDue):
				output.Skipped++
			default:
				output.Failed++
				slog.Error("Failed to process auto-save", "goal_id", due.GoalID, "error", err)
			}
		}

		if len(page) < uc.batchSize {
			break
		}
		cursor = &page[len(page)-1]
	}

	if len(attempted) > 0 {
		slog.Info("Auto-save sweep complete",
			"processed", output.Processed,
			"skipped", output.Skipped,
			"failed", output.Failed)
	}

	return output, nil
}

// processGoal re-reads the goal under a row lock, re-checks the rule and makes a single
// contribution before moving the next date one step forward.
func (uc *ProcessDueAutoSavesUseCase) processGoal(ctx context.Context, goalID uuid.UUID, now time.Time) error {
	var goal *entity.Goal
	var outcome *entity.ContributionOutcome

	err := uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		goal, err = uc.goalRepo.FindByIDForUpdate(ctx, goalID)
		if err != nil {
			return fmt.Errorf("failed to load goal: %w", err)
		}
		if !goal.IsAutoSaveDue(now) {
			return errNotDue
		}

		goal.AdvanceAutoSave()
		outcome, err = uc.tracker.Contribute(ctx, goal, goal.AutoSave.Amount, "Automatic saving", entity.ContributionSourceAutoSave, now)
		return err
	})
	if err != nil {
		return err
	}

	uc.events.Dispatch(ctx, service.ContributionEvents(goal, outcome, now)...)
	if outcome.Completed {
		uc.notifier.Notify(ctx, goal)
	}
	return nil
}
