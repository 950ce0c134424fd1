// Package worker runs periodic background jobs.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/autosave"
)

// AutoSaveProcessor runs one auto-save sweep.
type AutoSaveProcessor interface {
	Execute(ctx context.Context, now time.Time) (*autosave.ProcessDueAutoSavesOutput, error)
}

// AutoSaveWorker triggers the auto-save sweep on a fixed interval.
type AutoSaveWorker struct {
	processor AutoSaveProcessor
	interval  time.Duration
	now       func() time.Time
}

// NewAutoSaveWorker creates a new auto-save worker.
func NewAutoSaveWorker(processor AutoSaveProcessor, interval time.Duration) *AutoSaveWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &AutoSaveWorker{
		processor: processor,
		interval:  interval,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *AutoSaveWorker) Start(ctx context.Context) {
	slog.Info("Auto-save worker started", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Sweep immediately on start, then on ticker
	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Auto-save worker shutting down")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep and logs its outcome.
func (w *AutoSaveWorker) RunOnce(ctx context.Context) {
	output, err := w.processor.Execute(ctx, w.now())
	if err != nil {
		slog.Error("Auto-save sweep failed", "error", err)
		return
	}

	if output.LockNotAcquired {
		slog.Debug("Auto-save sweep skipped, lock held elsewhere")
		return
	}

	if output.Processed > 0 || output.Failed > 0 {
		slog.Info("Auto-save sweep finished",
			"processed", output.Processed,
			"skipped", output.Skipped,
			"failed", output.Failed,
		)
	}
}
