package steps

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/autosave"
	"github.com/AminataF33/gestionbudgetback/test/integration/mock"
)

const sweepLockKey = "lock:" + autosave.LockName

func theCurrentTimeIs(ctx context.Context, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return fmt.Errorf("invalid time %q: %w", value, err)
	}
	tc.clock.SetCurrentTime(now)
	return nil
}

func theGoalAutoSaves(ctx context.Context, name, amount, frequency, nextDate string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	return tc.sendJSON(http.MethodPatch, "/api/v1/goals/{goal:"+name+"}", map[string]any{
		"auto_save": map[string]any{
			"enabled":   true,
			"amount":    value,
			"frequency": frequency,
			"next_date": nextDate,
		},
	}, http.StatusOK)
}

func theAutoSaveSweepRuns(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	output, err := tc.app.injector.ProcessAutoSaves.Execute(ctx, tc.clock.Now())
	if err != nil {
		return err
	}
	tc.lastSweep = output
	return nil
}

func theSweepShouldHaveProcessed(ctx context.Context, count int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.lastSweep == nil {
		return fmt.Errorf("no sweep has run")
	}
	if tc.lastSweep.Processed != count {
		return fmt.Errorf("expected %d processed goals, got %d (skipped %d, failed %d)",
			count, tc.lastSweep.Processed, tc.lastSweep.Skipped, tc.lastSweep.Failed)
	}
	return nil
}

func theAutoSaveLockShouldBeReleased(ctx context.Context) error {
	if mock.HasRedisKey(sweepLockKey) {
		return fmt.Errorf("expected %s to be released", sweepLockKey)
	}
	return nil
}

func theEmailWorkerRuns(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.app.injector.EmailWorker == nil {
		return fmt.Errorf("email worker is not configured")
	}
	tc.app.injector.EmailWorker.ProcessNow(ctx)
	return nil
}

func emailsShouldHaveBeenSentTo(ctx context.Context, count int, recipient string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	sent := tc.app.sender.SentTo(recipient)
	if sent != count {
		return fmt.Errorf("expected %d emails to %s, got %d", count, recipient, sent)
	}
	return nil
}
