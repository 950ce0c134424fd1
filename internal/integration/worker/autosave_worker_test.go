package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/AminataF33/gestionbudgetback/internal/application/usecase/autosave"
)

type countingProcessor struct {
	mu    sync.Mutex
	calls []time.Time
	err   error
}

func (p *countingProcessor) Execute(_ context.Context, now time.Time) (*autosave.ProcessDueAutoSavesOutput, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, now)
	if p.err != nil {
		return nil, p.err
	}
	return &autosave.ProcessDueAutoSavesOutput{Processed: 1}, nil
}

func (p *countingProcessor) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func TestAutoSaveWorker_RunOnce(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC)

	t.Run("passes the clock to the processor", func(t *testing.T) {
		processor := &countingProcessor{}
		w := NewAutoSaveWorker(processor, time.Minute)
		w.now = func() time.Time { return fixed }

		w.RunOnce(context.Background())

		if processor.count() != 1 {
			t.Fatalf("expected 1 call, got %d", processor.count())
		}
		if !processor.calls[0].Equal(fixed) {
			t.Errorf("expected %v, got %v", fixed, processor.calls[0])
		}
	})

	t.Run("errors do not panic", func(t *testing.T) {
		processor := &countingProcessor{err: errors.New("database down")}
		w := NewAutoSaveWorker(processor, time.Minute)

		w.RunOnce(context.Background())

		if processor.count() != 1 {
			t.Errorf("expected 1 call, got %d", processor.count())
		}
	})
}

func TestAutoSaveWorker_Start(t *testing.T) {
	processor := &countingProcessor{}
	w := NewAutoSaveWorker(processor, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for processor.count() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 sweeps, got %d", processor.count())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected worker to stop after cancel")
	}
}

func TestNewAutoSaveWorker_DefaultInterval(t *testing.T) {
	w := NewAutoSaveWorker(&countingProcessor{}, 0)
	if w.interval != time.Hour {
		t.Errorf("expected default interval of 1h, got %v", w.interval)
	}
}
