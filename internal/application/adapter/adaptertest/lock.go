package adaptertest

import (
	"context"
	"sync"
	"time"
)

// SweepLock is an in-memory adapter.SweepLock.
// Set Held to simulate another instance owning the lock.
type SweepLock struct {
	mu       sync.Mutex
	Held     bool
	Acquired int
}

// TryAcquire takes the lock unless it is held.
func (l *SweepLock) TryAcquire(_ context.Context, _ string, _ time.Duration) (func(context.Context) error, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Held {
		return nil, false, nil
	}
	l.Held = true
	l.Acquired++

	release := func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.Held = false
		return nil
	}
	return release, true, nil
}
