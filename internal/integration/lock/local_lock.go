package lock

import (
	"context"
	"sync"
	"time"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
)

// LocalLock implements adapter.SweepLock within a single process.
// It is used when no Redis address is configured.
type LocalLock struct {
	mu   sync.Mutex
	held map[string]time.Time // name -> expiry
}

// NewLocalLock creates a new in-process sweep lock.
func NewLocalLock() *LocalLock {
	return &LocalLock{held: make(map[string]time.Time)}
}

// TryAcquire takes the named lock unless a live holder owns it.
func (l *LocalLock) TryAcquire(_ context.Context, name string, ttl time.Duration) (func(context.Context) error, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if expiry, ok := l.held[name]; ok && now.Before(expiry) {
		return nil, false, nil
	}
	expiry := now.Add(ttl)
	l.held[name] = expiry

	release := func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.held[name].Equal(expiry) {
			delete(l.held, name)
		}
		return nil
	}
	return release, true, nil
}

var _ adapter.SweepLock = (*LocalLock)(nil)
