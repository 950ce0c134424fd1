// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// SweepLock guarantees a single active run of a background sweep across instances.
type SweepLock interface {
	// TryAcquire attempts to take the named lock for at most ttl.
	// It returns acquired=false without error when another holder owns it.
	// The returned release function must be called once the sweep finishes.
	TryAcquire(ctx context.Context, name string, ttl time.Duration) (release func(context.Context) error, acquired bool, err error)
}
