// Package lock provides adapter.SweepLock implementations.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/AminataF33/gestionbudgetback/internal/application/adapter"
)

const keyPrefix = "lock:"

// releaseScript deletes the key only when it still holds the caller's token,
// so an expired holder cannot release a lock taken over by another instance.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLock implements adapter.SweepLock with SET NX PX.
type RedisLock struct {
	client *redis.Client
}

// NewRedisLock creates a new Redis-backed sweep lock.
func NewRedisLock(client *redis.Client) *RedisLock {
	return &RedisLock{client: client}
}

// TryAcquire attempts to take the named lock for at most ttl.
func (l *RedisLock) TryAcquire(ctx context.Context, name string, ttl time.Duration) (func(context.Context) error, bool, error) {
	key := keyPrefix + name
	token := uuid.NewString()

	acquired, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire lock %s: %w", name, err)
	}
	if !acquired {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			return fmt.Errorf("failed to release lock %s: %w", name, err)
		}
		return nil
	}
	return release, true, nil
}

var _ adapter.SweepLock = (*RedisLock)(nil)
