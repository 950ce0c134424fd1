package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/AminataF33/gestionbudgetback/internal/domain/error"
	"github.com/AminataF33/gestionbudgetback/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 5
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute

	rateLimitKeyPrefix = "ratelimit:"
)

// AttemptCounter counts attempts for a key within a fixed window.
type AttemptCounter interface {
	// Increment records one attempt and returns the count in the current window.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
	// Reset clears all recorded attempts.
	Reset(ctx context.Context) error
}

// RateLimiterConfig holds rate limiter settings.
type RateLimiterConfig struct {
	Enabled        bool
	MaxAttempts    int
	WindowDuration time.Duration
}

// RateLimiter provides IP-based rate limiting functionality.
type RateLimiter struct {
	counter        AttemptCounter
	enabled        bool
	maxAttempts    int
	windowDuration time.Duration
}

// NewRateLimiter creates a new in-memory rate limiter with default settings.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithCounter(NewMemoryCounter(), RateLimiterConfig{Enabled: true})
}

// NewRateLimiterWithCounter creates a rate limiter backed by the given counter.
func NewRateLimiterWithCounter(counter AttemptCounter, config RateLimiterConfig) *RateLimiter {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = defaultMaxAttempts
	}
	if config.WindowDuration <= 0 {
		config.WindowDuration = defaultWindowDuration
	}
	return &RateLimiter{
		counter:        counter,
		enabled:        config.Enabled,
		maxAttempts:    config.MaxAttempts,
		windowDuration: config.WindowDuration,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.enabled {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		if !rl.allow(c.Request.Context(), c.FullPath()+"|"+clientIP) {
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// allow checks if a request from the given key should be allowed.
// Counter failures let the request through.
func (rl *RateLimiter) allow(ctx context.Context, key string) bool {
	count, err := rl.counter.Increment(ctx, key, rl.windowDuration)
	if err != nil {
		slog.WarnContext(ctx, "Rate limiter unavailable", "error", err)
		return true
	}
	return count <= int64(rl.maxAttempts)
}

// Reset clears the rate limiter state.
func (rl *RateLimiter) Reset() {
	_ = rl.counter.Reset(context.Background())
}

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int64
	resetTime time.Time
}

// MemoryCounter is a process-local AttemptCounter.
type MemoryCounter struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	now     func() time.Time
}

// NewMemoryCounter creates an empty in-memory counter.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		entries: make(map[string]*rateLimitEntry),
		now:     time.Now,
	}
}

// Increment implements AttemptCounter.
func (m *MemoryCounter) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	entry, exists := m.entries[key]
	if !exists || now.After(entry.resetTime) {
		m.entries[key] = &rateLimitEntry{attempts: 1, resetTime: now.Add(window)}
		return 1, nil
	}
	entry.attempts++
	return entry.attempts, nil
}

// Reset implements AttemptCounter.
func (m *MemoryCounter) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]*rateLimitEntry)
	return nil
}

// Cleanup removes expired entries.
func (m *MemoryCounter) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, entry := range m.entries {
		if now.After(entry.resetTime) {
			delete(m.entries, key)
		}
	}
}

// RedisCounter is an AttemptCounter shared by every API instance.
type RedisCounter struct {
	client *redis.Client
}

// NewRedisCounter creates a counter on the given Redis client.
func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

// Increment implements AttemptCounter.
// The window starts with the first attempt and is not extended by later ones.
func (r *RedisCounter) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	redisKey := rateLimitKeyPrefix + key

	count, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := r.client.PExpire(ctx, redisKey, window).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// Reset implements AttemptCounter.
func (r *RedisCounter) Reset(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, rateLimitKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
