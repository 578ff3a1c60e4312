package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/sales-dashboard/backend/internal/domain/error"
	"github.com/sales-dashboard/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 5
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
)

// RateLimitStore counts attempts per key in fixed windows.
type RateLimitStore interface {
	// Allow records one attempt and reports whether it is within limit.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// MemoryStore keeps rate limit windows in process memory.
// Expired windows are swept at most once per window length.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]*rateLimitEntry
	now       func() time.Time
	lastSweep time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*rateLimitEntry),
		now:     time.Now,
	}
}

// Allow implements RateLimitStore.
func (s *MemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= window {
		s.sweep(now)
	}

	entry, exists := s.entries[key]
	if !exists || now.After(entry.resetTime) {
		s.entries[key] = &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(window),
		}
		return limit > 0, nil
	}

	if entry.attempts < limit {
		entry.attempts++
		return true, nil
	}

	return false, nil
}

// Reset clears the store state.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*rateLimitEntry)
}

// Cleanup removes expired entries.
func (s *MemoryStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep(s.now())
}

func (s *MemoryStore) sweep(now time.Time) {
	for key, entry := range s.entries {
		if now.After(entry.resetTime) {
			delete(s.entries, key)
		}
	}
	s.lastSweep = now
}

// RedisStore keeps rate limit windows in Redis so limits hold across instances.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore creates a store backed by the given Redis client.
func NewRedisStore(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

// Allow implements RateLimitStore. The counter and its TTL are read in one
// transaction; a counter left without a TTL gets the window again, so a
// failed EXPIRE never locks a client out.
func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		ttl = pipe.TTL(ctx, key)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate limit counter: %w", err)
	}

	if ttl.Val() < 0 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return false, fmt.Errorf("rate limit window: %w", err)
		}
	}
	return incr.Val() <= int64(limit), nil
}

// RateLimiter provides IP-based rate limiting functionality.
type RateLimiter struct {
	name           string
	store          RateLimitStore
	fallback       *MemoryStore
	maxAttempts    int
	windowDuration time.Duration
}

// NewRateLimiter creates an in-memory rate limiter with default settings.
func NewRateLimiter(name string) *RateLimiter {
	return NewRateLimiterWithConfig(name, nil, defaultMaxAttempts, defaultWindowDuration)
}

// NewRateLimiterWithConfig creates a rate limiter with custom settings.
// A nil store keeps the counters in memory.
func NewRateLimiterWithConfig(name string, store RateLimitStore, maxAttempts int, windowDuration time.Duration) *RateLimiter {
	fallback := NewMemoryStore()
	if store == nil {
		store = fallback
	}
	return &RateLimiter{
		name:           name,
		store:          store,
		fallback:       fallback,
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip rate limiting in E2E mode
		if os.Getenv("E2E_MODE") == "true" {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		if !rl.allow(c.Request.Context(), clientIP) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

// allow checks if a request from the given client should be allowed.
// Store failures fall back to the in-memory counters.
func (rl *RateLimiter) allow(ctx context.Context, client string) bool {
	key := "ratelimit:" + rl.name + ":" + client

	allowed, err := rl.store.Allow(ctx, key, rl.maxAttempts, rl.windowDuration)
	if err == nil {
		return allowed
	}

	slog.Warn("Rate limit store unavailable, using memory",
		"limiter", rl.name,
		"error", err,
	)
	allowed, _ = rl.fallback.Allow(ctx, key, rl.maxAttempts, rl.windowDuration)
	return allowed
}

// Reset clears the in-memory counters.
func (rl *RateLimiter) Reset() {
	rl.fallback.Reset()
}
