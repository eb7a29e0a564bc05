package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	redispkg "legal-city.backend/pkg/redis"
)

// CounterStore counts requests per client within a fixed window. Implementations
// are injected so the limiter state is never a process-wide singleton and can be
// shared across processes when backed by an external store.
type CounterStore interface {
	// Incr increments the counter for key and returns its value within the
	// current window.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// MemoryCounterStore is an in-process fixed-window counter
type MemoryCounterStore struct {
	mu      sync.Mutex
	entries map[string]*counterEntry
	now     func() time.Time
}

type counterEntry struct {
	count   int64
	resetAt time.Time
}

// NewMemoryCounterStore creates a new in-memory counter store
func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		entries: make(map[string]*counterEntry),
		now:     time.Now,
	}
}

// Incr increments the fixed-window counter for key. Expired windows reset on
// read; there is no background eviction.
func (s *MemoryCounterStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || now.After(entry.resetAt) {
		entry = &counterEntry{resetAt: now.Add(window)}
		s.entries[key] = entry
	}
	entry.count++
	return entry.count, nil
}

// RedisCounterStore is a fixed-window counter backed by Redis, usable across
// processes
type RedisCounterStore struct {
	prefix string
}

// NewRedisCounterStore creates a Redis-backed counter store
func NewRedisCounterStore(prefix string) *RedisCounterStore {
	return &RedisCounterStore{prefix: prefix}
}

// Incr increments the counter via INCR and sets the window TTL on first hit
func (s *RedisCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := redispkg.Incr(ctx, s.prefix+key)
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := redispkg.Expire(ctx, s.prefix+key, window); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// RateLimit throttles requests per client IP using the injected counter store.
// Store failures fail open: throttling is best effort.
func RateLimit(store CounterStore, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := store.Incr(c.Request.Context(), c.ClientIP(), window)
		if err == nil && count > int64(maxRequests) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests",
			})
			return
		}
		c.Next()
	}
}

// ClientLimiter throttles per-client with a token bucket. Used for the
// browser-driven OAuth redirect endpoints where short bursts are expected.
type ClientLimiter struct {
	limit    rate.Limit
	burst    int
	window   time.Duration
	mu       sync.Mutex
	limiters map[string]*clientLimiterEntry
}

type clientLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter creates a limiter for the provided requests-per-minute rate
func NewClientLimiter(requestsPerMinute int) *ClientLimiter {
	burst := requestsPerMinute / 10
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiter{
		limit:    rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:    burst,
		window:   5 * time.Minute,
		limiters: make(map[string]*clientLimiterEntry),
	}
}

// Handler returns the gin middleware enforcing the token bucket
func (l *ClientLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Too many requests",
			})
			return
		}
		c.Next()
	}
}

func (l *ClientLimiter) allow(key string) bool {
	now := time.Now()
	l.mu.Lock()
	entry, ok := l.limiters[key]
	if !ok {
		entry = &clientLimiterEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = entry
		for k, e := range l.limiters {
			if now.Sub(e.lastSeen) > l.window {
				delete(l.limiters, k)
			}
		}
	}
	entry.lastSeen = now
	l.mu.Unlock()
	return entry.limiter.Allow()
}
