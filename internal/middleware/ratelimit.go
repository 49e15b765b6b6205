package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/mathieu-neron/ViewTube/viewtube-go/pkg/hash"
)

// RateLimitConfig defines the limit for a specific route or group.
type RateLimitConfig struct {
	Max    int                      // Maximum requests allowed in the window
	Window time.Duration            // Time window for the limit
	KeyFn  func(c fiber.Ctx) string // Returns the key to rate limit on
	Prefix string                   // Namespace for keys in a shared store
}

// Decision is the outcome of counting one request against a window.
type Decision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Store counts requests per key in fixed windows.
type Store interface {
	Hit(ctx context.Context, key string, limit int, window time.Duration) (Decision, error)
}

// entry tracks request count and window end for a single key.
type entry struct {
	count     int
	windowEnd time.Time
}

// MemoryStore is an in-process fixed-window counter.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// NewMemoryStore creates a store and starts its background cleanup.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]*entry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go s.cleanup(5 * time.Minute)
	return s
}

func (s *MemoryStore) Hit(_ context.Context, key string, limit int, window time.Duration) (Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, exists := s.entries[key]
	if !exists || now.After(e.windowEnd) {
		e = &entry{windowEnd: now.Add(window)}
		s.entries[key] = e
	}
	e.count++

	remaining := limit - e.count
	return Decision{Allowed: remaining >= 0, Remaining: max(remaining, 0), ResetAt: e.windowEnd}, nil
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.stop) })
}

func (s *MemoryStore) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := s.now()
			for key, e := range s.entries {
				if now.After(e.windowEnd) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

// RedisStore shares fixed-window counters across instances. Each hit is one
// MULTI block: INCR, set the expiry only on a fresh key, read the TTL.
type RedisStore struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, now: time.Now}
}

func (s *RedisStore) Hit(ctx context.Context, key string, limit int, window time.Duration) (Decision, error) {
	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, window)
	ttl := pipe.PTTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("redis rate limit %s: %w", key, err)
	}

	resetIn := ttl.Val()
	if resetIn <= 0 {
		resetIn = window
	}
	remaining := limit - int(incr.Val())
	return Decision{
		Allowed:   remaining >= 0,
		Remaining: max(remaining, 0),
		ResetAt:   s.now().Add(resetIn),
	}, nil
}

// RateLimiter enforces a fixed-window limit on top of a Store.
type RateLimiter struct {
	store  Store
	config RateLimitConfig
}

// NewRateLimiter creates a rate limiter with the given config. A nil store
// falls back to an in-memory one.
func NewRateLimiter(cfg RateLimitConfig, store Store) *RateLimiter {
	if store == nil {
		store = NewMemoryStore()
	}
	if cfg.KeyFn == nil {
		cfg.KeyFn = KeyByIP
	}
	return &RateLimiter{store: store, config: cfg}
}

// Handler returns a Fiber middleware handler that enforces the rate limit.
// Store failures are logged and the request is let through.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c fiber.Ctx) error {
		key := rl.config.Prefix + rl.config.KeyFn(c)

		d, err := rl.store.Hit(c.Context(), key, rl.config.Max, rl.config.Window)
		if err != nil {
			Logger.Warn().Err(err).Msg("rate limit store unavailable")
			return c.Next()
		}

		setRateLimitHeaders(c, rl.config.Max, d.Remaining, d.ResetAt)

		if !d.Allowed {
			retryAfter := int(time.Until(d.ResetAt).Seconds()) + 1
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(retryAfter))
			return ErrorResponse(c, fiber.StatusTooManyRequests, "RATE_LIMITED",
				fmt.Sprintf("Too many requests. Try again in %d seconds.", retryAfter))
		}

		return c.Next()
	}
}

// Allow counts one request for key and reports whether it is within the limit.
func (rl *RateLimiter) Allow(ctx context.Context, key string) bool {
	d, err := rl.store.Hit(ctx, rl.config.Prefix+key, rl.config.Max, rl.config.Window)
	return err != nil || d.Allowed
}

func setRateLimitHeaders(c fiber.Ctx, limit, remaining int, resetAt time.Time) {
	c.Set("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(max(remaining, 0)))
	c.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))
}

// NewGlobalLimiter caps the overall request rate with a token bucket.
// A non-positive rps disables it.
func NewGlobalLimiter(rps float64, burst int) fiber.Handler {
	if rps <= 0 {
		return func(c fiber.Ctx) error { return c.Next() }
	}
	if burst <= 0 {
		burst = max(int(rps), 1)
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	return func(c fiber.Ctx) error {
		if !limiter.Allow() {
			return ErrorResponse(c, fiber.StatusTooManyRequests, "RATE_LIMITED", "Server is busy. Try again shortly.")
		}
		return c.Next()
	}
}

// KeyByIP returns the hashed client IP as the rate limit key, so raw
// addresses never reach a shared store.
func KeyByIP(c fiber.Ctx) string {
	return "ip:" + hash.ShortIP(c.IP())
}

// NewLoginRateLimiter guards credential endpoints per client IP. With a redis
// client the counters are shared across instances. A non-positive limit
// disables it and returns nil.
func NewLoginRateLimiter(limit int, window time.Duration, rdb *redis.Client) *RateLimiter {
	if limit <= 0 {
		return nil
	}
	var store Store
	if rdb != nil {
		store = NewRedisStore(rdb)
	}
	return NewRateLimiter(RateLimitConfig{
		Max:    limit,
		Window: window,
		KeyFn:  KeyByIP,
		Prefix: "viewtube:login:",
	}, store)
}
