package middleware

import (
	"fmt"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

type Limiter interface {
	Allow(key string, limit int, window time.Duration) bool
}

// RateLimiter is a fixed window counter kept in process memory.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rateBucket
	now     func() time.Time
}

type rateBucket struct {
	count     int
	windowEnd time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{buckets: make(map[string]*rateBucket), now: time.Now}
}

func (r *RateLimiter) Allow(key string, limit int, window time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	bucket, ok := r.buckets[key]
	if !ok || now.After(bucket.windowEnd) {
		r.buckets[key] = &rateBucket{count: 1, windowEnd: now.Add(window)}
		r.sweep(now)
		return true
	}
	if bucket.count >= limit {
		return false
	}
	bucket.count++
	return true
}

// sweep drops expired buckets once the map gets large.
func (r *RateLimiter) sweep(now time.Time) {
	if len(r.buckets) < 10000 {
		return
	}
	for k, b := range r.buckets {
		if now.After(b.windowEnd) {
			delete(r.buckets, k)
		}
	}
}

// FallbackLimiter asks primary when it is set, otherwise secondary.
type FallbackLimiter struct {
	primary   *RedisLimiter
	secondary Limiter
}

func NewFallbackLimiter(primary *RedisLimiter, secondary Limiter) *FallbackLimiter {
	return &FallbackLimiter{primary: primary, secondary: secondary}
}

func (f *FallbackLimiter) Allow(key string, limit int, window time.Duration) bool {
	if f.primary != nil {
		return f.primary.Allow(key, limit, window)
	}
	if f.secondary != nil {
		return f.secondary.Allow(key, limit, window)
	}
	return true
}

// RateLimit limits each signed-in user (or client IP before sign-in) to limit
// requests per window for the routes it guards. name separates the counters of
// different route groups.
func RateLimit(limiter Limiter, name string, limit int, window time.Duration) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if limiter == nil {
			return ctx.Next()
		}

		key := "ip:" + ctx.IP()
		if userID, ok := ctx.Locals("userID").(uint); ok && userID != 0 {
			key = fmt.Sprintf("user:%d", userID)
		}

		if !limiter.Allow("ratelimit:"+name+":"+key, limit, window) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many requests",
			})
		}
		return ctx.Next()
	}
}
