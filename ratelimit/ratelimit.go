// Package ratelimit provides a keyed rate limiter using the token bucket
// algorithm. Each unique key gets its own independent limiter.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// KeyedRateLimiter manages per-key rate limiting.
type KeyedRateLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

// New creates a keyed rate limiter allowing ratePerInterval events per
// interval, with bursts up to burst.
func New(ratePerInterval int, interval time.Duration, burst int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(float64(ratePerInterval) / interval.Seconds()),
		burst:    burst,
	}
}

// PerMinute creates a limiter allowing n events per minute per key, with a
// burst of n.
func PerMinute(n int) *KeyedRateLimiter {
	return New(n, time.Minute, n)
}

// Allow reports whether an event for the given key may happen now.
func (krl *KeyedRateLimiter) Allow(key string) bool {
	return krl.getLimiter(key).Allow()
}

func (krl *KeyedRateLimiter) getLimiter(key string) *rate.Limiter {
	krl.mu.RLock()
	limiter, exists := krl.limiters[key]
	krl.mu.RUnlock()

	if exists {
		return limiter
	}

	krl.mu.Lock()
	defer krl.mu.Unlock()

	// Double-check after acquiring the write lock.
	if limiter, exists = krl.limiters[key]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(krl.limit, krl.burst)
	krl.limiters[key] = limiter
	return limiter
}
