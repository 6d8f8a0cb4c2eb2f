package translate

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// DefaultRateLimit is the default number of translation requests per minute.
const DefaultRateLimit = 10

// RateLimiter throttles outbound translation requests. The limit can be
// changed at runtime when the admin updates translation settings.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	limit   int
}

// NewRateLimiter creates a rate limiter allowing perMinute requests per
// minute. Non-positive values fall back to DefaultRateLimit.
func NewRateLimiter(perMinute int) *RateLimiter {
	if perMinute <= 0 {
		perMinute = DefaultRateLimit
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(perMinuteRate(perMinute), 1),
		limit:   perMinute,
	}
}

func perMinuteRate(perMinute int) rate.Limit {
	return rate.Limit(float64(perMinute) / 60.0)
}

// GetLimit returns the current per-minute limit.
func (r *RateLimiter) GetLimit() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.limit
}

// SetLimit updates the per-minute limit. Non-positive values reset to
// DefaultRateLimit.
func (r *RateLimiter) SetLimit(perMinute int) {
	if perMinute <= 0 {
		perMinute = DefaultRateLimit
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limit = perMinute
	r.limiter.SetLimit(perMinuteRate(perMinute))
}

// Wait blocks until a request may proceed or the context is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	limiter := r.limiter
	r.mu.Unlock()
	return limiter.Wait(ctx)
}
