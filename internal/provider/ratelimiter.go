package provider

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a token bucket guarding outbound calls to the market
// data API. One token refills every interval, up to burst tokens.
type RateLimiter struct {
	mu         sync.Mutex
	tokens     int
	burst      int
	interval   time.Duration
	lastRefill time.Time
}

// NewRateLimiter allows burst immediate calls and then one call per
// interval.
func NewRateLimiter(burst int, interval time.Duration) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		tokens:     burst,
		burst:      burst,
		interval:   interval,
		lastRefill: time.Now(),
	}
}

// Wait blocks until a token is available or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		if r.take() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.interval):
		}
	}
}

func (r *RateLimiter) take() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	elapsed := time.Since(r.lastRefill)
	refilled := int(elapsed / r.interval)
	if refilled > 0 {
		r.tokens += refilled
		if r.tokens > r.burst {
			r.tokens = r.burst
		}
		r.lastRefill = r.lastRefill.Add(time.Duration(refilled) * r.interval)
	}

	if r.tokens > 0 {
		r.tokens--
		return true
	}
	return false
}
