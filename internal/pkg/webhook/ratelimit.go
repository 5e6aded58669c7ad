package webhook

import (
	"context"
	"fmt"
	"log"
	"time"
)

// RateLimiter caps admitted requests per source identity per wall-clock
// minute. It runs before signature verification so unauthenticated floods are
// rejected without doing cryptographic work.
type RateLimiter struct {
	store     Store
	provider  string
	perMinute int

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

func NewRateLimiter(store Store, provider string, perMinute int) *RateLimiter {
	return &RateLimiter{
		store:     store,
		provider:  provider,
		perMinute: perMinute,
		Now:       time.Now,
	}
}

// Allow counts the request against the current minute bucket and reports
// whether it is within budget. Store errors fail open: an unreachable store
// must not reject webhook traffic.
func (rl *RateLimiter) Allow(ctx context.Context, source string) bool {
	if rl.perMinute <= 0 {
		return true
	}
	if source == "" {
		source = "unknown"
	}

	key := fmt.Sprintf("rl:%s:%s:%d", rl.provider, source, rl.Now().Unix()/60)
	n, err := rl.store.Incr(ctx, key)
	if err != nil {
		log.Printf("rate limit counter unavailable, failing open: %v", err)
		return true
	}
	if n == 1 {
		// First hit in this minute window; align expiry to the window.
		_ = rl.store.Expire(ctx, key, 60*time.Second)
	}
	return n <= int64(rl.perMinute)
}
