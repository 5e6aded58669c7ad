package webhook

import (
	"context"
	"time"
)

// Store is the slice of the shared key-value store the webhook pipeline relies
// on. Incr and SetNX must be atomic; Get and SetEx are best-effort caching.
// *cache.Client satisfies this interface in production.
type Store interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	SetEx(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	SetNX(ctx context.Context, key string, value interface{}, ttl time.Duration) (bool, error)
}
