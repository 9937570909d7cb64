package port

import (
	"context"
	"time"
)

// Cache defines the contract for the calculation-history cache. Lookups that
// miss return ok = false; errors are treated as misses by callers.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
