package redis

import (
	"context"
	"time"

	"taxpadi/internal/port"
)

type noopCache struct{}

// NewNoopCache returns a Cache that never hits. Used when no Redis address
// is configured.
func NewNoopCache() port.Cache {
	return noopCache{}
}

func (noopCache) Get(_ context.Context, _ string) ([]byte, bool) { return nil, false }

func (noopCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error { return nil }

func (noopCache) Delete(_ context.Context, _ ...string) error { return nil }
