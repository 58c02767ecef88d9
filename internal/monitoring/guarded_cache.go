package monitoring

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/spacesedan/reviewsense/internal/review"
)

// GuardedCache passes calls through to Cache only while Healthy is true. When
// the flag is down reads miss and writes are dropped.
type GuardedCache struct {
	Cache   review.Cache
	Healthy *atomic.Bool
}

func (g GuardedCache) Get(ctx context.Context, key string) (string, bool, error) {
	if !g.Healthy.Load() {
		return "", false, nil
	}
	return g.Cache.Get(ctx, key)
}

func (g GuardedCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if !g.Healthy.Load() {
		return nil
	}
	return g.Cache.Set(ctx, key, value, ttl)
}
