package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const HEALTHCHECK_TIMER = 15 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// MonitorHealth pings target every interval and stores the outcome in healthy.
// State changes are logged once.
func MonitorHealth(ctx context.Context, name string, target Pinger, healthy *atomic.Bool, interval time.Duration) {
	if interval <= 0 {
		interval = HEALTHCHECK_TIMER
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			checkOnce(ctx, name, target, healthy, interval)
		}
	}
}

func checkOnce(ctx context.Context, name string, target Pinger, healthy *atomic.Bool, timeout time.Duration) {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := target.Ping(pingCtx)
	was := healthy.Swap(err == nil)
	switch {
	case err != nil && was:
		slog.Warn("[HealthCheck] Dependency is unhealthy",
			slog.String("name", name),
			slog.String("error", err.Error()))
	case err == nil && !was:
		slog.Info("[HealthCheck] Dependency recovered", slog.String("name", name))
	}
}
