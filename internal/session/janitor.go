package session

import (
	"context"
	"log/slog"
	"time"
)

const evictionInterval = 5 * time.Minute

// StartEvictionWorker runs a background goroutine that periodically
// drops sessions idle for longer than idleTTL. Without it, unbounded
// session-identifier churn grows memory for the process lifetime.
func StartEvictionWorker(ctx context.Context, store Store, idleTTL time.Duration) {
	ticker := time.NewTicker(evictionInterval)
	go func() {
		defer ticker.Stop()
		slog.Info("Session eviction worker started", "interval", evictionInterval, "idle_ttl", idleTTL)

		for {
			select {
			case <-ticker.C:
				if n := store.EvictIdle(time.Now().Add(-idleTTL)); n > 0 {
					slog.Info("Evicted idle sessions", "count", n, "remaining", store.Count())
				}
			case <-ctx.Done():
				slog.Info("Session eviction worker shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
}
