package cache

import (
	"context"
	"time"
)

// ReportCache stores rendered report payloads keyed by their scope.
// Reconciliation reports aggregate a full date range on every request, so
// read-heavy dashboards go through this cache instead of the database.
type ReportCache interface {
	// Get returns the cached payload for key, or (nil, nil) on a miss
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores payload under key for ttl
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// InvalidatePrefix removes every entry whose key starts with prefix.
	// Used when new ledger entries land for a hotel.
	InvalidatePrefix(ctx context.Context, prefix string) error

	// Close releases any resources held by the cache
	Close() error
}
