package shared

import (
	"context"
	"time"
)

// DefaultIdempotencyTTL is how long an accepted Idempotency-Key blocks a replay
const DefaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore records accepted request keys so a retried contract
// create or renew is refused instead of applied twice.
type IdempotencyStore interface {
	// MarkProcessed claims key for ttl. It reports false when the key is
	// already held.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	IsProcessed(ctx context.Context, key string) (bool, error)
	// Release drops key after a failed request so the client may retry
	Release(ctx context.Context, key string) error
	Close() error
}
