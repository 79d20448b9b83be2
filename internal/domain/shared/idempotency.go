package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers recently applied request keys so that a
// retried batch save with the same Idempotency-Key is not applied twice.
type IdempotencyStore interface {
	// MarkProcessed records a request key with a TTL.
	// Returns true if the key was newly recorded, false if a request
	// with the same key was already applied within the TTL window.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether a request key has already been applied
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Close closes the store and releases resources
	Close() error
}
