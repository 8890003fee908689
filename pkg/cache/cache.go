// Package cache stores generated results keyed by a hash of the request.
//
// Three backends implement [Cache]: [NullCache] disables caching,
// [FileCache] persists entries under a local directory for the CLI, and
// [RedisCache] shares entries between API replicas. Keys come from a
// [Keyer], so the same request always maps to the same entry.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored data and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
