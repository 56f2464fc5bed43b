// Package cache provides byte-level key/value caching with expiration.
//
// Backends:
//   - [NullCache]: stores nothing, for --no-cache runs and tests
//   - [MemoryCache]: in-process map, the server default
//   - [FileCache]: one JSON file per key under the XDG cache directory
//   - [SQLiteCache]: one SQLite database file, for a single long-running server
//   - [RedisCache]: shared cache for multi-instance deployments
//
// Higher layers (package store) encode their records as JSON and use the
// cache as a last-write-wins key/value store: Set always replaces.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque values by key.
type Cache interface {
	// Get returns the value for key. hit is false when the key is missing or
	// expired.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key, replacing any previous value. A ttl of zero
	// means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
