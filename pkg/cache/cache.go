// Package cache stores finished generation results so repeated runs with the
// same frame, parameters and seed are answered without regenerating.
//
// # Backends
//
//   - [FileCache] keeps entries as JSON files under a directory (CLI default).
//   - [RedisCache] keeps entries in Redis, shared between server instances.
//   - [NullCache] stores nothing; use it to disable caching.
//
// # Keys
//
// A [Keyer] derives cache keys from content hashes. [DefaultKeyer] hashes
// its inputs; [ScopedKeyer] prefixes another keyer's keys to separate
// namespaces.
package cache

import (
	"context"
	"time"
)

// TTLResult is how long generation results stay cached.
const TTLResult = 7 * 24 * time.Hour

// Cache is a byte-oriented key-value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired
	// entries count as missing.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Keyer generates cache keys.
type Keyer interface {
	// ResultKey returns the key for a generation result, given the hash of
	// the frame and the hash of the generation parameters (seed included).
	ResultKey(frameHash, paramsHash string) string
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey implements Keyer.
func (DefaultKeyer) ResultKey(frameHash, paramsHash string) string {
	return hashKey("result", frameHash, paramsHash)
}
