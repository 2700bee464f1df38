// Package cache stores encoded render artifacts between runs.
//
// Only reproducible renders are worth caching: a frame drawn with a fixed
// seed is a pure function of the descriptors and the render options, so
// [ArtifactKey] hashes exactly those inputs. Unseeded renders bypass the
// cache entirely.
//
// Two implementations are provided: [FileCache] for the CLI (one file per
// entry under the user cache directory) and [NullCache] when caching is
// disabled.
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long a cached artifact stays valid.
const TTLArtifact = 30 * 24 * time.Hour

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
