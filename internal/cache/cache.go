// Package cache provides the best-effort document cache. The cache is strictly
// optional: implementations absorb every failure, so Get degrades to a miss
// and Set/Delete degrade to no-ops. Callers never see a cache error.
package cache

import (
	"context"
	"time"
)

// Cache is the key-value contract the document service reads through.
//
// Set and Delete deliberately return nothing: a failed population or
// invalidation is logged inside the implementation and must never fail the
// surrounding operation, so there is no result to propagate.
type Cache interface {
	// Get returns the cached content and whether it was present. Any cache
	// error reads as a miss.
	Get(ctx context.Context, id string) (string, bool)

	// Set stores content under id for ttl. ttl <= 0 selects the configured
	// default.
	Set(ctx context.Context, id, content string, ttl time.Duration)

	// Delete invalidates the entry for id. Absence is not an error.
	Delete(ctx context.Context, id string)

	// Ping reports reachability for the health check.
	Ping(ctx context.Context) error

	// Enabled reports whether caching is administratively active.
	Enabled() bool
}
