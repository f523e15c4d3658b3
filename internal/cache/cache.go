// Package cache keeps extracted stat block records in Redis, keyed by the
// creature ID of the source text.
package cache

import (
	"context"

	"github.com/jwebster45206/creature-barn/pkg/statblock"
)

// Cache defines the record cache operations.
type Cache interface {
	// Ping tests the cache connection
	Ping(ctx context.Context) error

	// Get returns the cached record for id, or nil with no error on a miss.
	Get(ctx context.Context, id string) (statblock.Record, error)

	// Set stores rec under id for the configured TTL.
	Set(ctx context.Context, id string, rec statblock.Record) error

	// Delete removes the record for id. Deleting a missing key is not an error.
	Delete(ctx context.Context, id string) error

	// Close closes the cache connection
	Close() error
}

// KeyPrefix namespaces record keys.
const KeyPrefix = "statblock:"

// Key returns the Redis key for a creature ID.
func Key(id string) string {
	return KeyPrefix + id
}
