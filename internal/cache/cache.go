// Package cache provides a JSON value cache and a keyed mutual-exclusion
// lock. The in-process implementations serve a single server; the Redis
// ones are shared by every replica.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotObtained is returned when a lock could not be taken before the
// context expired.
var ErrNotObtained = errors.New("cache: lock not obtained")

// Cache stores JSON-encoded values with a TTL.
type Cache interface {
	// Get decodes the value under key into dest and reports whether it was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Locker serializes work on a key across goroutines (and, for Redis, processes).
type Locker interface {
	// Lock blocks until key is held or ctx is done. The lock expires after
	// ttl even if unlock is never called.
	Lock(ctx context.Context, key string, ttl time.Duration) (unlock func(), err error)
}
