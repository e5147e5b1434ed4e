// Package cache stores encoded API responses for a bounded time.
package cache

import (
	"context"
	"time"
)

// Cache holds response bodies by key. A miss is reported with ok == false and
// a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (body []byte, ok bool, err error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
	Close() error
}
