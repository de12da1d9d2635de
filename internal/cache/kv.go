package cache

import (
	"context"
	"time"
)

// KeyValueStore is the capability the session cache is built on. It is the
// server-side stand-in for the browser's persistent key-value storage:
// whole values only, no partial updates.
//
// Get returns (nil, nil) for an absent key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}
