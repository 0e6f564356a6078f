// Package cache provides the local key/value store backing the client's
// session and step mirror. Values are opaque byte slices keyed by name.
package cache

import "context"

// Repository defines the operations of the local cache.
//
// Get returns (nil, nil) for an absent key so callers can distinguish
// "not cached" from a storage error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
