// Package store persists the application document. State lives behind a
// small asynchronous key-value interface so the session layer never sees
// the backing engine; concrete adapters wrap sqlite and memory, with
// fallback-on-failure handled at the adapter boundary only.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for missing keys.
var ErrNotFound = errors.New("store: key not found")

// KV is a durable string-keyed byte store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
