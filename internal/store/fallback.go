package store

import (
	"context"
	"errors"
)

// FallbackKV tries a primary store and falls back to a secondary when the
// primary fails. Missing keys are not failures: ErrNotFound from the
// primary is returned as-is. This is the only place fallback logic lives;
// nothing above the adapter boundary knows there are two stores.
type FallbackKV struct {
	primary   KV
	secondary KV
}

// NewFallbackKV wraps a primary store with a secondary fallback.
func NewFallbackKV(primary, secondary KV) *FallbackKV {
	return &FallbackKV{primary: primary, secondary: secondary}
}

func (f *FallbackKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := f.primary.Get(ctx, key)
	if err == nil || errors.Is(err, ErrNotFound) {
		return value, err
	}
	return f.secondary.Get(ctx, key)
}

func (f *FallbackKV) Set(ctx context.Context, key string, value []byte) error {
	if err := f.primary.Set(ctx, key, value); err != nil {
		return f.secondary.Set(ctx, key, value)
	}
	return nil
}

func (f *FallbackKV) Remove(ctx context.Context, key string) error {
	if err := f.primary.Remove(ctx, key); err != nil {
		return f.secondary.Remove(ctx, key)
	}
	return nil
}

func (f *FallbackKV) Clear(ctx context.Context) error {
	if err := f.primary.Clear(ctx); err != nil {
		return f.secondary.Clear(ctx)
	}
	return nil
}
