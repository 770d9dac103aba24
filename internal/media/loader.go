package media

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Retry bounds for blob loads. This is the only retry policy in the
// system: after maxAttempts the failure surfaces to the caller as a
// load-failure state.
const (
	maxAttempts  = 3
	retryBackoff = 250 * time.Millisecond
)

// Loader reads blobs with bounded retries and a fixed backoff delay.
type Loader struct {
	store   BlobStore
	backoff time.Duration
}

// NewLoader creates a loader over a blob store.
func NewLoader(store BlobStore) *Loader {
	return &Loader{store: store, backoff: retryBackoff}
}

// Load fetches a blob, retrying transient failures up to the attempt
// bound. Unknown IDs fail immediately: retrying cannot make a missing
// blob appear.
func (l *Loader) Load(ctx context.Context, id string) (Blob, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		blob, err := l.store.Get(ctx, id)
		if err == nil {
			return blob, nil
		}
		if errors.Is(err, ErrNotFound) {
			return Blob{}, err
		}
		lastErr = err

		if attempt < maxAttempts {
			select {
			case <-time.After(l.backoff):
			case <-ctx.Done():
				return Blob{}, ctx.Err()
			}
		}
	}
	return Blob{}, fmt.Errorf("load blob %q after %d attempts: %w", id, maxAttempts, lastErr)
}
