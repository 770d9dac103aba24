// Package media stores question attachments (images, video) as blobs
// keyed by generated IDs, outside the main state document.
package media

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get for unknown blob IDs.
var ErrNotFound = errors.New("media: blob not found")

// Blob is a stored media attachment.
type Blob struct {
	ID   string
	MIME string
	Data []byte
}

// BlobStore is the asynchronous media store interface.
type BlobStore interface {
	Store(ctx context.Context, blob Blob) error
	Get(ctx context.Context, id string) (Blob, error)
	Delete(ctx context.Context, id string) error
	ListIDs(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}
