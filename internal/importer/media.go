package importer

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/abhisek/quizdeck/internal/media"
	"github.com/abhisek/quizdeck/internal/quiz"
)

// ResolveMedia rewrites bare relative media paths against an uploaded
// file set: matched files are stored in the blob store and the media
// source becomes a stored reference. URLs, data URIs, and existing
// stored references pass through; unresolved paths are left as literal
// strings.
func ResolveMedia(ctx context.Context, subjects []quiz.Subject, files map[string][]byte, blobs media.BlobStore) error {
	for si := range subjects {
		for ti := range subjects[si].Topics {
			questions := subjects[si].Topics[ti].Questions
			for qi := range questions {
				m := questions[qi].Media
				if m == nil || quiz.ClassifySource(m.Source) != quiz.SourceRelativePath {
					continue
				}
				data, ok := files[m.Source]
				if !ok {
					continue
				}

				id := uuid.NewString()
				blob := media.Blob{
					ID:   id,
					MIME: mimeFor(m.Source),
					Data: data,
				}
				if err := blobs.Store(ctx, blob); err != nil {
					return fmt.Errorf("store media %q: %w", m.Source, err)
				}
				m.Source = quiz.StoredPrefix + id
			}
		}
	}
	return nil
}

// mimeFor derives a content type from the file extension, defaulting to
// a generic binary type.
func mimeFor(path string) string {
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return "application/octet-stream"
}
