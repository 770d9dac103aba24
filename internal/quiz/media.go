package quiz

import "strings"

// MediaKind distinguishes image and video attachments.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// StoredPrefix marks a media source as a blob-store reference.
const StoredPrefix = "stored:"

// Media is a question attachment. Source is one of: an absolute HTTP(S)
// URL, an inline data URI, a blob-store reference (StoredPrefix + id), or
// a bare relative path awaiting resolution during import.
type Media struct {
	Kind   MediaKind `json:"kind"`
	Source string    `json:"source"`
}

// SourceKind classifies a media source string.
type SourceKind int

const (
	SourceURL SourceKind = iota
	SourceDataURI
	SourceStored
	SourceRelativePath
)

// ClassifySource reports how a media source string should be resolved.
func ClassifySource(s string) SourceKind {
	switch {
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		return SourceURL
	case strings.HasPrefix(s, "data:"):
		return SourceDataURI
	case strings.HasPrefix(s, StoredPrefix):
		return SourceStored
	}
	return SourceRelativePath
}

// IsStored reports whether the media points into the blob store.
func (m Media) IsStored() bool {
	return ClassifySource(m.Source) == SourceStored
}

// StoredID returns the blob-store ID, or "" if the media is not stored.
func (m Media) StoredID() string {
	if !m.IsStored() {
		return ""
	}
	return strings.TrimPrefix(m.Source, StoredPrefix)
}
