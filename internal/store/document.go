package store

import (
	"github.com/abhisek/quizdeck/internal/profile"
)

// SchemaVersion is the current persisted document version.
const SchemaVersion = 1

// StateKey is the KV key the application document lives under.
const StateKey = "quizdeck/state"

// Settings are cross-profile preferences.
type Settings struct {
	// ShowExplanations controls whether answer feedback includes the
	// question's explanation text.
	ShowExplanations bool `json:"showExplanations"`
}

// DefaultSettings returns the out-of-the-box settings.
func DefaultSettings() Settings {
	return Settings{ShowExplanations: true}
}

// Document is the single serialized state record: every profile, the
// active profile ID, and settings, under a schema version.
type Document struct {
	Version         int                         `json:"version"`
	Profiles        map[string]*profile.Profile `json:"profiles"`
	ActiveProfileID string                      `json:"activeProfileId"`
	Settings        Settings                    `json:"settings"`
}

// NewDocument captures a profile store into a persistable document.
func NewDocument(profiles *profile.Store, settings Settings) *Document {
	return &Document{
		Version:         SchemaVersion,
		Profiles:        profiles.Snapshot(),
		ActiveProfileID: profiles.ActiveID(),
		Settings:        settings,
	}
}

// ProfileStore rebuilds the profile store held by the document.
func (d *Document) ProfileStore() *profile.Store {
	return profile.FromSnapshot(d.Profiles, d.ActiveProfileID)
}
