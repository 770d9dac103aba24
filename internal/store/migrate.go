package store

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/quizdeck/internal/profile"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/session"
)

// migration transforms a raw document from one version to the next. Each
// step is pure: bytes in, bytes out, no storage access, so every
// transition is unit-testable on its own.
type migration func(raw json.RawMessage) (json.RawMessage, error)

// migrations[v] migrates a version-v document to version v+1.
var migrations = map[int]migration{
	0: migrateV0,
}

// Decode parses a persisted document, running the migration chain when
// the stored version is older than SchemaVersion.
func Decode(raw []byte) (*Document, error) {
	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("parse state document: %w", err)
	}

	migrated, err := Migrate(raw, probe.Version)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(migrated, &doc); err != nil {
		return nil, fmt.Errorf("parse state document v%d: %w", SchemaVersion, err)
	}
	return &doc, nil
}

// Migrate runs the migration chain from fromVersion up to SchemaVersion.
func Migrate(raw json.RawMessage, fromVersion int) (json.RawMessage, error) {
	if fromVersion > SchemaVersion {
		return nil, fmt.Errorf("state document version %d is newer than supported %d", fromVersion, SchemaVersion)
	}
	for v := fromVersion; v < SchemaVersion; v++ {
		step, ok := migrations[v]
		if !ok {
			return nil, fmt.Errorf("no migration from version %d", v)
		}
		next, err := step(raw)
		if err != nil {
			return nil, fmt.Errorf("migrate v%d to v%d: %w", v, v+1, err)
		}
		raw = next
	}
	return raw, nil
}

// legacyDocument is the pre-profile flat layout: one subject library, one
// progress map, one session, no version field.
type legacyDocument struct {
	Subjects []quiz.Subject   `json:"subjects"`
	Progress quiz.ProgressMap `json:"progress"`
	Session  session.State    `json:"session"`
	Settings *Settings        `json:"settings"`
}

// migrateV0 wraps a legacy flat document into a single default profile.
func migrateV0(raw json.RawMessage) (json.RawMessage, error) {
	var legacy legacyDocument
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("parse legacy document: %w", err)
	}

	p := profile.New(profile.DefaultID, profile.DefaultName)
	p.Subjects = legacy.Subjects
	if legacy.Progress != nil {
		p.Progress = legacy.Progress
	}
	if legacy.Session.Mode.Valid() {
		p.Session = legacy.Session
	}

	settings := DefaultSettings()
	if legacy.Settings != nil {
		settings = *legacy.Settings
	}

	doc := Document{
		Version:         1,
		Profiles:        map[string]*profile.Profile{p.ID: p},
		ActiveProfileID: p.ID,
		Settings:        settings,
	}
	return json.Marshal(doc)
}
