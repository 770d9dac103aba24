package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/profile"
)

func TestMigrateV0_WrapsLegacyIntoDefaultProfile(t *testing.T) {
	legacy := []byte(`{
		"subjects": [{"id": "bio", "name": "Biology", "topics": []}],
		"progress": {"bio": {"t1": {"q1": {"id": "q1", "attempts": 2, "streak": 1, "mastered": true}}}},
		"session": {"subjectId": "bio", "mode": "topic_order", "turn": 4}
	}`)

	raw, err := migrateV0(legacy)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.Equal(t, 1, doc.Version)
	assert.Equal(t, profile.DefaultID, doc.ActiveProfileID)
	require.Contains(t, doc.Profiles, profile.DefaultID)

	p := doc.Profiles[profile.DefaultID]
	require.Len(t, p.Subjects, 1)
	assert.Equal(t, "Biology", p.Subjects[0].Name)
	assert.Equal(t, "bio", p.Session.SubjectID)
	assert.Equal(t, 4, p.Session.Turn)

	qp := p.Progress.Question("bio", "t1", "q1")
	require.NotNil(t, qp)
	assert.True(t, qp.Mastered)
	assert.Equal(t, 2, qp.Attempts)
}

func TestMigrateV0_EmptyLegacyGetsDefaults(t *testing.T) {
	raw, err := migrateV0([]byte(`{}`))
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(raw, &doc))

	assert.True(t, doc.Settings.ShowExplanations)
	p := doc.Profiles[profile.DefaultID]
	require.NotNil(t, p)
	assert.NotNil(t, p.Progress)
}

func TestDecode_RunsChainForUnversionedDocument(t *testing.T) {
	doc, err := Decode([]byte(`{"subjects": []}`))
	require.NoError(t, err)

	assert.Equal(t, SchemaVersion, doc.Version)
	assert.Contains(t, doc.Profiles, profile.DefaultID)
}

func TestDecode_CurrentVersionPassesThrough(t *testing.T) {
	current := []byte(`{
		"version": 1,
		"profiles": {"p1": {"id": "p1", "name": "P1"}},
		"activeProfileId": "p1",
		"settings": {"showExplanations": false}
	}`)

	doc, err := Decode(current)
	require.NoError(t, err)

	assert.Equal(t, "p1", doc.ActiveProfileID)
	assert.False(t, doc.Settings.ShowExplanations)
}

func TestMigrate_RejectsFutureVersion(t *testing.T) {
	_, err := Migrate([]byte(`{"version": 99}`), 99)
	assert.Error(t, err)
}

func TestDocument_ProfileStoreRoundTrip(t *testing.T) {
	profiles := profile.NewStore()
	profiles.Create("Alice")

	doc := NewDocument(profiles, DefaultSettings())
	rebuilt := doc.ProfileStore()

	assert.Equal(t, profiles.ActiveID(), rebuilt.ActiveID())
	assert.Len(t, rebuilt.List(), 2)
}
