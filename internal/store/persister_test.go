package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/profile"
)

func TestPersister_SaveThenLoad(t *testing.T) {
	kv := NewMemoryKV()
	p := NewPersister(kv)

	profiles := profile.NewStore()
	profiles.Create("Alice")
	require.NoError(t, p.Save(NewDocument(profiles, DefaultSettings())))
	p.Flush()
	require.NoError(t, p.Err())

	doc, err := p.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, profiles.ActiveID(), doc.ActiveProfileID)
	assert.Len(t, doc.Profiles, 2)
}

func TestPersister_LoadMissingReturnsNil(t *testing.T) {
	p := NewPersister(NewMemoryKV())

	doc, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestPersister_CoalescesToLatestSnapshot(t *testing.T) {
	kv := NewMemoryKV()
	p := NewPersister(kv)

	profiles := profile.NewStore()
	for i := 0; i < 10; i++ {
		profiles.Rename(profile.DefaultID, "rename")
		require.NoError(t, p.Save(NewDocument(profiles, DefaultSettings())))
	}
	alice := profiles.Create("Alice")
	require.NoError(t, p.Save(NewDocument(profiles, DefaultSettings())))
	p.Flush()

	doc, err := p.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, alice.ID, doc.ActiveProfileID)
}

// failingKV always errors, to exercise the fallback adapter.
type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("backend down")
}
func (failingKV) Set(context.Context, string, []byte) error { return errors.New("backend down") }
func (failingKV) Remove(context.Context, string) error      { return errors.New("backend down") }
func (failingKV) Clear(context.Context) error               { return errors.New("backend down") }

func TestFallbackKV_UsesSecondaryOnPrimaryFailure(t *testing.T) {
	secondary := NewMemoryKV()
	kv := NewFallbackKV(failingKV{}, secondary)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, "k", []byte("v")))

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestFallbackKV_NotFoundIsNotAFailure(t *testing.T) {
	secondary := NewMemoryKV()
	require.NoError(t, secondary.Set(context.Background(), "k", []byte("stale")))

	kv := NewFallbackKV(NewMemoryKV(), secondary)

	_, err := kv.Get(context.Background(), "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteKV_RoundTrip(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	kv := db.KV()
	ctx := context.Background()

	_, err = kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "k", []byte("v1")))
	require.NoError(t, kv.Set(ctx, "k", []byte("v2")))

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	require.NoError(t, kv.Remove(ctx, "k"))
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "a", []byte("1")))
	require.NoError(t, kv.Clear(ctx))
	_, err = kv.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}
