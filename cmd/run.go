package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/app"
	"github.com/abhisek/quizdeck/internal/config"
	"github.com/abhisek/quizdeck/internal/importer"
	"github.com/abhisek/quizdeck/internal/media"
	"github.com/abhisek/quizdeck/internal/profile"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/store"
)

// appEnv holds the opened storage handles behind a Services bundle.
type appEnv struct {
	services *screen.Services
	db       *store.DB
	kv       store.KV
	blobs    media.BlobStore
}

// wipe clears every stored key and attachment.
func (e *appEnv) wipe(ctx context.Context) error {
	if err := e.kv.Clear(ctx); err != nil {
		return err
	}
	return e.blobs.Clear(ctx)
}

// close flushes pending writes and releases the database.
func (e *appEnv) close() {
	if e.services.Persister != nil {
		e.services.Persister.Flush()
		if err := e.services.Persister.Err(); err != nil {
			fmt.Fprintln(os.Stderr, "Warning: state not fully saved:", err)
		}
	}
	if e.db != nil {
		_ = e.db.Close()
	}
}

// openEnv opens storage, loads (or seeds) the state document, and
// builds the shared services. A broken database degrades to in-memory
// state with a warning instead of refusing to start.
func openEnv(cmd *cobra.Command) (*appEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	env := &appEnv{}
	var kv store.KV
	var blobs media.BlobStore

	if cfg.MemoryOnly {
		kv = store.NewMemoryKV()
		blobs = media.NewMemoryStore()
	} else {
		dbPath, err := resolveDBPath(cmd, cfg)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		db, err := store.Open(dbPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Warning: cannot open database, state will not persist:", err)
			kv = store.NewMemoryKV()
			blobs = media.NewMemoryStore()
		} else {
			env.db = db
			// Runtime write failures degrade to memory rather than
			// losing the session.
			kv = store.NewFallbackKV(db.KV(), store.NewMemoryKV())
			blobs = media.NewSQLiteStore(db.DB())
		}
	}

	persister := store.NewPersister(kv)

	doc, err := persister.Load(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: stored state unreadable, starting fresh:", err)
		doc = nil
	}

	var profiles *profile.Store
	settings := store.DefaultSettings()
	if doc != nil {
		profiles = doc.ProfileStore()
		settings = doc.Settings
	} else {
		profiles = profile.NewStore()
		if subjects, err := importer.Seed(); err == nil {
			profiles.ImportSubjects(profiles.ActiveID(), subjects)
		}
	}

	env.kv = kv
	env.blobs = blobs
	env.services = &screen.Services{
		Profiles:  profiles,
		Settings:  settings,
		Persister: persister,
		Media:     media.NewLoader(blobs),
	}
	env.services.Rebind()
	return env, nil
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.close()

	return app.Run(env.services)
}
