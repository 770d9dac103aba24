package media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLiteStore implements BlobStore over the media table created by the
// store package.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore creates a blob store on an open database handle.
func NewSQLiteStore(db *sqlx.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Store(ctx context.Context, blob Blob) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO media (id, mime, data) VALUES (?, ?, ?) ON CONFLICT(id) DO UPDATE SET mime = excluded.mime, data = excluded.data",
		blob.ID, blob.MIME, blob.Data)
	if err != nil {
		return fmt.Errorf("store blob %q: %w", blob.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Blob, error) {
	var row struct {
		ID   string `db:"id"`
		MIME string `db:"mime"`
		Data []byte `db:"data"`
	}
	err := s.db.GetContext(ctx, &row, "SELECT id, mime, data FROM media WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return Blob{}, ErrNotFound
	}
	if err != nil {
		return Blob{}, fmt.Errorf("get blob %q: %w", id, err)
	}
	return Blob{ID: row.ID, MIME: row.MIME, Data: row.Data}, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM media WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete blob %q: %w", id, err)
	}
	return nil
}

func (s *SQLiteStore) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.db.SelectContext(ctx, &ids, "SELECT id FROM media ORDER BY id"); err != nil {
		return nil, fmt.Errorf("list blob ids: %w", err)
	}
	return ids, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM media"); err != nil {
		return fmt.Errorf("clear blobs: %w", err)
	}
	return nil
}
