// Package store persists ingested layouts in SQLite using the pure Go
// driver (modernc.org/sqlite), so the server builds with CGO disabled.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS layouts (
	id            TEXT PRIMARY KEY,
	title         TEXT NOT NULL,
	content_hash  TEXT NOT NULL,
	raw           BLOB NOT NULL,
	search_text   TEXT NOT NULL,
	control_count INTEGER NOT NULL,
	valid         INTEGER NOT NULL,
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_layouts_hash ON layouts(content_hash);
`

// Record is one stored layout.
type Record struct {
	ID           string
	Title        string
	ContentHash  string
	Raw          []byte
	SearchText   string
	ControlCount int
	Valid        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Summary is the listing shape: everything except the raw document and
// search text.
type Summary struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	ContentHash  string    `json:"content_hash"`
	ControlCount int       `json:"control_count"`
	Valid        bool      `json:"valid"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Stats summarizes store contents.
type Stats struct {
	Layouts int `json:"layouts"`
	Valid   int `json:"valid"`
}

// Store is a SQLite-backed layout repository. Safe for concurrent use;
// database/sql handles connection pooling.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// schema. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Put inserts or replaces a layout record. CreatedAt is preserved on
// replace when the caller leaves it zero.
func (s *Store) Put(ctx context.Context, rec Record) error {
	now := time.Now().UTC()
	created := rec.CreatedAt
	if created.IsZero() {
		if existing, err := s.Get(ctx, rec.ID); err == nil && existing != nil {
			created = existing.CreatedAt
		} else {
			created = now
		}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO layouts
			(id, title, content_hash, raw, search_text, control_count, valid, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Title, rec.ContentHash, rec.Raw, rec.SearchText,
		rec.ControlCount, boolToInt(rec.Valid),
		created.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("put layout %s: %w", rec.ID, err)
	}
	return nil
}

// Get returns the record for id, or nil when it does not exist.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, content_hash, raw, search_text, control_count, valid, created_at, updated_at
		FROM layouts WHERE id = ?`, id)

	var rec Record
	var valid int
	var created, updated string
	err := row.Scan(&rec.ID, &rec.Title, &rec.ContentHash, &rec.Raw, &rec.SearchText,
		&rec.ControlCount, &valid, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get layout %s: %w", id, err)
	}
	rec.Valid = valid != 0
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return &rec, nil
}

// FindByHash returns the id of a layout with the given content hash, or ""
// when none exists. Used for ingest dedup.
func (s *Store) FindByHash(ctx context.Context, hash string) (string, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id FROM layouts WHERE content_hash = ? LIMIT 1`, hash)
	var id string
	err := row.Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("find by hash: %w", err)
	}
	return id, nil
}

// List returns summaries of stored layouts, most recently updated first.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, content_hash, control_count, valid, updated_at
		FROM layouts ORDER BY updated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var valid int
		var updated string
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.ContentHash, &sum.ControlCount, &valid, &updated); err != nil {
			return nil, fmt.Errorf("scan layout: %w", err)
		}
		sum.Valid = valid != 0
		sum.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes a layout. Deleting a missing id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM layouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete layout %s: %w", id, err)
	}
	return nil
}

// GetStats returns store-wide counts.
func (s *Store) GetStats(ctx context.Context) (Stats, error) {
	var st Stats
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(valid), 0) FROM layouts`)
	if err := row.Scan(&st.Layouts, &st.Valid); err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	return st, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
