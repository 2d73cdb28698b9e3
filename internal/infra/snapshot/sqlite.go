package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"web_monitor_bot/internal/domain/observation"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshot (
    id       INTEGER PRIMARY KEY CHECK (id = 1),
    text     TEXT      NOT NULL,
    hash     TEXT      NOT NULL,
    taken_at TIMESTAMP NOT NULL,
    url      TEXT      NOT NULL
)`

// SQLiteStore keeps the observation slot as a single row in an embedded
// SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) the database at path and ensures
// the schema exists.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite snapshot path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("error creating snapshot directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening sqlite snapshot db: %w", err)
	}
	// SQLite prefers a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating snapshot schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Read(ctx context.Context) (*observation.Observation, error) {
	query := `SELECT text, hash, taken_at, url FROM snapshot WHERE id = 1`
	obs := observation.Observation{}
	err := s.db.QueryRowContext(ctx, query).Scan(&obs.Content, &obs.Fingerprint, &obs.Timestamp, &obs.SourceURL)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading snapshot row: %w", err)
	}
	return &obs, nil
}

func (s *SQLiteStore) Write(ctx context.Context, obs *observation.Observation) error {
	query := `INSERT INTO snapshot (id, text, hash, taken_at, url)
              VALUES (1, ?, ?, ?, ?)
              ON CONFLICT(id) DO UPDATE SET
                  text = excluded.text,
                  hash = excluded.hash,
                  taken_at = excluded.taken_at,
                  url = excluded.url`
	if _, err := s.db.ExecContext(ctx, query, obs.Content, obs.Fingerprint, obs.Timestamp, obs.SourceURL); err != nil {
		return fmt.Errorf("error writing snapshot row: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
