package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"web_monitor_bot/internal/domain/observation"
)

const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 25
	defaultConnMaxLifetime = 5 * time.Minute
	defaultConnMaxIdleTime = 1 * time.Minute
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS monitor_snapshots (
    slot     SMALLINT PRIMARY KEY DEFAULT 1 CHECK (slot = 1),
    text     TEXT        NOT NULL,
    hash     TEXT        NOT NULL,
    taken_at TIMESTAMPTZ NOT NULL,
    url      TEXT        NOT NULL
)`

// PostgresStore keeps the observation slot as a single row in Postgres, for
// deployments that already run a database server.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgresStore connects to Postgres, pings it to verify connectivity and
// ensures the snapshot table exists.
func OpenPostgresStore(dataSourceName string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(defaultMaxOpenConns)
	db.SetMaxIdleConns(defaultMaxIdleConns)
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	db.SetConnMaxIdleTime(defaultConnMaxIdleTime)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(postgresSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create snapshot table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Read(ctx context.Context) (*observation.Observation, error) {
	query := `SELECT text, hash, taken_at, url FROM monitor_snapshots WHERE slot = 1`
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

func (s *PostgresStore) Write(ctx context.Context, obs *observation.Observation) error {
	query := `INSERT INTO monitor_snapshots (slot, text, hash, taken_at, url)
              VALUES (1, $1, $2, $3, $4)
              ON CONFLICT (slot) DO UPDATE SET
                  text = EXCLUDED.text,
                  hash = EXCLUDED.hash,
                  taken_at = EXCLUDED.taken_at,
                  url = EXCLUDED.url`
	if _, err := s.db.ExecContext(ctx, query, obs.Content, obs.Fingerprint, obs.Timestamp, obs.SourceURL); err != nil {
		return fmt.Errorf("error writing snapshot row: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
