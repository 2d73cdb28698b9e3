// Package snapshot provides the persistence adapters for the single-slot
// observation store: a JSON file (default), an embedded SQLite database, or a
// Postgres table for deployments that already run one.
package snapshot

import (
	"fmt"

	"web_monitor_bot/internal/domain/observation"
)

// Backend names accepted by Open.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config selects and parameterizes the backing store.
type Config struct {
	Backend     string
	Path        string // file path (file, sqlite backends)
	DatabaseURL string // postgres backend
}

// Open returns the store adapter for the configured backend.
func Open(cfg Config) (observation.Store, error) {
	switch cfg.Backend {
	case BackendFile, "":
		return NewFileStore(cfg.Path), nil
	case BackendSQLite:
		return OpenSQLiteStore(cfg.Path)
	case BackendPostgres:
		return OpenPostgresStore(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown snapshot backend: %q", cfg.Backend)
	}
}
