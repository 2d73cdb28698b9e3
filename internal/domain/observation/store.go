package observation

import "context"

// Store defines the single-slot persistence port for the last observation.
// Backing stores (file, SQLite, Postgres) are infra adapters; the monitor
// service depends only on this interface.
type Store interface {
	// Read returns the stored observation, or (nil, nil) when no prior
	// observation exists or the persisted data cannot be parsed. A corrupt
	// slot never blocks the pipeline, it just forces a re-baseline.
	Read(ctx context.Context) (*Observation, error)

	// Write overwrites the slot with the given observation. The write must be
	// all-or-nothing: a crash mid-write must not corrupt an existing slot.
	Write(ctx context.Context, obs *Observation) error

	Close() error
}
