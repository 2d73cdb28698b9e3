package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"web_monitor_bot/internal/domain/observation"
)

// fileRecord is the on-disk schema. Older cycles of the same schema must stay
// readable, so unknown or missing fields are tolerated rather than fatal.
type fileRecord struct {
	Text      string `json:"text"`
	Hash      string `json:"hash"`
	Timestamp string `json:"timestamp"`
	URL       string `json:"url"`
}

// FileStore persists the observation slot as a small JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Read loads the slot. A missing file or unparsable contents read as no prior
// observation; the next successful cycle re-baselines.
func (s *FileStore) Read(_ context.Context) (*observation.Observation, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error reading snapshot file: %w", err)
	}

	var rec fileRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, nil
	}
	if rec.Hash == "" {
		return nil, nil
	}

	// A malformed timestamp degrades to the zero time rather than dropping
	// the whole observation.
	ts, _ := time.Parse(time.RFC3339, rec.Timestamp)

	return &observation.Observation{
		Content:     rec.Text,
		Fingerprint: rec.Hash,
		Timestamp:   ts,
		SourceURL:   rec.URL,
	}, nil
}

// Write replaces the slot atomically: the record is written to a temp file in
// the same directory and renamed over the previous one, so a crash mid-write
// leaves the old slot intact.
func (s *FileStore) Write(_ context.Context, obs *observation.Observation) error {
	rec := fileRecord{
		Text:      obs.Content,
		Hash:      obs.Fingerprint,
		Timestamp: obs.Timestamp.Format(time.RFC3339),
		URL:       obs.SourceURL,
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".snapshot-*")
	if err != nil {
		return fmt.Errorf("error creating temp snapshot file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("error writing temp snapshot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error closing temp snapshot file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error replacing snapshot file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
