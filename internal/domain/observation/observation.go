package observation

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Observation is the last content seen for the monitored page: the canonical
// extracted text, its fingerprint and when it was taken. Exactly one slot is
// kept per monitored URL; every cycle overwrites it.
type Observation struct {
	Content     string
	Fingerprint string
	Timestamp   time.Time
	SourceURL   string
}

// New builds an Observation for the given content, computing the fingerprint
// here so every store adapter persists the same hash for the same content.
func New(content, sourceURL string) *Observation {
	return &Observation{
		Content:     content,
		Fingerprint: Fingerprint(content),
		Timestamp:   time.Now(),
		SourceURL:   sourceURL,
	}
}

// Fingerprint returns the hex-encoded SHA-256 digest of the UTF-8 content.
// Deterministic across runs and processes; used only for change detection.
func Fingerprint(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
