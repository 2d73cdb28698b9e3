package observation

// ChangeEvent is the outcome of one comparison against the stored slot.
// It is constructed per cycle and never persisted.
type ChangeEvent struct {
	Previous    *Observation // nil on the first run
	Current     string
	Fingerprint string
	FirstRun    bool
	Changed     bool
}
