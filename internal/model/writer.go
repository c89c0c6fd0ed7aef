package model

// Writer defines a generic interface for persisting concurrency snapshots.
type Writer interface {
	// Write persists one snapshot of per-second session counts.
	Write(snapshot *Snapshot) error

	// Name identifies the writer in logs.
	Name() string
}
