package report

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"SessionSpectra/internal/model"
)

// SummaryData holds the metadata written alongside an archived snapshot.
type SummaryData struct {
	SnapshotID    string `json:"snapshot_id"`
	Begin         uint64 `json:"begin"`
	End           uint64 `json:"end"`
	NumBins       int    `json:"num_bins"`
	TotalSessions uint64 `json:"total_sessions"`
	PeakCount     uint64 `json:"peak_count"`
	Timestamp     string `json:"timestamp"`
}

// GobWriter archives snapshots in gob format with a JSON summary alongside.
// It implements the model.Writer interface.
type GobWriter struct {
	rootPath string
}

// NewGobWriter creates a new archive writer rooted at rootPath.
func NewGobWriter(rootPath string) model.Writer {
	return &GobWriter{rootPath: rootPath}
}

// Name identifies the writer in logs.
func (w *GobWriter) Name() string {
	return "gob"
}

// Write serializes one snapshot to counts.dat and its summary.json in a
// per-snapshot directory.
func (w *GobWriter) Write(snap *model.Snapshot) error {
	dir := filepath.Join(w.rootPath, snap.TakenAt.Format("2006-01-02_15-04-05"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	dataPath := filepath.Join(dir, "counts.dat")
	file, err := os.Create(dataPath)
	if err != nil {
		return fmt.Errorf("failed to create archive file '%s': %w", dataPath, err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(snap); err != nil {
		return fmt.Errorf("failed to encode snapshot to gob for file '%s': %w", dataPath, err)
	}

	summary := SummaryData{
		SnapshotID:    snap.ID.String(),
		Begin:         snap.Span.Begin,
		End:           snap.Span.End,
		NumBins:       len(snap.Counts),
		TotalSessions: snap.Sessions,
		PeakCount:     snap.Peak(),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	summaryPath := filepath.Join(dir, "summary.json")
	summaryFile, err := os.Create(summaryPath)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer summaryFile.Close()

	encoder := json.NewEncoder(summaryFile)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(summary); err != nil {
		return fmt.Errorf("failed to encode summary to json: %w", err)
	}

	log.Printf("Archived snapshot %s to %s", snap.ID, dir)
	return nil
}

// LoadArchive reads back a snapshot archived by GobWriter.
func LoadArchive(dataPath string) (*model.Snapshot, error) {
	file, err := os.Open(dataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive file '%s': %w", dataPath, err)
	}
	defer file.Close()

	var snap model.Snapshot
	if err := gob.NewDecoder(file).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode archive file '%s': %w", dataPath, err)
	}
	return &snap, nil
}
