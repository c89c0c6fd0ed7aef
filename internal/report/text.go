package report

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"SessionSpectra/internal/model"
)

// WriteTo emits the report to w: one "TIME COUNT" line per second of the
// span, in ascending order, with a single separating space.
func WriteTo(w io.Writer, span model.TimeSpan, counts []uint64) error {
	bw := bufio.NewWriter(w)
	for i, count := range counts {
		if _, err := fmt.Fprintf(bw, "%d %d\n", span.Begin+uint64(i), count); err != nil {
			return fmt.Errorf("failed to write report line: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// TextWriter writes each snapshot as a plain-text report file under a
// timestamped directory. It implements the model.Writer interface.
type TextWriter struct {
	rootPath string
}

// NewTextWriter creates a new text report writer rooted at rootPath.
func NewTextWriter(rootPath string) model.Writer {
	return &TextWriter{rootPath: rootPath}
}

// Name identifies the writer in logs.
func (w *TextWriter) Name() string {
	return "text"
}

// Write persists one snapshot as counts.txt in a per-snapshot directory.
func (w *TextWriter) Write(snap *model.Snapshot) error {
	dir := filepath.Join(w.rootPath, snap.TakenAt.Format("2006-01-02_15-04-05"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	filePath := filepath.Join(dir, "counts.txt")
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create report file '%s': %w", filePath, err)
	}
	defer file.Close()

	if err := WriteTo(file, snap.Span, snap.Counts); err != nil {
		return err
	}

	log.Printf("Wrote %d count lines to %s", len(snap.Counts), filePath)
	return nil
}
