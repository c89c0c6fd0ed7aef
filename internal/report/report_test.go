package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"SessionSpectra/internal/model"

	"github.com/google/uuid"
)

func testSnapshot() *model.Snapshot {
	return &model.Snapshot{
		ID:       uuid.New(),
		TakenAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		Span:     model.TimeSpan{Begin: 5, End: 7},
		Sessions: 2,
		Counts:   []uint64{1, 0, 3},
	}
}

func TestWriteToFormat(t *testing.T) {
	var out bytes.Buffer
	snap := testSnapshot()

	if err := WriteTo(&out, snap.Span, snap.Counts); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}

	want := "5 1\n6 0\n7 3\n"
	if out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}

func TestTextWriter(t *testing.T) {
	root := t.TempDir()
	snap := testSnapshot()

	if err := NewTextWriter(root).Write(snap); err != nil {
		t.Fatalf("text writer failed: %v", err)
	}

	path := filepath.Join(root, snap.TakenAt.Format("2006-01-02_15-04-05"), "counts.txt")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read report file: %v", err)
	}
	if string(data) != "5 1\n6 0\n7 3\n" {
		t.Errorf("unexpected report contents: %q", string(data))
	}
}

func TestGobWriterRoundTrip(t *testing.T) {
	root := t.TempDir()
	snap := testSnapshot()

	if err := NewGobWriter(root).Write(snap); err != nil {
		t.Fatalf("gob writer failed: %v", err)
	}

	dir := filepath.Join(root, snap.TakenAt.Format("2006-01-02_15-04-05"))
	loaded, err := LoadArchive(filepath.Join(dir, "counts.dat"))
	if err != nil {
		t.Fatalf("failed to load archive: %v", err)
	}

	if loaded.ID != snap.ID {
		t.Errorf("expected snapshot ID %s, got %s", snap.ID, loaded.ID)
	}
	if loaded.Span != snap.Span {
		t.Errorf("expected span %+v, got %+v", snap.Span, loaded.Span)
	}
	if len(loaded.Counts) != len(snap.Counts) {
		t.Fatalf("expected %d counts, got %d", len(snap.Counts), len(loaded.Counts))
	}
	for i := range snap.Counts {
		if loaded.Counts[i] != snap.Counts[i] {
			t.Errorf("count %d: expected %d, got %d", i, snap.Counts[i], loaded.Counts[i])
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "summary.json")); err != nil {
		t.Errorf("expected summary.json alongside the archive: %v", err)
	}
}
