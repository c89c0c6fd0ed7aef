package interval

import (
	"bytes"
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"testing"

	"SessionSpectra/internal/model"
)

func collect(r *Reader) []model.Interval {
	var result []model.Interval
	for iv := range r.Intervals() {
		result = append(result, iv)
	}
	return result
}

func TestReaderParsesIntervals(t *testing.T) {
	r := NewReader(strings.NewReader("10 20 ignored remainder\n30 40\n"))

	got := collect(r)
	if err := r.Err(); err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}

	want := []model.Interval{{Begin: 10, End: 20}, {Begin: 30, End: 40}}
	if len(got) != len(want) {
		t.Fatalf("expected %d intervals, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("interval %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestReaderSkipsBlankLines(t *testing.T) {
	r := NewReader(strings.NewReader("\n\n1 2\n\n3 4\n\n"))

	got := collect(r)
	if err := r.Err(); err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(got))
	}
}

func TestReaderSkipsMalformedLines(t *testing.T) {
	var logBuf bytes.Buffer
	log.SetOutput(&logBuf)
	defer log.SetOutput(os.Stderr)

	// The ordinal in the diagnostic counts non-blank lines only, so the
	// malformed second record is reported as interval 2.
	r := NewReader(strings.NewReader("1 2\n\nabc def\n3 4\n"))

	got := collect(r)
	if err := r.Err(); err != nil {
		t.Fatalf("unexpected read error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 intervals, got %d", len(got))
	}
	if !strings.Contains(logBuf.String(), "interval 2 can't be parsed") {
		t.Errorf("expected parse diagnostic for interval 2, got log: %q", logBuf.String())
	}
}

func TestReaderSkipsTooShortLines(t *testing.T) {
	var logBuf bytes.Buffer
	log.SetOutput(&logBuf)
	defer log.SetOutput(os.Stderr)

	r := NewReader(strings.NewReader("42\n1 2\n"))

	got := collect(r)
	if len(got) != 1 || got[0] != (model.Interval{Begin: 1, End: 2}) {
		t.Fatalf("expected single interval {1 2}, got %+v", got)
	}
	if !strings.Contains(logBuf.String(), "interval 1 is too short") {
		t.Errorf("expected too-short diagnostic for interval 1, got log: %q", logBuf.String())
	}
}

func TestReaderReset(t *testing.T) {
	r := NewReader(strings.NewReader("5 6\n7 8\n"))

	first := collect(r)
	if err := r.Reset(); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	second := collect(r)

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 intervals on both passes, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("pass mismatch at %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

// failingSource returns a read error after yielding some data.
type failingSource struct {
	data io.Reader
	done bool
}

func (f *failingSource) Read(p []byte) (int, error) {
	if !f.done {
		n, err := f.data.Read(p)
		if err == io.EOF {
			f.done = true
			return n, nil
		}
		return n, err
	}
	return 0, errors.New("disk error")
}

func (f *failingSource) Seek(offset int64, whence int) (int64, error) {
	return 0, nil
}

func TestReaderStreamError(t *testing.T) {
	r := NewReader(&failingSource{data: strings.NewReader("1 2\n")})

	collect(r)
	if err := r.Err(); err == nil {
		t.Fatal("expected a stream-level read error")
	}
}
