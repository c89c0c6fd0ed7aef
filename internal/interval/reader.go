package interval

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"log"
	"strconv"
	"strings"

	"SessionSpectra/internal/model"
)

// Reader produces session intervals from a text source with one
// "START END ..." record per line. START and END are base-10 epoch seconds;
// the rest of the line is ignored. The reader carries no cross-pass state,
// so the two-pass counting pipeline can drive it through the same source
// twice via Reset.
type Reader struct {
	src io.ReadSeeker
	err error
}

// NewReader creates a reader over a source positioned at its start.
func NewReader(src io.ReadSeeker) *Reader {
	return &Reader{src: src}
}

// Reset rewinds the underlying source so the intervals can be read again.
func (r *Reader) Reset() error {
	r.err = nil
	if _, err := r.src.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind interval source: %w", err)
	}
	return nil
}

// Intervals returns a lazy sequence of the valid intervals in the source.
// Blank lines are skipped silently. A non-blank line with fewer than two
// fields, or whose first two fields are not unsigned integers, is logged
// and skipped; the diagnostic carries the 1-based ordinal of non-blank
// lines seen so far. Only a stream-level read error stops iteration early;
// check Err after the loop.
func (r *Reader) Intervals() iter.Seq[model.Interval] {
	return func(yield func(model.Interval) bool) {
		scanner := bufio.NewScanner(r.src)
		intervalNum := 0
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			intervalNum++

			fields := strings.Fields(line)
			if len(fields) < 2 {
				log.Printf("Error: interval %d is too short, skipping", intervalNum)
				continue
			}

			begin, berr := strconv.ParseUint(fields[0], 10, 64)
			end, eerr := strconv.ParseUint(fields[1], 10, 64)
			if berr != nil || eerr != nil {
				log.Printf("Error: interval %d can't be parsed, skipping", intervalNum)
				continue
			}

			if !yield(model.Interval{Begin: begin, End: end}) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			r.err = fmt.Errorf("failed to fully read intervals: %w", err)
		}
	}
}

// Err returns the stream-level read error that terminated the last
// iteration, if any. Per-line parse failures are not errors.
func (r *Reader) Err() error {
	return r.err
}
