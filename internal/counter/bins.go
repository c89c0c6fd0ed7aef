package counter

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"time"

	"SessionSpectra/internal/model"

	"github.com/google/uuid"
)

// DefaultMaxBins caps the dense counter allocation at 2^31 seconds, roughly
// 68 years of one-second bins. A wider span is refused before allocation,
// the same failure category the original treated as out of memory.
const DefaultMaxBins = 1 << 31

// ErrSpanTooLarge is returned when a span needs more bins than the
// configured cap allows.
var ErrSpanTooLarge = errors.New("binning array too large")

// ErrEmptySpan is returned when a table is requested for a span that no
// interval was ever folded into.
var ErrEmptySpan = errors.New("empty time span")

// BinTable holds one open-session counter per second across a time span.
// Slot i counts the sessions covering second Span.Begin+i.
type BinTable struct {
	span model.TimeSpan
	bins []uint64
}

// NewBinTable allocates a zeroed counter array covering the span, refusing
// spans wider than DefaultMaxBins.
func NewBinTable(span model.TimeSpan) (*BinTable, error) {
	return NewBinTableLimit(span, DefaultMaxBins)
}

// NewBinTableLimit is NewBinTable with an explicit bin cap.
func NewBinTableLimit(span model.TimeSpan, maxBins uint64) (*BinTable, error) {
	if span.Empty() {
		return nil, ErrEmptySpan
	}
	numBins := span.NumBins()
	if numBins > maxBins {
		return nil, fmt.Errorf("%w: span [%d, %d] needs %d bins", ErrSpanTooLarge, span.Begin, span.End, numBins)
	}
	return &BinTable{span: span, bins: make([]uint64, numBins)}, nil
}

// Add increments every counter covered by the interval, both endpoints
// inclusive. A reversed interval is rejected with a diagnostic instead of
// being clipped. An index that would fall outside the table drops the rest
// of that interval's contribution only; the table stays usable.
func (t *BinTable) Add(iv model.Interval) {
	if iv.Reversed() {
		log.Printf("Warning: reversed interval [%d, %d], skipping", iv.Begin, iv.End)
		return
	}
	for ts := iv.Begin; ts <= iv.End; ts++ {
		if ts < t.span.Begin || ts-t.span.Begin >= uint64(len(t.bins)) {
			log.Printf("Warning: not enough bins")
			break
		}
		t.bins[ts-t.span.Begin]++
		if ts == iv.End {
			break // avoids wraparound when End is the maximum timestamp
		}
	}
}

// Accumulate drives a full pass over the interval sequence, binning every
// interval.
func (t *BinTable) Accumulate(intervals iter.Seq[model.Interval]) {
	for iv := range intervals {
		t.Add(iv)
	}
}

// Span returns the time span the table covers.
func (t *BinTable) Span() model.TimeSpan {
	return t.span
}

// NumBins returns the number of seconds covered by the table.
func (t *BinTable) NumBins() int {
	return len(t.bins)
}

// Count returns the open-session count at bin i.
func (t *BinTable) Count(i int) uint64 {
	return t.bins[i]
}

// Counts returns the underlying counter slice. Callers must treat it as
// read-only; Snapshot returns an independent copy instead.
func (t *BinTable) Counts() []uint64 {
	return t.bins
}

// Timestamp returns the second represented by bin i.
func (t *BinTable) Timestamp(i int) uint64 {
	return t.span.Begin + uint64(i)
}

// Snapshot materializes the table for the report writers. The counts are
// copied so the snapshot stays independent of further accumulation.
func (t *BinTable) Snapshot(takenAt time.Time, sessions uint64) *model.Snapshot {
	counts := make([]uint64, len(t.bins))
	copy(counts, t.bins)
	return &model.Snapshot{
		ID:       uuid.New(),
		TakenAt:  takenAt,
		Span:     t.span,
		Sessions: sessions,
		Counts:   counts,
	}
}
