package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Interval represents one session's lifetime as a closed range of seconds
// since the POSIX epoch. Both endpoints are covered by the session.
type Interval struct {
	Begin uint64 `json:"begin"`
	End   uint64 `json:"end"`
}

// Reversed reports whether the interval ends before it begins. The input
// format does not forbid this; consumers decide how to handle it.
func (iv Interval) Reversed() bool {
	return iv.Begin > iv.End
}

// TimeSpan is the minimal closed range covering every interval folded into
// it. A fresh span starts in the sentinel state where Begin > End; the first
// real interval overwrites both endpoints.
type TimeSpan struct {
	Begin uint64
	End   uint64
}

// EmptyTimeSpan returns the sentinel "no data yet" span.
func EmptyTimeSpan() TimeSpan {
	return TimeSpan{Begin: math.MaxUint64, End: 0}
}

// Empty reports whether no interval has been folded into the span.
func (s TimeSpan) Empty() bool {
	return s.Begin > s.End
}

// Extend returns the span widened to cover the given interval.
func (s TimeSpan) Extend(iv Interval) TimeSpan {
	if iv.Begin < s.Begin {
		s.Begin = iv.Begin
	}
	if iv.End > s.End {
		s.End = iv.End
	}
	return s
}

// NumBins returns the number of one-second bins needed to cover the span.
func (s TimeSpan) NumBins() uint64 {
	if s.Empty() {
		return 0
	}
	return s.End - s.Begin + 1
}

// Snapshot is one materialized concurrency report: the number of open
// sessions at every second of a span. Counts[i] is the count at
// Span.Begin+i.
type Snapshot struct {
	ID       uuid.UUID
	TakenAt  time.Time
	Span     TimeSpan
	Sessions uint64
	Counts   []uint64
}

// Peak returns the highest open-session count in the snapshot.
func (s *Snapshot) Peak() uint64 {
	var peak uint64
	for _, c := range s.Counts {
		if c > peak {
			peak = c
		}
	}
	return peak
}

// PacketInfo holds the metadata the session tracker needs from a single
// captured packet.
type PacketInfo struct {
	Timestamp time.Time
	FlowKey   string
}
