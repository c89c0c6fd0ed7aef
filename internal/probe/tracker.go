package probe

import (
	"fmt"

	"SessionSpectra/internal/model"
)

// Session is one tracked flow: first and last time a packet of the flow was
// seen.
type Session struct {
	Key     string
	First   int64
	Last    int64
	Packets uint64
}

// Interval converts the session to a closed interval of epoch seconds.
func (s *Session) Interval() model.Interval {
	return model.Interval{Begin: uint64(s.First), End: uint64(s.Last)}
}

// Line formats the session as one intervals-file record. The flow key lands
// in the ignored remainder of the line, so the file round-trips through the
// interval reader.
func (s *Session) Line() string {
	return fmt.Sprintf("%d %d %s", s.First, s.Last, s.Key)
}

// Tracker folds captured packet metadata into per-flow sessions. A session
// begins at the flow's first packet and ends at its last; the tracker keeps
// flows in first-seen order so the emitted intervals file is stable.
type Tracker struct {
	sessions map[string]*Session
	order    []string
}

// NewTracker creates an empty session tracker.
func NewTracker() *Tracker {
	return &Tracker{sessions: make(map[string]*Session)}
}

// Observe folds one packet into its flow's session.
func (t *Tracker) Observe(info *model.PacketInfo) {
	ts := info.Timestamp.Unix()
	if session, ok := t.sessions[info.FlowKey]; ok {
		if ts > session.Last {
			session.Last = ts
		}
		session.Packets++
		return
	}
	t.sessions[info.FlowKey] = &Session{
		Key:     info.FlowKey,
		First:   ts,
		Last:    ts,
		Packets: 1,
	}
	t.order = append(t.order, info.FlowKey)
}

// Sessions returns every tracked session in first-seen order.
func (t *Tracker) Sessions() []*Session {
	result := make([]*Session, 0, len(t.order))
	for _, key := range t.order {
		result = append(result, t.sessions[key])
	}
	return result
}

// Len returns the number of tracked sessions.
func (t *Tracker) Len() int {
	return len(t.order)
}
