package probe

import (
	"testing"
	"time"

	"SessionSpectra/internal/model"
)

func packet(key string, epoch int64) *model.PacketInfo {
	return &model.PacketInfo{
		Timestamp: time.Unix(epoch, 0),
		FlowKey:   key,
	}
}

func TestTrackerSessions(t *testing.T) {
	tracker := NewTracker()

	tracker.Observe(packet("a", 100))
	tracker.Observe(packet("b", 101))
	tracker.Observe(packet("a", 150))
	tracker.Observe(packet("a", 120)) // out-of-order packet must not shrink the session
	tracker.Observe(packet("b", 160))

	if tracker.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", tracker.Len())
	}

	sessions := tracker.Sessions()
	if sessions[0].Key != "a" || sessions[1].Key != "b" {
		t.Errorf("expected first-seen order [a b], got [%s %s]", sessions[0].Key, sessions[1].Key)
	}

	a := sessions[0]
	if a.First != 100 || a.Last != 150 {
		t.Errorf("session a: expected [100, 150], got [%d, %d]", a.First, a.Last)
	}
	if a.Packets != 3 {
		t.Errorf("session a: expected 3 packets, got %d", a.Packets)
	}

	iv := a.Interval()
	if iv != (model.Interval{Begin: 100, End: 150}) {
		t.Errorf("session a: unexpected interval %+v", iv)
	}
}

func TestSessionLine(t *testing.T) {
	tracker := NewTracker()
	tracker.Observe(packet("10.0.0.1:1234->10.0.0.2:80/tcp", 1600000000))
	tracker.Observe(packet("10.0.0.1:1234->10.0.0.2:80/tcp", 1600000042))

	line := tracker.Sessions()[0].Line()
	want := "1600000000 1600000042 10.0.0.1:1234->10.0.0.2:80/tcp"
	if line != want {
		t.Errorf("expected line %q, got %q", want, line)
	}
}
