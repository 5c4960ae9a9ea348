package hub

import (
	"encoding/json"
	"testing"

	"github.com/voyatalk/voyatalk/internal/config"
	"github.com/voyatalk/voyatalk/internal/domain"
)

func newTestHub() *Hub {
	return NewHub(config.WebSocketConfig{MaxMessageSize: 4096})
}

func identity(id, name string) *domain.Identity {
	return &domain.Identity{UserID: id, Username: name}
}

// drainPresence reads the next queued frame off a client and decodes it as
// a presence frame.
func drainPresence(t *testing.T, c *Client) domain.PresenceFrame {
	t.Helper()
	select {
	case data := <-c.Send:
		var frame domain.PresenceFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			t.Fatalf("unmarshal presence frame: %v", err)
		}
		return frame
	default:
		t.Fatal("no frame queued")
	}
	return domain.PresenceFrame{}
}

func TestAdmitAndFind(t *testing.T) {
	h := newTestHub()

	a := h.NewClient(nil, identity("u1", "alice"))
	b := h.NewClient(nil, identity("u2", "bob"))
	h.Admit(a)
	h.Admit(b)

	found := h.Find("u1")
	if len(found) != 1 || found[0] != a {
		t.Fatalf("Find(u1) = %v, want [a]", found)
	}
	if got := h.Find("unknown"); len(got) != 0 {
		t.Fatalf("Find(unknown) = %v, want empty", got)
	}
	if got := len(h.All()); got != 2 {
		t.Fatalf("All() has %d clients, want 2", got)
	}
}

func TestMultiDeviceFanOut(t *testing.T) {
	h := newTestHub()

	phone := h.NewClient(nil, identity("u1", "alice"))
	laptop := h.NewClient(nil, identity("u1", "alice"))
	h.Admit(phone)
	h.Admit(laptop)

	if got := len(h.Find("u1")); got != 2 {
		t.Fatalf("Find(u1) has %d connections, want 2", got)
	}

	h.Evict(phone)
	found := h.Find("u1")
	if len(found) != 1 || found[0] != laptop {
		t.Fatalf("after evicting phone, Find(u1) = %v, want [laptop]", found)
	}
}

func TestMonotonicHandles(t *testing.T) {
	h := newTestHub()
	a := h.NewClient(nil, nil)
	b := h.NewClient(nil, nil)
	if b.ID <= a.ID {
		t.Fatalf("handles not monotonic: %d then %d", a.ID, b.ID)
	}
}

func TestEvictIsIdempotentAndSafeForUnadmitted(t *testing.T) {
	h := newTestHub()

	never := h.NewClient(nil, identity("u1", "alice"))
	h.Evict(never) // never admitted

	c := h.NewClient(nil, identity("u2", "bob"))
	h.Admit(c)
	h.Evict(c)
	h.Evict(c)

	if got := len(h.All()); got != 0 {
		t.Fatalf("All() has %d clients after eviction, want 0", got)
	}
}

func TestSendAfterEvictDoesNotPanic(t *testing.T) {
	h := newTestHub()
	c := h.NewClient(nil, identity("u1", "alice"))
	h.Admit(c)
	h.Evict(c)

	if err := c.SendJSON(map[string]string{"x": "y"}); err != nil {
		t.Fatalf("SendJSON after evict: %v", err)
	}
}

func TestAnnounceRoster(t *testing.T) {
	h := newTestHub()
	b := NewPresenceBroadcaster(h)

	alice := h.NewClient(nil, identity("u1", "alice"))
	bob := h.NewClient(nil, identity("u2", "bob"))
	anon := h.NewClient(nil, nil)
	h.Admit(alice)
	h.Admit(bob)
	h.Admit(anon)

	b.Announce()

	want := []domain.RosterEntry{
		{UserID: "u1", Username: "alice"},
		{UserID: "u2", Username: "bob"},
	}

	// Every live connection receives the snapshot, the unauthenticated
	// one included; it just contributes no roster entry.
	for _, c := range []*Client{alice, bob, anon} {
		frame := drainPresence(t, c)
		if len(frame.Online) != len(want) {
			t.Fatalf("roster has %d entries, want %d", len(frame.Online), len(want))
		}
		for i := range want {
			if frame.Online[i] != want[i] {
				t.Errorf("roster[%d] = %+v, want %+v", i, frame.Online[i], want[i])
			}
		}
	}
}

func TestAnnounceIdempotent(t *testing.T) {
	h := newTestHub()
	b := NewPresenceBroadcaster(h)

	c := h.NewClient(nil, identity("u1", "alice"))
	h.Admit(c)

	b.Announce()
	first := drainPresence(t, c)
	b.Announce()
	second := drainPresence(t, c)

	if len(first.Online) != len(second.Online) {
		t.Fatalf("rosters differ in size: %d vs %d", len(first.Online), len(second.Online))
	}
	for i := range first.Online {
		if first.Online[i] != second.Online[i] {
			t.Errorf("rosters differ at %d: %+v vs %+v", i, first.Online[i], second.Online[i])
		}
	}
}

func TestAnnounceDeduplicatesMultiDevice(t *testing.T) {
	h := newTestHub()
	b := NewPresenceBroadcaster(h)

	phone := h.NewClient(nil, identity("u1", "alice"))
	laptop := h.NewClient(nil, identity("u1", "alice"))
	h.Admit(phone)
	h.Admit(laptop)

	b.Announce()
	frame := drainPresence(t, phone)
	if len(frame.Online) != 1 {
		t.Fatalf("roster has %d entries for one identity, want 1", len(frame.Online))
	}
}

func TestAnnounceExcludesEvicted(t *testing.T) {
	h := newTestHub()
	b := NewPresenceBroadcaster(h)

	alice := h.NewClient(nil, identity("u1", "alice"))
	bob := h.NewClient(nil, identity("u2", "bob"))
	h.Admit(alice)
	h.Admit(bob)

	h.Evict(bob)
	b.Announce()

	frame := drainPresence(t, alice)
	if len(frame.Online) != 1 || frame.Online[0].UserID != "u1" {
		t.Fatalf("roster after eviction = %+v, want only u1", frame.Online)
	}
}
