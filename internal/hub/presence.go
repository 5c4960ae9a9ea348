package hub

import (
	"sort"

	"github.com/voyatalk/voyatalk/internal/domain"
)

// PresenceBroadcaster pushes the full online roster to every live
// connection after each connect and disconnect. Best-effort: a failed or
// slow peer never blocks delivery to the others.
type PresenceBroadcaster struct {
	hub *Hub
}

// NewPresenceBroadcaster creates a broadcaster over the given registry.
func NewPresenceBroadcaster(h *Hub) *PresenceBroadcaster {
	return &PresenceBroadcaster{hub: h}
}

// Announce snapshots the registry, derives the roster, and sends it to
// every live connection, including the one that just joined. The snapshot
// is taken first so no lock is held during the sends.
func (b *PresenceBroadcaster) Announce() {
	clients := b.hub.All()
	frame := &domain.PresenceFrame{Online: buildRoster(clients)}

	for _, c := range clients {
		c.SendJSON(frame)
	}
}

// buildRoster derives the set of online identities. Unauthenticated
// connections contribute no entry; duplicate connections for one identity
// collapse into a single entry. Sorted for a deterministic frame.
func buildRoster(clients []*Client) []domain.RosterEntry {
	seen := make(map[string]struct{}, len(clients))
	roster := make([]domain.RosterEntry, 0, len(clients))
	for _, c := range clients {
		if c.Identity == nil {
			continue
		}
		if _, ok := seen[c.Identity.UserID]; ok {
			continue
		}
		seen[c.Identity.UserID] = struct{}{}
		roster = append(roster, domain.RosterEntry{
			UserID:   c.Identity.UserID,
			Username: c.Identity.Username,
		})
	}

	sort.Slice(roster, func(i, j int) bool {
		return roster[i].UserID < roster[j].UserID
	})
	return roster
}
