// Package hub owns the set of live websocket connections. All registry
// mutations and reads are serialized behind a single mutex; the lock is
// never held across a websocket write.
package hub

import (
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/voyatalk/voyatalk/internal/config"
	"github.com/voyatalk/voyatalk/internal/domain"
	"github.com/voyatalk/voyatalk/pkg/log"
)

// Hub is the connection registry. A user may hold several live connections
// at once (multi-device); byUser keeps the identity→connection fan-out.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint64]*Client
	byUser  map[string]map[uint64]*Client

	nextID atomic.Uint64
	cfg    config.WebSocketConfig
}

// NewHub creates an empty registry.
func NewHub(cfg config.WebSocketConfig) *Hub {
	return &Hub{
		clients: make(map[uint64]*Client),
		byUser:  make(map[string]map[uint64]*Client),
		cfg:     cfg,
	}
}

// NewClient wraps a websocket connection in a Client with a monotonically
// assigned handle. identity may be nil for an unauthenticated connection.
func (h *Hub) NewClient(conn *websocket.Conn, identity *domain.Identity) *Client {
	return &Client{
		ID:       h.nextID.Add(1),
		Identity: identity,
		Hub:      h,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		cfg:      h.cfg,
		closed:   make(chan struct{}),
	}
}

// Admit registers a connection. O(1).
func (h *Hub) Admit(c *Client) {
	h.mu.Lock()
	h.clients[c.ID] = c
	if c.Identity != nil {
		conns, ok := h.byUser[c.Identity.UserID]
		if !ok {
			conns = make(map[uint64]*Client)
			h.byUser[c.Identity.UserID] = conns
		}
		conns[c.ID] = c
	}
	h.mu.Unlock()

	l := log.L()
	l.Debug().Uint64(log.FieldConnID, c.ID).Msg("connection admitted")
}

// Evict removes a connection on close or error. Safe to call for a
// connection that was never admitted, and idempotent.
func (h *Hub) Evict(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c.ID]; ok {
		delete(h.clients, c.ID)
		if c.Identity != nil {
			if conns, ok := h.byUser[c.Identity.UserID]; ok {
				delete(conns, c.ID)
				if len(conns) == 0 {
					delete(h.byUser, c.Identity.UserID)
				}
			}
		}
	}
	h.mu.Unlock()

	c.shutdown()

	l := log.L()
	l.Debug().Uint64(log.FieldConnID, c.ID).Msg("connection evicted")
}

// Find returns all live connections for an identity, possibly empty.
func (h *Hub) Find(userID string) []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conns := h.byUser[userID]
	out := make([]*Client, 0, len(conns))
	for _, c := range conns {
		out = append(out, c)
	}
	return out
}

// All returns a snapshot of every live connection.
func (h *Hub) All() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		out = append(out, c)
	}
	return out
}
