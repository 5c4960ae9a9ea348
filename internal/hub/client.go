package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/voyatalk/voyatalk/internal/config"
	"github.com/voyatalk/voyatalk/internal/domain"
	"github.com/voyatalk/voyatalk/pkg/log"
)

// Client is one live duplex connection. Identity is nil until the upgrade
// request's token verifies; it is set before the client is admitted to the
// hub and never mutated afterwards.
type Client struct {
	ID       uint64
	Identity *domain.Identity
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte

	cfg       config.WebSocketConfig
	closed    chan struct{}
	closeOnce sync.Once
}

// Authenticated reports whether the connection carries an identity.
func (c *Client) Authenticated() bool {
	return c.Identity != nil
}

// SendJSON marshals v and enqueues it for delivery. The enqueue never
// blocks: a full buffer or a closed client drops the frame, so one slow
// peer cannot stall a broadcast.
func (c *Client) SendJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	select {
	case <-c.closed:
	case c.Send <- data:
	default:
		l := log.L()
		l.Warn().Uint64(log.FieldConnID, c.ID).Msg("send buffer full, dropping frame")
	}
	return nil
}

// shutdown marks the client closed. Idempotent.
func (c *Client) shutdown() {
	c.closeOnce.Do(func() {
		close(c.closed)
	})
}

// ReadPump consumes inbound frames and hands each to handler in arrival
// order. It returns when the transport closes or errors.
func (c *Client) ReadPump(handler func(*Client, []byte)) {
	defer c.Conn.Close()

	c.Conn.SetReadLimit(c.cfg.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				l := log.L()
				l.Debug().Uint64(log.FieldConnID, c.ID).Err(err).Msg("websocket read error")
			}
			return
		}

		handler(c, message)
	}
}

// WritePump drains the send queue to the websocket and keeps the
// connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case <-c.closed:
			c.Conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
