package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/voyatalk/voyatalk/internal/auth"
	"github.com/voyatalk/voyatalk/internal/domain"
	"github.com/voyatalk/voyatalk/internal/hub"
	"github.com/voyatalk/voyatalk/internal/service"
	"github.com/voyatalk/voyatalk/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades HTTP requests to websocket connections and runs the
// per-connection lifecycle.
type WSHandler struct {
	hub      *hub.Hub
	relay    service.RelayService
	verifier *auth.Verifier
}

// NewWSHandler creates the websocket handler.
func NewWSHandler(h *hub.Hub, relay service.RelayService, verifier *auth.Verifier) *WSHandler {
	return &WSHandler{
		hub:      h,
		relay:    relay,
		verifier: verifier,
	}
}

// HandleWebSocket authenticates from the upgrade request's cookie and
// admits the connection. A bad or missing token leaves the connection
// identity-less rather than closing it: it still receives presence
// snapshots but no relay traffic flows through it.
func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		l := log.L()
		l.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	var identity *domain.Identity
	if token, ok := h.verifier.ExtractToken(r); ok {
		identity, err = h.verifier.Verify(token)
		if err != nil {
			l := log.L()
			l.Warn().Err(err).Msg("websocket token rejected, connection stays unauthenticated")
			identity = nil
		}
	}

	client := h.hub.NewClient(conn, identity)
	h.relay.HandleConnect(r.Context(), client)

	go client.WritePump()
	go func() {
		client.ReadPump(func(c *hub.Client, raw []byte) {
			h.relay.HandleFrame(context.Background(), c, raw)
		})
		h.relay.HandleDisconnect(context.Background(), client)
	}()
}

// RegisterRoutes mounts the websocket endpoint.
func (h *WSHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws", func(c *gin.Context) {
		h.HandleWebSocket(c.Writer, c.Request)
	})
}
