// Package http upgrades viewer connections to WebSocket.
package http

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/yuuhLKT/roulette-api/internal/modules/gateway/ws"
	"github.com/yuuhLKT/roulette-api/pkg/logger"
)

// Handler handles WebSocket upgrade requests
type Handler struct {
	manager *ws.Manager
}

// NewHandler creates a new WebSocket handler
func NewHandler(manager *ws.Manager) *Handler {
	return &Handler{manager: manager}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades the request and registers the viewer. Viewers are
// anonymous: they only receive snapshots.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WebSocketContext(r)

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("remote_addr", r.RemoteAddr).Msg("websocket upgrade failed")
		return
	}

	c := h.manager.Register(conn)
	logger.Info(ctx).Str("remote_addr", r.RemoteAddr).Int("subscribers", h.manager.Count()).Msg("viewer connected")

	go c.WritePump()
	go c.ReadPump()
}
