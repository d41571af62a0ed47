// Package ws manages the live viewer connections that receive round
// snapshots.
package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yuuhLKT/roulette-api/internal/metrics"
	"github.com/yuuhLKT/roulette-api/pkg/logger"
)

// CloseReason explains why a connection was dropped
type CloseReason string

const (
	ReasonWriteError CloseReason = "write_error"
	ReasonPingError  CloseReason = "ping_error"
	ReasonReadError  CloseReason = "read_error"
	ReasonShutdown   CloseReason = "server_shutdown"
	ReasonBufferFull CloseReason = "buffer_full"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 4096
	sendBufferSize = 256
)

// Connection represents one live viewer
type Connection struct {
	conn      *websocket.Conn
	send      chan []byte
	manager   *Manager
	closeOnce sync.Once
}

// Manager holds the live subscriber set. Registration and broadcast are safe
// to call concurrently; a broadcast iterates a point-in-time view of the set
// so connects and disconnects never corrupt an in-flight fan-out.
type Manager struct {
	mu      sync.RWMutex
	clients map[*Connection]struct{}
}

// NewManager creates an empty connection manager
func NewManager() *Manager {
	return &Manager{clients: make(map[*Connection]struct{})}
}

// Register adds a freshly upgraded connection to the subscriber set
func (m *Manager) Register(conn *websocket.Conn) *Connection {
	c := &Connection{
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		manager: m,
	}

	m.mu.Lock()
	m.clients[c] = struct{}{}
	m.mu.Unlock()

	metrics.SubscriberConnected()
	return c
}

func (m *Manager) remove(c *Connection) {
	m.mu.Lock()
	_, ok := m.clients[c]
	if ok {
		delete(m.clients, c)
	}
	m.mu.Unlock()

	if ok {
		metrics.SubscriberDisconnected()
	}
}

// Count returns the number of live subscribers
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// Broadcast queues the message for every live subscriber. A subscriber whose
// buffer is full is dropped so it can never block the rest.
func (m *Manager) Broadcast(message []byte) {
	m.mu.RLock()
	clients := make([]*Connection, 0, len(m.clients))
	for c := range m.clients {
		clients = append(clients, c)
	}
	m.mu.RUnlock()

	for _, c := range clients {
		select {
		case c.send <- message:
		default:
			c.CloseWithReason(ReasonBufferFull, nil)
		}
	}
}

// Shutdown closes every connection
func (m *Manager) Shutdown() {
	m.mu.RLock()
	clients := make([]*Connection, 0, len(m.clients))
	for c := range m.clients {
		clients = append(clients, c)
	}
	m.mu.RUnlock()

	for _, c := range clients {
		c.CloseWithReason(ReasonShutdown, nil)
	}
}

// CloseWithReason closes the connection once and removes it from the set
func (c *Connection) CloseWithReason(r CloseReason, err error) {
	c.closeOnce.Do(func() {
		logger.Debug(context.Background()).
			Str("reason", string(r)).
			Err(err).
			Msg("ws connection closed")
		c.conn.Close()
		c.manager.remove(c)
	})
}

// WritePump pumps queued messages to the websocket connection and keeps the
// connection alive with pings. Run it in its own goroutine per connection.
func (c *Connection) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.CloseWithReason(ReasonWriteError, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.CloseWithReason(ReasonPingError, err)
				return
			}
		}
	}
}

// ReadPump drains incoming frames so pongs are processed and disconnects are
// noticed. Viewers never send application messages; anything received is
// discarded.
func (c *Connection) ReadPump() {
	defer c.CloseWithReason(ReasonReadError, nil)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
