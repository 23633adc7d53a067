package ws

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Muhfaizr21/warungforzaSaas-sub001/internal/theme"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"go.uber.org/zap"
)

// Compile-time check that Hub can be handed to an editor.
var _ theme.Broadcaster = (*Hub)(nil)

const sendBuffer = 64

// Client represents a connected preview frame.
type Client struct {
	conn   *websocket.Conn
	id     string
	origin string
	send   chan Message
	logger *zap.Logger
}

// Hub fans theme updates out to the preview frames of one studio session.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	seq     atomic.Uint64
	dropped atomic.Uint64
	closed  bool
	logger  *zap.Logger
}

// NewHub creates a new WebSocket hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger,
	}
}

// Register adds a client to the hub. It reports false once the hub is closed.
func (h *Hub) Register(c *Client) bool {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return false
	}
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("preview frame connected", zap.String("client_id", c.id), zap.String("origin", c.origin))
	return true
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	h.logger.Debug("preview frame disconnected", zap.String("client_id", c.id))
}

// Broadcast wraps t in a THEME_PREVIEW message and sends it to every frame.
func (h *Hub) Broadcast(t theme.Tokens) {
	h.Send(Message{
		Type:    MessageThemePreview,
		Version: ProtocolVersion,
		Theme:   t,
	})
}

// Send stamps msg with the next sequence number and queues it for every
// client. A client with a full buffer misses the message.
func (h *Hub) Send(msg Message) {
	msg.Seq = h.seq.Add(1)

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.dropped.Add(1)
			h.logger.Warn("client send buffer full, dropping message",
				zap.String("client_id", c.id),
				zap.Uint64("seq", msg.Seq))
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped returns how many per-client deliveries were skipped.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Close unregisters every client, which ends their write pumps, and rejects
// further registrations.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

// writePump sends messages from the client's send channel to the WebSocket.
func (c *Client) writePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.send:
			if !ok {
				// Channel closed by hub (unregister or session end).
				c.conn.Close(websocket.StatusGoingAway, "session closed")
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			if err := wsjson.Write(writeCtx, c.conn, msg); err != nil {
				cancel()
				c.logger.Debug("websocket write error", zap.Error(err))
				return
			}
			cancel()
		}
	}
}

// readPump delivers valid inbound messages to onMessage until the client
// disconnects.
func (c *Client) readPump(ctx context.Context, onMessage func(theme.Tokens)) {
	for {
		var msg Message
		if err := wsjson.Read(ctx, c.conn, &msg); err != nil {
			var ce websocket.CloseError
			if !errors.As(err, &ce) {
				c.logger.Debug("websocket read ended", zap.Error(err))
			}
			return
		}
		if err := msg.Validate(); err != nil {
			c.logger.Debug("ignoring preview message", zap.String("client_id", c.id), zap.Error(err))
			continue
		}
		if onMessage != nil && len(msg.Theme) > 0 {
			onMessage(msg.Theme)
		}
	}
}
