package realtime

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lukeshafer/indigestion-cards-sub002/internal/domain/notify"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMessage = 512
)

// Registry records which connection ids are live.
type Registry interface {
	Add(ctx context.Context, connectionID string) error
	Remove(ctx context.Context, connectionID string) error
}

type conn struct {
	id string
	ws *websocket.Conn
	mu sync.Mutex
}

func (c *conn) write(message string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, []byte(message))
}

func (c *conn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Hub holds this process's websocket connections. Messages from clients go
// out through the broadcaster; messages from the broadcast channel are
// delivered to every local connection.
type Hub struct {
	mu          sync.RWMutex
	conns       map[string]*conn
	registry    Registry
	broadcaster notify.Broadcaster
	upgrader    websocket.Upgrader
}

func NewHub(registry Registry, broadcaster notify.Broadcaster, allowedOrigins []string) *Hub {
	h := &Hub{
		conns:       make(map[string]*conn),
		registry:    registry,
		broadcaster: broadcaster,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// ServeHTTP upgrades the request and serves the connection until it closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Websocket upgrade failed",
			slog.String("type", "ws"),
			slog.String("remote", r.RemoteAddr),
			slog.Any("error", err))
		return
	}

	c := &conn{id: uuid.NewString(), ws: ws}
	if err := h.connect(r.Context(), c); err != nil {
		slog.Error("Failed to register connection",
			slog.String("type", "ws"),
			slog.String("connection_id", c.id),
			slog.Any("error", err))
		_ = ws.Close()
		return
	}
	defer h.disconnect(c)

	done := make(chan struct{})
	defer close(done)
	go h.keepAlive(c, done)

	h.readLoop(r.Context(), c)
}

func (h *Hub) connect(ctx context.Context, c *conn) error {
	if err := h.registry.Add(ctx, c.id); err != nil {
		return err
	}
	h.mu.Lock()
	h.conns[c.id] = c
	h.mu.Unlock()

	slog.Info("Client connected",
		slog.String("type", "ws"),
		slog.String("connection_id", c.id))
	return nil
}

// disconnect is idempotent; both the read loop and a failed delivery may
// call it.
func (h *Hub) disconnect(c *conn) {
	h.mu.Lock()
	_, ok := h.conns[c.id]
	delete(h.conns, c.id)
	h.mu.Unlock()
	if !ok {
		return
	}

	_ = c.ws.Close()
	ctx, cancel := context.WithTimeout(context.Background(), writeWait)
	defer cancel()
	if err := h.registry.Remove(ctx, c.id); err != nil {
		slog.Warn("Failed to unregister connection",
			slog.String("type", "ws"),
			slog.String("connection_id", c.id),
			slog.Any("error", err))
	}
	slog.Info("Client disconnected",
		slog.String("type", "ws"),
		slog.String("connection_id", c.id))
}

func (h *Hub) readLoop(ctx context.Context, c *conn) {
	c.ws.SetReadLimit(maxMessage)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		kind, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("Connection closed",
					slog.String("type", "ws"),
					slog.String("connection_id", c.id),
					slog.Any("error", err))
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		h.handleMessage(ctx, c, string(data))
	}
}

func (h *Hub) handleMessage(ctx context.Context, c *conn, message string) {
	if !notify.IsClientMessage(message) {
		_ = c.write("Invalid message")
		return
	}
	if message == notify.MsgPing {
		_ = c.write(notify.MsgPong)
		return
	}
	if err := h.broadcaster.Broadcast(ctx, message); err != nil {
		slog.Error("Failed to broadcast client message",
			slog.String("type", "ws"),
			slog.String("connection_id", c.id),
			slog.Any("error", err))
		_ = c.write("Broadcast failed")
	}
}

func (h *Hub) keepAlive(c *conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := c.ping(); err != nil {
				h.disconnect(c)
				return
			}
		}
	}
}

// Deliver writes message to every local connection. A failed write drops
// that connection and nothing else.
func (h *Hub) Deliver(message string) int {
	h.mu.RLock()
	targets := make([]*conn, 0, len(h.conns))
	for _, c := range h.conns {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range targets {
		if err := c.write(message); err != nil {
			slog.Warn("Dropping stale connection",
				slog.String("type", "ws"),
				slog.String("connection_id", c.id),
				slog.Any("error", err))
			h.disconnect(c)
			continue
		}
		delivered++
	}
	return delivered
}

// Run delivers every message from messages until it closes or ctx is done.
func (h *Hub) Run(ctx context.Context, messages <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			n := h.Deliver(msg)
			slog.Debug("Broadcast delivered",
				slog.String("type", "ws"),
				slog.String("message", msg),
				slog.Int("connections", n))
		}
	}
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Close drops every connection.
func (h *Hub) Close() {
	h.mu.RLock()
	targets := make([]*conn, 0, len(h.conns))
	for _, c := range h.conns {
		targets = append(targets, c)
	}
	h.mu.RUnlock()
	for _, c := range targets {
		h.disconnect(c)
	}
}
