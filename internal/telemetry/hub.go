// Package telemetry broadcasts per-tick flight state to WebSocket clients.
//
// The simulation goroutine publishes into a buffered channel and never
// blocks. The hub goroutine fans each message out to every client and
// drops clients whose send buffer is full.
package telemetry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// DefaultBuffer is the number of pending broadcasts before Publish drops frames.
	DefaultBuffer = 64

	clientBuffer = 256
	writeWait    = 2 * time.Second
)

// Message is the JSON envelope sent to clients.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
	Sender  string `json:"sender"`
}

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}

	count   atomic.Int64
	dropped atomic.Int64
	logger  *log.Logger
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a hub. Call Run in its own goroutine before serving.
func NewHub(buffer int, logger *log.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, buffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run is the hub event loop. It returns when ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for c := range h.clients {
			delete(h.clients, c)
			close(c.send)
		}
		h.count.Store(0)
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.clients[c] = true
			h.count.Store(int64(len(h.clients)))
			h.logger.Debug("telemetry client connected", "remote", c.conn.RemoteAddr().String())

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.count.Store(int64(len(h.clients)))
				h.logger.Debug("telemetry client disconnected", "remote", c.conn.RemoteAddr().String())
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow client: drop it rather than stall the fan-out.
					delete(h.clients, c)
					close(c.send)
					h.count.Store(int64(len(h.clients)))
					h.logger.Warn("telemetry client too slow, dropped", "remote", c.conn.RemoteAddr().String())
				}
			}
		}
	}
}

// Publish queues v for broadcast as a telemetry message.
// It never blocks; false means the frame was dropped.
func (h *Hub) Publish(v any) bool {
	data, err := json.Marshal(Message{Type: "telemetry", Payload: v, Sender: "sim"})
	if err != nil {
		h.logger.Error("telemetry: cannot encode message", "err", err)
		return false
	}
	select {
	case h.broadcast <- data:
		return true
	default:
		h.dropped.Add(1)
		return false
	}
}

// Clients returns the number of registered clients.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

// Dropped returns how many frames Publish discarded.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades the request to a WebSocket and registers the client.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("telemetry: upgrade failed", "err", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, clientBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

// Handler returns an http.Handler serving the hub at /ws.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", h.ServeWs)
	return mux
}

// readPump discards inbound messages and unregisters on disconnect.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("telemetry: read error", "err", err)
			}
			return
		}
	}
}

// writePump sends queued messages until the hub closes the channel.
func (c *client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}
