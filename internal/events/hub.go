// Package events pushes record-change notifications to websocket clients.
package events

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
)

const TypeRecordChanged = "record.changed"

// Event is what clients receive.
type Event struct {
	Type      string `json:"type"`
	Module    string `json:"module"`
	Action    string `json:"action"`
	ProjectID string `json:"project_id,omitempty"`
	Data      any    `json:"data,omitempty"`
}

// connection is one websocket client. An empty project set means the client
// receives every event.
type connection struct {
	conn     *websocket.Conn
	send     chan []byte
	projects map[string]bool
}

// Hub fans events out to connected clients.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
	upgrader    websocket.Upgrader
}

// NewHub returns a hub that accepts upgrades from the given origins; with no
// origins every origin is accepted.
func NewHub(allowedOrigins ...string) *Hub {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &Hub{
		connections: make(map[*connection]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Publish sends ev to every interested client. Slow clients are skipped.
func (h *Hub) Publish(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		slog.Warn("events: marshal failed", "module", ev.Module, "action", ev.Action, "error", err)
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if len(c.projects) > 0 && !c.projects[ev.ProjectID] {
			continue
		}
		select {
		case c.send <- data:
		default:
		}
	}
}

// HandleWS upgrades the request and serves the connection until it closes.
// An optional project_id query parameter pre-subscribes the client.
func (h *Hub) HandleWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("events: websocket upgrade failed", "error", err)
		return
	}
	var initial []string
	if pid := c.Query("project_id"); pid != "" {
		initial = append(initial, pid)
	}
	h.ServeWS(conn, initial)
}

// ServeWS registers conn and blocks until the client disconnects.
func (h *Hub) ServeWS(conn *websocket.Conn, projects []string) {
	c := &connection{
		conn:     conn,
		send:     make(chan []byte, 256),
		projects: make(map[string]bool),
	}
	for _, p := range projects {
		c.projects[p] = true
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var cmd struct {
			Type      string `json:"type"`
			ProjectID string `json:"project_id"`
		}
		if err := json.Unmarshal(msg, &cmd); err != nil || cmd.ProjectID == "" {
			continue
		}

		switch cmd.Type {
		case "subscribe":
			h.mu.Lock()
			c.projects[cmd.ProjectID] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.projects, cmd.ProjectID)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
