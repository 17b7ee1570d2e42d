package devtools

import (
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/widgetdom/internal/errors"
	"github.com/vango-dev/widgetdom/pkg/dom"
)

// DefaultHistory is the number of records a hub keeps when none is given.
const DefaultHistory = 256

// Record is the wire form of a mutation or a reported gap.
type Record struct {
	Seq       uint64    `json:"seq"`
	Time      time.Time `json:"time"`
	Op        string    `json:"op,omitempty"`
	Node      int64     `json:"node,omitempty"`
	Kind      string    `json:"kind,omitempty"`
	Tag       string    `json:"tag,omitempty"`
	Parent    int64     `json:"parent,omitempty"`
	ParentTag string    `json:"parentTag,omitempty"`
	Index     *int      `json:"index,omitempty"`
	Name      string    `json:"name,omitempty"`
	Dispatch  string    `json:"dispatch,omitempty"`
	Code      string    `json:"code,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Hub is a dom.Observer that keeps recent records and streams new ones to
// WebSocket clients.
type Hub struct {
	mu      sync.RWMutex
	seq     uint64
	limit   int
	history []Record
	clients map[*websocket.Conn]bool

	// sendMu serializes writes; a websocket.Conn allows one writer.
	sendMu sync.Mutex

	upgrader websocket.Upgrader
	now      func() time.Time
}

// NewHub creates a hub keeping at most limit records. A limit <= 0 uses
// DefaultHistory.
func NewHub(limit int) *Hub {
	if limit <= 0 {
		limit = DefaultHistory
	}
	return &Hub{
		limit:   limit,
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // inspector is a local dev tool
			},
		},
		now: time.Now,
	}
}

// Mutated implements dom.Observer.
func (h *Hub) Mutated(m dom.Mutation) {
	rec := Record{
		Op:   m.Op.String(),
		Node: m.Node,
		Kind: m.Kind.String(),
		Tag:  m.Tag,
		Name: m.Name,
	}
	if m.Parent != 0 {
		index := m.Index
		rec.Parent = m.Parent
		rec.ParentTag = m.ParentTag
		rec.Index = &index
		rec.Dispatch = m.Dispatch.String()
	}
	h.publish(rec)
}

// Reported implements dom.Observer.
func (h *Hub) Reported(err error) {
	h.publish(Record{Code: errors.CodeOf(err), Error: err.Error()})
}

// History returns the retained records, oldest first.
func (h *Hub) History() []Record {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.history)
}

func (h *Hub) publish(rec Record) {
	h.mu.Lock()
	h.seq++
	rec.Seq = h.seq
	rec.Time = h.now()
	h.history = append(h.history, rec)
	if over := len(h.history) - h.limit; over > 0 {
		h.history = slices.Delete(h.history, 0, over)
	}
	h.mu.Unlock()

	h.broadcast(rec)
}

// HandleWebSocket upgrades the connection and streams records until the
// client disconnects.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	// Clients never send anything; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.drop(conn)
}

func (h *Hub) broadcast(rec Record) {
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	h.sendMu.Lock()
	defer h.sendMu.Unlock()
	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			h.drop(client)
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// ClientCount returns the number of connected WebSocket clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
		delete(h.clients, client)
	}
}
