// Package websocket fans agent state changes out to local UIs.
package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Entities the agent reports on.
const (
	EntityNotifications = "notifications"
	EntityTickets       = "tickets"
	EntityCart          = "cart"
	EntitySession       = "session"
)

// Event is a state change broadcast to all clients.
type Event struct {
	Type   string `json:"type"`
	Entity string `json:"entity"`
	Action string `json:"action"`
	Count  int64  `json:"count"`
	Data   any    `json:"data,omitempty"`
}

// NewEvent creates an Event with Type derived from entity and action.
func NewEvent(entity, action string, count int64, data any) Event {
	return Event{
		Type:   fmt.Sprintf("%s_%s", entity, action),
		Entity: entity,
		Action: action,
		Count:  count,
		Data:   data,
	}
}

// Hub maintains the set of active clients and broadcasts events. The last
// event per entity is replayed to clients as they connect so a new UI
// starts with current badge counts.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	last    map[string][]byte
	order   []string
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*Client]struct{}),
		last:    make(map[string][]byte),
		logger:  logger.With("component", "websocket"),
	}
}

// Register adds a client and queues the latest event of each entity.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
	for _, entity := range h.order {
		select {
		case c.send <- h.last[entity]:
		default:
		}
	}
}

// Unregister removes a client and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends ev to every client. A client whose buffer is full misses
// the event rather than blocking the broadcaster.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, seen := h.last[ev.Entity]; !seen {
		h.order = append(h.order, ev.Entity)
	}
	h.last[ev.Entity] = data

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Debug("client buffer full, event dropped", "type", ev.Type)
		}
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
