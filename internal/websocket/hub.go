package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Message notifies connected clients that an entity changed. Entities are
// name-keyed (cookbooks, recipes, ingredients), so the payload carries the
// entity name rather than a numeric id.
type Message struct {
	Type   string `json:"type"`
	Entity string `json:"entity"`
	Action string `json:"action"`
	Name   string `json:"name,omitempty"`
}

// NewMessage creates a Message with the Type field derived from entity and action.
func NewMessage(entity, action, name string) Message {
	return Message{
		Type:   fmt.Sprintf("%s_%s", entity, action),
		Entity: entity,
		Action: action,
		Name:   name,
	}
}

// Hub maintains the set of active WebSocket clients. Each client is tagged
// with the owner it authenticated as; broadcasts only reach that owner's
// connections, so one user's entity names never leak to another's browser.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]int64
	logger  *slog.Logger
}

// NewHub creates a new Hub.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]int64),
		logger:  logger,
	}
}

// Register adds a client to the hub under the given owner id.
func (h *Hub) Register(c *Client, ownerID int64) {
	h.mu.Lock()
	h.clients[c] = ownerID
	h.mu.Unlock()
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Broadcast sends a message to every client connected as the given owner.
func (h *Hub) Broadcast(ownerID int64, msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c, owner := range h.clients {
		if owner != ownerID {
			continue
		}
		select {
		case c.send <- data:
		default:
			// Client buffer full, drop the message rather than block
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
