// Package hub provides a thread-safe websocket broadcast hub using the
// channel-based fan-out pattern. The simulator dashboard uses it to
// push scene events to every connected viewer.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/openquad/go-go1/internal/log"
)

// Hub maintains the set of active clients and broadcasts scene events
// to them.
type Hub struct {
	name string

	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client

	// mu guards client count reads from outside the run loop.
	mu sync.RWMutex
}

// New creates a hub. name appears in log lines only.
func New(name string) *Hub {
	return &Hub{
		name:       name,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the hub's main loop; call it in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("viewer connected", "hub", h.name, "total", count)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			log.Debug("viewer disconnected", "hub", h.name, "remaining", count)

		case payload := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					// Too slow to keep up; drop the client.
					close(client.send)
					delete(h.clients, client)
					log.Warn("dropped slow viewer", "hub", h.name)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues a payload for every connected client. Payloads are
// dropped, not blocked on, when the hub is saturated.
func (h *Hub) Broadcast(payload []byte) {
	select {
	case h.broadcast <- payload:
	default:
		log.Warn("broadcast channel full, dropping payload", "hub", h.name)
	}
}

// BroadcastJSON encodes and broadcasts a value.
func (h *Hub) BroadcastJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	h.Broadcast(data)
	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
