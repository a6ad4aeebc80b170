package websocket

import (
	"sync"

	"memory-map-be/internal/pkg/logger"
)

// Hub tracks connected live-feed clients and fans events out to them.
// The feed is anonymous and broadcast-only, so there is no per-user map.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"clients": count})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"clients": count})
		}
	}
}

// Broadcast sends a raw payload to ALL connected clients. Slow clients
// whose send buffer is full are dropped rather than blocking the feed.
func (h *Hub) Broadcast(data []byte) {
	h.mu.RLock()
	var stale []*Client
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			stale = append(stale, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range stale {
		h.unregister <- client
	}
}
