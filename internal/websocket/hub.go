package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Event is one change notification pushed to subscribed devices. Screens
// treat events as invalidation signals and re-fetch their view, the same
// way the old document-store snapshots were consumed.
type Event struct {
	Type string      `json:"type"` // e.g. "job.updated", "order.created"
	Data interface{} `json:"data,omitempty"`
}

// Hub maintains the set of active clients grouped by owner and fans
// change events out to every device logged into the same shop account.
type Hub struct {
	// Connected clients per owner id
	owners map[string]map[*Client]bool

	// Register requests
	register chan *Client

	// Unregister requests
	unregister chan *Client

	// Mutex for thread-safe access to the owners map
	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		owners:     make(map[string]map[*Client]bool),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			set, ok := h.owners[client.OwnerID]
			if !ok {
				set = make(map[*Client]bool)
				h.owners[client.OwnerID] = set
			}
			set[client] = true
			h.mu.Unlock()
			log.Printf("📱 Device connected: %s (owner %s)", client.ID, client.OwnerID)

		case client := <-h.unregister:
			h.mu.Lock()
			if set, ok := h.owners[client.OwnerID]; ok {
				if _, ok := set[client]; ok {
					delete(set, client)
					close(client.send)
					if len(set) == 0 {
						delete(h.owners, client.OwnerID)
					}
					log.Printf("📴 Device disconnected: %s", client.ID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish sends an event to every device of the given owner. Devices with
// a full send buffer are skipped; they will resync on their next fetch.
func (h *Hub) Publish(ownerID string, event Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.owners[ownerID] {
		select {
		case client.send <- msg:
		default:
			// Buffer full or client dead
		}
	}
}
