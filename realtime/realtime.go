package realtime

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// DailyGameUpdate is pushed to connected clients when the daily game
// changes, so an open frontend can refresh without polling.
type DailyGameUpdate struct {
	Date       string `json:"date"`
	SoloID     int    `json:"soloId"`
	UpdateType string `json:"updateType"` // "assigned" or "rotated"
}

// Hub fans daily-game updates out to connected WebSocket clients.
type Hub struct {
	mu        sync.Mutex
	clients   map[*websocket.Conn]bool
	broadcast chan DailyGameUpdate
}

func NewHub() *Hub {
	h := &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan DailyGameUpdate),
	}
	go h.run()
	return h
}

// Register adds a WebSocket client to the hub
func (h *Hub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
}

// Unregister removes a WebSocket client from the hub
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// BroadcastDailyUpdate sends an update to all connected clients
func (h *Hub) BroadcastDailyUpdate(update DailyGameUpdate) {
	h.broadcast <- update
}

func (h *Hub) run() {
	for update := range h.broadcast {
		h.mu.Lock()
		for client := range h.clients {
			if err := client.WriteJSON(update); err != nil {
				log.Printf("WebSocket write error: %v", err)
				client.Close()
				delete(h.clients, client)
			}
		}
		h.mu.Unlock()
	}
}
