package schedule

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"golang.org/x/exp/slices"
)

// Hub tracks connected dashboard clients and fans messages out to them.
type Hub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

var hub = &Hub{conns: map[*websocket.Conn]bool{}}

func GetHub() *Hub {
	return hub
}

func (h *Hub) add(c *websocket.Conn) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = true
	return len(h.conns)
}

func (h *Hub) remove(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, c)
}

// Broadcast sends the payload to every client, pruning dead connections.
func (h *Hub) Broadcast(payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.conns {
		if err := c.WriteJSON(payload); err != nil {
			log.Printf("websocket write failed, dropping client: %v", err)
			c.Close()
			delete(h.conns, c)
		}
	}
}

// NotifyScheduleUpdate pushes a schedule_update event to all clients.
// Calendar mutations and the dispatcher call this.
func NotifyScheduleUpdate() {
	hub.Broadcast(map[string]any{
		"type":      "schedule_update",
		"timestamp": time.Now().Unix(),
	})
}

// hashIDs fingerprints the schedule set so the poller only broadcasts on
// actual changes.
func hashIDs(ids []string) string {
	sorted := append([]string{}, ids...)
	slices.Sort(sorted)

	h := sha256.New()
	for _, id := range sorted {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
