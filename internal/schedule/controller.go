package schedule

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func MountController(router fiber.Router) {
	router.Use("/schedule-updates", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	router.Get("/schedule-updates", websocket.New(handleClient))
}

func handleClient(c *websocket.Conn) {
	count := hub.add(c)
	defer func() {
		hub.remove(c)
		c.Close()
	}()

	if err := c.WriteJSON(map[string]any{
		"type":      "connected",
		"count":     count,
		"timestamp": time.Now().Unix(),
	}); err != nil {
		log.Printf("websocket hello failed: %v", err)
		return
	}

	// drain reads until the client goes away
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
