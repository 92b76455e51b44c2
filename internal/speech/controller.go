package speech

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

func MountController(router fiber.Router) {
	router.Get("/status", StatusHandler)
	router.Get("/test", TestHandler)
	router.Post("/speak", SpeakHandler)
	router.Post("/stop", StopHandler)
}

func StatusHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"connected":       Connected(),
		"is_speaking":     IsSpeaking(),
		"available_casts": AvailableCasts,
	})
}

func TestHandler(c *fiber.Ctx) error {
	return c.JSON(Diagnostics())
}

func SpeakHandler(c *fiber.Ctx) error {
	var body SpeakBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if body.Cast == "" {
		body.Cast = DefaultCast
	}
	if err := body.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	log.Printf("Speaking %d chars as %s", len([]rune(body.Text)), body.Cast)

	if err := Speak(body.Text, body.Cast); err != nil {
		if errors.Is(err, ErrEngineUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true, "message": "再生を開始しました"})
}

func StopHandler(c *fiber.Ctx) error {
	if err := Stop(); err != nil {
		if errors.Is(err, ErrEngineUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true, "message": "再生を停止しました"})
}
