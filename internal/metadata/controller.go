package metadata

import (
	"github.com/gofiber/fiber/v2"
)

func MountController(router fiber.Router) {
	router.Post("/generate", GenerateHandler)
}

func GenerateHandler(c *fiber.Ctx) error {
	var body GenerateBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := body.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(Generate(body))
}
