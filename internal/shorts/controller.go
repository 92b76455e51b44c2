package shorts

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

func MountController(router fiber.Router) {
	router.Post("/generate", GenerateHandler)
	router.Get("/", ListHandler)
	router.Delete("/:id", DeleteHandler)
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

	log.Printf("Generating shorts script: theme=%s duration=%d", body.Theme, body.Duration)

	script, err := Generate(body)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(script)
}

func ListHandler(c *fiber.Ctx) error {
	scripts, err := List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"scripts": scripts})
}

func DeleteHandler(c *fiber.Ctx) error {
	if err := Delete(c.Params("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true, "message": "台本を削除しました"})
}
