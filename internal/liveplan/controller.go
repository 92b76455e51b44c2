package liveplan

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

func MountController(router fiber.Router) {
	router.Post("/generate", GenerateHandler)
	router.Get("/", ListHandler)
	router.Get("/:id", GetHandler)
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

	log.Printf("Generating live plan: type=%s title=%s total=%dmin",
		body.Type, body.Title, body.TotalMinutes())

	plan, err := Generate(body)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(plan)
}

func ListHandler(c *fiber.Ctx) error {
	plans, err := List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"plans": plans})
}

func GetHandler(c *fiber.Ctx) error {
	plan, err := Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(plan)
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

	return c.JSON(fiber.Map{"success": true, "message": "企画案を削除しました"})
}
