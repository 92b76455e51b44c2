package analytics

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

func MountController(router fiber.Router) {
	router.Get("/x/analyze", AnalyzeXHandler)
	router.Get("/x/status", XStatusHandler)
	router.Post("/x/improvements", XImprovementsHandler)
	router.Get("/youtube/analyze", AnalyzeYouTubeHandler)
	router.Post("/youtube/improvements", YouTubeImprovementsHandler)
}

func validXPeriod(p string) bool {
	_, ok := bucketSpecs[p]
	return ok
}

func AnalyzeXHandler(c *fiber.Ctx) error {
	period := c.Query("period", Period1Day)
	if !validXPeriod(period) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "periodは2hours, 1day, 1week, 1monthのいずれかを指定してください",
		})
	}

	data, err := AnalyzeX(period)
	if err != nil {
		var rle *RateLimitError
		if errors.As(err, &rle) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"detail":              rle.Error(),
				"api_timeout":         true,
				"retry_after_seconds": rle.RetryAfter,
			})
		}
		log.Printf("X analyze failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(data)
}

func XStatusHandler(c *fiber.Ctx) error {
	return c.JSON(XStatus())
}

func XImprovementsHandler(c *fiber.Ctx) error {
	var body XImprovementsBody
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

	return c.JSON(SuggestXImprovements(body))
}

func AnalyzeYouTubeHandler(c *fiber.Ctx) error {
	period := c.Query("period", Period1Week)
	if period != Period1Week && period != Period1Month {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "periodは1weekまたは1monthを指定してください",
		})
	}

	data, err := AnalyzeYouTube(period)
	if err != nil {
		if errors.Is(err, ErrYouTubeAuth) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		log.Printf("YouTube analyze failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(data)
}

func YouTubeImprovementsHandler(c *fiber.Ctx) error {
	var body YouTubeImprovementsBody
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

	return c.JSON(SuggestYouTubeImprovements(body))
}
