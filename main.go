package main

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"

	"github.com/creatorstation/creator-dashboard/internal/analytics"
	"github.com/creatorstation/creator-dashboard/internal/appcron"
	"github.com/creatorstation/creator-dashboard/internal/autopost"
	"github.com/creatorstation/creator-dashboard/internal/calendar"
	"github.com/creatorstation/creator-dashboard/internal/config"
	"github.com/creatorstation/creator-dashboard/internal/db"
	"github.com/creatorstation/creator-dashboard/internal/liveplan"
	"github.com/creatorstation/creator-dashboard/internal/metadata"
	"github.com/creatorstation/creator-dashboard/internal/schedule"
	"github.com/creatorstation/creator-dashboard/internal/shorts"
	"github.com/creatorstation/creator-dashboard/internal/speech"
	"github.com/creatorstation/creator-dashboard/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	db.Connect()
	db.ConnectMongo()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(config.CORSOrigins(), ","),
		AllowCredentials: true,
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Creator Dashboard API",
			"version": "1.0.0",
			"docs":    "/api/v1",
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	api := app.Group("/api/v1")
	analytics.MountController(api.Group("/analytics"))
	shorts.MountController(api.Group("/shorts"))
	liveplan.MountController(api.Group("/live-plan"))
	metadata.MountController(api.Group("/metadata"))
	autopost.MountController(api.Group("/auto-post"))
	speech.MountController(api.Group("/cevio"))
	calendar.MountController(api.Group("/google-calendar"))
	storage.MountController(api.Group("/storage"))
	schedule.MountController(api.Group("/ws"))
	appcron.MountDispatchController(api.Group("/jobs"))

	appcron.SetupDispatcherCron()
	schedule.StartPoller(calendar.UpcomingScheduleIDs)

	app.Listen(config.Host() + ":" + config.Port())
}
