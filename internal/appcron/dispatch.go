package appcron

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/robfig/cron/v3"

	"github.com/creatorstation/creator-dashboard/internal/analytics"
	"github.com/creatorstation/creator-dashboard/internal/config"
	"github.com/creatorstation/creator-dashboard/internal/schedule"
	"github.com/creatorstation/creator-dashboard/internal/storage"
)

// SetupDispatcherCron marks scheduled X posts as posted when their time
// arrives and notifies websocket clients. It also keeps the X follower
// cache warm so analyze requests rarely pay the lookup.
func SetupDispatcherCron() {
	c := cron.New()

	_, err := c.AddFunc("* * * * *", runDispatchJob)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}

	_, err = c.AddFunc("*/5 * * * *", analytics.WarmFollowerCache)
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}

	c.Start()
	log.Println("Scheduled post dispatcher running every minute")
}

// MountDispatchController exposes a manual trigger for the dispatcher.
func MountDispatchController(router fiber.Router) {
	router.Post("/run-dispatch", func(c *fiber.Ctx) error {
		go runDispatchJob()
		return c.JSON(fiber.Map{
			"message": "Dispatch job started",
		})
	})
}

func runDispatchJob() {
	now := time.Now().In(config.JST)

	changed, err := storage.MarkDuePosts(now)
	if err != nil {
		log.Printf("Error dispatching scheduled posts: %v", err)
		return
	}

	if changed > 0 {
		log.Printf("Dispatched %d scheduled posts", changed)
		schedule.NotifyScheduleUpdate()
	}
}
