package calendar

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/creatorstation/creator-dashboard/internal/config"
	"github.com/creatorstation/creator-dashboard/internal/schedule"
)

func MountController(router fiber.Router) {
	router.Get("/auth", AuthHandler)
	router.Get("/callback", CallbackHandler)
	router.Get("/status", StatusHandler)
	router.Get("/debug", DebugHandler)
	router.Get("/events", ListEventsHandler)
	router.Post("/events", CreateEventHandler)
	router.Put("/events/:id", UpdateEventHandler)
	router.Delete("/events/:id", DeleteEventHandler)
}

func AuthHandler(c *fiber.Ctx) error {
	url, err := AuthURL()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"auth_url": url})
}

func CallbackHandler(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Redirect(config.FrontendURL() + "/?calendar_auth=error")
	}

	if err := ExchangeCode(code); err != nil {
		log.Printf("calendar auth failed: %v", err)
		return c.Redirect(config.FrontendURL() + "/?calendar_auth=error")
	}

	if err := VerifyAccess(); err != nil {
		log.Printf("calendar verification failed: %v", err)
		return c.Redirect(config.FrontendURL() + "/?calendar_auth=error")
	}

	return c.Redirect(config.FrontendURL() + "/?calendar_auth=success")
}

func StatusHandler(c *fiber.Ctx) error {
	authenticated := Authenticated()
	accessible := false
	if authenticated {
		accessible = VerifyAccess() == nil
	}
	return c.JSON(fiber.Map{
		"configured":    config.YouTubeClientSecretJSON() != "",
		"authenticated": authenticated,
		"accessible":    accessible,
		"scopes":        Scopes,
	})
}

func DebugHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"redirect_uri":      config.CalendarRedirectURI(),
		"frontend_url":      config.FrontendURL(),
		"secret_configured": config.YouTubeClientSecretJSON() != "",
		"token_present":     Authenticated(),
	})
}

func ListEventsHandler(c *fiber.Ctx) error {
	now := time.Now().In(config.JST)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, config.JST)
	to := from.AddDate(1, 0, 0)

	if q := c.Query("from"); q != "" {
		if t, err := parseJST(q); err == nil {
			from = t
		}
	}
	if q := c.Query("to"); q != "" {
		if t, err := parseJST(q); err == nil {
			to = t
		}
	}

	events, err := ListEvents(from, to)
	if err != nil {
		return calendarError(c, err)
	}
	return c.JSON(fiber.Map{"events": events})
}

func CreateEventHandler(c *fiber.Ctx) error {
	var body EventBody
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

	event, err := CreateEvent(body)
	if err != nil {
		return calendarError(c, err)
	}

	schedule.NotifyScheduleUpdate()
	return c.Status(fiber.StatusCreated).JSON(event)
}

func UpdateEventHandler(c *fiber.Ctx) error {
	var body EventBody
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

	event, err := UpdateEvent(c.Params("id"), body)
	if err != nil {
		return calendarError(c, err)
	}

	schedule.NotifyScheduleUpdate()
	return c.JSON(event)
}

func DeleteEventHandler(c *fiber.Ctx) error {
	if err := DeleteEvent(c.Params("id")); err != nil {
		return calendarError(c, err)
	}

	schedule.NotifyScheduleUpdate()
	return c.JSON(fiber.Map{"success": true, "message": "イベントを削除しました"})
}

func calendarError(c *fiber.Ctx, err error) error {
	if errors.Is(err, ErrNotAuthenticated) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
