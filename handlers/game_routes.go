// handlers/game_routes.go
package handlers

import (
	"errors"
	"strconv"
	"time"

	"habit-game-system/middleware"
	"habit-game-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupGameRoutes wires the core play surface: logging actions, the day
// summary dashboard, history and data export.
func SetupGameRoutes(app *fiber.App, eventService *services.EventService, summaryService *services.SummaryService, exportService *services.ExportService) {
	securedGroup := app.Group("/user", middleware.UserContextMiddleware())

	securedGroup.Post("/actions/:key/log", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var body struct {
			ClientID string `json:"client_id"`
			Value    int    `json:"value"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}

		result, err := eventService.LogAction(userID, c.Params("key"), body.ClientID, body.Value, time.Now())
		if err != nil {
			var cooldown *services.CooldownError
			switch {
			case errors.Is(err, services.ErrActionNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "action not found"})
			case errors.Is(err, services.ErrDailyLimitReached):
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": err.Error()})
			case errors.As(err, &cooldown):
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error":          err.Error(),
					"retry_after_ms": cooldown.Remaining.Milliseconds(),
				})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to log action",
					"cause": err.Error(),
				})
			}
		}
		return c.JSON(result)
	})

	securedGroup.Get("/summary", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		summary, err := summaryService.GetDaySummary(userID, time.Now())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to build day summary",
				"cause": err.Error(),
			})
		}
		return c.JSON(summary)
	})

	securedGroup.Get("/history", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		days, _ := strconv.Atoi(c.Query("days", "30"))

		history, err := summaryService.GetHistory(userID, days, time.Now())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to get history",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"events": history})
	})

	securedGroup.Post("/export", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		url, err := exportService.ExportUserData(c.Context(), userID, time.Now())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to export user data",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"url": url})
	})
}
