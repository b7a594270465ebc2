// handlers/action_routes.go
package handlers

import (
	"errors"

	"habit-game-system/middleware"
	"habit-game-system/models"
	"habit-game-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupActionRoutes wires the action catalog surface.
func SetupActionRoutes(app *fiber.App, actionService *services.ActionService) {
	// Catalog is readable by any authenticated gateway request.
	app.Get("/actions", func(c *fiber.Ctx) error {
		actions, err := actionService.List()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list actions",
				"cause": err.Error(),
			})
		}
		return c.JSON(actions)
	})

	app.Get("/actions/:key", func(c *fiber.Ctx) error {
		action, err := actionService.GetByKey(c.Params("key"))
		if err != nil {
			if errors.Is(err, services.ErrActionNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "action not found"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to fetch action",
				"cause": err.Error(),
			})
		}
		return c.JSON(action)
	})

	// Admin-only catalog extension.
	adminGroup := app.Group("/admin", middleware.UserContextMiddleware(), middleware.RequireRole("admin"))

	adminGroup.Post("/actions", func(c *fiber.Ctx) error {
		var body struct {
			Name          string `json:"name"`
			Category      string `json:"category"`
			XPBase        int    `json:"xp_base"`
			CoinBase      int    `json:"coin_base"`
			CooldownHours *int   `json:"cooldown_hours"`
			MaxPerDay     *int   `json:"max_per_day"`
			IsNegative    bool   `json:"is_negative"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}
		if body.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}

		action, err := actionService.CreateAction(
			body.Name, models.ActionCategory(body.Category),
			body.XPBase, body.CoinBase,
			body.CooldownHours, body.MaxPerDay, body.IsNegative,
		)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "failed to create action",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(action)
	})
}
