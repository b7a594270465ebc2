// handlers/achievement_routes.go
package handlers

import (
	"habit-game-system/middleware"
	"habit-game-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupAchievementRoutes wires the achievement surface: the static
// catalog and the per-user unlock view. Unlocking itself happens as a
// side effect of logging actions, never through these routes.
func SetupAchievementRoutes(app *fiber.App, achievementService *services.AchievementService) {
	app.Get("/achievements", func(c *fiber.Ctx) error {
		catalog, err := achievementService.Catalog()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list achievements",
				"cause": err.Error(),
			})
		}
		return c.JSON(catalog)
	})

	securedGroup := app.Group("/user", middleware.UserContextMiddleware())

	securedGroup.Get("/achievements", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		statuses, err := achievementService.ListForUser(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to list user achievements",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"achievements": statuses})
	})
}
