// handlers/quest_routes.go
package handlers

import (
	"errors"
	"time"

	"habit-game-system/middleware"
	"habit-game-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupQuestRoutes wires the quest surface. Listing is also the
// generation trigger: quests for the current period materialize on
// first read.
func SetupQuestRoutes(app *fiber.App, questService *services.QuestService) {
	securedGroup := app.Group("/user", middleware.UserContextMiddleware())

	securedGroup.Get("/quests", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		quests, err := questService.EnsureQuests(userID, time.Now())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to load quests",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"quests": quests})
	})

	securedGroup.Post("/quests/:id/reroll", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		quest, err := questService.RerollDailyQuest(userID, c.Params("id"), time.Now())
		if err != nil {
			switch {
			case errors.Is(err, services.ErrQuestNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "quest not found"})
			case errors.Is(err, services.ErrNoRerollAvailable):
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "no quest reroll available"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to reroll quest",
					"cause": err.Error(),
				})
			}
		}
		return c.JSON(quest)
	})
}
