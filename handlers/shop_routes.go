// handlers/shop_routes.go
package handlers

import (
	"errors"
	"time"

	"habit-game-system/middleware"
	"habit-game-system/models"
	"habit-game-system/services"

	"github.com/gofiber/fiber/v2"
)

// SetupShopRoutes wires the coin shop: static catalog, purchases and
// the active-effect view.
func SetupShopRoutes(app *fiber.App, shopService *services.ShopService) {
	app.Get("/shop/items", func(c *fiber.Ctx) error {
		return c.JSON(models.ShopItems)
	})

	securedGroup := app.Group("/user", middleware.UserContextMiddleware())

	securedGroup.Post("/shop/purchase", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)

		var body struct {
			ItemKey string `json:"item_key"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}

		purchase, err := shopService.PurchaseItem(userID, body.ItemKey, time.Now())
		if err != nil {
			switch {
			case errors.Is(err, services.ErrItemNotFound):
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "item not found"})
			case errors.Is(err, services.ErrInsufficientFunds):
				return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"error": "insufficient funds"})
			default:
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "purchase failed",
					"cause": err.Error(),
				})
			}
		}
		return c.Status(fiber.StatusCreated).JSON(purchase)
	})

	securedGroup.Get("/purchases", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		now := time.Now()

		history, err := shopService.History(userID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to get purchases",
				"cause": err.Error(),
			})
		}
		effects, err := shopService.ActiveEffects(userID, now)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to get active effects",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"purchases":      history,
			"active_effects": effects,
		})
	})
}
