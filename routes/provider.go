package routes

import (
	"github.com/gofiber/fiber/v2"

	"servicehub/controllers"
	"servicehub/middleware"
)

func SetupProviderRoutes(app *fiber.App) {
	provider := app.Group("/provider", middleware.Protected())

	provider.Post("/upgrade-request", controllers.UpgradeRequest)
	provider.Get("/requests", controllers.MyRequests)
}
