package routes

import (
	"github.com/gofiber/fiber/v2"

	"servicehub/controllers"
	"servicehub/middleware"
	"servicehub/models"
)

func SetupServiceRoutes(app *fiber.App) {
	app.Get("/categories", controllers.GetCategories)

	service := app.Group("/services")
	service.Get("/", controllers.GetAllServices)
	service.Get("/:id", controllers.GetService)
	service.Post("/", middleware.Protected(), middleware.RequireRole(models.RoleProvider), controllers.CreateService)
	service.Put("/:id", middleware.Protected(), middleware.RequireRole(models.RoleProvider), controllers.UpdateService)
	service.Delete("/:id", middleware.Protected(), middleware.RequireRole(models.RoleProvider), controllers.DeleteService)
}
