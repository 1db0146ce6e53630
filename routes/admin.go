package routes

import (
	"github.com/gofiber/fiber/v2"

	"servicehub/controllers/admin"
	"servicehub/middleware"
	"servicehub/models"
)

func SetupAdminRoutes(app *fiber.App) {
	group := app.Group("/admin", middleware.Protected(), middleware.RequireRole(models.RoleAdmin))

	group.Get("/provider-requests", admin.ListRequests)
	group.Get("/provider-requests/:id", admin.GetRequest)
	group.Patch("/provider-requests/:id", admin.ActionRequest)

	group.Post("/categories", admin.CreateCategory)
	group.Put("/categories/:id", admin.UpdateCategory)
	group.Delete("/categories/:id", admin.DeleteCategory)
	group.Post("/subcategories", admin.CreateSubCategory)
	group.Delete("/subcategories/:id", admin.DeleteSubCategory)

	group.Get("/privacy-policy", admin.GetPrivacyPolicy)
	group.Post("/privacy-policy", admin.UpsertPrivacyPolicy)
}
