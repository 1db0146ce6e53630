package routes

import (
	"github.com/gofiber/fiber/v2"

	"servicehub/controllers"
	"servicehub/middleware"
)

func SetupUploadRoutes(app *fiber.App) {
	uploads := app.Group("/uploads")

	// License documents are uploaded mid-signup, before the account
	// exists, so this endpoint stays public.
	uploads.Post("/document", controllers.UploadDocument)
	uploads.Post("/cover", middleware.Protected(), controllers.UploadCover)
}
