package routes

import (
	"github.com/gofiber/fiber/v2"

	"servicehub/controllers"
	"servicehub/middleware"
)

func SetupOnboardingRoutes(app *fiber.App) {
	onboarding := app.Group("/onboarding")

	// Stateless per-step validation for the client-orchestrated walk
	onboarding.Post("/:variant/steps/:step/validate", controllers.ValidateOnboardingStep)

	// Resumable authenticated upgrade walk, staged server-side
	provider := onboarding.Group("/provider", middleware.Protected())
	provider.Put("/steps/:step", controllers.StageOnboardingStep)
	provider.Get("/progress", controllers.OnboardingProgress)
	provider.Post("/submit", controllers.SubmitOnboarding)
}
