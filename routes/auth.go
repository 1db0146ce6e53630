package routes

import (
	"github.com/gofiber/fiber/v2"

	"servicehub/controllers"
	"servicehub/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/send-otp", controllers.SendOTP)
	auth.Post("/verify-otp", controllers.VerifyOTP)
	auth.Post("/signup-seeker", controllers.SignupSeeker)
	auth.Post("/signup-provider", controllers.SignupProvider)
	auth.Post("/register-admin", controllers.RegisterAdmin)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)
	auth.Post("/forgot-password", controllers.ForgotPassword)
	auth.Post("/reset-password", controllers.ResetPassword)

	// Federated login
	auth.Get("/google/login", controllers.GoogleLogin)
	auth.Get("/google/callback", controllers.GoogleCallback)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.Me)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
}
