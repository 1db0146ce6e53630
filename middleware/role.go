package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRole allows the request through only for the named roles. Must
// run after Protected.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := Auth(c)
		for _, role := range roles {
			if auth.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have the required role to perform this action",
		})
	}
}
