package middleware

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"servicehub/config"
	"servicehub/db"
	"servicehub/models"
)

// AuthContext is the explicit per-request identity handlers receive.
// Role and request status are hydrated from the store on every request
// rather than trusted from the token, so a role change (e.g. an approval)
// takes effect without waiting for a token refresh.
type AuthContext struct {
	UserID                uint
	Email                 string
	Role                  string
	ProviderRequestStatus string
}

const authLocalKey = "authContext"

// Auth returns the AuthContext set by Protected. Panics if the route was
// not wrapped, which is a wiring bug, not a runtime condition.
func Auth(c *fiber.Ctx) *AuthContext {
	return c.Locals(authLocalKey).(*AuthContext)
}

// Protected validates the bearer token and hydrates the AuthContext.
func Protected() fiber.Handler {
	secret := config.Load().JWTSecret

	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token",
				})
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token claims",
				})
			}

			userID, err := extractUserID(claims)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid user ID in token",
				})
			}

			// Context hydration: role and status come from the store,
			// not the token.
			var user models.User
			if err := db.DB.First(&user, userID).Error; err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "User not found",
				})
			}

			c.Locals(authLocalKey, &AuthContext{
				UserID:                user.ID,
				Email:                 user.Email,
				Role:                  user.Role,
				ProviderRequestStatus: user.ProviderRequestStatus,
			})
			return c.Next()
		},
	})
}

// extractUserID handles multiple potential formats of user ID in token
func extractUserID(claims jwt.MapClaims) (uint, error) {
	idVal := claims["id"]
	if idVal == nil {
		return 0, fmt.Errorf("no ID found in claims")
	}

	switch v := idVal.(type) {
	case float64:
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse ID string: %v", err)
		}
		return uint(parsed), nil
	default:
		return 0, fmt.Errorf("unsupported ID type: %T", v)
	}
}

func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "Unauthorized",
		"message": "Invalid or expired token",
	})
}
