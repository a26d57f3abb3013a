package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireRole gates routes on the role loaded by AuthRequired. The watchdog
// registration route does not use it: privilege there is checked by the
// service against the live role.
func RequireRole(requiredRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return Unauthorized("User not found")
		}

		if !user.HasRole(requiredRole) {
			return Forbidden("Insufficient permissions for this operation")
		}

		return c.Next()
	}
}
