package middleware

import (
	"mhb/workflow"

	"github.com/gofiber/fiber/v2"
)

// RequireAdmin returns a middleware that rejects any caller whose scope is
// not the global admin scope.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope, ok := c.Locals("scope").(workflow.Scope)
		if !ok || scope.Kind != workflow.ScopeAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  false,
				"message": "You do not have permission to access this resource!",
				"data":    nil,
			})
		}
		return c.Next()
	}
}
