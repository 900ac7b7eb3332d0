package authRoutes

import (
	authController "mhb/controllers/auth"
	authValidator "mhb/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes registers the authentication routes
func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/v0/auth")

	auth.Post("/token", authValidator.Login(), authController.Login)
}
