package userRoutes

import (
	userController "mhb/controllers/user"
	"mhb/middleware"
	userValidator "mhb/validators/user"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes registers the admin-only user management routes
func SetupUserRoutes(app *fiber.App) {
	users := app.Group("/v0/users", middleware.JWTMiddleware, middleware.RequireAdmin())

	users.Get("/", userController.ListUsers)
	users.Post("/", userValidator.CreateUser(), userController.CreateUser)
	users.Get("/:id", userController.GetUser)
	users.Patch("/:id", userValidator.UpdateUser(), userController.UpdateUser)
	users.Delete("/:id", userController.DeleteUser)
}
