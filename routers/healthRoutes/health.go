package healthRoutes

import (
	healthController "mhb/controllers/health"

	"github.com/gofiber/fiber/v2"
)

// SetupHealthRoutes registers the liveness and readiness probes
func SetupHealthRoutes(app *fiber.App) {
	health := app.Group("/v0/health")

	health.Get("/running", healthController.Running)
	health.Get("/ready", healthController.Ready)
}
