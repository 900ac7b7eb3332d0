package moduleRoutes

import (
	moduleController "mhb/controllers/module"
	"mhb/middleware"
	moduleValidator "mhb/validators/module"

	"github.com/gofiber/fiber/v2"
)

// SetupModuleRoutes registers the module, version and translation routes
func SetupModuleRoutes(app *fiber.App) {
	modules := app.Group("/v0/modules", middleware.JWTMiddleware)

	modules.Get("/", moduleController.ListModules)
	modules.Post("/", moduleValidator.CreateModule(), moduleController.CreateModule)

	// Version and translation routes go before /:id so Fiber does not
	// swallow them as module ids.
	modules.Put("/versions/:versionId", moduleValidator.UpdateVersion(), moduleController.UpdateVersionContent)
	modules.Patch("/versions/:versionId/status", moduleValidator.UpdateStatus(), moduleController.UpdateStatus)
	modules.Get("/versions/:versionId/audit", moduleController.ListAuditLogs)
	modules.Post("/versions/:versionId/translations", moduleValidator.CreateTranslation(), moduleController.AddTranslation)
	modules.Patch("/translations/:translationId", moduleValidator.UpdateTranslation(), moduleController.UpdateTranslation)

	modules.Get("/:id", moduleController.GetModule)
	modules.Patch("/:id", moduleValidator.UpdateModule(), moduleController.UpdateModule)
	modules.Delete("/:id", moduleController.DeleteModule)
	modules.Get("/:id/versions", moduleController.ListVersions)
}
