package healthController

import (
	"mhb/database"

	"github.com/gofiber/fiber/v2"
)

// Running is the liveness probe.
func Running(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "pass",
	})
}

// Ready is the readiness probe. It checks database connectivity and returns
// 503 when the database is unreachable.
func Ready(c *fiber.Ctx) error {
	dbStatus := "pass"

	sqlDB, err := database.Database.Db.DB()
	if err != nil || sqlDB.Ping() != nil {
		dbStatus = "fail"
	}

	if dbStatus == "fail" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "fail",
			"details": fiber.Map{
				"database": "fail",
			},
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "pass",
		"details": fiber.Map{
			"database": "pass",
		},
	})
}
