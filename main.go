package main

import (
	"log"

	"mhb/config"
	"mhb/database"
	authRoutes "mhb/routers/authRoutes"
	healthRoutes "mhb/routers/healthRoutes"
	moduleRoutes "mhb/routers/moduleRoutes"
	userRoutes "mhb/routers/userRoutes"
	"mhb/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	healthRoutes.SetupHealthRoutes(app)
	authRoutes.SetupAuthRoutes(app)
	userRoutes.SetupUserRoutes(app)
	moduleRoutes.SetupModuleRoutes(app)

	utils.InitializeReviewReminderScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
