package authController

import (
	"log"

	"mhb/database"
	"mhb/middleware"
	"mhb/models"
	"mhb/utils"
	"mhb/workflow"

	"github.com/gofiber/fiber/v2"
)

// Login authenticates a user and issues a JWT carrying the derived scope.
// The same message is returned whether the user id or the password was wrong.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		UserID   string `json:"user_id"`
		Password string `json:"password"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("user_id = ?", reqData.UserID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Incorrect user_id or password!", nil)
	}

	if !utils.VerifyPassword(reqData.Password, user.Password) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Incorrect user_id or password!", nil)
	}

	scope := workflow.ScopeString(user.Role, user.Faculty)

	token, err := middleware.GenerateJWT(user.UserID, user.Name, scope)
	if err != nil {
		log.Printf("Error generating JWT for user %s: %v", user.UserID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}
