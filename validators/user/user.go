package userValidator

import (
	"regexp"
	"strings"

	"mhb/middleware"
	"mhb/models"

	"github.com/gofiber/fiber/v2"
)

// Helper to validate email format
func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// CreateUser validator middleware
func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			UserID   string `json:"user_id"`
			Name     string `json:"name"`
			Faculty  string `json:"faculty"`
			Role     string `json:"role"`
			Email    string `json:"email"`
			Password string `json:"password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.UserID) == "" {
			errors["user_id"] = "User ID is required!"
		}

		if len(strings.TrimSpace(reqData.Name)) < 2 {
			errors["name"] = "Name must be at least 2 characters long!"
		}

		if !models.Faculty(reqData.Faculty).IsValid() {
			errors["faculty"] = "Invalid faculty!"
		}

		if !models.UserRole(reqData.Role).IsValid() {
			errors["role"] = "Invalid role!"
		}

		if reqData.Email != "" && !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		if len(reqData.Password) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}

// UpdateUser validator middleware
func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name     *string `json:"name"`
			Faculty  *string `json:"faculty"`
			Role     *string `json:"role"`
			Email    *string `json:"email"`
			Password *string `json:"password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Name != nil && len(strings.TrimSpace(*reqData.Name)) < 2 {
			errors["name"] = "Name must be at least 2 characters long!"
		}

		if reqData.Faculty != nil && !models.Faculty(*reqData.Faculty).IsValid() {
			errors["faculty"] = "Invalid faculty!"
		}

		if reqData.Role != nil && !models.UserRole(*reqData.Role).IsValid() {
			errors["role"] = "Invalid role!"
		}

		if reqData.Email != nil && *reqData.Email != "" && !isValidEmail(*reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		if reqData.Password != nil && len(*reqData.Password) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedUserUpdate", reqData)
		return c.Next()
	}
}
