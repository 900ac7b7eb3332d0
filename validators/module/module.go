package moduleValidator

import (
	"regexp"
	"strings"

	"mhb/middleware"
	"mhb/models"

	"github.com/gofiber/fiber/v2"
)

var languageRe = regexp.MustCompile(`^[a-zA-Z]{2}$`)

// CreateModule validator middleware
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModuleNumber      string  `json:"module_number"`
			Title             string  `json:"title"`
			OwnerID           string  `json:"owner_id"`
			Content           *string `json:"content"`
			ECTS              *int    `json:"ects"`
			ValidFromSemester string  `json:"valid_from_semester"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.ModuleNumber) == "" {
			errors["module_number"] = "Module number is required!"
		}

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.ECTS == nil || *reqData.ECTS < 1 {
			errors["ects"] = "ECTS must be at least 1!"
		}

		if strings.TrimSpace(reqData.ValidFromSemester) == "" {
			errors["valid_from_semester"] = "Valid from semester is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// UpdateModule validator middleware
func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModuleNumber *string `json:"module_number"`
			Title        *string `json:"title"`
			OwnerID      *string `json:"owner_id"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ModuleNumber != nil && strings.TrimSpace(*reqData.ModuleNumber) == "" {
			errors["module_number"] = "Module number cannot be empty!"
		}

		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.ModuleNumber == nil && reqData.Title == nil && reqData.OwnerID == nil {
			errors["body"] = "At least one field must be provided!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

// UpdateVersion validator middleware for content edits
func UpdateVersion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Content           *string `json:"content"`
			ECTS              *int    `json:"ects"`
			ValidFromSemester *string `json:"valid_from_semester"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.ECTS != nil && *reqData.ECTS < 0 {
			errors["ects"] = "ECTS cannot be negative!"
		}

		if reqData.ValidFromSemester != nil && strings.TrimSpace(*reqData.ValidFromSemester) == "" {
			errors["valid_from_semester"] = "Valid from semester cannot be empty!"
		}

		if reqData.Content == nil && reqData.ECTS == nil && reqData.ValidFromSemester == nil {
			errors["body"] = "At least one field must be provided!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedVersionUpdate", reqData)
		return c.Next()
	}
}

// UpdateStatus validator middleware for workflow transitions
func UpdateStatus() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Status  string  `json:"status"`
			Comment *string `json:"comment"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !models.WorkflowStatus(reqData.Status).IsValid() {
			errors["status"] = "Invalid workflow status!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedStatusUpdate", reqData)
		return c.Next()
	}
}

// CreateTranslation validator middleware
func CreateTranslation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Language string `json:"language"`
			Title    string `json:"title"`
			Content  string `json:"content"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !languageRe.MatchString(reqData.Language) {
			errors["language"] = "Language must be a 2-letter code!"
		}

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}

		if strings.TrimSpace(reqData.Content) == "" {
			errors["content"] = "Content is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTranslation", reqData)
		return c.Next()
	}
}

// UpdateTranslation validator middleware
func UpdateTranslation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title      *string `json:"title"`
			Content    *string `json:"content"`
			IsOutdated *bool   `json:"is_outdated"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && strings.TrimSpace(*reqData.Title) == "" {
			errors["title"] = "Title cannot be empty!"
		}

		if reqData.Title == nil && reqData.Content == nil && reqData.IsOutdated == nil {
			errors["body"] = "At least one field must be provided!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTranslationUpdate", reqData)
		return c.Next()
	}
}
