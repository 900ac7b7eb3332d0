package moduleController

import (
	"errors"
	"log"
	"strings"

	"mhb/database"
	"mhb/middleware"
	"mhb/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AddTranslation creates a translation for a version. Owner or admin only.
// New translations always start with is_outdated = false.
func AddTranslation(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)
	scope := middleware.CallerScope(c)

	reqData, ok := c.Locals("validatedTranslation").(*struct {
		Language string `json:"language"`
		Title    string `json:"title"`
		Content  string `json:"content"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	version, err := loadVersion(db, c.Params("versionId"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module version not found!", nil)
		}
		log.Printf("Error fetching version: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add translation!", nil)
	}

	if !canEditVersion(scope, callerID, version) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	translation := models.Translation{
		ModuleVersionID: version.ID,
		Language:        strings.ToLower(reqData.Language),
		Title:           reqData.Title,
		Content:         reqData.Content,
		IsOutdated:      false,
	}

	if err := db.Create(&translation).Error; err != nil {
		log.Printf("Error creating translation: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add translation!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Translation added successfully!", translation)
}

// UpdateTranslation updates translation fields; clearing is_outdated is how
// a translator marks the translation as refreshed. Owner or admin only.
func UpdateTranslation(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)
	scope := middleware.CallerScope(c)

	reqData, ok := c.Locals("validatedTranslationUpdate").(*struct {
		Title      *string `json:"title"`
		Content    *string `json:"content"`
		IsOutdated *bool   `json:"is_outdated"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var translation models.Translation
	if err := db.First(&translation, "id = ?", c.Params("translationId")).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Translation not found!", nil)
	}

	version, err := loadVersion(db, translation.ModuleVersionID)
	if err != nil {
		log.Printf("Error fetching version: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update translation!", nil)
	}

	if !canEditVersion(scope, callerID, version) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	if reqData.Title != nil {
		translation.Title = *reqData.Title
	}
	if reqData.Content != nil {
		translation.Content = *reqData.Content
	}
	if reqData.IsOutdated != nil {
		translation.IsOutdated = *reqData.IsOutdated
	}

	if err := db.Save(&translation).Error; err != nil {
		log.Printf("Error updating translation: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update translation!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Translation updated successfully!", translation)
}
