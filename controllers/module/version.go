package moduleController

import (
	"errors"
	"log"
	"time"

	"mhb/database"
	"mhb/middleware"
	"mhb/models"
	"mhb/workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// loadVersion fetches a version with its module and the module's owner.
func loadVersion(db *gorm.DB, versionID string) (*models.ModuleVersion, error) {
	var version models.ModuleVersion
	if err := db.Preload("Module.Owner").First(&version, "id = ?", versionID).Error; err != nil {
		return nil, err
	}
	return &version, nil
}

func versionOwner(version *models.ModuleVersion) (ownerID string, ownerFaculty models.Faculty) {
	if version.Module != nil {
		ownerID = version.Module.OwnerID
		if version.Module.Owner != nil {
			ownerFaculty = version.Module.Owner.Faculty
		}
	}
	return ownerID, ownerFaculty
}

// canEditVersion is the authorization predicate for content-level writes:
// the caller must be the module's owner or an admin, regardless of who
// edited the version before.
func canEditVersion(scope workflow.Scope, callerID string, version *models.ModuleVersion) bool {
	if scope.Kind == workflow.ScopeAdmin {
		return true
	}
	ownerID, _ := versionOwner(version)
	return scope.Kind == workflow.ScopeModuleOwner && callerID == ownerID
}

// ListVersions returns the versions of a module visible to the caller.
func ListVersions(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)
	scope := middleware.CallerScope(c)

	db := database.Database.Db

	var module models.Module
	if err := db.Preload("Owner").Preload("Versions.Translations").
		First(&module, "id = ?", c.Params("id")).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	ownerFaculty := models.Faculty("")
	if module.Owner != nil {
		ownerFaculty = module.Owner.Faculty
	}

	visible := workflow.VisibleVersions(module.Versions, scope, callerID, module.OwnerID, ownerFaculty)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Versions fetched successfully!", fiber.Map{
		"versions": visible,
	})
}

// UpdateVersionContent edits the content fields of a version. Only allowed
// while the version is in DRAFT or IN_REVISION, and only for the module's
// owner or an admin. A content change marks all translations outdated.
func UpdateVersionContent(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)
	scope := middleware.CallerScope(c)

	reqData, ok := c.Locals("validatedVersionUpdate").(*struct {
		Content           *string `json:"content"`
		ECTS              *int    `json:"ects"`
		ValidFromSemester *string `json:"valid_from_semester"`
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
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update version!", nil)
	}

	if err := workflow.CheckEditable(version.Status); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
			"Version can only be edited while in DRAFT or IN_REVISION!", nil)
	}

	if !canEditVersion(scope, callerID, version) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	contentChanged := reqData.Content != nil &&
		(version.Content == nil || *version.Content != *reqData.Content)

	updates := map[string]interface{}{
		"last_editor_id": callerID,
		"updated_at":     time.Now().UTC(),
	}
	if reqData.Content != nil {
		updates["content"] = *reqData.Content
	}
	if reqData.ECTS != nil {
		updates["ects"] = *reqData.ECTS
	}
	if reqData.ValidFromSemester != nil {
		updates["valid_from_semester"] = *reqData.ValidFromSemester
	}

	tx := db.Begin()
	if tx.Error != nil {
		log.Printf("Error starting transaction: %v", tx.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update version!", nil)
	}

	if err := tx.Model(&models.ModuleVersion{}).Where("id = ?", version.ID).Updates(updates).Error; err != nil {
		tx.Rollback()
		log.Printf("Error updating version: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update version!", nil)
	}

	if contentChanged {
		if err := tx.Model(&models.Translation{}).
			Where("module_version_id = ?", version.ID).
			Update("is_outdated", true).Error; err != nil {
			tx.Rollback()
			log.Printf("Error marking translations outdated: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update version!", nil)
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing version update: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update version!", nil)
	}

	updated, err := loadVersion(db, version.ID)
	if err != nil {
		log.Printf("Error reloading version: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update version!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Version updated successfully!", updated)
}

// UpdateStatus applies a workflow transition to a version.
func UpdateStatus(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)
	scope := middleware.CallerScope(c)

	reqData, ok := c.Locals("validatedStatusUpdate").(*struct {
		Status  string  `json:"status"`
		Comment *string `json:"comment"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	version, err := workflow.ApplyTransition(db, c.Params("versionId"),
		models.WorkflowStatus(reqData.Status), scope, callerID, reqData.Comment)
	if err != nil {
		switch {
		case errors.Is(err, workflow.ErrNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module version not found!", nil)
		case errors.Is(err, workflow.ErrForbidden):
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not allowed to perform this transition!", nil)
		case errors.Is(err, workflow.ErrInvalidTransition):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		default:
			log.Printf("Error applying transition: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update status!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Status updated successfully!", version)
}

// ListAuditLogs returns the audit trail of a version, newest first. The
// caller must be able to see the version in its current status.
func ListAuditLogs(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)
	scope := middleware.CallerScope(c)

	db := database.Database.Db

	version, err := loadVersion(db, c.Params("versionId"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module version not found!", nil)
	}

	ownerID, ownerFaculty := versionOwner(version)
	if !workflow.StatusVisible(version.Status, scope, callerID, ownerID, ownerFaculty) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	var logs []models.AuditLog
	if err := db.Preload("User").
		Where("module_version_id = ?", version.ID).
		Order("timestamp desc, id desc").
		Find(&logs).Error; err != nil {
		log.Printf("Error fetching audit logs: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch audit logs!", nil)
	}

	type auditLogResponse struct {
		models.AuditLog
		UserName string `json:"user_name"`
	}

	responses := make([]auditLogResponse, len(logs))
	for i, entry := range logs {
		name := ""
		if entry.User != nil {
			name = entry.User.Name
		}
		responses[i] = auditLogResponse{AuditLog: entry, UserName: name}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Audit logs fetched successfully!", fiber.Map{
		"audit_logs": responses,
	})
}
