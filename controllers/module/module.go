package moduleController

import (
	"errors"
	"log"

	"mhb/database"
	"mhb/middleware"
	"mhb/models"
	"mhb/utils"
	"mhb/workflow"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// moduleResponse is a module with the caller-dependent current version and
// the latest released version resolved.
type moduleResponse struct {
	ID              string                `json:"id"`
	ModuleNumber    string                `json:"module_number"`
	Title           string                `json:"title"`
	OwnerID         string                `json:"owner_id"`
	CurrentVersion  *models.ModuleVersion `json:"current_version"`
	ReleasedVersion *models.ModuleVersion `json:"released_version"`
}

func buildModuleResponse(module *models.Module, scope workflow.Scope, callerID string) moduleResponse {
	ownerFaculty := models.Faculty("")
	if module.Owner != nil {
		ownerFaculty = module.Owner.Faculty
	}

	visibility := workflow.ComputeVisible(module.Versions, scope, callerID, module.OwnerID, ownerFaculty)

	return moduleResponse{
		ID:              module.ID,
		ModuleNumber:    module.ModuleNumber,
		Title:           module.Title,
		OwnerID:         module.OwnerID,
		CurrentVersion:  visibility.Current,
		ReleasedVersion: visibility.Released,
	}
}

// ListModules lists modules with filters, sorting and pagination. The
// visibility filter decides per caller which version shows as current.
func ListModules(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)
	scope := middleware.CallerScope(c)

	db := database.Database.Db

	query := db.Model(&models.Module{})

	if faculty := c.Query("faculty"); faculty != "" {
		if !models.Faculty(faculty).IsValid() {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid faculty filter!", nil)
		}
		query = query.Joins("JOIN users ON users.user_id = modules.owner_id").
			Where("users.faculty = ?", faculty)
	}

	if ownerID := c.Query("owner_id"); ownerID != "" {
		query = query.Where("modules.owner_id = ?", ownerID)
	}

	if search := c.Query("search"); search != "" {
		pattern := utils.LikePattern(search)
		query = query.Where("lower(modules.title) LIKE ? OR lower(modules.module_number) LIKE ?", pattern, pattern)
	}

	statusFilter := c.Query("status")
	if statusFilter != "" && !models.WorkflowStatus(statusFilter).IsValid() {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid status filter!", nil)
	}

	allowedSort := map[string]bool{"module_number": true, "title": true, "updated_at": true}
	page := utils.ParsePagination(c)

	var modules []models.Module
	if err := query.Order(utils.SortClause(c, allowedSort, "title")).
		Limit(page.Limit).Offset(page.Offset()).
		Preload("Owner").Preload("Versions").
		Find(&modules).Error; err != nil {
		log.Printf("Error fetching modules: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	responses := make([]moduleResponse, 0, len(modules))
	for i := range modules {
		resp := buildModuleResponse(&modules[i], scope, callerID)
		if statusFilter != "" {
			if resp.CurrentVersion == nil || resp.CurrentVersion.Status != models.WorkflowStatus(statusFilter) {
				continue
			}
		}
		responses = append(responses, resp)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", fiber.Map{
		"modules": responses,
		"page":    page.Page,
		"limit":   page.Limit,
	})
}

// GetModule returns one module with current/released versions per caller.
func GetModule(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)
	scope := middleware.CallerScope(c)

	db := database.Database.Db

	var module models.Module
	if err := db.Preload("Owner").Preload("Versions").
		First(&module, "id = ?", c.Params("id")).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module fetched successfully!",
		buildModuleResponse(&module, scope, callerID))
}

// CreateModule creates a module together with its initial DRAFT version and
// the CREATED_DRAFT audit entry, all in one transaction.
func CreateModule(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)
	scope := middleware.CallerScope(c)

	if scope.Kind != workflow.ScopeModuleOwner && scope.Kind != workflow.ScopeAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only module owners may create modules!", nil)
	}

	reqData, ok := c.Locals("validatedModule").(*struct {
		ModuleNumber      string  `json:"module_number"`
		Title             string  `json:"title"`
		OwnerID           string  `json:"owner_id"`
		Content           *string `json:"content"`
		ECTS              *int    `json:"ects"`
		ValidFromSemester string  `json:"valid_from_semester"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Owner defaults to the caller; only an admin may set a different owner.
	ownerID := callerID
	if scope.Kind == workflow.ScopeAdmin && reqData.OwnerID != "" {
		ownerID = reqData.OwnerID
	}

	var owner models.User
	if err := db.Where("user_id = ?", ownerID).First(&owner).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Owner user not found!", nil)
	}

	if err := db.Where("module_number = ?", reqData.ModuleNumber).First(&models.Module{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Module number is already registered!", nil)
	}

	module := models.Module{
		ModuleNumber: reqData.ModuleNumber,
		Title:        reqData.Title,
		OwnerID:      ownerID,
	}

	tx := db.Begin()
	if tx.Error != nil {
		log.Printf("Error starting transaction: %v", tx.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	if err := tx.Create(&module).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	version := models.ModuleVersion{
		ModuleID:          module.ID,
		Content:           reqData.Content,
		ECTS:              reqData.ECTS,
		ValidFromSemester: reqData.ValidFromSemester,
		Status:            models.StatusDraft,
		LastEditorID:      &callerID,
	}
	if err := tx.Create(&version).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating module version: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	entry := models.AuditLog{
		ModuleVersionID: version.ID,
		UserID:          callerID,
		Action:          workflow.ActionCreatedDraft,
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating audit log: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing module creation: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	module.Owner = &owner
	module.Versions = []models.ModuleVersion{version}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!",
		buildModuleResponse(&module, scope, callerID))
}

// UpdateModule updates module metadata. Owner or admin; reassigning the
// owner is admin only.
func UpdateModule(c *fiber.Ctx) error {
	callerID := middleware.CallerID(c)
	scope := middleware.CallerScope(c)

	reqData, ok := c.Locals("validatedModuleUpdate").(*struct {
		ModuleNumber *string `json:"module_number"`
		Title        *string `json:"title"`
		OwnerID      *string `json:"owner_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var module models.Module
	if err := db.Preload("Owner").Preload("Versions").
		First(&module, "id = ?", c.Params("id")).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	isAdmin := scope.Kind == workflow.ScopeAdmin
	isOwner := scope.Kind == workflow.ScopeModuleOwner && module.OwnerID == callerID
	if !isAdmin && !isOwner {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied!", nil)
	}

	if reqData.OwnerID != nil && !isAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only admins may reassign the owner!", nil)
	}

	if reqData.ModuleNumber != nil && *reqData.ModuleNumber != module.ModuleNumber {
		var existing models.Module
		if err := db.Where("module_number = ?", *reqData.ModuleNumber).First(&existing).Error; err == nil {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Module number is already registered!", nil)
		}
		module.ModuleNumber = *reqData.ModuleNumber
	}
	if reqData.Title != nil {
		module.Title = *reqData.Title
	}
	if reqData.OwnerID != nil {
		var owner models.User
		if err := db.Where("user_id = ?", *reqData.OwnerID).First(&owner).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Owner user not found!", nil)
		}
		module.OwnerID = *reqData.OwnerID
		module.Owner = &owner
	}

	if err := db.Save(&module).Error; err != nil {
		log.Printf("Error updating module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!",
		buildModuleResponse(&module, scope, callerID))
}

// DeleteModule removes a module and all of its versions, translations and
// audit logs in one transaction. Admin only.
func DeleteModule(c *fiber.Ctx) error {
	scope := middleware.CallerScope(c)
	if scope.Kind != workflow.ScopeAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	db := database.Database.Db

	var module models.Module
	if err := db.Preload("Versions").First(&module, "id = ?", c.Params("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
		}
		log.Printf("Error fetching module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	versionIDs := make([]string, 0, len(module.Versions))
	for _, v := range module.Versions {
		versionIDs = append(versionIDs, v.ID)
	}

	tx := db.Begin()
	if tx.Error != nil {
		log.Printf("Error starting transaction: %v", tx.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	if len(versionIDs) > 0 {
		if err := tx.Where("module_version_id IN ?", versionIDs).Delete(&models.AuditLog{}).Error; err != nil {
			tx.Rollback()
			log.Printf("Error deleting audit logs: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
		}
		if err := tx.Where("module_version_id IN ?", versionIDs).Delete(&models.Translation{}).Error; err != nil {
			tx.Rollback()
			log.Printf("Error deleting translations: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
		}
		if err := tx.Where("module_id = ?", module.ID).Delete(&models.ModuleVersion{}).Error; err != nil {
			tx.Rollback()
			log.Printf("Error deleting versions: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
		}
	}

	if err := tx.Delete(&module).Error; err != nil {
		tx.Rollback()
		log.Printf("Error deleting module: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing module deletion: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}
