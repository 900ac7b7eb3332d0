package workflow

import (
	"errors"
	"time"

	"mhb/models"

	"gorm.io/gorm"
)

// Audit actions written by the workflow engine.
const (
	ActionCreatedDraft      = "CREATED_DRAFT"
	ActionSubmitted         = "SUBMITTED"
	ActionApprovedContent   = "APPROVED_CONTENT"
	ActionRejectedContent   = "REJECTED_CONTENT"
	ActionValidatedECTS     = "VALIDATED_ECTS"
	ActionRejectedFormal    = "REJECTED_FORMAL"
	ActionFinalRelease      = "FINAL_RELEASE"
	ActionRejectedDeanery   = "REJECTED_DEANERY"
	ActionAdminStatusChange = "ADMIN_STATUS_CHANGE"
)

// edges holds the legal (from -> to) transitions of the state machine.
// The admin bypass is not an edge; it is handled before the table is consulted.
var edges = map[models.WorkflowStatus]map[models.WorkflowStatus]bool{
	models.StatusDraft:           {models.StatusInReview: true},
	models.StatusInRevision:      {models.StatusInReview: true},
	models.StatusInReview:        {models.StatusValidationEO: true, models.StatusInRevision: true},
	models.StatusValidationEO:    {models.StatusApprovalDeanery: true, models.StatusInRevision: true},
	models.StatusApprovalDeanery: {models.StatusReleased: true, models.StatusInRevision: true},
}

// Decide validates a requested transition and returns the audit action to
// record. A nonexistent edge yields an InvalidTransitionError; an existing
// edge requested by an unqualified caller yields ErrForbidden. The admin
// scope bypasses both checks.
func Decide(current, target models.WorkflowStatus, scope Scope, callerID, ownerID string, ownerFaculty models.Faculty) (string, error) {
	if scope.Kind == ScopeAdmin {
		return ActionAdminStatusChange, nil
	}

	if !edges[current][target] {
		return "", &InvalidTransitionError{From: current, To: target}
	}

	// The owner check is an identity check: the caller must hold an owner
	// scope and be the module's owner. The scope's faculty does not matter.
	isOwner := scope.Kind == ScopeModuleOwner && callerID == ownerID
	isCoordinator := scope.Kind == ScopeProgramCoordinator && scope.Faculty == ownerFaculty

	switch target {
	case models.StatusInReview:
		if isOwner {
			return ActionSubmitted, nil
		}
	case models.StatusValidationEO:
		if isCoordinator {
			return ActionApprovedContent, nil
		}
	case models.StatusApprovalDeanery:
		if scope.Kind == ScopeExaminationOffice {
			return ActionValidatedECTS, nil
		}
	case models.StatusReleased:
		if scope.Kind == ScopeDeanery {
			return ActionFinalRelease, nil
		}
	case models.StatusInRevision:
		switch current {
		case models.StatusInReview:
			if isCoordinator || isOwner {
				return ActionRejectedContent, nil
			}
		case models.StatusValidationEO:
			if scope.Kind == ScopeExaminationOffice || isOwner {
				return ActionRejectedFormal, nil
			}
		case models.StatusApprovalDeanery:
			if scope.Kind == ScopeDeanery || isOwner {
				return ActionRejectedDeanery, nil
			}
		}
	}
	return "", ErrForbidden
}

// ApplyTransition applies a requested status change to a module version.
// On success the status and updated_at are set and exactly one audit log row
// is appended, all inside one transaction. On any error no mutation occurs.
func ApplyTransition(db *gorm.DB, versionID string, target models.WorkflowStatus, scope Scope, callerID string, comment *string) (*models.ModuleVersion, error) {
	var version models.ModuleVersion
	if err := db.Preload("Module.Owner").First(&version, "id = ?", versionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Err: err}
	}

	ownerID := ""
	ownerFaculty := models.Faculty("")
	if version.Module != nil {
		ownerID = version.Module.OwnerID
		if version.Module.Owner != nil {
			ownerFaculty = version.Module.Owner.Faculty
		}
	}

	action, err := Decide(version.Status, target, scope, callerID, ownerID, ownerFaculty)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	tx := db.Begin()
	if tx.Error != nil {
		return nil, &PersistenceError{Err: tx.Error}
	}

	if err := tx.Model(&models.ModuleVersion{}).
		Where("id = ?", version.ID).
		Updates(map[string]interface{}{"status": target, "updated_at": now}).Error; err != nil {
		tx.Rollback()
		return nil, &PersistenceError{Err: err}
	}

	entry := models.AuditLog{
		ModuleVersionID: version.ID,
		UserID:          callerID,
		Action:          action,
		Comment:         comment,
		Timestamp:       now,
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		return nil, &PersistenceError{Err: err}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, &PersistenceError{Err: err}
	}

	version.Status = target
	version.UpdatedAt = now
	return &version, nil
}
