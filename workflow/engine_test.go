package workflow

import (
	"errors"
	"fmt"
	"testing"

	"mhb/database"
	"mhb/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	ownerID   = "owner-1"
	otherID   = "someone-else"
	adminID   = "admin-1"
	ownerFac  = models.FacultyF1MPM
	wrongFac  = models.FacultyF2ELS
)

var (
	ownerScope    = Scope{Kind: ScopeModuleOwner, Faculty: ownerFac}
	coordScope    = Scope{Kind: ScopeProgramCoordinator, Faculty: ownerFac}
	wrongCoord    = Scope{Kind: ScopeProgramCoordinator, Faculty: wrongFac}
	eoScope       = Scope{Kind: ScopeExaminationOffice}
	deaneryScope  = Scope{Kind: ScopeDeanery}
	adminScope    = Scope{Kind: ScopeAdmin}
	unrecognized  = Scope{}
)

func TestDecideHappyPath(t *testing.T) {
	steps := []struct {
		from, to models.WorkflowStatus
		scope    Scope
		caller   string
		action   string
	}{
		{models.StatusDraft, models.StatusInReview, ownerScope, ownerID, ActionSubmitted},
		{models.StatusInReview, models.StatusValidationEO, coordScope, "coord-1", ActionApprovedContent},
		{models.StatusValidationEO, models.StatusApprovalDeanery, eoScope, "eo-1", ActionValidatedECTS},
		{models.StatusApprovalDeanery, models.StatusReleased, deaneryScope, "dean-1", ActionFinalRelease},
	}
	for _, step := range steps {
		action, err := Decide(step.from, step.to, step.scope, step.caller, ownerID, ownerFac)
		require.NoError(t, err, "%s -> %s", step.from, step.to)
		assert.Equal(t, step.action, action)
	}
}

func TestDecideRejections(t *testing.T) {
	tests := []struct {
		from   models.WorkflowStatus
		scope  Scope
		caller string
		action string
	}{
		{models.StatusInReview, coordScope, "coord-1", ActionRejectedContent},
		{models.StatusInReview, ownerScope, ownerID, ActionRejectedContent},
		{models.StatusValidationEO, eoScope, "eo-1", ActionRejectedFormal},
		{models.StatusValidationEO, ownerScope, ownerID, ActionRejectedFormal},
		{models.StatusApprovalDeanery, deaneryScope, "dean-1", ActionRejectedDeanery},
		{models.StatusApprovalDeanery, ownerScope, ownerID, ActionRejectedDeanery},
	}
	for _, tc := range tests {
		action, err := Decide(tc.from, models.StatusInRevision, tc.scope, tc.caller, ownerID, ownerFac)
		require.NoError(t, err, "%s rejected by %v", tc.from, tc.scope)
		assert.Equal(t, tc.action, action)
	}
}

func TestDecideResubmitAfterRevision(t *testing.T) {
	action, err := Decide(models.StatusInRevision, models.StatusInReview, ownerScope, ownerID, ownerID, ownerFac)
	require.NoError(t, err)
	assert.Equal(t, ActionSubmitted, action)
}

func TestDecideAdminBypass(t *testing.T) {
	// Admin can move anything to anything, including edges that do not exist.
	for _, from := range models.WorkflowStatuses {
		for _, to := range models.WorkflowStatuses {
			action, err := Decide(from, to, adminScope, adminID, ownerID, ownerFac)
			require.NoError(t, err, "%s -> %s", from, to)
			assert.Equal(t, ActionAdminStatusChange, action)
		}
	}
}

func TestDecideInvalidEdge(t *testing.T) {
	var invalid *InvalidTransitionError

	_, err := Decide(models.StatusDraft, models.StatusReleased, ownerScope, ownerID, ownerID, ownerFac)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, models.StatusDraft, invalid.From)
	assert.Equal(t, models.StatusReleased, invalid.To)

	_, err = Decide(models.StatusReleased, models.StatusDraft, deaneryScope, "dean-1", ownerID, ownerFac)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDecideForbidden(t *testing.T) {
	// Wrong faculty coordinator cannot approve.
	_, err := Decide(models.StatusInReview, models.StatusValidationEO, wrongCoord, "coord-2", ownerID, ownerFac)
	assert.ErrorIs(t, err, ErrForbidden)

	// A non-owner with an owner scope cannot submit someone else's module.
	_, err = Decide(models.StatusDraft, models.StatusInReview, ownerScope, otherID, ownerID, ownerFac)
	assert.ErrorIs(t, err, ErrForbidden)

	// The examination office cannot release.
	_, err = Decide(models.StatusApprovalDeanery, models.StatusReleased, eoScope, "eo-1", ownerID, ownerFac)
	assert.ErrorIs(t, err, ErrForbidden)

	// Unrecognized scopes can do nothing.
	_, err = Decide(models.StatusDraft, models.StatusInReview, unrecognized, ownerID, ownerID, ownerFac)
	assert.ErrorIs(t, err, ErrForbidden)
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedVersion(t *testing.T, db *gorm.DB, status models.WorkflowStatus) *models.ModuleVersion {
	t.Helper()

	owner := models.User{UserID: ownerID, Name: "Owner", Faculty: ownerFac, Role: models.RoleModuleOwner, Password: "x"}
	require.NoError(t, db.Create(&owner).Error)

	module := models.Module{ModuleNumber: "F1-" + uuid.NewString()[:8], Title: "Test Module", OwnerID: ownerID}
	require.NoError(t, db.Create(&module).Error)

	version := models.ModuleVersion{ModuleID: module.ID, ValidFromSemester: "WiSe 2025/26", Status: status}
	require.NoError(t, db.Create(&version).Error)

	return &version
}

func TestApplyTransitionPersistsStatusAndAudit(t *testing.T) {
	db := setupDB(t)
	version := seedVersion(t, db, models.StatusDraft)

	comment := "ready for review"
	updated, err := ApplyTransition(db, version.ID, models.StatusInReview, ownerScope, ownerID, &comment)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInReview, updated.Status)

	var stored models.ModuleVersion
	require.NoError(t, db.First(&stored, "id = ?", version.ID).Error)
	assert.Equal(t, models.StatusInReview, stored.Status)

	var logs []models.AuditLog
	require.NoError(t, db.Where("module_version_id = ?", version.ID).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, ActionSubmitted, logs[0].Action)
	assert.Equal(t, ownerID, logs[0].UserID)
	require.NotNil(t, logs[0].Comment)
	assert.Equal(t, comment, *logs[0].Comment)
}

func TestApplyTransitionErrorLeavesStateUntouched(t *testing.T) {
	db := setupDB(t)
	version := seedVersion(t, db, models.StatusDraft)

	_, err := ApplyTransition(db, version.ID, models.StatusReleased, ownerScope, ownerID, nil)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = ApplyTransition(db, version.ID, models.StatusInReview, wrongCoord, "coord-2", nil)
	assert.ErrorIs(t, err, ErrForbidden)

	var stored models.ModuleVersion
	require.NoError(t, db.First(&stored, "id = ?", version.ID).Error)
	assert.Equal(t, models.StatusDraft, stored.Status)

	var count int64
	require.NoError(t, db.Model(&models.AuditLog{}).Where("module_version_id = ?", version.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestApplyTransitionNotFound(t *testing.T) {
	db := setupDB(t)

	_, err := ApplyTransition(db, uuid.NewString(), models.StatusInReview, adminScope, adminID, nil)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrInvalidTransition)
}

func TestApplyTransitionAdminBypass(t *testing.T) {
	db := setupDB(t)
	version := seedVersion(t, db, models.StatusDraft)

	updated, err := ApplyTransition(db, version.ID, models.StatusReleased, adminScope, adminID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReleased, updated.Status)

	var logs []models.AuditLog
	require.NoError(t, db.Where("module_version_id = ?", version.ID).Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, ActionAdminStatusChange, logs[0].Action)
}

func TestApplyTransitionFullWorkflowAuditTrail(t *testing.T) {
	db := setupDB(t)
	version := seedVersion(t, db, models.StatusDraft)

	steps := []struct {
		target models.WorkflowStatus
		scope  Scope
		caller string
	}{
		{models.StatusInReview, ownerScope, ownerID},
		{models.StatusValidationEO, coordScope, "coord-1"},
		{models.StatusApprovalDeanery, eoScope, "eo-1"},
		{models.StatusReleased, deaneryScope, "dean-1"},
	}
	for _, step := range steps {
		_, err := ApplyTransition(db, version.ID, step.target, step.scope, step.caller, nil)
		require.NoError(t, err, "transition to %s", step.target)
	}

	var logs []models.AuditLog
	require.NoError(t, db.Where("module_version_id = ?", version.ID).Order("id asc").Find(&logs).Error)
	require.Len(t, logs, 4)

	wantActions := []string{ActionSubmitted, ActionApprovedContent, ActionValidatedECTS, ActionFinalRelease}
	for i, entry := range logs {
		assert.Equal(t, wantActions[i], entry.Action)
	}
}

func TestCheckEditable(t *testing.T) {
	assert.NoError(t, CheckEditable(models.StatusDraft))
	assert.NoError(t, CheckEditable(models.StatusInRevision))

	for _, status := range []models.WorkflowStatus{
		models.StatusInReview, models.StatusValidationEO,
		models.StatusApprovalDeanery, models.StatusReleased,
	} {
		err := CheckEditable(status)
		assert.True(t, errors.Is(err, ErrInvalidState), "status %s", status)
	}
}

func TestApplyTransitionErrorKindsAreDistinct(t *testing.T) {
	db := setupDB(t)
	version := seedVersion(t, db, models.StatusInReview)

	_, err := ApplyTransition(db, version.ID, models.StatusValidationEO, wrongCoord, "coord-2", nil)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.False(t, errors.Is(err, ErrInvalidTransition))
	assert.False(t, errors.Is(err, ErrNotFound))
}
