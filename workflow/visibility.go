package workflow

import (
	"mhb/models"
)

// Visibility is the result of filtering a module's versions for one caller.
type Visibility struct {
	Visible  []models.ModuleVersion
	Current  *models.ModuleVersion // newest visible version, nil when none qualifies
	Released *models.ModuleVersion // newest RELEASED version over all versions
}

// StatusVisible reports whether one version status is visible to the caller.
// Released versions are visible to every scope; everything else depends on
// the scope kind and, for faculty-scoped callers, on the module's owner.
func StatusVisible(status models.WorkflowStatus, scope Scope, callerID, ownerID string, ownerFaculty models.Faculty) bool {
	if status == models.StatusReleased {
		return true
	}
	switch scope.Kind {
	case ScopeAdmin:
		return true
	case ScopeDeanery:
		return status == models.StatusApprovalDeanery
	case ScopeExaminationOffice:
		return status == models.StatusValidationEO || status == models.StatusApprovalDeanery
	case ScopeProgramCoordinator:
		if scope.Faculty != ownerFaculty {
			return false
		}
		return status == models.StatusInReview ||
			status == models.StatusValidationEO ||
			status == models.StatusApprovalDeanery
	case ScopeModuleOwner:
		return callerID == ownerID
	}
	return false
}

// VisibleVersions filters a module's versions down to the subset the caller
// may see. The same per-version rule backs list views, detail views and the
// version listing of one module.
func VisibleVersions(versions []models.ModuleVersion, scope Scope, callerID, ownerID string, ownerFaculty models.Faculty) []models.ModuleVersion {
	visible := make([]models.ModuleVersion, 0, len(versions))
	for _, v := range versions {
		if StatusVisible(v.Status, scope, callerID, ownerID, ownerFaculty) {
			visible = append(visible, v)
		}
	}
	return visible
}

// ComputeVisible computes the visible versions plus the current and released
// version for display. Pure function: no side effects, deterministic.
func ComputeVisible(versions []models.ModuleVersion, scope Scope, callerID, ownerID string, ownerFaculty models.Faculty) Visibility {
	result := Visibility{
		Visible: VisibleVersions(versions, scope, callerID, ownerID, ownerFaculty),
	}

	for i := range result.Visible {
		if result.Current == nil || newer(&result.Visible[i], result.Current) {
			result.Current = &result.Visible[i]
		}
	}

	// The released version is computed over all versions, not just visible
	// ones; released versions are visible to everyone anyway.
	for i := range versions {
		if versions[i].Status != models.StatusReleased {
			continue
		}
		if result.Released == nil || newer(&versions[i], result.Released) {
			result.Released = &versions[i]
		}
	}

	return result
}

// newer orders versions by updated_at, breaking ties by id so the choice of
// current version is deterministic.
func newer(a, b *models.ModuleVersion) bool {
	if a.UpdatedAt.Equal(b.UpdatedAt) {
		return a.ID > b.ID
	}
	return a.UpdatedAt.After(b.UpdatedAt)
}
