package workflow

import (
	"testing"

	"mhb/models"

	"github.com/stretchr/testify/assert"
)

func TestScopeStringDerivation(t *testing.T) {
	tests := []struct {
		role    models.UserRole
		faculty models.Faculty
		want    string
	}{
		{models.RoleAdmin, models.FacultyAdmin, "admin"},
		{models.RoleDeanery, models.FacultyAdmin, "deanery"},
		{models.RoleExaminationOffice, models.FacultyAdmin, "examination_office"},
		{models.RoleModuleOwner, models.FacultyF1MPM, "f1:module_owner"},
		{models.RoleModuleOwner, models.FacultyF4BS, "f4:module_owner"},
		{models.RoleProgramCoordinator, models.FacultyF2ELS, "f2:program_coordinator"},
		{models.RoleProgramCoordinator, models.FacultyF3IC, "f3:program_coordinator"},
		// Faculty-bound global roles do not collapse to the global tags.
		{models.RoleDeanery, models.FacultyF1MPM, "f1:deanery"},
		{models.RoleAdmin, models.FacultyF2ELS, "f2:admin"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, ScopeString(tc.role, tc.faculty))
	}
}

func TestParseScope(t *testing.T) {
	assert.Equal(t, Scope{Kind: ScopeAdmin}, ParseScope("admin"))
	assert.Equal(t, Scope{Kind: ScopeDeanery}, ParseScope("deanery"))
	assert.Equal(t, Scope{Kind: ScopeExaminationOffice}, ParseScope("examination_office"))
	assert.Equal(t, Scope{Kind: ScopeModuleOwner, Faculty: models.FacultyF1MPM}, ParseScope("f1:module_owner"))
	assert.Equal(t, Scope{Kind: ScopeProgramCoordinator, Faculty: models.FacultyF3IC}, ParseScope("f3:program_coordinator"))
}

func TestParseScopeUnrecognized(t *testing.T) {
	for _, s := range []string{"", "root", "f9:module_owner", "f1:deanery", "f2:admin", "f1", "f1:"} {
		assert.Equal(t, ScopeUnrecognized, ParseScope(s).Kind, "scope %q", s)
	}
}

func TestScopeRoundTrip(t *testing.T) {
	for _, s := range []string{"admin", "deanery", "examination_office", "f1:module_owner", "f2:program_coordinator"} {
		assert.Equal(t, s, ParseScope(s).String())
	}
}

func TestDeriveScope(t *testing.T) {
	scope := DeriveScope(models.RoleModuleOwner, models.FacultyF2ELS)
	assert.Equal(t, ScopeModuleOwner, scope.Kind)
	assert.Equal(t, models.FacultyF2ELS, scope.Faculty)

	// A deanery user bound to a faculty has no recognized scope.
	assert.Equal(t, ScopeUnrecognized, DeriveScope(models.RoleDeanery, models.FacultyF3IC).Kind)
}
