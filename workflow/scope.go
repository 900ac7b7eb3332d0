package workflow

import (
	"fmt"
	"strings"

	"mhb/models"
)

// ScopeKind tags the variant of a permission scope.
type ScopeKind int

const (
	// ScopeUnrecognized is any scope the workflow does not know. It sees
	// released versions only and can perform no transition.
	ScopeUnrecognized ScopeKind = iota
	ScopeAdmin
	ScopeDeanery
	ScopeExaminationOffice
	ScopeModuleOwner        // faculty-scoped
	ScopeProgramCoordinator // faculty-scoped
)

// Scope is the permission tag derived from a user's role and faculty.
// Faculty is set only for the faculty-scoped kinds.
type Scope struct {
	Kind    ScopeKind
	Faculty models.Faculty
}

// ScopeString derives the wire-format scope claim for a (role, faculty) pair.
// This is the single place scope derivation happens: global roles under the
// ADMIN faculty collapse to fixed tags, everything else becomes
// "{faculty prefix}:{lowercase role}" (e.g. "f1:module_owner").
func ScopeString(role models.UserRole, faculty models.Faculty) string {
	if faculty == models.FacultyAdmin {
		switch role {
		case models.RoleAdmin:
			return "admin"
		case models.RoleDeanery:
			return "deanery"
		case models.RoleExaminationOffice:
			return "examination_office"
		}
	}
	return fmt.Sprintf("%s:%s", facultyPrefix(faculty), strings.ToLower(string(role)))
}

// DeriveScope derives the tagged scope for a (role, faculty) pair.
func DeriveScope(role models.UserRole, faculty models.Faculty) Scope {
	return ParseScope(ScopeString(role, faculty))
}

// ParseScope parses a wire-format scope claim back into its tagged form.
// Unknown strings yield a ScopeUnrecognized scope, never an error: an
// unrecognized caller is simply treated as released-only.
func ParseScope(s string) Scope {
	switch s {
	case "admin":
		return Scope{Kind: ScopeAdmin}
	case "deanery":
		return Scope{Kind: ScopeDeanery}
	case "examination_office":
		return Scope{Kind: ScopeExaminationOffice}
	}

	prefix, role, ok := strings.Cut(s, ":")
	if !ok {
		return Scope{}
	}
	faculty, ok := facultyByPrefix[prefix]
	if !ok {
		return Scope{}
	}
	switch role {
	case "module_owner":
		return Scope{Kind: ScopeModuleOwner, Faculty: faculty}
	case "program_coordinator":
		return Scope{Kind: ScopeProgramCoordinator, Faculty: faculty}
	}
	return Scope{}
}

// String returns the wire format of a scope.
func (s Scope) String() string {
	switch s.Kind {
	case ScopeAdmin:
		return "admin"
	case ScopeDeanery:
		return "deanery"
	case ScopeExaminationOffice:
		return "examination_office"
	case ScopeModuleOwner:
		return facultyPrefix(s.Faculty) + ":module_owner"
	case ScopeProgramCoordinator:
		return facultyPrefix(s.Faculty) + ":program_coordinator"
	}
	return "unrecognized"
}

// facultyPrefix is the two-letter lowercase prefix of a faculty value,
// e.g. F1_MPM -> "f1".
func facultyPrefix(f models.Faculty) string {
	s := strings.ToLower(string(f))
	if len(s) < 2 {
		return s
	}
	return s[:2]
}

var facultyByPrefix = map[string]models.Faculty{
	"f1": models.FacultyF1MPM,
	"f2": models.FacultyF2ELS,
	"f3": models.FacultyF3IC,
	"f4": models.FacultyF4BS,
}
