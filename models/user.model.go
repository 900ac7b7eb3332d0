package models

// Faculty is one of the four academic faculties, or ADMIN for global-role users.
type Faculty string

const (
	FacultyF1MPM Faculty = "F1_MPM"
	FacultyF2ELS Faculty = "F2_ELS"
	FacultyF3IC  Faculty = "F3_IC"
	FacultyF4BS  Faculty = "F4_BS"
	FacultyAdmin Faculty = "ADMIN"
)

// Faculties lists all valid faculty values.
var Faculties = []Faculty{FacultyF1MPM, FacultyF2ELS, FacultyF3IC, FacultyF4BS, FacultyAdmin}

// IsValid reports whether f is a known faculty.
func (f Faculty) IsValid() bool {
	for _, v := range Faculties {
		if f == v {
			return true
		}
	}
	return false
}

// UserRole is the role a user holds within the approval workflow.
type UserRole string

const (
	RoleModuleOwner        UserRole = "MODULE_OWNER"       // Modulverantwortlicher
	RoleProgramCoordinator UserRole = "PROGRAM_COORDINATOR" // Studiengangskoordination
	RoleExaminationOffice  UserRole = "EXAMINATION_OFFICE" // Pruefungsamt
	RoleDeanery            UserRole = "DEANERY"            // Dekanat
	RoleAdmin              UserRole = "ADMIN"
)

// Roles lists all valid role values.
var Roles = []UserRole{RoleModuleOwner, RoleProgramCoordinator, RoleExaminationOffice, RoleDeanery, RoleAdmin}

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

type User struct {
	UserID   string   `gorm:"primaryKey;size:50" json:"user_id"`
	Name     string   `gorm:"size:100;not null" json:"name"`
	Faculty  Faculty  `gorm:"size:20;not null" json:"faculty"`
	Role     UserRole `gorm:"size:30;not null" json:"role"`
	Email    string   `gorm:"default:''" json:"email"`
	Password string   `gorm:"size:255;not null" json:"-"`
}
