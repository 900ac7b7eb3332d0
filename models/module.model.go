package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkflowStatus is the approval state of a module version.
type WorkflowStatus string

const (
	StatusDraft           WorkflowStatus = "DRAFT"
	StatusInReview        WorkflowStatus = "IN_REVIEW"        // with the program coordinator
	StatusValidationEO    WorkflowStatus = "VALIDATION_EO"    // with the examination office
	StatusApprovalDeanery WorkflowStatus = "APPROVAL_DEANERY" // awaiting deanery release
	StatusReleased        WorkflowStatus = "RELEASED"
	StatusInRevision      WorkflowStatus = "IN_REVISION"
)

// WorkflowStatuses lists all valid workflow status values.
var WorkflowStatuses = []WorkflowStatus{
	StatusDraft, StatusInReview, StatusValidationEO,
	StatusApprovalDeanery, StatusReleased, StatusInRevision,
}

// IsValid reports whether s is a known workflow status.
func (s WorkflowStatus) IsValid() bool {
	for _, v := range WorkflowStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Module struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`
	ModuleNumber string          `gorm:"uniqueIndex;size:50;not null" json:"module_number"`
	Title        string          `gorm:"size:255;not null" json:"title"`
	OwnerID      string          `gorm:"size:50;not null;index" json:"owner_id"`
	UpdatedAt    time.Time       `json:"updated_at"`
	Owner        *User           `gorm:"foreignKey:OwnerID;references:UserID" json:"-"`
	Versions     []ModuleVersion `gorm:"foreignKey:ModuleID" json:"-"`
}

func (m *Module) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type ModuleVersion struct {
	ID                string         `gorm:"primaryKey;size:36" json:"id"`
	ModuleID          string         `gorm:"size:36;not null;index" json:"module_id"`
	Content           *string        `json:"content"`
	ECTS              *int           `json:"ects"`
	ValidFromSemester string         `gorm:"size:20" json:"valid_from_semester"`
	Status            WorkflowStatus `gorm:"size:20;not null;default:'DRAFT'" json:"status"`
	UpdatedAt         time.Time      `json:"updated_at"`
	LastEditorID      *string        `gorm:"size:50" json:"last_editor_id"`
	Module            *Module        `gorm:"foreignKey:ModuleID" json:"-"`
	Translations      []Translation  `gorm:"foreignKey:ModuleVersionID" json:"translations,omitempty"`
	AuditLogs         []AuditLog     `gorm:"foreignKey:ModuleVersionID" json:"-"`
}

func (v *ModuleVersion) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

type Translation struct {
	ID              string `gorm:"primaryKey;size:36" json:"id"`
	ModuleVersionID string `gorm:"size:36;not null;index" json:"module_version_id"`
	Language        string `gorm:"size:2;not null" json:"language"`
	Title           string `gorm:"size:255" json:"title"`
	Content         string `json:"content"`
	IsOutdated      bool   `gorm:"default:false" json:"is_outdated"`
}

func (t *Translation) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// AuditLog is an append-only record of a workflow action on a module version.
type AuditLog struct {
	ID              uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ModuleVersionID string    `gorm:"size:36;not null;index" json:"module_version_id"`
	UserID          string    `gorm:"size:50;not null" json:"user_id"`
	Action          string    `gorm:"size:100;not null" json:"action"`
	Comment         *string   `json:"comment"`
	Timestamp       time.Time `gorm:"autoCreateTime" json:"timestamp"`
	User            *User     `gorm:"foreignKey:UserID;references:UserID" json:"-"`
}
