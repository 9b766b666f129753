package models

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project status values
const (
	ProjectStatusDraft      = "draft"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusDone       = "done"
	ProjectStatusArchived   = "archived"
)

// Project is the versioned root entity. Every mutation to a project or one of
// its sub-entities (members, tasks, documents) is paired with exactly one
// ChangeRecord.
type Project struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	ReferenceCode string            `gorm:"uniqueIndex;size:20" json:"reference_code"` // RJPC-YYYY-XXXXX, assigned once at creation
	Title         string            `gorm:"size:255;not null" json:"title"`
	Description   string            `gorm:"type:text" json:"description"`
	Objectives    string            `gorm:"type:text" json:"objectives"`
	Deadline      time.Time         `json:"deadline"`
	Status        string            `gorm:"size:50;default:draft" json:"status"` // draft, in_progress, done, archived
	StartDate     time.Time         `json:"start_date"`
	Location      string            `gorm:"size:255" json:"location"`
	OwnerID       uint              `gorm:"not null" json:"owner_id"`
	Owner         *User             `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members       []ProjectMember   `gorm:"constraint:OnDelete:CASCADE" json:"members,omitempty"`
	Tasks         []Task            `gorm:"constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
	Documents     []ProjectDocument `gorm:"constraint:OnDelete:CASCADE" json:"documents,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (Project) TableName() string { return "projects" }

// BeforeCreate assigns the reference code exactly once. An already populated
// code is never overwritten.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ReferenceCode == "" {
		p.ReferenceCode = newReferenceCode(time.Now())
	}
	return nil
}

// ValidProjectStatus reports whether s is one of the known status values.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusDraft, ProjectStatusInProgress, ProjectStatusDone, ProjectStatusArchived:
		return true
	}
	return false
}

// newReferenceCode builds a code of the form RJPC-YYYY-XXXXX where XXXXX is
// derived from a random UUID. The unique index on reference_code catches the
// rare collision.
func newReferenceCode(now time.Time) string {
	u := uuid.New()
	n := binary.BigEndian.Uint32(u[:4]) % 100000
	return fmt.Sprintf("RJPC-%d-%05d", now.Year(), n)
}
