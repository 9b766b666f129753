package models

import (
	"time"

	"gorm.io/gorm"
)

// Member roles
const (
	MemberRoleOwner        = "owner"
	MemberRoleCollaborator = "collaborator"
	MemberRoleViewer       = "viewer"
)

// Membership status values
const (
	MemberStatusActive  = "active"
	MemberStatusInvited = "invited"
	MemberStatusPending = "pending"
)

// ProjectMember links a user to a project with a role. Each project has
// exactly one owner member, created together with the project; the owner
// cannot be removed through the member-removal operation.
type ProjectMember struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProjectID uint           `gorm:"uniqueIndex:idx_project_user;not null" json:"project_id"`
	Project   *Project       `gorm:"foreignKey:ProjectID" json:"-"`
	UserID    uint           `gorm:"uniqueIndex:idx_project_user;not null" json:"user_id"`
	User      *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      string         `gorm:"size:50;default:viewer" json:"role"`   // owner, collaborator, viewer
	Status    string         `gorm:"size:50;default:active" json:"status"` // active, invited, pending
	JoinedAt  time.Time      `json:"joined_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProjectMember) TableName() string { return "project_members" }
