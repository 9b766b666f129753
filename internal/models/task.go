package models

import (
	"time"

	"gorm.io/gorm"
)

// Task status values
const (
	TaskStatusOpen   = "open"
	TaskStatusClosed = "closed"
)

// Task is a sub-entity owned by a project. Creation, status changes and
// deletion are logged against the owning project's change record sequence.
type Task struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"index;not null" json:"project_id"`
	Project     *Project       `gorm:"foreignKey:ProjectID" json:"-"`
	Title       string         `gorm:"size:100;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	AssigneeID  *uint          `json:"assignee_id"`
	Assignee    *User          `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	AssignerID  uint           `json:"assigner_id"`
	Assigner    *User          `gorm:"foreignKey:AssignerID" json:"assigner,omitempty"`
	DueDate     time.Time      `json:"due_date"`
	Status      string         `gorm:"size:50;default:open" json:"status"` // open, closed
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Task) TableName() string { return "tasks" }
