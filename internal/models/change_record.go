package models

import (
	"encoding/json"
	"time"
)

// Change record actions
const (
	ActionCreate          = "create"
	ActionUpdate          = "update"
	ActionDelete          = "delete"
	ActionRestore         = "restore"
	ActionTaskAdded       = "task_added"
	ActionTaskUpdated     = "task_updated"
	ActionTaskDeleted     = "task_deleted"
	ActionMemberAdded     = "member_added"
	ActionMemberRemoved   = "member_removed"
	ActionDocumentAdded   = "document_added"
	ActionDocumentUpdated = "document_updated"
	ActionDocumentRemoved = "document_removed"
)

// ChangeRecord is one immutable, timestamped, attributed entry in a project's
// change log. Records are never updated or deleted individually; they are
// totally ordered by (created_at, id) within a project, and a record's
// 1-indexed position in that order is its version number. There is no stored
// version integer.
//
// The Changes column holds a JSON payload: either a field-level diff map
// (field -> {old, new}) for update records, or a free-form action payload for
// sub-entity events.
type ChangeRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectID   uint      `gorm:"index;not null" json:"project_id"`
	Project     *Project  `gorm:"foreignKey:ProjectID" json:"-"`
	UserID      *uint     `json:"user_id"` // nil means the system acted
	User        *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action      string    `gorm:"size:50;index;not null" json:"action"`
	Changes     string    `gorm:"type:text" json:"-"`
	Description string    `gorm:"size:500" json:"description"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

func (ChangeRecord) TableName() string { return "change_records" }

// DecodeChanges unmarshals the JSON changes payload.
func (r *ChangeRecord) DecodeChanges() (map[string]any, error) {
	if r.Changes == "" {
		return map[string]any{}, nil
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(r.Changes), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ActorName returns the acting user's display name, or "System" for records
// without an attributed user.
func (r *ChangeRecord) ActorName() string {
	if r.User != nil {
		return r.User.DisplayName()
	}
	return "System"
}
