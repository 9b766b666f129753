package models

import (
	"time"

	"gorm.io/gorm"
)

// ProjectDocument is a versioned file attachment. The version counter is
// scoped to the (project, title) pair: the first upload of a title gets
// version 1, each further upload of the same title increments it by one.
// Updates to an existing document never change the counter.
type ProjectDocument struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ProjectID    uint           `gorm:"index;not null" json:"project_id"`
	Project      *Project       `gorm:"foreignKey:ProjectID" json:"-"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	DocumentType string         `gorm:"size:50;default:other" json:"document_type"`
	FilePath     string         `gorm:"size:500" json:"file_path"`
	Version      int            `gorm:"not null;default:1" json:"version"`
	UploadedBy   *uint          `json:"uploaded_by"`
	Uploader     *User          `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProjectDocument) TableName() string { return "project_documents" }
