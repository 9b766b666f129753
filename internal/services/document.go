package services

import (
	"errors"
	"fmt"

	"github.com/rajapi-cop/projecthub/internal/models"
	"github.com/rajapi-cop/projecthub/internal/repository"
	"github.com/rajapi-cop/projecthub/internal/versioning"
)

// documentDiffFields is the allow-list of document metadata tracked by the
// diff engine on document updates.
var documentDiffFields = []string{"title", "description", "document_type"}

// DocumentService coordinates project document mutations. The document
// version counter is scoped to the (project, title) pair and assigned at
// creation, before the change record is appended.
type DocumentService struct {
	store repository.Store
}

func NewDocumentService(store repository.Store) *DocumentService {
	return &DocumentService{store: store}
}

type AddDocumentRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	DocumentType string `json:"document_type"`
	FilePath     string `json:"file_path" binding:"required"`
}

type UpdateDocumentRequest struct {
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	DocumentType *string `json:"document_type"`
}

// List returns a project's documents. The caller must be a member.
func (s *DocumentService) List(projectID, userID uint) ([]models.ProjectDocument, error) {
	if _, err := s.store.Projects().FindByID(projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if _, err := requireMember(s.store, projectID, userID); err != nil {
		return nil, err
	}
	return s.store.Documents().ListByProject(projectID)
}

// Add uploads a document. The version counter for its (project, title) group
// is assigned first, then the document_added record is appended.
func (s *DocumentService) Add(projectID uint, req *AddDocumentRequest, actorID uint) (*models.ProjectDocument, error) {
	documentType := req.DocumentType
	if documentType == "" {
		documentType = "other"
	}

	var doc *models.ProjectDocument
	err := s.store.Transact(func(tx repository.Store) error {
		p, err := lockProject(tx, projectID)
		if err != nil {
			return err
		}
		if _, err := requireMember(tx, projectID, actorID); err != nil {
			return err
		}

		version, err := tx.Documents().NextVersion(p.ID, req.Title)
		if err != nil {
			return err
		}

		doc = &models.ProjectDocument{
			ProjectID:    p.ID,
			Title:        req.Title,
			Description:  req.Description,
			DocumentType: documentType,
			FilePath:     req.FilePath,
			Version:      version,
			UploadedBy:   &actorID,
		}
		if err := tx.Documents().Create(doc); err != nil {
			return err
		}

		return recordChange(tx, p.ID, &actorID, models.ActionDocumentAdded, map[string]any{
			"document_id":   doc.ID,
			"title":         doc.Title,
			"document_type": doc.DocumentType,
			"version":       doc.Version,
		}, fmt.Sprintf("Added document: %s (v%d)", doc.Title, doc.Version))
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Update edits document metadata. The version counter never changes here; an
// update with no effective metadata change writes nothing and logs nothing.
func (s *DocumentService) Update(projectID, documentID uint, req *UpdateDocumentRequest, actorID uint) (*models.ProjectDocument, error) {
	var doc *models.ProjectDocument
	err := s.store.Transact(func(tx repository.Store) error {
		p, err := lockProject(tx, projectID)
		if err != nil {
			return err
		}
		if _, err := requireMember(tx, projectID, actorID); err != nil {
			return err
		}

		d, err := tx.Documents().FindByID(p.ID, documentID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDocumentNotFound
		}
		if err != nil {
			return err
		}

		prev := map[string]any{
			"title":         d.Title,
			"description":   d.Description,
			"document_type": d.DocumentType,
		}
		next := make(map[string]any)
		if req.Title != nil {
			next["title"] = *req.Title
		}
		if req.Description != nil {
			next["description"] = *req.Description
		}
		if req.DocumentType != nil {
			next["document_type"] = *req.DocumentType
		}

		changes := versioning.Diff(prev, next, documentDiffFields)
		doc = d
		if len(changes) == 0 {
			return nil
		}

		if change, ok := changes["title"]; ok {
			d.Title = change.New.(string)
		}
		if change, ok := changes["description"]; ok {
			d.Description = change.New.(string)
		}
		if change, ok := changes["document_type"]; ok {
			d.DocumentType = change.New.(string)
		}

		if err := tx.Documents().Save(d); err != nil {
			return err
		}

		return recordChange(tx, p.ID, &actorID, models.ActionDocumentUpdated, map[string]any{
			"document_id": d.ID,
			"title":       d.Title,
			"version":     d.Version,
			"fields":      changes,
		}, fmt.Sprintf("Updated document: %s", d.Title))
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Remove deletes a document, logging a document_removed record first.
func (s *DocumentService) Remove(projectID, documentID, actorID uint) error {
	return s.store.Transact(func(tx repository.Store) error {
		p, err := lockProject(tx, projectID)
		if err != nil {
			return err
		}
		if _, err := requireMember(tx, projectID, actorID); err != nil {
			return err
		}

		d, err := tx.Documents().FindByID(p.ID, documentID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDocumentNotFound
		}
		if err != nil {
			return err
		}

		if err := recordChange(tx, p.ID, &actorID, models.ActionDocumentRemoved, map[string]any{
			"document_id": d.ID,
			"title":       d.Title,
			"version":     d.Version,
		}, fmt.Sprintf("Removed document: %s", d.Title)); err != nil {
			return err
		}
		return tx.Documents().Delete(d)
	})
}
