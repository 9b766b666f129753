package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/rajapi-cop/projecthub/internal/models"
	"github.com/rajapi-cop/projecthub/internal/repository"
)

// recordChange appends one immutable change record for a project. It must be
// called inside the same transaction as the mutation it documents so that
// neither can survive without the other.
func recordChange(tx repository.Store, projectID uint, userID *uint, action string, changes any, description string) error {
	payload, err := json.Marshal(changes)
	if err != nil {
		return err
	}
	return tx.ChangeRecords().Append(&models.ChangeRecord{
		ProjectID:   projectID,
		UserID:      userID,
		Action:      action,
		Changes:     string(payload),
		Description: description,
	})
}

// lockProject fetches the project under a per-project write lock, serializing
// the capture-diff-append sequence against concurrent mutations.
func lockProject(tx repository.Store, projectID uint) (*models.Project, error) {
	p, err := tx.Projects().FindByIDLocked(projectID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProjectNotFound
	}
	return p, err
}

// requireMember verifies the acting user belongs to the project, optionally
// restricted to the given roles.
func requireMember(tx repository.Store, projectID, userID uint, roles ...string) (*models.ProjectMember, error) {
	m, err := tx.Members().FindByProjectAndUser(projectID, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotProjectMember
	}
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return m, nil
	}
	for _, role := range roles {
		if m.Role == role {
			return m, nil
		}
	}
	return nil, ErrPermissionDenied
}

// parseDate parses a YYYY-MM-DD request value.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
