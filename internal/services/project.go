package services

import (
	"errors"
	"fmt"

	"github.com/rajapi-cop/projecthub/internal/models"
	"github.com/rajapi-cop/projecthub/internal/repository"
	"github.com/rajapi-cop/projecthub/internal/versioning"
)

// ProjectService coordinates mutations on projects. Every structural change
// runs as a single transaction that applies the storage write and appends
// exactly one change record, or does neither.
type ProjectService struct {
	store repository.Store
}

func NewProjectService(store repository.Store) *ProjectService {
	return &ProjectService{store: store}
}

type ProjectListRequest struct {
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	Status   string `form:"status"`
	Location string `form:"location"`
	Search   string `form:"search"`
}

type ProjectListResponse struct {
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Items    []models.Project `json:"items"`
}

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Objectives  string `json:"objectives"`
	Deadline    string `json:"deadline" binding:"required"` // YYYY-MM-DD
	Status      string `json:"status" binding:"omitempty,oneof=draft in_progress done archived"`
	StartDate   string `json:"start_date" binding:"required"` // YYYY-MM-DD
	Location    string `json:"location"`
}

type UpdateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Objectives  *string `json:"objectives"`
	Deadline    *string `json:"deadline"` // YYYY-MM-DD
	Status      *string `json:"status" binding:"omitempty,oneof=draft in_progress done archived"`
	StartDate   *string `json:"start_date"` // YYYY-MM-DD
	Location    *string `json:"location"`
}

// ProjectDetail bundles a project with its sub-entities for read endpoints.
type ProjectDetail struct {
	Project   *models.Project          `json:"project"`
	Members   []models.ProjectMember   `json:"members"`
	Tasks     []models.Task            `json:"tasks"`
	Documents []models.ProjectDocument `json:"documents"`
}

// List returns the projects visible to the user: all of them for admins,
// otherwise only projects the user is a member of.
func (s *ProjectService) List(req *ProjectListRequest, userID uint, isAdmin bool) (*ProjectListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}

	filter := repository.ProjectFilter{
		Status:   req.Status,
		Location: req.Location,
		Search:   req.Search,
		Offset:   (req.Page - 1) * req.PageSize,
		Limit:    req.PageSize,
	}
	if !isAdmin {
		filter.MemberID = userID
	}

	projects, total, err := s.store.Projects().List(filter)
	if err != nil {
		return nil, err
	}

	return &ProjectListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    projects,
	}, nil
}

// Get returns a project with its members, tasks and documents. Non-admin
// callers must be members.
func (s *ProjectService) Get(id, userID uint, isAdmin bool) (*ProjectDetail, error) {
	project, err := s.store.Projects().FindByID(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}

	if !isAdmin {
		if _, err := requireMember(s.store, id, userID); err != nil {
			return nil, err
		}
	}

	members, err := s.store.Members().ListByProject(id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.store.Tasks().ListByProject(id)
	if err != nil {
		return nil, err
	}
	documents, err := s.store.Documents().ListByProject(id)
	if err != nil {
		return nil, err
	}

	return &ProjectDetail{
		Project:   project,
		Members:   members,
		Tasks:     tasks,
		Documents: documents,
	}, nil
}

// Create saves a new project, makes the creator its owner member and appends
// the initial "create" record, all in one transaction.
func (s *ProjectService) Create(req *CreateProjectRequest, userID uint) (*models.Project, error) {
	deadline, err := parseDate(req.Deadline)
	if err != nil {
		return nil, err
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.ProjectStatusDraft
	}

	project := &models.Project{
		Title:       req.Title,
		Description: req.Description,
		Objectives:  req.Objectives,
		Deadline:    deadline,
		Status:      status,
		StartDate:   startDate,
		Location:    req.Location,
		OwnerID:     userID,
	}

	err = s.store.Transact(func(tx repository.Store) error {
		if err := tx.Projects().Create(project); err != nil {
			return err
		}

		owner := &models.ProjectMember{
			ProjectID: project.ID,
			UserID:    userID,
			Role:      models.MemberRoleOwner,
			Status:    models.MemberStatusActive,
			JoinedAt:  project.CreatedAt,
		}
		if err := tx.Members().Create(owner); err != nil {
			return err
		}

		payload := versioning.ProjectSnapshot(project)
		payload["reference_code"] = project.ReferenceCode
		return recordChange(tx, project.ID, &userID, models.ActionCreate, payload, "Initial project creation")
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

// Update applies a partial update. The pre-state is captured under the
// project lock, the diff is computed against it, and a no-op update (empty
// diff) writes nothing and logs nothing.
func (s *ProjectService) Update(id uint, req *UpdateProjectRequest, userID uint) (*models.Project, map[string]versioning.FieldChange, error) {
	desired, err := req.fieldMap()
	if err != nil {
		return nil, nil, err
	}

	var project *models.Project
	var changes map[string]versioning.FieldChange

	err = s.store.Transact(func(tx repository.Store) error {
		p, err := lockProject(tx, id)
		if err != nil {
			return err
		}
		if _, err := requireMember(tx, id, userID, models.MemberRoleOwner, models.MemberRoleCollaborator); err != nil {
			return err
		}

		prev := versioning.ProjectSnapshot(p)
		changes = versioning.Diff(prev, desired, versioning.ProjectDiffFields)
		project = p
		if len(changes) == 0 {
			return nil
		}

		next := make(map[string]any, len(changes))
		for field, change := range changes {
			next[field] = change.New
		}
		versioning.ApplyProjectState(p, next)

		if err := tx.Projects().Save(p); err != nil {
			return err
		}
		return recordChange(tx, p.ID, &userID, models.ActionUpdate, changes, "Project updated")
	})
	if err != nil {
		return nil, nil, err
	}
	return project, changes, nil
}

// Delete appends the final "delete" record and then cascades the deletion of
// the project and its sub-entities in the same transaction. Change records
// are retained as the permanent ledger.
func (s *ProjectService) Delete(id, userID uint) error {
	return s.store.Transact(func(tx repository.Store) error {
		p, err := lockProject(tx, id)
		if err != nil {
			return err
		}
		if _, err := requireMember(tx, id, userID, models.MemberRoleOwner); err != nil {
			return err
		}

		if err := recordChange(tx, p.ID, &userID, models.ActionDelete, map[string]any{}, fmt.Sprintf("Project %s deleted", p.ReferenceCode)); err != nil {
			return err
		}

		if err := tx.Tasks().DeleteByProject(p.ID); err != nil {
			return err
		}
		if err := tx.Documents().DeleteByProject(p.ID); err != nil {
			return err
		}
		if err := tx.Members().DeleteByProject(p.ID); err != nil {
			return err
		}
		return tx.Projects().Delete(p.ID)
	})
}

// fieldMap converts the set fields of a partial update into a normalized
// field map suitable for diffing.
func (r *UpdateProjectRequest) fieldMap() (map[string]any, error) {
	fields := make(map[string]any)
	if r.Title != nil {
		fields["title"] = *r.Title
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.Objectives != nil {
		fields["objectives"] = *r.Objectives
	}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	if r.Location != nil {
		fields["location"] = *r.Location
	}
	if r.Deadline != nil {
		t, err := parseDate(*r.Deadline)
		if err != nil {
			return nil, err
		}
		fields["deadline"] = t
	}
	if r.StartDate != nil {
		t, err := parseDate(*r.StartDate)
		if err != nil {
			return nil, err
		}
		fields["start_date"] = t
	}
	return fields, nil
}
