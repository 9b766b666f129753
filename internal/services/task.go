package services

import (
	"errors"
	"fmt"

	"github.com/rajapi-cop/projecthub/internal/models"
	"github.com/rajapi-cop/projecthub/internal/repository"
)

// TaskService coordinates task lifecycle mutations. Creation and deletion are
// always logged; of task updates only status transitions produce a change
// record, non-status edits go unlogged.
type TaskService struct {
	store repository.Store
}

func NewTaskService(store repository.Store) *TaskService {
	return &TaskService{store: store}
}

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	AssigneeID  *uint  `json:"assignee_id"`
	DueDate     string `json:"due_date" binding:"required"` // YYYY-MM-DD
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	AssigneeID  *uint   `json:"assignee_id"`
	DueDate     *string `json:"due_date"` // YYYY-MM-DD
	Status      *string `json:"status" binding:"omitempty,oneof=open closed"`
}

// List returns a project's tasks. The caller must be a member.
func (s *TaskService) List(projectID, userID uint) ([]models.Task, error) {
	if _, err := s.store.Projects().FindByID(projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if _, err := requireMember(s.store, projectID, userID); err != nil {
		return nil, err
	}
	return s.store.Tasks().ListByProject(projectID)
}

// Create adds a task to the project and logs a task_added record.
func (s *TaskService) Create(projectID uint, req *CreateTaskRequest, actorID uint) (*models.Task, error) {
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	var task *models.Task
	err = s.store.Transact(func(tx repository.Store) error {
		p, err := lockProject(tx, projectID)
		if err != nil {
			return err
		}
		if _, err := requireMember(tx, projectID, actorID); err != nil {
			return err
		}

		var assignedTo any
		if req.AssigneeID != nil {
			assignee, err := tx.Users().FindByID(*req.AssigneeID)
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			if err != nil {
				return err
			}
			assignedTo = assignee.DisplayName()
		}

		task = &models.Task{
			ProjectID:   p.ID,
			Title:       req.Title,
			Description: req.Description,
			AssigneeID:  req.AssigneeID,
			AssignerID:  actorID,
			DueDate:     dueDate,
			Status:      models.TaskStatusOpen,
		}
		if err := tx.Tasks().Create(task); err != nil {
			return err
		}

		return recordChange(tx, p.ID, &actorID, models.ActionTaskAdded, map[string]any{
			"task_id":     task.ID,
			"title":       task.Title,
			"assigned_to": assignedTo,
		}, fmt.Sprintf("Added task: %s", task.Title))
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Update edits a task. Only a status transition is logged.
func (s *TaskService) Update(projectID, taskID uint, req *UpdateTaskRequest, actorID uint) (*models.Task, error) {
	var task *models.Task
	err := s.store.Transact(func(tx repository.Store) error {
		p, err := lockProject(tx, projectID)
		if err != nil {
			return err
		}
		if _, err := requireMember(tx, projectID, actorID); err != nil {
			return err
		}

		t, err := tx.Tasks().FindByID(p.ID, taskID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		if err != nil {
			return err
		}

		oldStatus := t.Status
		if req.Title != nil {
			t.Title = *req.Title
		}
		if req.Description != nil {
			t.Description = *req.Description
		}
		if req.AssigneeID != nil {
			t.AssigneeID = req.AssigneeID
		}
		if req.DueDate != nil {
			dueDate, err := parseDate(*req.DueDate)
			if err != nil {
				return err
			}
			t.DueDate = dueDate
		}
		if req.Status != nil {
			t.Status = *req.Status
		}

		if err := tx.Tasks().Save(t); err != nil {
			return err
		}
		task = t

		if t.Status == oldStatus {
			return nil
		}
		return recordChange(tx, p.ID, &actorID, models.ActionTaskUpdated, map[string]any{
			"task_id": t.ID,
			"title":   t.Title,
			"status":  map[string]any{"old": oldStatus, "new": t.Status},
		}, fmt.Sprintf("Task status changed: %s", t.Title))
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task, logging a task_deleted record first.
func (s *TaskService) Delete(projectID, taskID, actorID uint) error {
	return s.store.Transact(func(tx repository.Store) error {
		p, err := lockProject(tx, projectID)
		if err != nil {
			return err
		}
		if _, err := requireMember(tx, projectID, actorID); err != nil {
			return err
		}

		t, err := tx.Tasks().FindByID(p.ID, taskID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		if err != nil {
			return err
		}

		if err := recordChange(tx, p.ID, &actorID, models.ActionTaskDeleted, map[string]any{
			"task_id": t.ID,
			"title":   t.Title,
		}, fmt.Sprintf("Deleted task: %s", t.Title)); err != nil {
			return err
		}
		return tx.Tasks().Delete(t)
	})
}
