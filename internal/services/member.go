package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/rajapi-cop/projecthub/internal/models"
	"github.com/rajapi-cop/projecthub/internal/repository"
)

// MemberService coordinates project membership mutations. Adding or removing
// a member appends exactly one change record in the same transaction.
type MemberService struct {
	store repository.Store
}

func NewMemberService(store repository.Store) *MemberService {
	return &MemberService{store: store}
}

type AddMemberRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=collaborator viewer"`
	Status string `json:"status" binding:"omitempty,oneof=active invited pending"`
}

// List returns the members of a project. The caller must be a member.
func (s *MemberService) List(projectID, userID uint) ([]models.ProjectMember, error) {
	if _, err := s.store.Projects().FindByID(projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if _, err := requireMember(s.store, projectID, userID); err != nil {
		return nil, err
	}
	return s.store.Members().ListByProject(projectID)
}

// Add adds a user to the project. Only the owner may manage members; the
// (project, user) pair must be unique.
func (s *MemberService) Add(projectID uint, req *AddMemberRequest, actorID uint) (*models.ProjectMember, error) {
	status := req.Status
	if status == "" {
		status = models.MemberStatusActive
	}

	var member *models.ProjectMember
	err := s.store.Transact(func(tx repository.Store) error {
		p, err := lockProject(tx, projectID)
		if err != nil {
			return err
		}
		if _, err := requireMember(tx, projectID, actorID, models.MemberRoleOwner); err != nil {
			return err
		}

		user, err := tx.Users().FindByID(req.UserID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}

		if _, err := tx.Members().FindByProjectAndUser(projectID, req.UserID); err == nil {
			return ErrDuplicateMember
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		member = &models.ProjectMember{
			ProjectID: p.ID,
			UserID:    user.ID,
			Role:      req.Role,
			Status:    status,
			JoinedAt:  time.Now(),
		}
		if err := tx.Members().Create(member); err != nil {
			return err
		}

		return recordChange(tx, p.ID, &actorID, models.ActionMemberAdded, map[string]any{
			"user_id": user.ID,
			"role":    req.Role,
		}, fmt.Sprintf("Added member: %s", user.DisplayName()))
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// Remove deletes a membership. The owner member can never be removed this
// way; transferring ownership is not a supported operation.
func (s *MemberService) Remove(projectID, memberUserID, actorID uint) error {
	return s.store.Transact(func(tx repository.Store) error {
		p, err := lockProject(tx, projectID)
		if err != nil {
			return err
		}
		if _, err := requireMember(tx, projectID, actorID, models.MemberRoleOwner); err != nil {
			return err
		}

		member, err := tx.Members().FindByProjectAndUser(projectID, memberUserID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMemberNotFound
		}
		if err != nil {
			return err
		}
		if member.Role == models.MemberRoleOwner {
			return ErrOwnerImmutable
		}

		if err := tx.Members().Delete(member); err != nil {
			return err
		}

		return recordChange(tx, p.ID, &actorID, models.ActionMemberRemoved, map[string]any{
			"user_id": member.UserID,
			"role":    member.Role,
		}, fmt.Sprintf("Removed member %d", member.UserID))
	})
}
