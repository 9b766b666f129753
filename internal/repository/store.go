// Package repository defines the persistence interfaces the mutation
// coordinator depends on, and their gorm implementation. Transactional
// boundaries live here: services never touch a storage technology directly.
package repository

import (
	"errors"

	"github.com/rajapi-cop/projecthub/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// ProjectFilter narrows project listings.
type ProjectFilter struct {
	Status   string
	Location string
	Search   string // matches title, description, objectives, reference code
	MemberID uint   // restrict to projects the user is a member of
	Offset   int
	Limit    int
}

type ProjectRepository interface {
	Create(p *models.Project) error
	FindByID(id uint) (*models.Project, error)
	// FindByIDLocked fetches the project with a row lock where the dialect
	// supports one, serializing concurrent capture-diff-append sequences
	// against the same project. Must be called inside a transaction.
	FindByIDLocked(id uint) (*models.Project, error)
	Save(p *models.Project) error
	Delete(id uint) error
	List(f ProjectFilter) ([]models.Project, int64, error)
}

type MemberRepository interface {
	Create(m *models.ProjectMember) error
	FindByProjectAndUser(projectID, userID uint) (*models.ProjectMember, error)
	ListByProject(projectID uint) ([]models.ProjectMember, error)
	Delete(m *models.ProjectMember) error
	DeleteByProject(projectID uint) error
}

type TaskRepository interface {
	Create(t *models.Task) error
	FindByID(projectID, id uint) (*models.Task, error)
	ListByProject(projectID uint) ([]models.Task, error)
	Save(t *models.Task) error
	Delete(t *models.Task) error
	DeleteByProject(projectID uint) error
}

type DocumentRepository interface {
	Create(d *models.ProjectDocument) error
	FindByID(projectID, id uint) (*models.ProjectDocument, error)
	ListByProject(projectID uint) ([]models.ProjectDocument, error)
	Save(d *models.ProjectDocument) error
	Delete(d *models.ProjectDocument) error
	DeleteByProject(projectID uint) error
	// NextVersion returns the next version counter for the (project, title)
	// group, starting at 1. Soft-deleted rows still count so the sequence
	// stays monotonic.
	NextVersion(projectID uint, title string) (int, error)
}

// ChangeRecordRepository is the append-only change log store. There is
// deliberately no update or delete: records are immutable once written.
type ChangeRecordRepository interface {
	Append(r *models.ChangeRecord) error
	// ListByProject returns records ordered ascending by (created_at, id);
	// the id tiebreak keeps the order stable when timestamps collide.
	ListByProject(projectID uint) ([]models.ChangeRecord, error)
	CountByProject(projectID uint) (int64, error)
}

type UserRepository interface {
	Create(u *models.User) error
	FindByID(id uint) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	Save(u *models.User) error
}

// Store bundles the per-entity repositories with a transaction runner.
// Transact executes fn against a store bound to a single database
// transaction; any error rolls back every write made inside fn, so a failed
// mutation leaves both entity state and the change log untouched.
type Store interface {
	Projects() ProjectRepository
	Members() MemberRepository
	Tasks() TaskRepository
	Documents() DocumentRepository
	ChangeRecords() ChangeRecordRepository
	Users() UserRepository
	Transact(fn func(Store) error) error
}
