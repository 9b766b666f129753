package repository

import (
	"errors"

	"github.com/rajapi-cop/projecthub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormStore implements Store on top of *gorm.DB. The same type backs both the
// root store and transaction-bound stores handed to Transact callbacks.
type gormStore struct {
	db *gorm.DB
}

// NewStore returns a gorm-backed Store.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Projects() ProjectRepository           { return &projectRepo{db: s.db} }
func (s *gormStore) Members() MemberRepository             { return &memberRepo{db: s.db} }
func (s *gormStore) Tasks() TaskRepository                 { return &taskRepo{db: s.db} }
func (s *gormStore) Documents() DocumentRepository         { return &documentRepo{db: s.db} }
func (s *gormStore) ChangeRecords() ChangeRecordRepository { return &changeRecordRepo{db: s.db} }
func (s *gormStore) Users() UserRepository                 { return &userRepo{db: s.db} }

func (s *gormStore) Transact(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// --- projects ---

type projectRepo struct {
	db *gorm.DB
}

func (r *projectRepo) Create(p *models.Project) error {
	return r.db.Create(p).Error
}

func (r *projectRepo) FindByID(id uint) (*models.Project, error) {
	var p models.Project
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

func (r *projectRepo) FindByIDLocked(id uint) (*models.Project, error) {
	q := r.db
	// sqlite has no row locks; its single-writer model already serializes
	// concurrent transactions.
	if r.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var p models.Project
	if err := q.First(&p, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

func (r *projectRepo) Save(p *models.Project) error {
	return r.db.Save(p).Error
}

func (r *projectRepo) Delete(id uint) error {
	result := r.db.Delete(&models.Project{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *projectRepo) List(f ProjectFilter) ([]models.Project, int64, error) {
	query := r.db.Model(&models.Project{})

	if f.MemberID != 0 {
		query = query.
			Joins("JOIN project_members ON project_members.project_id = projects.id").
			Where("project_members.user_id = ? AND project_members.deleted_at IS NULL", f.MemberID)
	}
	if f.Status != "" {
		query = query.Where("projects.status = ?", f.Status)
	}
	if f.Location != "" {
		query = query.Where("projects.location = ?", f.Location)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		query = query.Where(
			"projects.title LIKE ? OR projects.description LIKE ? OR projects.objectives LIKE ? OR projects.reference_code LIKE ?",
			like, like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	if err := query.Preload("Owner").
		Offset(f.Offset).Limit(f.Limit).
		Order("projects.created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// --- members ---

type memberRepo struct {
	db *gorm.DB
}

func (r *memberRepo) Create(m *models.ProjectMember) error {
	return r.db.Create(m).Error
}

func (r *memberRepo) FindByProjectAndUser(projectID, userID uint) (*models.ProjectMember, error) {
	var m models.ProjectMember
	err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).First(&m).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &m, nil
}

func (r *memberRepo) ListByProject(projectID uint) ([]models.ProjectMember, error) {
	var members []models.ProjectMember
	err := r.db.Where("project_id = ?", projectID).
		Preload("User").
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

func (r *memberRepo) Delete(m *models.ProjectMember) error {
	return r.db.Delete(m).Error
}

func (r *memberRepo) DeleteByProject(projectID uint) error {
	return r.db.Where("project_id = ?", projectID).Delete(&models.ProjectMember{}).Error
}

// --- tasks ---

type taskRepo struct {
	db *gorm.DB
}

func (r *taskRepo) Create(t *models.Task) error {
	return r.db.Create(t).Error
}

func (r *taskRepo) FindByID(projectID, id uint) (*models.Task, error) {
	var t models.Task
	err := r.db.Where("project_id = ?", projectID).First(&t, id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &t, nil
}

func (r *taskRepo) ListByProject(projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.Where("project_id = ?", projectID).
		Preload("Assignee").Preload("Assigner").
		Order("due_date ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepo) Save(t *models.Task) error {
	return r.db.Save(t).Error
}

func (r *taskRepo) Delete(t *models.Task) error {
	return r.db.Delete(t).Error
}

func (r *taskRepo) DeleteByProject(projectID uint) error {
	return r.db.Where("project_id = ?", projectID).Delete(&models.Task{}).Error
}

// --- documents ---

type documentRepo struct {
	db *gorm.DB
}

func (r *documentRepo) Create(d *models.ProjectDocument) error {
	return r.db.Create(d).Error
}

func (r *documentRepo) FindByID(projectID, id uint) (*models.ProjectDocument, error) {
	var d models.ProjectDocument
	err := r.db.Where("project_id = ?", projectID).First(&d, id).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &d, nil
}

func (r *documentRepo) ListByProject(projectID uint) ([]models.ProjectDocument, error) {
	var docs []models.ProjectDocument
	err := r.db.Where("project_id = ?", projectID).
		Preload("Uploader").
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *documentRepo) Save(d *models.ProjectDocument) error {
	return r.db.Save(d).Error
}

func (r *documentRepo) Delete(d *models.ProjectDocument) error {
	return r.db.Delete(d).Error
}

func (r *documentRepo) DeleteByProject(projectID uint) error {
	return r.db.Where("project_id = ?", projectID).Delete(&models.ProjectDocument{}).Error
}

func (r *documentRepo) NextVersion(projectID uint, title string) (int, error) {
	var latest int
	err := r.db.Model(&models.ProjectDocument{}).
		Unscoped().
		Where("project_id = ? AND title = ?", projectID, title).
		Select("COALESCE(MAX(version), 0)").
		Scan(&latest).Error
	if err != nil {
		return 0, err
	}
	return latest + 1, nil
}

// --- change records ---

type changeRecordRepo struct {
	db *gorm.DB
}

func (r *changeRecordRepo) Append(record *models.ChangeRecord) error {
	return r.db.Create(record).Error
}

func (r *changeRecordRepo) ListByProject(projectID uint) ([]models.ChangeRecord, error) {
	var records []models.ChangeRecord
	err := r.db.Where("project_id = ?", projectID).
		Preload("User").
		Order("created_at ASC, id ASC").
		Find(&records).Error
	return records, err
}

func (r *changeRecordRepo) CountByProject(projectID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ChangeRecord{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

// --- users ---

type userRepo struct {
	db *gorm.DB
}

func (r *userRepo) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *userRepo) FindByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, translateErr(err)
	}
	return &u, nil
}

func (r *userRepo) FindByUsername(username string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translateErr(err)
	}
	return &u, nil
}

func (r *userRepo) Save(u *models.User) error {
	return r.db.Save(u).Error
}
