package services

import (
	"testing"

	"github.com/rajapi-cop/projecthub/internal/models"
	"github.com/rajapi-cop/projecthub/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testStore opens an isolated in-memory database and returns a store backed
// by it. Max open connections is pinned to 1 so every query sees the same
// memory database.
func testStore(t *testing.T) repository.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.ProjectDocument{},
		&models.ChangeRecord{},
		&models.SystemLog{},
	); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return repository.NewStore(db)
}

func createTestUser(t *testing.T, store repository.Store, username string) *models.User {
	t.Helper()
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		FullName: username,
		Role:     "user",
		IsActive: true,
	}
	if err := store.Users().Create(u); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func createTestProject(t *testing.T, store repository.Store, ownerID uint, title string) *models.Project {
	t.Helper()
	svc := NewProjectService(store)
	p, err := svc.Create(&CreateProjectRequest{
		Title:       title,
		Description: "test project",
		Deadline:    "2026-12-31",
		StartDate:   "2026-01-01",
	}, ownerID)
	if err != nil {
		t.Fatalf("create project %s: %v", title, err)
	}
	return p
}

func addTestMember(t *testing.T, store repository.Store, projectID, userID, ownerID uint, role string) {
	t.Helper()
	svc := NewMemberService(store)
	if _, err := svc.Add(projectID, &AddMemberRequest{UserID: userID, Role: role}, ownerID); err != nil {
		t.Fatalf("add member %d as %s: %v", userID, role, err)
	}
}

func projectRecords(t *testing.T, store repository.Store, projectID uint) []models.ChangeRecord {
	t.Helper()
	records, err := store.ChangeRecords().ListByProject(projectID)
	if err != nil {
		t.Fatalf("list change records: %v", err)
	}
	return records
}
