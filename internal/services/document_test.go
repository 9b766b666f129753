package services

import (
	"errors"
	"testing"

	"github.com/rajapi-cop/projecthub/internal/models"
)

func addDocument(t *testing.T, svc *DocumentService, projectID uint, title string, actorID uint) *models.ProjectDocument {
	t.Helper()
	doc, err := svc.Add(projectID, &AddDocumentRequest{
		Title:    title,
		FilePath: "/uploads/" + title,
	}, actorID)
	if err != nil {
		t.Fatalf("add document %s: %v", title, err)
	}
	return doc
}

func TestDocumentAdd_VersionCountersPerTitle(t *testing.T) {
	store := testStore(t)
	owner := createTestUser(t, store, "alice")
	p := createTestProject(t, store, owner.ID, "Project Alpha")

	svc := NewDocumentService(store)
	spec1 := addDocument(t, svc, p.ID, "Spec", owner.ID)
	spec2 := addDocument(t, svc, p.ID, "Spec", owner.ID)
	plan := addDocument(t, svc, p.ID, "Plan", owner.ID)

	if spec1.Version != 1 || spec2.Version != 2 {
		t.Errorf("Spec versions = %d, %d, expected 1, 2", spec1.Version, spec2.Version)
	}
	if plan.Version != 1 {
		t.Errorf("Plan version = %d, expected independent counter starting at 1", plan.Version)
	}

	records := projectRecords(t, store, p.ID)
	last := records[len(records)-1]
	if last.Action != models.ActionDocumentAdded {
		t.Errorf("last action = %q", last.Action)
	}
	payload, _ := last.DecodeChanges()
	if payload["version"] != float64(1) {
		t.Errorf("payload version = %v", payload["version"])
	}
}

func TestDocumentAdd_CounterSurvivesRemoval(t *testing.T) {
	store := testStore(t)
	owner := createTestUser(t, store, "alice")
	p := createTestProject(t, store, owner.ID, "Project Alpha")

	svc := NewDocumentService(store)
	doc := addDocument(t, svc, p.ID, "Spec", owner.ID)
	if err := svc.Remove(p.ID, doc.ID, owner.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	// Removed uploads still count so the sequence never goes backwards
	again := addDocument(t, svc, p.ID, "Spec", owner.ID)
	if again.Version != 2 {
		t.Errorf("re-added Spec version = %d, expected 2", again.Version)
	}
}

func TestDocumentUpdate_MetadataDiffLogged(t *testing.T) {
	store := testStore(t)
	owner := createTestUser(t, store, "alice")
	p := createTestProject(t, store, owner.ID, "Project Alpha")

	svc := NewDocumentService(store)
	doc := addDocument(t, svc, p.ID, "Spec", owner.ID)

	title := "Spec v2 draft"
	updated, err := svc.Update(p.ID, doc.ID, &UpdateDocumentRequest{Title: &title}, owner.ID)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != title {
		t.Errorf("title = %q", updated.Title)
	}
	if updated.Version != doc.Version {
		t.Errorf("metadata update changed version: %d → %d", doc.Version, updated.Version)
	}

	records := projectRecords(t, store, p.ID)
	last := records[len(records)-1]
	if last.Action != models.ActionDocumentUpdated {
		t.Fatalf("last action = %q, expected document_updated", last.Action)
	}
	payload, _ := last.DecodeChanges()
	fields, ok := payload["fields"].(map[string]any)
	if !ok {
		t.Fatalf("payload fields = %v", payload["fields"])
	}
	titleChange, ok := fields["title"].(map[string]any)
	if !ok || titleChange["old"] != "Spec" || titleChange["new"] != title {
		t.Errorf("title change = %v", fields["title"])
	}
}

func TestDocumentUpdate_NoOpUnlogged(t *testing.T) {
	store := testStore(t)
	owner := createTestUser(t, store, "alice")
	p := createTestProject(t, store, owner.ID, "Project Alpha")

	svc := NewDocumentService(store)
	doc := addDocument(t, svc, p.ID, "Spec", owner.ID)
	before := len(projectRecords(t, store, p.ID))

	sameTitle := "Spec"
	if _, err := svc.Update(p.ID, doc.ID, &UpdateDocumentRequest{Title: &sameTitle}, owner.ID); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if after := len(projectRecords(t, store, p.ID)); after != before {
		t.Errorf("no-op metadata update appended a record")
	}
}

func TestDocumentRemove(t *testing.T) {
	store := testStore(t)
	owner := createTestUser(t, store, "alice")
	p := createTestProject(t, store, owner.ID, "Project Alpha")

	svc := NewDocumentService(store)
	doc := addDocument(t, svc, p.ID, "Spec", owner.ID)

	if err := svc.Remove(p.ID, doc.ID, owner.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	docs, err := store.Documents().ListByProject(p.ID)
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("documents after remove = %d", len(docs))
	}

	records := projectRecords(t, store, p.ID)
	if records[len(records)-1].Action != models.ActionDocumentRemoved {
		t.Errorf("last action = %q, expected document_removed", records[len(records)-1].Action)
	}
}

func TestDocumentAdd_ProjectMissing(t *testing.T) {
	store := testStore(t)
	actor := createTestUser(t, store, "alice")

	svc := NewDocumentService(store)
	_, err := svc.Add(999, &AddDocumentRequest{Title: "Spec", FilePath: "/uploads/Spec"}, actor.ID)
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("error = %v, expected ErrProjectNotFound", err)
	}
}

func TestDocumentRemove_NotFound(t *testing.T) {
	store := testStore(t)
	owner := createTestUser(t, store, "alice")
	p := createTestProject(t, store, owner.ID, "Project Alpha")

	svc := NewDocumentService(store)
	if err := svc.Remove(p.ID, 999, owner.ID); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("error = %v, expected ErrDocumentNotFound", err)
	}
}
