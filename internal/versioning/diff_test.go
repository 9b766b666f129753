package versioning

import (
	"testing"
	"time"

	"github.com/rajapi-cop/projecthub/internal/models"
)

func TestNormalize_DateOnly(t *testing.T) {
	d := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if got := Normalize(d); got != "2026-03-15" {
		t.Errorf("Normalize(date) = %v, expected 2026-03-15", got)
	}
}

func TestNormalize_WithClock(t *testing.T) {
	d := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	if got := Normalize(d); got != "2026-03-15T10:30:00Z" {
		t.Errorf("Normalize(datetime) = %v", got)
	}
}

func TestNormalize_NilTimePointer(t *testing.T) {
	var p *time.Time
	if got := Normalize(p); got != nil {
		t.Errorf("Normalize(nil *time.Time) = %v, expected nil", got)
	}
}

func TestDiff_ChangedFields(t *testing.T) {
	prev := map[string]any{
		"title":  "Project Alpha",
		"status": "draft",
	}
	next := map[string]any{
		"title":  "Project Beta",
		"status": "draft",
	}

	changes := Diff(prev, next, []string{"title", "status"})

	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}
	change, ok := changes["title"]
	if !ok {
		t.Fatal("expected a change for title")
	}
	if change.Old != "Project Alpha" || change.New != "Project Beta" {
		t.Errorf("title change = %+v", change)
	}
}

func TestDiff_NoChanges(t *testing.T) {
	fields := map[string]any{"title": "Same", "status": "draft"}
	changes := Diff(fields, fields, []string{"title", "status"})
	if len(changes) != 0 {
		t.Errorf("identical maps should produce empty diff, got %v", changes)
	}
}

func TestDiff_AbsentFieldNotDeleted(t *testing.T) {
	prev := map[string]any{"title": "Kept", "status": "draft"}
	next := map[string]any{"status": "in_progress"}

	changes := Diff(prev, next, []string{"title", "status"})

	if _, ok := changes["title"]; ok {
		t.Error("field absent from next must not appear in diff")
	}
	if _, ok := changes["status"]; !ok {
		t.Error("status change missing")
	}
}

func TestDiff_IgnoresFieldsOutsideAllowList(t *testing.T) {
	prev := map[string]any{"title": "A", "secret": "x"}
	next := map[string]any{"title": "A", "secret": "y"}

	changes := Diff(prev, next, []string{"title"})
	if len(changes) != 0 {
		t.Errorf("fields outside the allow-list must be ignored, got %v", changes)
	}
}

func TestDiff_NormalizesDates(t *testing.T) {
	prev := map[string]any{"deadline": time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)}
	next := map[string]any{"deadline": "2026-06-01"}

	changes := Diff(prev, next, []string{"deadline"})
	if len(changes) != 0 {
		t.Errorf("equal dates in different representations should not diff, got %v", changes)
	}

	next["deadline"] = "2026-07-01"
	changes = Diff(prev, next, []string{"deadline"})
	if change, ok := changes["deadline"]; !ok {
		t.Fatal("expected deadline change")
	} else if change.Old != "2026-06-01" || change.New != "2026-07-01" {
		t.Errorf("deadline change = %+v", change)
	}
}

func TestProjectSnapshot_RoundTrip(t *testing.T) {
	p := &models.Project{
		Title:       "Bridge Build",
		Description: "A bridge",
		Objectives:  "Span the river",
		Deadline:    time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:      models.ProjectStatusInProgress,
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Location:    "Riverside",
	}

	snap := ProjectSnapshot(p)

	if snap["title"] != "Bridge Build" {
		t.Errorf("title = %v", snap["title"])
	}
	if snap["deadline"] != "2026-12-31" {
		t.Errorf("deadline = %v, expected ISO date string", snap["deadline"])
	}
	if snap["start_date"] != "2026-01-01" {
		t.Errorf("start_date = %v", snap["start_date"])
	}

	var restored models.Project
	ApplyProjectState(&restored, snap)

	if restored.Title != p.Title || restored.Status != p.Status || restored.Location != p.Location {
		t.Errorf("restored scalars differ: %+v", restored)
	}
	if !restored.Deadline.Equal(p.Deadline) {
		t.Errorf("restored deadline = %v, expected %v", restored.Deadline, p.Deadline)
	}
	if !restored.StartDate.Equal(p.StartDate) {
		t.Errorf("restored start_date = %v, expected %v", restored.StartDate, p.StartDate)
	}
}

func TestApplyProjectState_RejectsInvalidStatus(t *testing.T) {
	p := &models.Project{Status: models.ProjectStatusDraft}
	ApplyProjectState(p, map[string]any{"status": "bogus"})
	if p.Status != models.ProjectStatusDraft {
		t.Errorf("invalid status must be skipped, got %q", p.Status)
	}
}

func TestApplyProjectState_SkipsMalformedDate(t *testing.T) {
	deadline := time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC)
	p := &models.Project{Deadline: deadline}
	ApplyProjectState(p, map[string]any{"deadline": "not-a-date"})
	if !p.Deadline.Equal(deadline) {
		t.Errorf("malformed date must leave the field untouched, got %v", p.Deadline)
	}
}
