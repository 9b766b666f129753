package versioning

import (
	"time"

	"github.com/rajapi-cop/projecthub/internal/models"
)

// ProjectDiffFields is the allow-list of project fields tracked by the diff
// engine. Relational fields (owner, members, tasks, documents) are never
// diffed or reconstructed; they keep live references.
var ProjectDiffFields = []string{
	"title",
	"description",
	"objectives",
	"deadline",
	"status",
	"start_date",
	"location",
}

// relationalFields are stripped from create payloads during reconstruction.
var relationalFields = map[string]bool{
	"owner":     true,
	"owner_id":  true,
	"members":   true,
	"tasks":     true,
	"documents": true,
}

// ProjectSnapshot captures a project's diffable scalar state as a normalized
// field map. Dates are rendered as ISO date strings so snapshots stored in
// change payloads reproduce exactly after a JSON round trip.
func ProjectSnapshot(p *models.Project) map[string]any {
	return map[string]any{
		"title":       p.Title,
		"description": p.Description,
		"objectives":  p.Objectives,
		"deadline":    p.Deadline.Format(dateLayout),
		"status":      p.Status,
		"start_date":  p.StartDate.Format(dateLayout),
		"location":    p.Location,
	}
}

// ApplyProjectState writes a reconstructed state map back onto a project.
// Unknown fields are skipped; date fields that fail to parse are left
// untouched rather than corrupting the entity.
func ApplyProjectState(p *models.Project, state map[string]any) {
	for field, value := range state {
		s, isString := value.(string)
		switch field {
		case "title":
			if isString {
				p.Title = s
			}
		case "description":
			if isString {
				p.Description = s
			}
		case "objectives":
			if isString {
				p.Objectives = s
			}
		case "status":
			if isString && models.ValidProjectStatus(s) {
				p.Status = s
			}
		case "location":
			if isString {
				p.Location = s
			}
		case "deadline":
			if t, ok := parseDate(s); isString && ok {
				p.Deadline = t
			}
		case "start_date":
			if t, ok := parseDate(s); isString && ok {
				p.StartDate = t
			}
		}
	}
}

func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
