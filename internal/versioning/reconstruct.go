package versioning

import (
	"errors"

	"github.com/rajapi-cop/projecthub/internal/models"
)

// ErrVersionOutOfRange is returned when the requested version exceeds the
// number of change records in the project's log.
var ErrVersionOutOfRange = errors.New("version out of range")

// Reconstruct folds the first target records of a project's ordered change
// log into a point-in-time scalar state map.
//
// Create records merge their payload wholesale (minus relational fields);
// update records apply each field's post-value; every other action describes
// a sub-entity event and leaves the scalar accumulator untouched.
func Reconstruct(records []models.ChangeRecord, target int) (map[string]any, error) {
	if target < 1 || target > len(records) {
		return nil, ErrVersionOutOfRange
	}

	state := make(map[string]any)
	for _, record := range records[:target] {
		payload, err := record.DecodeChanges()
		if err != nil {
			return nil, err
		}

		switch record.Action {
		case models.ActionCreate:
			for field, value := range payload {
				if !relationalFields[field] {
					state[field] = value
				}
			}
		case models.ActionUpdate:
			for field, value := range payload {
				if relationalFields[field] {
					continue
				}
				change, ok := value.(map[string]any)
				if !ok {
					continue
				}
				if newValue, ok := change["new"]; ok {
					state[field] = newValue
				}
			}
		}
	}
	return state, nil
}
