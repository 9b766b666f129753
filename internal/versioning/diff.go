// Package versioning implements the field-level diff engine and the
// change-log replay used to reconstruct historical project states.
package versioning

import (
	"time"
)

// FieldChange captures one field's before/after values as stored in a change
// record's diff payload.
type FieldChange struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// dateLayout is how date-only values are serialized into change payloads.
const dateLayout = "2006-01-02"

// Normalize converts a value to its JSON-stable representation. Times are
// serialized as ISO-8601 strings (date-only when they carry no clock part) so
// that values compare equal across a store/load round trip.
func Normalize(v any) any {
	switch t := v.(type) {
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format(dateLayout)
		}
		return t.Format(time.RFC3339)
	case *time.Time:
		if t == nil {
			return nil
		}
		return Normalize(*t)
	default:
		return v
	}
}

// Diff compares two field maps and returns the entries whose values differ.
// Only fields present in both maps and listed in allowed are considered:
// a field absent from next is never treated as deleted. Values are normalized
// before comparison. An empty result means the mutation is a no-op and callers
// must not log it.
func Diff(prev, next map[string]any, allowed []string) map[string]FieldChange {
	changes := make(map[string]FieldChange)
	for _, field := range allowed {
		newValue, ok := next[field]
		if !ok {
			continue
		}
		oldValue, ok := prev[field]
		if !ok {
			continue
		}
		oldNorm := Normalize(oldValue)
		newNorm := Normalize(newValue)
		if oldNorm != newNorm {
			changes[field] = FieldChange{Old: oldNorm, New: newNorm}
		}
	}
	return changes
}
