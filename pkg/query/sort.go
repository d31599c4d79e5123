package query

import "strings"

// SortField names a view-level field and sort direction.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// ParseSortFields parses a comma-separated sort expression. A "-" prefix
// marks a field as descending, e.g. "-Confidence,Title".
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	fields := make([]SortField, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		descending := strings.HasPrefix(part, "-")
		field := strings.TrimPrefix(part, "-")
		if field == "" {
			continue
		}

		fields = append(fields, SortField{Field: field, Descending: descending})
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}
