package models

import "strings"

// FilterMovies applies the status filter, then a case-insensitive substring search over title, status and review.
//
// Blank search matches everything. The result is never nil.
func FilterMovies(records []MovieRecord, status StatusFilter, search string) []MovieRecord {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]MovieRecord, 0, len(records))

	for _, m := range records {
		if status != "" && status != FilterAll && Status(status) != m.Status {
			continue
		}
		if needle != "" && !matches(m, needle) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func matches(m MovieRecord, needle string) bool {
	for _, field := range []string{m.Title, string(m.Status), m.ReviewText()} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
