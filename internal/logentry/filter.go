package logentry

import "strings"

// Filter keeps entries containing the upper-cased level and, case-insensitively,
// the search text. Empty criteria pass everything through.
func Filter(entries []string, level string, search string) []string {
	level = strings.ToUpper(level)
	search = strings.ToLower(search)
	if level == "" && search == "" {
		return entries
	}

	kept := make([]string, 0, len(entries))
	for _, entry := range entries {
		if level != "" && !strings.Contains(entry, level) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(entry), search) {
			continue
		}
		kept = append(kept, entry)
	}

	return kept
}
