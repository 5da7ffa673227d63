package logentry

import (
	"strings"
	"unicode"
)

// Group rebuilds logical entries from raw lines. Lines are right-trimmed; a
// line that does not start an entry is appended to the previous one with an
// embedded newline, or stands alone if nothing precedes it. A nil matcher
// falls back to HeuristicMatcher.
func Group(lines []string, matcher EntryMatcher) []string {
	if matcher == nil {
		matcher = HeuristicMatcher{}
	}

	entries := make([]string, 0, len(lines))
	var current *strings.Builder
	flush := func() {
		if current != nil {
			entries = append(entries, current.String())
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimRightFunc(line, unicode.IsSpace)
		if current == nil || matcher.IsEntryStart(trimmed) {
			flush()
			current = &strings.Builder{}
			current.WriteString(trimmed)
			continue
		}

		current.WriteByte('\n')
		current.WriteString(trimmed)
	}
	flush()

	return entries
}
