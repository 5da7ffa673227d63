package logentry

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/valyala/fastjson"
)

// EntryMatcher reports whether a right-trimmed line opens a new log entry.
type EntryMatcher interface {
	IsEntryStart(line string) bool
}

// EntryMatcherFunc adapts a plain function to EntryMatcher.
type EntryMatcherFunc func(line string) bool

func (f EntryMatcherFunc) IsEntryStart(line string) bool {
	return f(line)
}

const (
	FormatHeuristic = "heuristic"
	FormatPattern   = "pattern"
	FormatJSON      = "json"
)

var severityKeywords = map[string]struct{}{
	"DEBUG":    {},
	"INFO":     {},
	"WARNING":  {},
	"ERROR":    {},
	"CRITICAL": {},
}

// HeuristicMatcher starts an entry on a leading digit (timestamps) or on a
// first token that is a severity keyword.
type HeuristicMatcher struct{}

func (HeuristicMatcher) IsEntryStart(line string) bool {
	if line == "" {
		return false
	}

	first, _ := utf8.DecodeRuneInString(line)
	if unicode.IsDigit(first) {
		return true
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	_, ok := severityKeywords[fields[0]]
	return ok
}

// PatternMatcher starts an entry when the line matches a regular expression
// anchored at the beginning of the line.
type PatternMatcher struct {
	re *regexp.Regexp
}

func NewPatternMatcher(pattern string) (*PatternMatcher, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("entry start pattern cannot be empty")
	}

	if !strings.HasPrefix(pattern, "^") {
		pattern = "^(?:" + pattern + ")"
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile entry start pattern: %w", err)
	}

	return &PatternMatcher{re: re}, nil
}

func (m *PatternMatcher) IsEntryStart(line string) bool {
	return line != "" && m.re.MatchString(line)
}

// JSONMatcher starts an entry on every line that is a complete JSON object,
// so JSON-lines logs keep non-JSON continuation output attached.
type JSONMatcher struct{}

func (JSONMatcher) IsEntryStart(line string) bool {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if !strings.HasPrefix(trimmed, "{") {
		return false
	}

	return fastjson.Validate(trimmed) == nil
}

// NewMatcher builds the matcher for a configured entry format.
func NewMatcher(format string, pattern string) (EntryMatcher, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatHeuristic:
		return HeuristicMatcher{}, nil
	case FormatPattern:
		return NewPatternMatcher(pattern)
	case FormatJSON:
		return JSONMatcher{}, nil
	default:
		return nil, fmt.Errorf("unsupported entry format %q", format)
	}
}
