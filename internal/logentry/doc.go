// Package logentry turns raw log lines into logical entries and shapes them
// for display.
//
// The pipeline is Group → Filter → Paginate:
//
//   - Group joins continuation lines (stack traces, wrapped messages) onto the
//     entry that precedes them. What counts as the start of an entry is decided
//     by an EntryMatcher; HeuristicMatcher is a placeholder policy that looks for
//     a leading digit or a severity keyword and is not a real timestamp parser.
//   - Filter keeps entries containing a level word and/or a search string.
//   - Paginate slices the result backwards so page 1 holds the newest entries.
//
// Everything here is pure and allocation-light; the package never touches the
// filesystem.
package logentry
