// Package trigger decides whether the text around the cursor is the start
// of a callout header and extracts the identifier typed so far.
package trigger

import (
	"strings"
	"unicode"
)

// Marker opens a callout header: a blockquote followed by a bracket.
const Marker = "> ["

// Span is an in-progress callout identifier on one line. Offsets are rune
// columns on the line with leading whitespace removed; End is the cursor.
type Span struct {
	Start int
	End   int
	Query string
}

// Evaluate inspects line with the cursor at column cursor and reports the
// span to replace when the line opens a callout header.
//
// The two characters after the bracket are skipped (the `[!` pair), so the
// span starts where the callout type is typed. When the cursor sits before
// that point the query is empty and matches every callout.
func Evaluate(line string, cursor int) (Span, bool) {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	if !strings.HasPrefix(line, Marker) || cursor < len(Marker) {
		return Span{}, false
	}

	runes := []rune(line)
	start := strings.IndexRune(line, '[')
	start = len([]rune(line[:start])) + 2

	var query string
	if end := min(cursor, len(runes)); start < end {
		query = strings.TrimSpace(string(runes[start:end]))
	}

	return Span{Start: start, End: cursor, Query: query}, true
}

// Indent returns the number of leading whitespace runes Evaluate strips
// from line. Hosts that work on raw lines add it back to span offsets.
func Indent(line string) int {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	return len([]rune(line)) - len([]rune(trimmed))
}
