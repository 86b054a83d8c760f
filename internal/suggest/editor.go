package suggest

import (
	"fmt"
	"strings"
)

// Position is a zero-based line and rune column.
type Position struct {
	Line int
	Col  int
}

// Editor is the part of the host editor a Session needs.
type Editor interface {
	// Line returns the text of line n without its terminator.
	Line(n int) string

	// Cursor returns the primary cursor position.
	Cursor() Position

	// ReplaceRange replaces the text between start and end with text.
	ReplaceRange(text string, start, end Position) error

	// SetCursor moves the primary cursor.
	SetCursor(pos Position)
}

// MemoryEditor is an Editor over an in-memory list of lines.
type MemoryEditor struct {
	lines  []string
	cursor Position
}

// NewMemoryEditor creates an editor holding text.
func NewMemoryEditor(text string) *MemoryEditor {
	return &MemoryEditor{lines: strings.Split(text, "\n")}
}

// Text returns the full document.
func (m *MemoryEditor) Text() string {
	return strings.Join(m.lines, "\n")
}

// SetText replaces the whole document. The cursor is clamped.
func (m *MemoryEditor) SetText(text string) {
	m.lines = strings.Split(text, "\n")
	m.cursor = m.clamp(m.cursor)
}

// LineCount returns the number of lines.
func (m *MemoryEditor) LineCount() int {
	return len(m.lines)
}

// Line returns line n, or "" when n is out of range.
func (m *MemoryEditor) Line(n int) string {
	if n < 0 || n >= len(m.lines) {
		return ""
	}
	return m.lines[n]
}

// Cursor returns the cursor position.
func (m *MemoryEditor) Cursor() Position {
	return m.cursor
}

// SetCursor moves the cursor, clamped to the document.
func (m *MemoryEditor) SetCursor(pos Position) {
	m.cursor = m.clamp(pos)
}

// ReplaceRange replaces [start, end) with text. Columns past the end of a
// line are clamped; reversed positions are swapped.
func (m *MemoryEditor) ReplaceRange(text string, start, end Position) error {
	if comparePositions(end, start) < 0 {
		start, end = end, start
	}
	if start.Line < 0 || end.Line >= len(m.lines) {
		return fmt.Errorf("replace %d:%d-%d:%d: %w", start.Line, start.Col, end.Line, end.Col, ErrLineOutOfRange)
	}

	first := []rune(m.lines[start.Line])
	last := []rune(m.lines[end.Line])
	head := string(first[:clampCol(start.Col, len(first))])
	tail := string(last[clampCol(end.Col, len(last)):])

	replacement := strings.Split(head+text+tail, "\n")

	lines := make([]string, 0, len(m.lines)-(end.Line-start.Line)+len(replacement)-1)
	lines = append(lines, m.lines[:start.Line]...)
	lines = append(lines, replacement...)
	lines = append(lines, m.lines[end.Line+1:]...)
	m.lines = lines
	m.cursor = m.clamp(m.cursor)
	return nil
}

func (m *MemoryEditor) clamp(pos Position) Position {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(m.lines) {
		pos.Line = len(m.lines) - 1
	}
	pos.Col = clampCol(pos.Col, len([]rune(m.lines[pos.Line])))
	return pos
}

func clampCol(col, n int) int {
	if col < 0 {
		return 0
	}
	if col > n {
		return n
	}
	return col
}

func comparePositions(a, b Position) int {
	if a.Line != b.Line {
		return a.Line - b.Line
	}
	return a.Col - b.Col
}
