package suggest

import (
	"errors"
	"testing"
)

func TestMemoryEditor_ReplaceRange(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		insert     string
		start, end Position
		want       string
	}{
		{"single line", "> [!no]", "note", Position{0, 4}, Position{0, 6}, "> [!note]"},
		{"insert", "> [!", "tip", Position{0, 4}, Position{0, 4}, "> [!tip"},
		{"clamped end", "> [", "note", Position{0, 3}, Position{0, 9}, "> [note"},
		{"reversed", "abcdef", "X", Position{0, 4}, Position{0, 1}, "aXef"},
		{"multi line", "one\ntwo\nthree", "-", Position{0, 1}, Position{2, 2}, "o-ree"},
		{"newline in text", "ab", "1\n2", Position{0, 1}, Position{0, 1}, "a1\n2b"},
		{"unicode", "> [!über", "info", Position{0, 4}, Position{0, 8}, "> [!info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := NewMemoryEditor(tt.text)
			if err := ed.ReplaceRange(tt.insert, tt.start, tt.end); err != nil {
				t.Fatalf("ReplaceRange error: %v", err)
			}
			if got := ed.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMemoryEditor_OutOfRange(t *testing.T) {
	ed := NewMemoryEditor("only")
	err := ed.ReplaceRange("x", Position{1, 0}, Position{1, 0})
	if !errors.Is(err, ErrLineOutOfRange) {
		t.Errorf("error = %v, want ErrLineOutOfRange", err)
	}
	if ed.Text() != "only" {
		t.Error("failed edit modified the document")
	}
}

func TestMemoryEditor_Cursor(t *testing.T) {
	ed := NewMemoryEditor("ab\ncdef")

	ed.SetCursor(Position{1, 3})
	if got := ed.Cursor(); got != (Position{1, 3}) {
		t.Errorf("Cursor() = %+v", got)
	}

	ed.SetCursor(Position{5, 99})
	if got := ed.Cursor(); got != (Position{1, 4}) {
		t.Errorf("clamped Cursor() = %+v, want {1 4}", got)
	}

	ed.SetText("x")
	if got := ed.Cursor(); got != (Position{0, 1}) {
		t.Errorf("Cursor() after SetText = %+v, want {0 1}", got)
	}

	if ed.Line(-1) != "" || ed.Line(3) != "" {
		t.Error("out-of-range Line should be empty")
	}
	if ed.LineCount() != 1 {
		t.Errorf("LineCount() = %d", ed.LineCount())
	}
}
