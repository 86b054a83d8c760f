package trigger

import (
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		cursor int
		want   Span
		ok     bool
	}{
		{"type after bang", "> [!no", 6, Span{Start: 4, End: 6, Query: "no"}, true},
		{"no bang", "> [no", 5, Span{Start: 4, End: 5, Query: "o"}, true},
		{"cursor before marker end", "> [", 2, Span{}, false},
		{"cursor at marker end", "> [", 3, Span{Start: 4, End: 3, Query: ""}, true},
		{"just bang", "> [!", 4, Span{Start: 4, End: 4, Query: ""}, true},
		{"mid word", "> [!warning]", 7, Span{Start: 4, End: 7, Query: "war"}, true},
		{"whole word", "> [!warning] Title", 11, Span{Start: 4, End: 11, Query: "warning"}, true},
		{"indented", "    > [!ti", 6, Span{Start: 4, End: 6, Query: "ti"}, true},
		{"tab indented", "\t> [!ti", 6, Span{Start: 4, End: 6, Query: "ti"}, true},
		{"query trimmed", "> [! tip ", 9, Span{Start: 4, End: 9, Query: "tip"}, true},
		{"cursor past end", "> [!ab", 40, Span{Start: 4, End: 40, Query: "ab"}, true},
		{"plain text", "hello", 5, Span{}, false},
		{"blockquote only", "> note", 6, Span{}, false},
		{"no space", ">[!note", 7, Span{}, false},
		{"empty", "", 0, Span{}, false},
		{"negative cursor", "> [!no", -1, Span{}, false},
		{"unicode", "> [!über", 6, Span{Start: 4, End: 6, Query: "üb"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Evaluate(tt.line, tt.cursor)
			if ok != tt.ok {
				t.Fatalf("Evaluate(%q, %d) ok = %v, want %v", tt.line, tt.cursor, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q, %d) = %+v, want %+v", tt.line, tt.cursor, got, tt.want)
			}
		})
	}
}

func TestEvaluate_NonMarkerNeverTriggers(t *testing.T) {
	lines := []string{"", " ", "x", "[!note]", "> ", ">> [", "- > [", "# > [!tip"}
	for _, line := range lines {
		for cursor := -2; cursor < 12; cursor++ {
			if _, ok := Evaluate(line, cursor); ok {
				t.Errorf("Evaluate(%q, %d) triggered", line, cursor)
			}
		}
	}
}

func TestIndent(t *testing.T) {
	tests := map[string]int{
		"> [":     0,
		"  > [":   2,
		"\t\t> [": 2,
		"   ":     3,
		"":        0,
	}
	for line, want := range tests {
		if got := Indent(line); got != want {
			t.Errorf("Indent(%q) = %d, want %d", line, got, want)
		}
	}
}
