package suggest

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/calloutls/internal/callout"
)

func TestGlyph(t *testing.T) {
	if Glyph("lucide-info") != "ℹ" {
		t.Error("known icon not mapped")
	}
	if Glyph("custom-icon") != fallbackGlyph {
		t.Error("unknown icon should use fallback glyph")
	}
}

func TestRow_TextAndWidth(t *testing.T) {
	row := NewRow(callout.Entry{ID: "note", Icon: "lucide-sticky-note", Color: callout.RGB{R: 68, G: 138, B: 255}})
	if row.Text() != "✎ note" {
		t.Errorf("Text() = %q", row.Text())
	}
	if row.Width() != 6 {
		t.Errorf("Width() = %d, want 6", row.Width())
	}

	wide := NewRow(callout.Entry{ID: "tip", Icon: "lucide-lightbulb"})
	if wide.Width() != 6 {
		t.Errorf("wide glyph Width() = %d, want 6", wide.Width())
	}
}

func TestRow_Style(t *testing.T) {
	row := NewRow(callout.Entry{ID: "note", Color: callout.RGB{R: 68, G: 138, B: 255}})

	fg, _, attrs := row.Style(false).Decompose()
	if fg != tcell.NewRGBColor(68, 138, 255) {
		t.Errorf("foreground = %v", fg)
	}
	if attrs&tcell.AttrReverse != 0 {
		t.Error("unselected row should not be reversed")
	}

	_, _, attrs = row.Style(true).Decompose()
	if attrs&tcell.AttrReverse == 0 {
		t.Error("selected row should be reversed")
	}
}

func TestRow_Draw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 3)

	row := NewRow(callout.Entry{ID: "note", Icon: "lucide-sticky-note", Color: callout.RGB{R: 68, G: 138, B: 255}})
	if n := row.Draw(screen, 1, 1, 20, false); n != 6 {
		t.Errorf("Draw wrote %d cells, want 6", n)
	}
	screen.Show()

	want := []rune("✎ note")
	for i, r := range want {
		got, _, style, _ := screen.GetContent(1+i, 1) //nolint:staticcheck // GetContent is the simulation read-back API
		if got != r {
			t.Errorf("cell %d = %q, want %q", i, got, r)
		}
		if fg, _, _ := style.Decompose(); fg != tcell.NewRGBColor(68, 138, 255) {
			t.Errorf("cell %d foreground = %v", i, fg)
		}
	}

	if n := row.Draw(screen, 0, 2, 3, true); n != 3 {
		t.Errorf("clipped Draw wrote %d cells, want 3", n)
	}
}
