package suggest

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/calloutls/internal/callout"
)

// iconGlyphs maps lucide icon names to terminal glyphs.
var iconGlyphs = map[string]string{
	"lucide-sticky-note":    "✎",
	"lucide-pen":            "✎",
	"lucide-info":           "ℹ",
	"lucide-alert-triangle": "⚠",
	"lucide-x-circle":       "✖",
	"lucide-x":              "✖",
	"lucide-check-circle":   "✔",
	"lucide-check":          "✔",
	"lucide-lightbulb":      "💡",
	"lucide-quote":          "❝",
	"lucide-list":           "☰",
	"lucide-link":           "🔗",
	"lucide-book-open":      "📖",
	"lucide-flame":          "🔥",
	"lucide-help-circle":    "?",
	"lucide-plus":           "+",
	"lucide-minus":          "−",
	"lucide-triangle":       "△",
}

const fallbackGlyph = "•"

// Glyph returns the terminal glyph for a lucide icon name.
func Glyph(icon string) string {
	if g, ok := iconGlyphs[icon]; ok {
		return g
	}
	return fallbackGlyph
}

// Row is one rendered suggestion: an icon followed by the identifier, both
// in the entry's color.
type Row struct {
	Icon  string
	Glyph string
	Label string
	Color callout.RGB
}

// NewRow renders entry.
func NewRow(entry callout.Entry) Row {
	return Row{
		Icon:  entry.Icon,
		Glyph: Glyph(entry.Icon),
		Label: entry.ID,
		Color: entry.Color,
	}
}

// CSSColor is the color applied to both icon and label, as rgb(r, g, b).
func (r Row) CSSColor() string {
	return r.Color.CSS()
}

// Text is the plain-text form of the row.
func (r Row) Text() string {
	return r.Glyph + " " + r.Label
}

// Width is the number of terminal cells Text occupies.
func (r Row) Width() int {
	return uniseg.StringWidth(r.Text())
}

// Style returns the terminal style of the row.
func (r Row) Style(selected bool) tcell.Style {
	fg := tcell.NewRGBColor(int32(r.Color.R), int32(r.Color.G), int32(r.Color.B))
	style := tcell.StyleDefault.Foreground(fg)
	if selected {
		style = style.Reverse(true)
	}
	return style
}

// Draw paints the row at (x, y), clipped to width cells, and returns the
// number of cells written.
func (r Row) Draw(screen tcell.Screen, x, y, width int, selected bool) int {
	style := r.Style(selected)
	written := 0

	rest := r.Text()
	state := -1
	for rest != "" {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if written+w > width {
			break
		}
		runes := []rune(cluster)
		screen.SetContent(x+written, y, runes[0], runes[1:], style)
		written += w
	}
	return written
}
