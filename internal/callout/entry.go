package callout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/calloutls/internal/settings"
)

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// String formats the color the way callout-manager stores it: "r, g, b".
func (c RGB) String() string {
	return fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B)
}

// CSS returns the color as a CSS rgb() expression.
func (c RGB) CSS() string {
	return "rgb(" + c.String() + ")"
}

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ParseRGB parses "r, g, b" (whitespace optional) or "#rrggbb".
func ParseRGB(s string) (RGB, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RGB{}, false
	}

	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return RGB{}, false
		}
		r, g, b := c.RGB255()
		return RGB{R: r, G: g, B: b}, true
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return RGB{}, false
	}
	var out [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return RGB{}, false
		}
		out[i] = uint8(n)
	}
	return RGB{R: out[0], G: out[1], B: out[2]}, true
}

// Entry is one known callout type. Entries are values; a catalog never
// hands out references into its own storage.
type Entry struct {
	ID    string
	Icon  string
	Color RGB
}

// NormalizeID lowercases and trims a callout identifier.
func NormalizeID(id string) string {
	return settings.NormalizeID(id)
}

// matchKey is the form identifiers and queries are compared in. Final
// sigma folds to medial sigma so a prefix ending in Σ matches mid-word.
func matchKey(s string) string {
	return strings.ReplaceAll(NormalizeID(s), "ς", "σ")
}
