// Package settings decodes the callout-manager settings that customize the
// callout catalog.
//
// The settings are produced by another editor plugin and arrive as an
// untyped document. Every field is validated on its own; a field that is
// missing or has the wrong shape is treated as absent rather than as an
// error, so a partially broken document still contributes whatever parts
// of it are well formed.
package settings

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Change is one styling record for a callout type. A record with a
// condition only applies in some contexts (color scheme, theme); the
// catalog only honors unconditional records.
type Change struct {
	Conditional bool
	Icon        string
	Color       string
}

// Callouts is the `callouts` section of the callout-manager settings.
type Callouts struct {
	// Custom lists identifiers declared in addition to the built-in ones.
	Custom []string

	// Settings maps a normalized identifier to its styling records, in
	// document order. Keys that normalize alike collapse to the last one.
	Settings map[string][]Change
}

// Base returns the first unconditional change record for id. Keys are
// stored normalized, so the lookup ignores case.
func (c *Callouts) Base(id string) (Change, bool) {
	if c == nil {
		return Change{}, false
	}
	for _, ch := range c.Settings[NormalizeID(id)] {
		if !ch.Conditional {
			return ch, true
		}
	}
	return Change{}, false
}

// NormalizeID trims and lowercases a callout identifier. Identifiers,
// settings keys and queries are all folded with it.
func NormalizeID(id string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(id))
}

// rootPaths are the places a callouts section is looked up, in order.
// The first matches a host registry dump ({"settings": {"callouts": ...}}),
// the second the callout-manager data file itself.
var rootPaths = []string{"settings.callouts", "callouts"}
