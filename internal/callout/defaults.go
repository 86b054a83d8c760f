package callout

// FallbackIcon is used for identifiers that have no built-in icon.
const FallbackIcon = "lucide-sticky-note"

// FallbackColor is used for identifiers that have no built-in color.
var FallbackColor = RGB{R: 68, G: 138, B: 255}

// builtinIDs is the ordered list of callout types every catalog starts with.
var builtinIDs = []string{
	"note", "info", "warning", "error", "success", "tip", "quote", "example",
	"seealso", "abstract", "summary", "important", "faq", "caution", "attention", "failure",
}

// builtinIcons maps identifiers to their default icon. It also knows a few
// types that are not part of the default list but are commonly declared as
// custom callouts.
var builtinIcons = map[string]string{
	"note":      "lucide-sticky-note",
	"info":      "lucide-info",
	"warning":   "lucide-alert-triangle",
	"error":     "lucide-x-circle",
	"success":   "lucide-check-circle",
	"tip":       "lucide-lightbulb",
	"quote":     "lucide-quote",
	"example":   "lucide-list",
	"seealso":   "lucide-link",
	"abstract":  "lucide-book-open",
	"summary":   "lucide-book-open",
	"important": "lucide-flame",
	"faq":       "lucide-help-circle",
	"caution":   "lucide-alert-triangle",
	"attention": "lucide-alert-triangle",
	"failure":   "lucide-x-circle",
	"positive":  "lucide-plus",
	"negative":  "lucide-minus",
	"question":  "lucide-help-circle",
	"test":      "lucide-triangle",
}

var builtinColors = map[string]RGB{
	"note":      {68, 138, 255},
	"info":      {0, 176, 255},
	"warning":   {255, 171, 0},
	"error":     {255, 71, 87},
	"success":   {0, 135, 90},
	"tip":       {0, 191, 165},
	"quote":     {158, 158, 158},
	"example":   {124, 77, 255},
	"seealso":   {0, 176, 255},
	"abstract":  {0, 176, 255},
	"summary":   {0, 176, 255},
	"important": {0, 191, 165},
	"faq":       {0, 135, 90},
	"caution":   {255, 171, 0},
	"attention": {255, 171, 0},
	"failure":   {255, 71, 87},
}

// BuiltinIDs returns a copy of the built-in identifier list in catalog order.
func BuiltinIDs() []string {
	ids := make([]string, len(builtinIDs))
	copy(ids, builtinIDs)
	return ids
}

// DefaultIcon returns the built-in icon for id, or FallbackIcon.
func DefaultIcon(id string) string {
	if icon, ok := builtinIcons[id]; ok {
		return icon
	}
	return FallbackIcon
}

// DefaultColor returns the built-in color for id, or FallbackColor.
func DefaultColor(id string) RGB {
	if c, ok := builtinColors[id]; ok {
		return c
	}
	return FallbackColor
}

// Defaults returns the sixteen built-in entries.
func Defaults() []Entry {
	entries := make([]Entry, 0, len(builtinIDs))
	for _, id := range builtinIDs {
		entries = append(entries, Entry{ID: id, Icon: DefaultIcon(id), Color: DefaultColor(id)})
	}
	return entries
}
