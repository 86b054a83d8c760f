package callout

import (
	"strings"
	"sync/atomic"

	"github.com/dshills/calloutls/internal/settings"
)

// Catalog holds the current ordered list of callout entries.
//
// The list is replaced wholesale by Load. Readers always observe either the
// previous or the new list, never a partially built one.
type Catalog struct {
	entries    atomic.Pointer[[]Entry]
	generation atomic.Uint64
}

// NewCatalog creates an empty catalog. Call Load to populate it.
func NewCatalog() *Catalog {
	c := &Catalog{}
	empty := []Entry{}
	c.entries.Store(&empty)
	return c
}

// Build resolves the entry list for src without touching any catalog.
//
// A nil src yields the sixteen built-in entries. Otherwise custom identifiers
// are appended after the built-in ones and every identifier is styled by its
// first unconditional change record, falling back field by field to the
// built-in icon and color.
func Build(src *settings.Callouts) []Entry {
	if src == nil {
		return Defaults()
	}

	ids := BuiltinIDs()
	for _, id := range src.Custom {
		ids = append(ids, NormalizeID(id))
	}

	entries := make([]Entry, 0, len(ids))
	index := make(map[string]int, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		e := resolve(id, src)
		if i, dup := index[id]; dup {
			entries[i] = e
			continue
		}
		index[id] = len(entries)
		entries = append(entries, e)
	}
	return entries
}

func resolve(id string, src *settings.Callouts) Entry {
	e := Entry{ID: id, Icon: DefaultIcon(id), Color: DefaultColor(id)}

	base, ok := src.Base(id)
	if !ok {
		return e
	}
	if base.Icon != "" {
		e.Icon = base.Icon
	}
	if c, ok := ParseRGB(base.Color); ok {
		e.Color = c
	}
	return e
}

// Load rebuilds the catalog from src and returns the new entries.
func (c *Catalog) Load(src *settings.Callouts) []Entry {
	entries := Build(src)
	c.entries.Store(&entries)
	c.generation.Add(1)
	return clone(entries)
}

// Entries returns a copy of the current entries in catalog order.
func (c *Catalog) Entries() []Entry {
	return clone(*c.entries.Load())
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(*c.entries.Load())
}

// Generation counts completed loads.
func (c *Catalog) Generation() uint64 {
	return c.generation.Load()
}

// Lookup finds an entry by identifier, case-insensitively.
func (c *Catalog) Lookup(id string) (Entry, bool) {
	id = matchKey(id)
	for _, e := range *c.entries.Load() {
		if matchKey(e.ID) == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Match returns the entries whose identifier starts with query, compared
// case-insensitively, in catalog order. An empty query matches everything.
func (c *Catalog) Match(query string) []Entry {
	query = matchKey(query)
	entries := *c.entries.Load()

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if strings.HasPrefix(matchKey(e.ID), query) {
			out = append(out, e)
		}
	}
	return out
}

func clone(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
