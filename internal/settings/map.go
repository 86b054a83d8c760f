package settings

import (
	"slices"
	"strings"
)

// FromMap decodes a callouts section from a generic value tree, as produced
// by YAML, TOML or Lua decoders. It returns nil when no callouts map is
// found.
func FromMap(root map[string]any) *Callouts {
	var section map[string]any
	for _, path := range rootPaths {
		if m, ok := lookupMap(root, path); ok {
			section = m
			break
		}
	}
	if section == nil {
		return nil
	}

	out := &Callouts{Settings: make(map[string][]Change)}

	for _, v := range asSlice(section["custom"]) {
		if s, ok := v.(string); ok {
			out.Custom = append(out.Custom, s)
		}
	}

	if styles, ok := section["settings"].(map[string]any); ok {
		// Decoded maps have no document order; sorted keys make collisions
		// resolve the same way on every load.
		keys := make([]string, 0, len(styles))
		for id := range styles {
			keys = append(keys, id)
		}
		slices.Sort(keys)

		for _, id := range keys {
			records, ok := asSliceOK(styles[id])
			if !ok {
				continue
			}
			var changes []Change
			for _, r := range records {
				if rec, ok := r.(map[string]any); ok {
					changes = append(changes, changeFromMap(rec))
				}
			}
			out.Settings[NormalizeID(id)] = changes
		}
	}

	return out
}

func changeFromMap(rec map[string]any) Change {
	ch := Change{Conditional: truthy(rec["condition"])}
	changes, ok := rec["changes"].(map[string]any)
	if !ok {
		return ch
	}
	if icon, ok := changes["icon"].(string); ok {
		ch.Icon = icon
	}
	if color, ok := changes["color"].(string); ok {
		ch.Color = color
	}
	return ch
}

// lookupMap walks a dot-separated path through nested maps.
func lookupMap(root map[string]any, path string) (map[string]any, bool) {
	cur := root
	for _, key := range strings.Split(path, ".") {
		next, ok := cur[key].(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func asSlice(v any) []any {
	s, _ := asSliceOK(v)
	return s
}

func asSliceOK(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, str := range s {
			out[i] = str
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(s))
		for i, m := range s {
			out[i] = m
		}
		return out, true
	default:
		return nil, false
	}
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case uint64:
		return x != 0
	case float64:
		return x != 0
	default:
		return true
	}
}
