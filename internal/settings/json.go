package settings

import (
	"github.com/tidwall/gjson"
)

// FromJSON decodes a callouts section from a JSON document. It returns nil
// when the document is not valid JSON or has no callouts object.
func FromJSON(data []byte) *Callouts {
	if !gjson.ValidBytes(data) {
		return nil
	}

	root := gjson.ParseBytes(data)
	var section gjson.Result
	for _, path := range rootPaths {
		if r := root.Get(path); r.IsObject() {
			section = r
			break
		}
	}
	if !section.Exists() {
		return nil
	}

	out := &Callouts{Settings: make(map[string][]Change)}

	if custom := section.Get("custom"); custom.IsArray() {
		custom.ForEach(func(_, v gjson.Result) bool {
			if v.Type == gjson.String {
				out.Custom = append(out.Custom, v.Str)
			}
			return true
		})
	}

	if styles := section.Get("settings"); styles.IsObject() {
		styles.ForEach(func(k, v gjson.Result) bool {
			if !v.IsArray() {
				return true
			}
			var changes []Change
			v.ForEach(func(_, rec gjson.Result) bool {
				if rec.IsObject() {
					changes = append(changes, changeFromJSON(rec))
				}
				return true
			})
			out.Settings[NormalizeID(k.String())] = changes
			return true
		})
	}

	return out
}

func changeFromJSON(rec gjson.Result) Change {
	ch := Change{Conditional: truthyJSON(rec.Get("condition"))}
	changes := rec.Get("changes")
	if !changes.IsObject() {
		return ch
	}
	if icon := changes.Get("icon"); icon.Type == gjson.String {
		ch.Icon = icon.Str
	}
	if color := changes.Get("color"); color.Type == gjson.String {
		ch.Color = color.Str
	}
	return ch
}

// truthyJSON reports whether v would be truthy in the settings' origin
// runtime: null, false, 0 and "" are not.
func truthyJSON(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	default:
		return true
	}
}

func validJSON(data []byte) bool {
	return gjson.ValidBytes(data)
}
