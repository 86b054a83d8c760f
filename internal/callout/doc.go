// Package callout owns the catalog of known markdown callout types.
//
// A callout is opened in a markdown blockquote with `> [!type]`. Each known
// type carries an icon reference (a lucide icon name) and an RGB color used
// when suggestions are rendered.
//
// The catalog starts from a fixed table of sixteen built-in types and can be
// extended and restyled by the callout-manager settings (see package
// settings). Loading never fails: missing or malformed settings degrade to
// the built-in defaults.
//
//	cat := callout.NewCatalog()
//	cat.Load(nil)                 // sixteen built-in entries
//	cat.Load(src)                 // defaults + custom types, with overrides
//	for _, e := range cat.Match("wa") {
//	    fmt.Println(e.ID, e.Icon, e.Color)
//	}
package callout
