package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const managerData = `{
  "calloutDetection": {"obsidian": true},
  "callouts": {
    "custom": ["custom1", 42, "Todo"],
    "settings": {
      "custom1": [{"changes": {"icon": "x", "color": "1,2,3"}}],
      "note": [
        {"condition": {"colorScheme": "dark"}, "changes": {"color": "9, 9, 9"}},
        {"changes": {"icon": "lucide-pen"}}
      ],
      "tip": "not-a-list",
      "warning": [{"condition": null, "changes": {"color": "#ff0000"}}]
    }
  }
}`

func TestFromJSON_ManagerData(t *testing.T) {
	cs := FromJSON([]byte(managerData))
	if cs == nil {
		t.Fatal("FromJSON returned nil")
	}

	if len(cs.Custom) != 2 || cs.Custom[0] != "custom1" || cs.Custom[1] != "Todo" {
		t.Errorf("Custom = %v, want [custom1 Todo]", cs.Custom)
	}

	base, ok := cs.Base("custom1")
	if !ok || base.Icon != "x" || base.Color != "1,2,3" {
		t.Errorf("Base(custom1) = %+v, %v", base, ok)
	}

	base, ok = cs.Base("note")
	if !ok || base.Icon != "lucide-pen" || base.Color != "" {
		t.Errorf("Base(note) = %+v, %v; want unconditional record", base, ok)
	}

	if _, ok := cs.Settings["tip"]; ok {
		t.Error("wrong-shaped settings entry should be dropped")
	}

	base, ok = cs.Base("warning")
	if !ok || base.Color != "#ff0000" {
		t.Errorf("null condition should count as unconditional, got %+v, %v", base, ok)
	}
}

func TestFromJSON_RegistryWrapper(t *testing.T) {
	doc := `{"settings": {"callouts": {"custom": ["a"]}}}`
	cs := FromJSON([]byte(doc))
	if cs == nil || len(cs.Custom) != 1 || cs.Custom[0] != "a" {
		t.Fatalf("FromJSON = %+v", cs)
	}
}

func TestFromJSON_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"invalid", `{"callouts": `},
		{"empty object", `{}`},
		{"callouts not object", `{"callouts": []}`},
		{"settings missing callouts", `{"settings": {}}`},
		{"scalar", `42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if cs := FromJSON([]byte(tt.doc)); cs != nil {
				t.Errorf("FromJSON(%s) = %+v, want nil", tt.doc, cs)
			}
		})
	}
}

func TestFromJSON_MissingFields(t *testing.T) {
	cs := FromJSON([]byte(`{"callouts": {"custom": "nope"}}`))
	if cs == nil {
		t.Fatal("callouts object present, want non-nil")
	}
	if len(cs.Custom) != 0 || len(cs.Settings) != 0 {
		t.Errorf("wrong-shaped fields should be empty, got %+v", cs)
	}
}

func TestBase_OnlyConditional(t *testing.T) {
	cs := &Callouts{Settings: map[string][]Change{
		"note": {{Conditional: true, Icon: "x"}},
	}}
	if _, ok := cs.Base("note"); ok {
		t.Error("Base should skip conditional records")
	}

	var nilCS *Callouts
	if _, ok := nilCS.Base("note"); ok {
		t.Error("Base on nil should report false")
	}
}

func TestFromMap(t *testing.T) {
	root := map[string]any{
		"callouts": map[string]any{
			"custom": []any{"custom1", 3},
			"settings": map[string]any{
				"custom1": []any{
					map[string]any{"condition": false, "changes": map[string]any{"icon": "x", "color": "1,2,3"}},
				},
				"info": []any{
					map[string]any{"condition": "dark", "changes": map[string]any{"icon": "y"}},
				},
				"bad": 7,
			},
		},
	}

	cs := FromMap(root)
	if cs == nil {
		t.Fatal("FromMap returned nil")
	}
	if len(cs.Custom) != 1 || cs.Custom[0] != "custom1" {
		t.Errorf("Custom = %v", cs.Custom)
	}
	if base, ok := cs.Base("custom1"); !ok || base.Icon != "x" {
		t.Errorf("Base(custom1) = %+v, %v", base, ok)
	}
	if _, ok := cs.Base("info"); ok {
		t.Error("string condition should be conditional")
	}
	if _, ok := cs.Settings["bad"]; ok {
		t.Error("wrong-shaped entry should be dropped")
	}

	if FromMap(map[string]any{"callouts": "x"}) != nil {
		t.Error("non-map callouts should yield nil")
	}
	if FromMap(nil) != nil {
		t.Error("nil root should yield nil")
	}
}

func TestSettingsKeys_Normalized(t *testing.T) {
	doc := `{"callouts": {"settings": {
		"Note": [{"changes": {"icon": "first"}}],
		"NOTE": [{"changes": {"icon": "last"}}],
		" Tip ": [{"changes": {"color": "1, 2, 3"}}]
	}}}`

	for i := 0; i < 20; i++ {
		cs := FromJSON([]byte(doc))
		if len(cs.Settings) != 2 {
			t.Fatalf("Settings = %v, want keys note and tip", cs.Settings)
		}
		if base, ok := cs.Base("note"); !ok || base.Icon != "last" {
			t.Fatalf("Base(note) = %+v, %v; want the last key in document order", base, ok)
		}
		if base, ok := cs.Base("TIP"); !ok || base.Color != "1, 2, 3" {
			t.Errorf("Base(TIP) = %+v, %v", base, ok)
		}
	}

	root := map[string]any{"callouts": map[string]any{"settings": map[string]any{
		"note": []any{map[string]any{"changes": map[string]any{"icon": "lower"}}},
		"Note": []any{map[string]any{"changes": map[string]any{"icon": "title"}}},
		"NOTE": []any{map[string]any{"changes": map[string]any{"icon": "upper"}}},
	}}}
	// Sorted order is NOTE, Note, note; the last one wins on every load.
	for i := 0; i < 20; i++ {
		cs := FromMap(root)
		if base, ok := cs.Base("Note"); !ok || base.Icon != "lower" {
			t.Fatalf("FromMap Base(Note) = %+v, %v; want lower", base, ok)
		}
	}
}

func TestDecode_Formats(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"data.json", `{"callouts": {"custom": ["custom1"]}}`},
		{"data.yaml", "callouts:\n  custom:\n    - custom1\n"},
		{"data.yml", "settings:\n  callouts:\n    custom: [custom1]\n"},
		{"data.toml", "[callouts]\ncustom = [\"custom1\"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs, err := Decode(tt.name, []byte(tt.data))
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if cs == nil || len(cs.Custom) != 1 || cs.Custom[0] != "custom1" {
				t.Errorf("Decode = %+v", cs)
			}
		})
	}
}

func TestDecode_ParseErrors(t *testing.T) {
	for _, name := range []string{"a.json", "a.yaml", "a.toml"} {
		_, err := Decode(name, []byte("{{{ ::: ["))
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Decode(%s) error = %v, want *ParseError", name, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	cs, err := LoadFile(filepath.Join(dir, "missing.json"))
	if err != nil || cs != nil {
		t.Errorf("missing file: got %+v, %v; want nil, nil", cs, err)
	}

	path := filepath.Join(dir, "data.json")
	if err := os.WriteFile(path, []byte(managerData), 0o644); err != nil {
		t.Fatal(err)
	}
	cs, err = LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cs == nil || len(cs.Custom) != 2 {
		t.Errorf("LoadFile = %+v", cs)
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if cs, err := LoadFile(empty); err != nil || cs != nil {
		t.Errorf("empty file: got %+v, %v", cs, err)
	}
}
