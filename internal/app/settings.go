package app

import (
	"path/filepath"
	"strings"

	"github.com/dshills/calloutls/internal/plugin/lua"
	"github.com/dshills/calloutls/internal/settings"
)

// LoadSettings reads callout settings from path. Lua files are evaluated
// in a fresh sandbox; everything else goes through settings.LoadFile. A
// missing file yields (nil, nil).
func LoadSettings(path string) (*settings.Callouts, error) {
	if strings.EqualFold(filepath.Ext(path), ".lua") {
		return lua.LoadSettings(path)
	}
	return settings.LoadFile(path)
}
