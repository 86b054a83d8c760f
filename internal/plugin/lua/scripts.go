package lua

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/calloutls/internal/logging"
	"github.com/dshills/calloutls/internal/settings"
)

// LoadSettings runs the script at path in a fresh sandbox and decodes the
// table it returns as callout settings. The script has no access to the
// callout module. A missing file yields (nil, nil), as with
// settings.LoadFile.
func LoadSettings(path string, opts ...StateOption) (*settings.Callouts, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	state := NewState(opts...)
	defer state.Close()

	v, err := state.EvalFile(path)
	if err != nil {
		return nil, &settings.ParseError{Path: path, Err: err}
	}
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return nil, &settings.ParseError{Path: path, Err: ErrNoSettings}
	}
	return settingsFromTable(NewBridge(state.LuaState()), tbl), nil
}

// RunScripts executes each script in order. A failing script is logged and
// does not stop the others; the failures are returned joined.
func RunScripts(state *State, paths []string, logger *logging.Logger) error {
	if logger == nil {
		logger = logging.Nop()
	}

	var errs []error
	for _, path := range paths {
		if err := state.DoFile(path); err != nil {
			logger.Warn("lua script %s: %v", path, err)
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		logger.Debug("ran lua script %s", path)
	}
	return errors.Join(errs...)
}
