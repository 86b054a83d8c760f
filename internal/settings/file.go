package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ParseError reports a settings file that could not be decoded at all.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse settings %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// errInvalidJSON is wrapped by ParseError for documents gjson rejects.
var errInvalidJSON = errors.New("invalid JSON")

// LoadFile reads a settings document from disk, choosing the decoder by
// extension (.json, .yaml, .yml, .toml). A missing file yields (nil, nil).
// A document without a callouts section also yields (nil, nil).
func LoadFile(path string) (*Callouts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}
	return Decode(path, data)
}

// Decode decodes data according to the extension of name.
func Decode(name string, data []byte) (*Callouts, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		var root map[string]any
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, &ParseError{Path: name, Err: err}
		}
		return FromMap(root), nil
	case ".toml":
		var root map[string]any
		if err := toml.Unmarshal(data, &root); err != nil {
			return nil, &ParseError{Path: name, Err: err}
		}
		return FromMap(root), nil
	default:
		if len(strings.TrimSpace(string(data))) == 0 {
			return nil, nil
		}
		cs := FromJSON(data)
		if cs == nil && !validJSON(data) {
			return nil, &ParseError{Path: name, Err: errInvalidJSON}
		}
		return cs, nil
	}
}
