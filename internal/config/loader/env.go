package loader

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix is the prefix of every calloutls environment variable.
const EnvPrefix = "CALLOUTLS_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix, with trailing underscore
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvLoader creates a loader for variables starting with prefix.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
		environ: os.Environ,
	}
}

func defaultEnvMapping() map[string]string {
	return map[string]string{
		"CALLOUTLS_LOG_LEVEL":     "logging.level",
		"CALLOUTLS_SETTINGS_PATH": "settings.path",
		"CALLOUTLS_WATCH":         "settings.watch",
	}
}

// Load reads matching environment variables into a configuration map.
// Explicitly mapped variables win over derived ones.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	mapped := make(map[string]string)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		if path, ok := l.mapping[name]; ok {
			mapped[path] = value
			continue
		}
		setByPath(config, l.envToPath(name), parseValue(value))
	}

	for path, value := range mapped {
		setByPath(config, path, parseValue(value))
	}

	return config, nil
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// envToPath converts CALLOUTLS_SETTINGS_DEBOUNCE_MS to settings.debounceMs.
func (l *EnvLoader) envToPath(env string) string {
	parts := strings.Split(strings.TrimPrefix(env, l.prefix), "_")

	section := strings.ToLower(parts[0])
	if len(parts) == 1 {
		return section
	}

	name := strings.ToLower(parts[1])
	for _, part := range parts[2:] {
		if part != "" {
			name += strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
		}
	}
	return section + "." + name
}

// parseValue converts booleans and integers; everything else stays a string.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}

// LoadDotEnv loads KEY=value pairs from the given .env files into the
// process environment. Variables already set are left alone and missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}
