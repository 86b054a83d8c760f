package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/calloutls/internal/config/loader"
	"github.com/dshills/calloutls/internal/logging"
)

// Config is the resolved calloutls configuration.
type Config struct {
	Logging    LoggingConfig    `toml:"logging"`
	Settings   SettingsConfig   `toml:"settings"`
	Completion CompletionConfig `toml:"completion"`
	Plugin     PluginConfig     `toml:"plugin"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// SettingsConfig locates the callout-manager settings document.
type SettingsConfig struct {
	// Path is the settings file (.json, .yaml, .toml or .lua). Empty means
	// the catalog only uses settings pushed by the client.
	Path string `toml:"path"`

	// Watch reloads the catalog when the file changes.
	Watch bool `toml:"watch"`

	// Debounce coalesces bursts of file events.
	Debounce string `toml:"debounce"`
}

// CompletionConfig tunes the language server's completion capability.
type CompletionConfig struct {
	TriggerCharacters []string `toml:"triggerCharacters"`
}

// PluginConfig lists Lua scripts run at startup.
type PluginConfig struct {
	Scripts []string `toml:"scripts"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging:    LoggingConfig{Level: "info"},
		Settings:   SettingsConfig{Watch: true, Debounce: "200ms"},
		Completion: CompletionConfig{TriggerCharacters: []string{"[", "!"}},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/calloutls/config.toml, or "" when
// no user configuration directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "calloutls", "config.toml")
}

// Load resolves the configuration from path (empty for DefaultPath),
// .env files in the working directory and CALLOUTLS_ variables.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	if err := loader.LoadDotEnv(".env"); err != nil {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	fileCfg, err := loader.NewTOMLLoader(path).Load()
	if err != nil {
		return Config{}, err
	}
	envCfg, err := loader.NewEnvLoader(loader.EnvPrefix).Load()
	if err != nil {
		return Config{}, err
	}

	return FromMap(loader.DeepMerge(fileCfg, envCfg))
}

// FromMap decodes a merged configuration map on top of Default.
func FromMap(m map[string]any) (Config, error) {
	cfg := Default()
	if len(m) > 0 {
		data, err := toml.Marshal(m)
		if err != nil {
			return Config{}, fmt.Errorf("encoding merged config: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("decoding merged config: %w", err)
		}
	}

	cfg.Settings.Path = ExpandPath(cfg.Settings.Path)
	for i, s := range cfg.Plugin.Scripts {
		cfg.Plugin.Scripts[i] = ExpandPath(s)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return &ValidationError{Path: "logging.level", Value: c.Logging.Level, Message: "must be debug, info, warn or error"}
	}
	if _, err := c.DebounceDuration(); err != nil {
		return &ValidationError{Path: "settings.debounce", Value: c.Settings.Debounce, Message: err.Error()}
	}
	for _, ch := range c.Completion.TriggerCharacters {
		if len([]rune(ch)) != 1 {
			return &ValidationError{Path: "completion.triggerCharacters", Value: ch, Message: "must be single characters"}
		}
	}
	return nil
}

// DebounceDuration parses Settings.Debounce. Empty means no debouncing.
func (c Config) DebounceDuration() (time.Duration, error) {
	if c.Settings.Debounce == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Settings.Debounce)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration")
	}
	return d, nil
}

// ExpandPath expands a leading ~ and environment variables.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
