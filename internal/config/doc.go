// Package config provides calloutls configuration.
//
// Configuration is layered, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command-line flags      │  ← applied by the caller
//	├─────────────────────────────┤
//	│  3. Environment (CALLOUTLS_)│  ← .env files are loaded first
//	├─────────────────────────────┤
//	│  2. config.toml             │  ← $XDG_CONFIG_HOME/calloutls/
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: TOML, environment and .env sources
//   - notify: settings change notification
//   - watcher: settings file watching
//
// # File format
//
//	[logging]
//	level = "info"
//
//	[settings]
//	path = "~/vault/.obsidian/plugins/callout-manager/data.json"
//	watch = true
//	debounce = "200ms"
//
//	[completion]
//	triggerCharacters = ["[", "!"]
//
//	[plugin]
//	scripts = ["~/.config/calloutls/init.lua"]
package config
