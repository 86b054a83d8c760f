package app

import (
	"fmt"

	"github.com/dshills/calloutls/internal/callout"
	"github.com/dshills/calloutls/internal/config"
	"github.com/dshills/calloutls/internal/config/notify"
	"github.com/dshills/calloutls/internal/config/watcher"
	"github.com/dshills/calloutls/internal/logging"
	"github.com/dshills/calloutls/internal/plugin/lua"
	"github.com/dshills/calloutls/internal/suggest"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

// newBootstrapper creates a new bootstrapper for the application.
func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      opts,
		initOrder: make([]string, 0, 5),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,
		b.initLogger,
		b.initCatalog,
		b.initLua,
		b.initWatcher,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	b.app.logger.Debug("bootstrapped %v", b.initOrder)
	return nil
}

// initConfig resolves the configuration and applies the option overrides.
func (b *bootstrapper) initConfig() error {
	cfg, err := config.Load(b.opts.ConfigPath)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}

	if b.opts.SettingsPath != "" {
		cfg.Settings.Path = config.ExpandPath(b.opts.SettingsPath)
	}
	if b.opts.LogLevel != "" {
		cfg.Logging.Level = b.opts.LogLevel
	}
	if b.opts.NoWatch {
		cfg.Settings.Watch = false
	}
	if err := cfg.Validate(); err != nil {
		return &InitError{Component: "config", Err: err}
	}

	b.app.config = cfg
	b.initOrder = append(b.initOrder, "config")
	return nil
}

// initLogger creates the application logger.
func (b *bootstrapper) initLogger() error {
	b.app.logger = logging.New(logging.Config{
		Level:  logging.ParseLevel(b.app.config.Logging.Level),
		Output: b.opts.LogOutput,
		Prefix: "calloutls",
	})
	b.initOrder = append(b.initOrder, "logger")
	return nil
}

// initCatalog creates the shared catalog, the change notifier and the
// session the Lua module drives. The catalog stays empty until a client
// or the catalog command signals ready.
func (b *bootstrapper) initCatalog() error {
	b.app.catalog = callout.NewCatalog()
	b.app.notifier = notify.New()
	b.app.session = suggest.New(suggest.NewMemoryEditor(""),
		suggest.WithCatalog(b.app.catalog),
		suggest.WithLogger(b.app.logger.WithComponent("lua")),
	)
	b.initOrder = append(b.initOrder, "catalog")
	return nil
}

// initLua creates the script sandbox and installs the callout module.
func (b *bootstrapper) initLua() error {
	b.app.lua = lua.NewState()
	lua.NewModule(b.app.session, b.app.logger.WithComponent("lua")).Install(b.app.lua)
	b.initOrder = append(b.initOrder, "lua")
	return nil
}

// initWatcher prepares the settings file watcher. It is started by Serve.
func (b *bootstrapper) initWatcher() error {
	cfg := b.app.config
	if !cfg.Settings.Watch || cfg.Settings.Path == "" {
		return nil
	}

	debounce, err := cfg.DebounceDuration()
	if err != nil {
		return &InitError{Component: "watcher", Err: fmt.Errorf("debounce: %w", err)}
	}
	w, err := watcher.New(cfg.Settings.Path, b.app.notifier,
		watcher.WithDebounce(debounce),
		watcher.WithLogger(b.app.logger.WithComponent("watcher")),
	)
	if err != nil {
		return &InitError{Component: "watcher", Err: err}
	}

	b.app.watcher = w
	b.initOrder = append(b.initOrder, "watcher")
	return nil
}

// cleanup releases initialized components in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "watcher":
			_ = b.app.watcher.Close()
		case "lua":
			_ = b.app.lua.Close()
		case "catalog":
			b.app.notifier.Close()
		}
	}
}
