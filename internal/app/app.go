package app

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/dshills/calloutls/internal/callout"
	"github.com/dshills/calloutls/internal/config"
	"github.com/dshills/calloutls/internal/config/notify"
	"github.com/dshills/calloutls/internal/config/watcher"
	"github.com/dshills/calloutls/internal/logging"
	"github.com/dshills/calloutls/internal/lsp"
	"github.com/dshills/calloutls/internal/plugin/lua"
	"github.com/dshills/calloutls/internal/settings"
	"github.com/dshills/calloutls/internal/suggest"
)

// Options configures the application. Non-empty values override the
// configuration file and environment.
type Options struct {
	// ConfigPath is the TOML configuration file. Empty uses
	// config.DefaultPath.
	ConfigPath string

	// SettingsPath overrides settings.path.
	SettingsPath string

	// LogLevel overrides logging.level.
	LogLevel string

	// NoWatch disables the settings watcher.
	NoWatch bool

	// Version is reported to clients.
	Version string

	// LogOutput receives log lines. Defaults to os.Stderr; stdout belongs
	// to the protocol.
	LogOutput io.Writer
}

// Application owns the long-lived components shared by every serve or
// listing run.
type Application struct {
	opts   Options
	config config.Config
	logger *logging.Logger

	catalog  *callout.Catalog
	notifier *notify.Notifier
	session  *suggest.Session
	lua      *lua.State
	watcher  *watcher.Watcher

	running      atomic.Bool
	closed       atomic.Bool
	shutdownOnce sync.Once
	shutdownErr  error
}

// New creates and bootstraps an application.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := newBootstrapper(app, opts).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Config returns the resolved configuration.
func (app *Application) Config() config.Config {
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger {
	return app.logger
}

// Catalog returns the shared callout catalog.
func (app *Application) Catalog() *callout.Catalog {
	return app.catalog
}

// Notifier returns the notifier settings changes are published on.
func (app *Application) Notifier() *notify.Notifier {
	return app.notifier
}

// Session returns the session bound to the Lua callout module.
func (app *Application) Session() *suggest.Session {
	return app.session
}

// IsRunning reports whether Serve is in progress.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Settings reads the configured settings file. Failures are logged and
// yield nil so the catalog falls back to the defaults.
func (app *Application) Settings() *settings.Callouts {
	path := app.config.Settings.Path
	if path == "" {
		return nil
	}
	src, err := LoadSettings(path)
	if err != nil {
		app.logger.Warn("settings %s: %v", path, err)
		return nil
	}
	return src
}

// ResolveCatalog populates the catalog the way a server does once its
// client is ready: settings file first, then the startup scripts.
func (app *Application) ResolveCatalog() []callout.Entry {
	app.session.Ready(app.Settings())
	app.runScripts()
	return app.catalog.Entries()
}

// Serve runs a language server on r and w until the client exits or ctx
// is cancelled.
func (app *Application) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	if app.closed.Load() {
		return ErrShutdown
	}
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	var closer io.Closer
	if c, ok := r.(io.Closer); ok {
		closer = c
	}
	server := lsp.NewServer(lsp.NewConn(r, w, closer), app.catalog,
		lsp.WithLogger(app.logger),
		lsp.WithSource(app.Settings),
		lsp.WithTriggerCharacters(app.config.Completion.TriggerCharacters),
		lsp.WithVersion(app.opts.Version),
		lsp.WithReadyHook(app.runScripts),
	)
	sub := server.Watch(app.notifier)
	defer sub.Unsubscribe()

	if app.watcher != nil {
		if err := app.watcher.Start(); err != nil {
			app.logger.Warn("settings watcher disabled: %v", NewComponentError("watcher", "start", err))
		}
	}

	app.logger.Info("language server %s started", server.ID())
	if err := server.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return NewComponentError("lsp", "serve", err)
	}
	return nil
}

// runScripts runs the configured Lua scripts against the callout module.
// Failures are logged by the runner.
func (app *Application) runScripts() {
	if len(app.config.Plugin.Scripts) == 0 {
		return
	}
	_ = lua.RunScripts(app.lua, app.config.Plugin.Scripts, app.logger.WithComponent("lua"))
}

// Shutdown releases every component. It is safe to call more than once.
func (app *Application) Shutdown() error {
	app.shutdownOnce.Do(func() {
		app.closed.Store(true)

		var errs ErrorList
		if app.watcher != nil {
			if err := app.watcher.Close(); err != nil {
				errs.Add(NewComponentError("watcher", "close", err))
			}
		}
		if app.lua != nil {
			if err := app.lua.Close(); err != nil {
				errs.Add(NewComponentError("lua", "close", err))
			}
		}
		if app.notifier != nil {
			app.notifier.Close()
		}
		app.shutdownErr = errs.AsError()
		app.logger.Debug("shutdown complete")
	})
	return app.shutdownErr
}
