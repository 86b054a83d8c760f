// Package main is the entry point for the calloutls language server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/calloutls/internal/app"
	"github.com/dshills/calloutls/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("calloutls", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts app.Options
	var showVersion bool
	var colorMode string

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.SettingsPath, "settings", "", "Callout settings file (.json, .yaml, .toml or .lua)")
	fs.StringVar(&opts.SettingsPath, "s", "", "Callout settings file (shorthand)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.NoWatch, "no-watch", false, "Do not reload when the settings file changes")
	fs.StringVar(&colorMode, "color", "auto", "Catalog listing colors (auto, always, never)")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "calloutls - callout completion language server\n\n")
		fmt.Fprintf(stderr, "Usage: calloutls [options] [serve|catalog]\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		fmt.Fprintf(stderr, "  serve     Run the language server on stdin/stdout (default)\n")
		fmt.Fprintf(stderr, "  catalog   Print the resolved callout catalog\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if showVersion {
		fmt.Fprintf(stdout, "calloutls %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	if opts.LogLevel != "" && !logging.ValidLevel(opts.LogLevel) {
		fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		return 2
	}

	command := "serve"
	if fs.NArg() > 0 {
		command = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	opts.Version = version
	opts.LogOutput = stderr

	switch command {
	case "serve":
		return serve(opts, stdin, stdout, stderr)
	case "catalog":
		colored, ok := useColor(colorMode, stdout)
		if !ok {
			fmt.Fprintf(stderr, "Error: invalid color mode %q (must be auto, always, or never)\n", colorMode)
			return 2
		}
		opts.NoWatch = true
		return catalog(opts, stdout, stderr, colored)
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n", command)
		fs.Usage()
		return 2
	}
}

func serve(opts app.Options, stdin io.Reader, stdout, stderr io.Writer) int {
	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	// Handle signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Serve(ctx, stdin, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func catalog(opts app.Options, stdout, stderr io.Writer, colored bool) int {
	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	if err := app.WriteCatalog(stdout, application.ResolveCatalog(), colored); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// useColor resolves the color mode. auto colors only terminal output.
func useColor(mode string, w io.Writer) (colored, ok bool) {
	switch mode {
	case "always":
		return true, true
	case "never":
		return false, true
	case "auto":
		f, isFile := w.(*os.File)
		return isFile && term.IsTerminal(int(f.Fd())), true
	default:
		return false, false
	}
}
