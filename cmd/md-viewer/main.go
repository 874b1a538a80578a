// Package main is the entry point for the md-viewer markdown reader.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cdfuller/md-viewer/internal/app"
	"github.com/cdfuller/md-viewer/internal/config"
	"github.com/cdfuller/md-viewer/internal/export"
	"github.com/cdfuller/md-viewer/internal/markdown"
	"github.com/cdfuller/md-viewer/internal/source"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	// Writing the starter theme needs no document, so handle it before
	// the path check.
	if opts.initTheme {
		return writeStarterTheme(opts.themePath)
	}

	if opts.path == "" {
		fmt.Fprintln(os.Stderr, "Error: no markdown file given")
		flag.Usage()
		return 2
	}

	settings := loadSettings(opts)
	theme := loadTheme(settings.Theme)

	logger := app.GetLogger()
	logger.SetLevel(app.ParseLogLevel(settings.LogLevel))
	if settings.LogFile != "" {
		f, err := os.OpenFile(settings.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		} else {
			defer f.Close()
			logger.SetOutput(f)
		}
	}

	if opts.dump {
		if err := dumpFile(opts.path, settings, theme); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	application, err := app.New(app.Options{
		Path:     opts.path,
		Settings: settings,
		Theme:    theme,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		// Check if it's a normal quit using errors.Is for wrapped errors
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

type cliOptions struct {
	path       string
	configPath string
	themePath  string
	logLevel   string
	logFile    string
	dump       bool
	initTheme  bool
	noWatch    bool
}

func parseFlags() cliOptions {
	var opts cliOptions
	var showVersion bool
	var showHelp bool

	flag.BoolVar(&opts.dump, "dump", false, "Render ANSI text to stdout instead of launching the viewer")
	flag.BoolVar(&opts.dump, "d", false, "Render ANSI text to stdout (shorthand)")
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.themePath, "theme", "", "Path to JSON theme file")
	flag.BoolVar(&opts.initTheme, "init-theme", false, "Write the default theme file and exit")
	flag.BoolVar(&opts.noWatch, "no-watch", false, "Disable automatic reload when the file changes")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error, off)")
	flag.StringVar(&opts.logFile, "log-file", "", "Append logs to this file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "md-viewer - terminal markdown reader\n\n")
		fmt.Fprintf(os.Stderr, "Usage: md-viewer [options] <path-to-markdown>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  md-viewer README.md            View a file\n")
		fmt.Fprintf(os.Stderr, "  md-viewer --dump README.md     Render ANSI text to stdout\n")
		fmt.Fprintf(os.Stderr, "  md-viewer --no-watch notes.md  View without live reload\n")
		fmt.Fprintf(os.Stderr, "  md-viewer --init-theme         Write the default theme file\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("md-viewer %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Validate log level
	if opts.logLevel != "" {
		switch opts.logLevel {
		case "debug", "info", "warn", "error", "off":
			// Valid
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, error, or off)\n", opts.logLevel)
			os.Exit(1)
		}
	}

	opts.path = flag.Arg(0)
	return opts
}

// loadSettings reads the config file and layers the command line on
// top. Config trouble never blocks viewing; it warns and falls back to
// the defaults.
func loadSettings(opts cliOptions) config.Settings {
	path := opts.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	settings, err := config.NewLoader(path).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	if opts.noWatch {
		settings.Watch = false
	}
	if opts.themePath != "" {
		settings.Theme = opts.themePath
	}
	if opts.logLevel != "" {
		settings.LogLevel = opts.logLevel
	}
	if opts.logFile != "" {
		settings.LogFile = opts.logFile
	}
	return settings
}

// loadTheme reads the theme file named by the settings, or the default
// location when unset. A broken theme warns and keeps the built-in
// palette.
func loadTheme(path string) config.Theme {
	if path == "" {
		path = config.DefaultThemePath()
	}
	theme, err := config.NewThemeLoader(path).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using built-in theme)\n", err)
	}
	return theme
}

func writeStarterTheme(path string) int {
	if path == "" {
		path = config.DefaultThemePath()
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "Error: cannot determine the user config directory; pass --theme PATH")
		return 1
	}
	if err := config.WriteDefaultTheme(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Wrote default theme to %s\n", path)
	return 0
}

func dumpFile(path string, settings config.Settings, theme config.Theme) error {
	file, err := source.NewFile(path)
	if err != nil {
		return err
	}
	src, err := file.Read()
	if err != nil {
		return err
	}

	compile := markdown.DefaultOptions()
	compile.Styles = theme.Styles
	if settings.MaxTableWidth > 0 {
		compile.MaxTableWidth = settings.MaxTableWidth
	}
	result := markdown.CompileSource([]byte(src), compile)

	dump := export.DefaultOptions()
	dump.Theme = theme.Overlay
	return export.Dump(os.Stdout, result.Document, result.Overlays, dump)
}
