package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds the viewer configuration.
type Settings struct {
	// Theme is the path to the JSON theme file. Empty means the
	// default location under the user config directory.
	Theme string `toml:"theme"`

	// Watch reloads the document automatically when the file changes.
	Watch bool `toml:"watch"`

	// MaxTableWidth caps rendered table width in columns. Zero sizes
	// tables to the content width.
	MaxTableWidth int `toml:"max_table_width"`

	// LogLevel selects log verbosity: debug, info, warn, error, off.
	LogLevel string `toml:"log_level"`

	// LogFile receives log output. Empty disables logging; the
	// terminal is never used because the TUI owns it.
	LogFile string `toml:"log_file"`
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		Watch:    true,
		LogLevel: "info",
	}
}

// Loader reads viewer settings from a TOML file.
type Loader struct {
	fs   FileSystem
	path string
}

// NewLoader creates a loader for the given path.
func NewLoader(path string) *Loader {
	return &Loader{
		fs:   DefaultFS(),
		path: path,
	}
}

// NewLoaderWithFS creates a loader with a custom file system.
func NewLoaderWithFS(fs FileSystem, path string) *Loader {
	return &Loader{
		fs:   fs,
		path: path,
	}
}

// Load reads settings from the configured path. A missing file is not
// an error; the defaults come back unchanged. Keys absent from the
// file keep their default values.
func (l *Loader) Load() (Settings, error) {
	s := DefaultSettings()
	if l.path == "" {
		return s, nil
	}

	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading config file %s: %w", l.path, err)
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), parseError(l.path, err)
	}
	return s, nil
}

// parseError wraps a TOML decode failure, pulling out the source
// position when the decoder provides one.
func parseError(path string, err error) error {
	pe := &ParseError{Path: path, Message: err.Error(), Err: err}
	var de *toml.DecodeError
	if errors.As(err, &de) {
		pe.Line, pe.Column = de.Position()
	}
	return pe
}

// DefaultConfigPath returns the standard settings location, or "" when
// the user config directory is unknown.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "md-viewer", "config.toml")
}

// DefaultThemePath returns the standard theme location, or "" when the
// user config directory is unknown.
func DefaultThemePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "md-viewer", "theme.json")
}
