// Package source loads the viewed markdown file and watches it for
// changes.
package source

import (
	"fmt"
	"os"
	"path/filepath"
)

// File is the markdown file being viewed. It remembers the path as the
// user spelled it for display, and the absolute path for reading and
// watching.
type File struct {
	display string
	path    string
}

// NewFile resolves path and verifies it names a regular file.
func NewFile(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &File{display: path, path: abs}, nil
}

// Path returns the absolute file path.
func (f *File) Path() string {
	return f.path
}

// DisplayPath returns the path as given on the command line.
func (f *File) DisplayPath() string {
	return f.display
}

// Read returns the current file contents.
func (f *File) Read() (string, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
