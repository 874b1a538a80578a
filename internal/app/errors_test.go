package app

import (
	"errors"
	"os"
	"testing"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{
			name:     "op only",
			err:      &OperationError{Op: "reload"},
			expected: "reload",
		},
		{
			name:     "op and target",
			err:      &OperationError{Op: "read", Target: "notes.md"},
			expected: "read notes.md",
		},
		{
			name:     "with context",
			err:      &OperationError{Op: "read", Target: "notes.md", Context: "watcher"},
			expected: "read notes.md (watcher)",
		},
		{
			name:     "with wrapped error",
			err:      &OperationError{Op: "read", Target: "notes.md", Err: os.ErrNotExist},
			expected: "read notes.md: file does not exist",
		},
		{
			name:     "nil receiver",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.expected {
			t.Errorf("%s: Error() = %q, expected %q", tt.name, got, tt.expected)
		}
	}
}

func TestOperationError_Is(t *testing.T) {
	err := NewOperationError("read", "notes.md", os.ErrNotExist)

	if !errors.Is(err, os.ErrNotExist) {
		t.Error("expected errors.Is to match wrapped error")
	}
	if errors.Is(err, os.ErrPermission) {
		t.Error("expected errors.Is not to match unrelated error")
	}
	if !errors.Is(err, err) {
		t.Error("expected errors.Is to match same instance")
	}
}

func TestOperationError_WithContext(t *testing.T) {
	err := NewOperationError("read", "notes.md", nil).WithContext("startup")
	if err.Context != "startup" {
		t.Errorf("Context = %q, expected %q", err.Context, "startup")
	}

	var nilErr *OperationError
	if nilErr.WithContext("x") != nil {
		t.Error("expected nil receiver to stay nil")
	}
}

func TestComponentError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ComponentError
		expected string
	}{
		{
			name:     "component only",
			err:      &ComponentError{Component: "watcher"},
			expected: "watcher",
		},
		{
			name:     "component and action",
			err:      &ComponentError{Component: "watcher", Action: "watch"},
			expected: "watcher: watch",
		},
		{
			name:     "full",
			err:      NewComponentError("watcher", "watch", os.ErrClosed),
			expected: "watcher: watch: file already closed",
		},
		{
			name:     "component and error",
			err:      &ComponentError{Component: "config", Err: os.ErrNotExist},
			expected: "config: file does not exist",
		},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.expected {
			t.Errorf("%s: Error() = %q, expected %q", tt.name, got, tt.expected)
		}
	}
}

func TestComponentError_Unwrap(t *testing.T) {
	err := NewComponentError("watcher", "watch", os.ErrClosed)
	if !errors.Is(err, os.ErrClosed) {
		t.Error("expected errors.Is to reach wrapped error")
	}
}

func TestInitError(t *testing.T) {
	err := &InitError{Component: "backend", Err: os.ErrPermission}

	if got := err.Error(); got != "init backend: permission denied" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Error("expected errors.Is to reach wrapped error")
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("expected nil for nil error")
	}

	err := WrapError(os.ErrNotExist, "loading %s", "theme.json")
	if err == nil {
		t.Fatal("expected wrapped error")
	}
	if err.Error() != "loading theme.json: file does not exist" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Error("expected errors.Is to reach wrapped error")
	}
}
