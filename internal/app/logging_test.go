package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevelOff, "OFF"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.level.String()
		if result != tt.expected {
			t.Errorf("LogLevel(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"off", LogLevelOff},
		{"OFF", LogLevelOff},
		{"none", LogLevelOff},
		{"unknown", LogLevelInfo}, // Default
		{"", LogLevelInfo},        // Default
	}

	for _, tt := range tests {
		result := ParseLogLevel(tt.input)
		if result != tt.expected {
			t.Errorf("ParseLogLevel('%s') = %d, expected %d", tt.input, result, tt.expected)
		}
	}
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelDebug,
		Output: &buf,
		Prefix: "test",
	})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	for _, want := range []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]", "test:"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output, got %q", want, output)
		}
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelWarn,
		Output: &buf,
	})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	if strings.Contains(output, "[DEBUG]") || strings.Contains(output, "[INFO]") {
		t.Errorf("expected debug/info filtered out, got %q", output)
	}
	if !strings.Contains(output, "[WARN]") || !strings.Contains(output, "[ERROR]") {
		t.Errorf("expected warn/error in output, got %q", output)
	}
}

func TestLogger_OffSilencesEverything(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelOff,
		Output: &buf,
	})

	logger.Debug("a")
	logger.Info("b")
	logger.Warn("c")
	logger.Error("d")

	if buf.Len() != 0 {
		t.Errorf("expected no output at level off, got %q", buf.String())
	}
}

func TestLogger_FormatArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.Info("viewing %s (%d bytes)", "doc.md", 42)

	if !strings.Contains(buf.String(), "viewing doc.md (42 bytes)") {
		t.Errorf("expected formatted message, got %q", buf.String())
	}
}

func TestLogger_WithField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.WithField("path", "doc.md").Info("loaded")

	output := buf.String()
	if !strings.Contains(output, "{path=doc.md}") {
		t.Errorf("expected field rendering, got %q", output)
	}
}

func TestLogger_WithFieldDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	derived := logger.WithField("k", "v")
	if len(logger.fields) != 0 {
		t.Error("parent logger gained fields")
	}
	if len(derived.fields) != 1 {
		t.Error("derived logger missing field")
	}
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.WithComponent("watcher").Warn("dropped event")

	if !strings.Contains(buf.String(), "component=watcher") {
		t.Errorf("expected component field, got %q", buf.String())
	}
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.WithFields(map[string]any{"a": 1}).WithFields(map[string]any{"b": 2}).Info("x")

	output := buf.String()
	if !strings.Contains(output, "a=1") || !strings.Contains(output, "b=2") {
		t.Errorf("expected both fields, got %q", output)
	}
}

func TestLogger_Timestamp(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.Info("x")

	// 2006-01-02T15:04:05.000 is 23 characters.
	line := buf.String()
	if len(line) < 23 || line[10] != 'T' || line[19] != '.' {
		t.Errorf("unexpected timestamp format: %q", line)
	}
}

func TestNullLogger(t *testing.T) {
	logger := NullLogger()
	// Must not panic and must not write anywhere.
	logger.Debug("a")
	logger.WithField("k", "v").Error("b")
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelError, Output: &buf})

	logger.Info("hidden")
	logger.SetLevel(LogLevelInfo)
	logger.Info("shown")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Error("expected message below level to be filtered")
	}
	if !strings.Contains(output, "shown") {
		t.Error("expected message after SetLevel")
	}
}

func TestGetLogger(t *testing.T) {
	if GetLogger() == nil {
		t.Fatal("GetLogger() returned nil")
	}
	if GetLogger() != GetLogger() {
		t.Error("expected singleton logger")
	}
}
