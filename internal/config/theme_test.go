package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/cdfuller/md-viewer/internal/renderer/core"
)

func TestThemeMissingFileReturnsDefaults(t *testing.T) {
	loader := NewThemeLoaderWithFS(NewMemFS(), "/nope/theme.json")
	th, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}
	if !reflect.DeepEqual(th, DefaultTheme()) {
		t.Error("Load() != DefaultTheme() for missing file")
	}
}

func TestThemeOverridesHeadingBand(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/theme.json", `{
  "headings": {
    "h1": {"band_bg": "#ff0000", "band_fg": "#00ff00"}
  }
}`)

	th, err := NewThemeLoaderWithFS(memfs, "/theme.json").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	band := th.Overlay.HeadingBands[0]
	if !band.Background.Equals(core.ColorFromRGB(255, 0, 0)) {
		t.Errorf("band background = %v, want #ff0000", band.Background)
	}
	if !band.Foreground.Equals(core.ColorFromRGB(0, 255, 0)) {
		t.Errorf("band foreground = %v, want #00ff00", band.Foreground)
	}
	// Untouched levels keep the defaults.
	def := DefaultTheme().Overlay.HeadingBands[1]
	if !th.Overlay.HeadingBands[1].Background.Equals(def.Background) {
		t.Error("h2 band changed without a theme entry")
	}
}

func TestThemeOverridesHeadingText(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/theme.json", `{
  "headings": {
    "h2": {"fg": "red", "bold": false, "italic": true}
  }
}`)

	th, err := NewThemeLoaderWithFS(memfs, "/theme.json").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	style := th.Styles.Headings[1]
	if !style.Foreground.Equals(core.ColorRed) {
		t.Errorf("h2 foreground = %v, want red", style.Foreground)
	}
	if style.Attributes.Has(core.AttrBold) {
		t.Error("h2 kept bold, want cleared")
	}
	if !style.Attributes.Has(core.AttrItalic) {
		t.Error("h2 missing italic")
	}
}

func TestThemeCodeColorsPropagate(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/theme.json", `{"code": {"bg": "#101010", "border": "#aabbcc"}}`)

	th, err := NewThemeLoaderWithFS(memfs, "/theme.json").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	bg := core.ColorFromRGB(16, 16, 16)
	if !th.Styles.CodeBlock.Background.Equals(bg) {
		t.Errorf("code span background = %v", th.Styles.CodeBlock.Background)
	}
	if !th.Overlay.CodeBackground.Equals(bg) {
		t.Errorf("painter background = %v", th.Overlay.CodeBackground)
	}
	if !th.Overlay.CodeBorder.Background.Equals(bg) {
		t.Errorf("border background = %v", th.Overlay.CodeBorder.Background)
	}
	if !th.Overlay.CodeBorder.Foreground.Equals(core.ColorFromRGB(0xaa, 0xbb, 0xcc)) {
		t.Errorf("border foreground = %v", th.Overlay.CodeBorder.Foreground)
	}
}

func TestThemeInvalidJSON(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/theme.json", `{"headings": `)

	_, err := NewThemeLoaderWithFS(memfs, "/theme.json").Load()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Load() error = %v, want *ParseError", err)
	}
	if pe.Path != "/theme.json" {
		t.Errorf("ParseError.Path = %q", pe.Path)
	}
}

func TestThemeInvalidColorNamesKey(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/theme.json", `{"rule": {"fg": "chartreuse-ish"}}`)

	_, err := NewThemeLoaderWithFS(memfs, "/theme.json").Load()
	if err == nil {
		t.Fatal("Load() error = nil, want invalid color error")
	}
	if !strings.Contains(err.Error(), "rule.fg") {
		t.Errorf("error = %q, want it to name the offending key", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    core.Color
		wantErr bool
	}{
		{in: "cyan", want: core.ColorCyan},
		{in: "DARK_GRAY", want: core.ColorDarkGray},
		{in: " white ", want: core.ColorWhite},
		{in: "default", want: core.ColorDefault},
		{in: "123", want: core.ColorFromIndex(123)},
		{in: "#0c101a", want: core.ColorFromRGB(12, 16, 26)},
		{in: "#FF00FF", want: core.ColorFromRGB(255, 0, 255)},
		{in: "300", wantErr: true},
		{in: "bogus", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseColor(%q) error = nil, want error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseColor(%q) error = %v", tt.in, err)
			continue
		}
		if !got.Equals(tt.want) {
			t.Errorf("parseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDefaultThemeJSONRoundTrip(t *testing.T) {
	data, err := DefaultThemeJSON()
	if err != nil {
		t.Fatalf("DefaultThemeJSON() error = %v", err)
	}
	if !gjson.ValidBytes(data) {
		t.Fatal("DefaultThemeJSON() produced invalid JSON")
	}

	memfs := NewMemFS()
	memfs.files["/theme.json"] = data
	th, err := NewThemeLoaderWithFS(memfs, "/theme.json").Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(th, DefaultTheme()) {
		t.Error("loading the generated theme does not reproduce the defaults")
	}
}

func TestDefaultThemeJSONNamesAllLevels(t *testing.T) {
	data, err := DefaultThemeJSON()
	if err != nil {
		t.Fatalf("DefaultThemeJSON() error = %v", err)
	}
	for _, key := range []string{
		"headings.h1.band_bg", "headings.h6.band_fg",
		"code.fg", "code.bg", "code.border", "rule.fg",
	} {
		if !gjson.GetBytes(data, key).Exists() {
			t.Errorf("generated theme missing %s", key)
		}
	}
}

func TestWriteDefaultTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "themes", "theme.json")

	if err := WriteDefaultTheme(path); err != nil {
		t.Fatalf("WriteDefaultTheme() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written theme: %v", err)
	}
	if !gjson.ValidBytes(data) {
		t.Error("written theme is not valid JSON")
	}

	if err := WriteDefaultTheme(path); err == nil {
		t.Error("WriteDefaultTheme() overwrote an existing file")
	}
}
