package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/cdfuller/md-viewer/internal/markdown"
	"github.com/cdfuller/md-viewer/internal/renderer/core"
	"github.com/cdfuller/md-viewer/internal/renderer/overlay"
)

// Theme bundles everything one theme file can change: the text styles
// the compiler attaches to spans and the colors the overlay painter
// draws with.
type Theme struct {
	// Styles feed the markdown compiler.
	Styles markdown.StyleSet

	// Overlay feeds the overlay painter and the ANSI exporter.
	Overlay overlay.Config
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	return Theme{
		Styles:  markdown.DefaultStyles(),
		Overlay: overlay.DefaultConfig(),
	}
}

// ThemeLoader reads a JSON theme file.
type ThemeLoader struct {
	fs   FileSystem
	path string
}

// NewThemeLoader creates a theme loader for the given path.
func NewThemeLoader(path string) *ThemeLoader {
	return &ThemeLoader{
		fs:   DefaultFS(),
		path: path,
	}
}

// NewThemeLoaderWithFS creates a theme loader with a custom file system.
func NewThemeLoaderWithFS(fs FileSystem, path string) *ThemeLoader {
	return &ThemeLoader{
		fs:   fs,
		path: path,
	}
}

// Load reads the theme from the configured path. A missing file is not
// an error; every value keeps its built-in default. Values present in
// the file override the default individually.
func (l *ThemeLoader) Load() (Theme, error) {
	t := DefaultTheme()
	if l.path == "" {
		return t, nil
	}

	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, fmt.Errorf("reading theme file %s: %w", l.path, err)
	}

	if !gjson.ValidBytes(data) {
		return DefaultTheme(), &ParseError{Path: l.path, Message: "invalid JSON"}
	}
	if err := applyTheme(&t, data); err != nil {
		return DefaultTheme(), fmt.Errorf("theme %s: %w", l.path, err)
	}
	return t, nil
}

// applyTheme overrides theme values from the JSON document.
func applyTheme(t *Theme, data []byte) error {
	for i := 0; i < 6; i++ {
		base := fmt.Sprintf("headings.h%d", i+1)

		if err := applyColor(data, base+".fg", func(c core.Color) {
			t.Styles.Headings[i].Foreground = c
		}); err != nil {
			return err
		}
		applyAttr(data, base+".bold", &t.Styles.Headings[i], core.AttrBold)
		applyAttr(data, base+".italic", &t.Styles.Headings[i], core.AttrItalic)

		if err := applyColor(data, base+".band_bg", func(c core.Color) {
			t.Overlay.HeadingBands[i].Background = c
		}); err != nil {
			return err
		}
		if err := applyColor(data, base+".band_fg", func(c core.Color) {
			t.Overlay.HeadingBands[i].Foreground = c
		}); err != nil {
			return err
		}
	}

	if err := applyColor(data, "code.fg", func(c core.Color) {
		t.Styles.CodeBlock.Foreground = c
	}); err != nil {
		return err
	}
	// The code background shows through three surfaces: the span text,
	// the painter's edge-to-edge fill, and the frame border.
	if err := applyColor(data, "code.bg", func(c core.Color) {
		t.Styles.CodeBlock.Background = c
		t.Overlay.CodeBackground = c
		t.Overlay.CodeBorder.Background = c
	}); err != nil {
		return err
	}
	if err := applyColor(data, "code.border", func(c core.Color) {
		t.Overlay.CodeBorder.Foreground = c
	}); err != nil {
		return err
	}

	return applyColor(data, "rule.fg", func(c core.Color) {
		t.Overlay.RuleStyle.Foreground = c
	})
}

// applyColor parses and applies a color when the key is present.
func applyColor(data []byte, path string, set func(core.Color)) error {
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return nil
	}
	c, err := parseColor(res.String())
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	set(c)
	return nil
}

// applyAttr toggles a style attribute when the key is present.
func applyAttr(data []byte, path string, style *core.Style, attr core.Attribute) {
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return
	}
	if res.Bool() {
		style.Attributes = style.Attributes.With(attr)
	} else {
		style.Attributes = style.Attributes.Without(attr)
	}
}

// indexedNames spell the 16 palette colors, in index order.
var indexedNames = [...]string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "gray",
	"dark_gray", "light_red", "light_green", "light_yellow", "light_blue",
	"light_magenta", "light_cyan", "white",
}

// namedColors maps theme color names to palette entries.
var namedColors = func() map[string]core.Color {
	m := make(map[string]core.Color, len(indexedNames)+1)
	m["default"] = core.ColorDefault
	for i, name := range indexedNames {
		m[name] = core.ColorFromIndex(uint8(i))
	}
	return m
}()

// parseColor accepts a named terminal color, a palette index, or a
// #rrggbb hex value.
func parseColor(s string) (core.Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[name]; ok {
		return c, nil
	}
	if n, err := strconv.Atoi(name); err == nil {
		if n < 0 || n > 255 {
			return core.ColorDefault, fmt.Errorf("palette index %d out of range", n)
		}
		return core.ColorFromIndex(uint8(n)), nil
	}
	hex, err := colorful.Hex(name)
	if err != nil {
		return core.ColorDefault, fmt.Errorf("invalid color %q", s)
	}
	r, g, b := hex.RGB255()
	return core.ColorFromRGB(r, g, b), nil
}

// colorString renders a color the way the theme file spells it.
func colorString(c core.Color) string {
	switch {
	case c.Default:
		return "default"
	case c.Indexed:
		if int(c.R) < len(indexedNames) {
			return indexedNames[c.R]
		}
		return strconv.Itoa(int(c.R))
	default:
		return c.ToHex()
	}
}

// DefaultThemeJSON renders the built-in palette as an indented theme
// file, the starting point --init-theme writes out.
func DefaultThemeJSON() ([]byte, error) {
	t := DefaultTheme()
	data := []byte("{}")
	var err error

	set := func(path string, value any) {
		if err != nil {
			return
		}
		data, err = sjson.SetBytes(data, path, value)
	}

	for i := 0; i < 6; i++ {
		base := fmt.Sprintf("headings.h%d", i+1)
		st := t.Styles.Headings[i]
		band := t.Overlay.HeadingBands[i]
		set(base+".fg", colorString(st.Foreground))
		set(base+".bold", st.Attributes.Has(core.AttrBold))
		set(base+".italic", st.Attributes.Has(core.AttrItalic))
		set(base+".band_bg", colorString(band.Background))
		set(base+".band_fg", colorString(band.Foreground))
	}
	set("code.fg", colorString(t.Styles.CodeBlock.Foreground))
	set("code.bg", colorString(t.Styles.CodeBlock.Background))
	set("code.border", colorString(t.Overlay.CodeBorder.Foreground))
	set("rule.fg", colorString(t.Overlay.RuleStyle.Foreground))

	if err != nil {
		return nil, err
	}
	return pretty.Pretty(data), nil
}

// WriteDefaultTheme writes the built-in palette to path, creating
// parent directories and refusing to overwrite an existing file.
func WriteDefaultTheme(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("theme file %s already exists", path)
	} else if !os.IsNotExist(err) {
		return err
	}

	data, err := DefaultThemeJSON()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
