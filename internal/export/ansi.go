// Package export renders compiled documents as ANSI-styled text for
// non-interactive output.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/cdfuller/md-viewer/internal/renderer/core"
	"github.com/cdfuller/md-viewer/internal/renderer/overlay"
)

const ansiReset = "\x1b[0m"

// Options configures a dump.
type Options struct {
	// Width is the output width in columns used to pad heading bands.
	// Values below 1 autodetect the terminal, falling back to 80.
	Width int

	// Theme supplies the heading band palette.
	Theme overlay.Config
}

// DefaultOptions returns the standard dump configuration.
func DefaultOptions() Options {
	return Options{
		Theme: overlay.DefaultConfig(),
	}
}

// Dump writes doc to out, one line per document line, styling each
// span with an SGR prefix and closing it with a reset. Heading lines
// take their band background and are padded with band-colored spaces
// to the output width, so the band reads as a full-width bar the way
// it does on screen.
func Dump(out io.Writer, doc core.Document, overlays overlay.Set, opts Options) error {
	width := opts.Width
	if width <= 0 {
		width = TerminalWidth()
	}

	bands := make(map[int]core.Color, len(overlays.Headings))
	for _, h := range overlays.Headings {
		bands[h.Line] = opts.Theme.Band(h.Level).Background
	}

	w := bufio.NewWriter(out)
	for i, line := range doc {
		lineBG, banded := bands[i]
		rendered := 0
		for _, span := range line.Spans {
			style := span.Style
			if banded && style.Background.IsDefault() {
				style.Background = lineBG
			}
			w.WriteString(stylePrefix(style))
			w.WriteString(span.Text)
			w.WriteString(ansiReset)
			rendered += core.DisplayWidth(span.Text)
		}
		if banded && rendered < width {
			filler := core.DefaultStyle().WithBackground(lineBG)
			w.WriteString(stylePrefix(filler))
			w.WriteString(strings.Repeat(" ", width-rendered))
			w.WriteString(ansiReset)
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}

// TerminalWidth returns the column count of stdout, or 80 when stdout
// is not a terminal.
func TerminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// stylePrefix builds the SGR sequence selecting style, or "" when the
// style carries nothing.
func stylePrefix(style core.Style) string {
	codes := make([]string, 0, 4)
	if code := colorCode(style.Foreground, true); code != "" {
		codes = append(codes, code)
	}
	if code := colorCode(style.Background, false); code != "" {
		codes = append(codes, code)
	}
	attrs := style.Attributes
	if attrs.Has(core.AttrBold) {
		codes = append(codes, "1")
	}
	if attrs.Has(core.AttrDim) {
		codes = append(codes, "2")
	}
	if attrs.Has(core.AttrItalic) {
		codes = append(codes, "3")
	}
	if attrs.Has(core.AttrUnderline) {
		codes = append(codes, "4")
	}
	if attrs.Has(core.AttrReverse) {
		codes = append(codes, "7")
	}
	if attrs.Has(core.AttrStrikethrough) {
		codes = append(codes, "9")
	}
	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

// colorCode returns the SGR parameter selecting c as foreground or
// background. The first 16 palette entries use the widely supported
// basic and bright codes; everything else goes through 38/48.
func colorCode(c core.Color, fg bool) string {
	switch {
	case c.IsDefault():
		return ""
	case c.Indexed && c.R < 8:
		if fg {
			return strconv.Itoa(30 + int(c.R))
		}
		return strconv.Itoa(40 + int(c.R))
	case c.Indexed && c.R < 16:
		if fg {
			return strconv.Itoa(90 + int(c.R) - 8)
		}
		return strconv.Itoa(100 + int(c.R) - 8)
	case c.Indexed:
		if fg {
			return "38;5;" + strconv.Itoa(int(c.R))
		}
		return "48;5;" + strconv.Itoa(int(c.R))
	default:
		base := 38
		if !fg {
			base = 48
		}
		return fmt.Sprintf("%d;2;%d;%d;%d", base, c.R, c.G, c.B)
	}
}
