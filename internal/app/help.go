package app

import (
	"github.com/cdfuller/md-viewer/internal/renderer/core"
	"github.com/cdfuller/md-viewer/internal/renderer/overlay"
)

const helpTitle = "Help (? / Esc to close)"

// helpPanel builds the modal help overlay: key bindings, a note on the
// heading bands, and usage tips.
func helpPanel() *overlay.Panel {
	header := core.NewStyle(core.ColorCyan).Bold()

	lines := []core.Line{
		core.LineOf(core.NewSpan("Navigation", header)),
		bullet("Space / n: page down"),
		bullet("p: page up"),
		bullet("j / k or arrow keys: line scroll"),
		bullet("PgUp / PgDn: page scroll"),
		bullet("g or Home: top  |  G or End: bottom"),
		bullet("r: reload file  |  q or Ctrl+C: quit"),
		bullet("?: toggle this help overlay"),
		core.BlankLine(),
		core.LineOf(core.NewSpan("Heading Styles", header)),
		bullet("H1/H2 headings use tinted bands for major sections."),
		bullet("H3-H6 darken progressively to show nested hierarchy."),
		bullet("Highlights span the full width behind the text."),
		core.BlankLine(),
		core.LineOf(core.NewSpan("Tips", header)),
		bullet("Edit in another window, press r to refresh instantly."),
		bullet("Use Space/PgDn to skim; g/G jump to top/bottom."),
		bullet("Arrow keys still work for fine-grained scrolling."),
	}

	return &overlay.Panel{
		Title: helpTitle,
		Lines: lines,
		Style: core.DefaultStyle().WithBackground(core.ColorBlack),
	}
}

func bullet(text string) core.Line {
	return core.PlainLine("  • " + text)
}
