package markdown

import (
	"github.com/cdfuller/md-viewer/internal/renderer/core"
)

// StyleSet holds the text styles the compiler attaches to spans.
// Heading band backgrounds are not part of the set; those belong to the
// overlay painter.
type StyleSet struct {
	// Headings holds the text styles for levels 1 through 6.
	Headings [6]core.Style

	// Blockquote styles quoted text.
	Blockquote core.Style

	// QuotePrefix styles the "> " markers inserted at line starts.
	QuotePrefix core.Style

	// ListLabel styles bullet and number labels.
	ListLabel core.Style

	// Link is merged onto the enclosing style for link text.
	Link core.Style

	// InlineCode is merged onto the enclosing style for backtick spans.
	InlineCode core.Style

	// CodeBlock styles fenced and indented code block text.
	CodeBlock core.Style
}

// DefaultStyles returns the built-in style set.
func DefaultStyles() StyleSet {
	return StyleSet{
		Headings: [6]core.Style{
			core.NewStyle(core.ColorCyan).Bold(),
			core.NewStyle(core.ColorLightBlue).Bold(),
			core.NewStyle(core.ColorLightMagenta).Bold(),
			core.NewStyle(core.ColorMagenta),
			core.NewStyle(core.ColorMagenta).Italic(),
			core.NewStyle(core.ColorGray).Italic(),
		},
		Blockquote:  core.NewStyle(core.ColorGray).Italic(),
		QuotePrefix: core.NewStyle(core.ColorDarkGray),
		ListLabel:   core.NewStyle(core.ColorGray),
		Link:        core.NewStyle(core.ColorCyan).Underline(),
		InlineCode:  core.NewStyle(core.ColorYellow).Dim(),
		CodeBlock: core.NewStyle(core.ColorFromRGB(225, 228, 235)).
			WithBackground(core.ColorFromRGB(12, 16, 26)),
	}
}

// Heading returns the text style for a heading level. Out-of-range
// levels clamp to the nearest defined style.
func (s StyleSet) Heading(level int) core.Style {
	if level < 1 {
		level = 1
	}
	if level > len(s.Headings) {
		level = len(s.Headings)
	}
	return s.Headings[level-1]
}
