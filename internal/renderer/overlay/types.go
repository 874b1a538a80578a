// Package overlay paints structural decoration - heading bands,
// horizontal rules, and code-block frames - onto rendered viewport rows.
package overlay

import (
	"github.com/cdfuller/md-viewer/internal/renderer/core"
)

// Heading marks the document line holding a heading's flushed text.
type Heading struct {
	// Line is the document line index of the heading text.
	Line int

	// Level is the heading level, 1 through 6.
	Level int
}

// CodeBlock marks a half-open range of document lines holding a fenced
// or indented code block. A finalized block always covers at least one
// line, which may be blank.
type CodeBlock struct {
	// LineStart is the first document line of the block (inclusive).
	LineStart int

	// LineEnd is one past the last document line (exclusive).
	LineEnd int

	// Language is the trimmed fence label, or "" when none was declared.
	Language string
}

// LineCount returns the number of document lines the block covers.
func (c CodeBlock) LineCount() int {
	return c.LineEnd - c.LineStart
}

// Rule marks a document line standing in for a horizontal rule. The
// referenced line is always empty; the glyphs are painted, not stored.
type Rule struct {
	// Line is the document line index reserved for the rule.
	Line int
}

// Set bundles the overlay collections produced by one compile pass.
// Line indices reference the document returned alongside the set and
// go stale the moment that document is replaced.
type Set struct {
	Headings   []Heading
	CodeBlocks []CodeBlock
	Rules      []Rule
}

// IsEmpty reports whether the set carries no overlays at all.
func (s Set) IsEmpty() bool {
	return len(s.Headings) == 0 && len(s.CodeBlocks) == 0 && len(s.Rules) == 0
}

// Band is one heading level's color pair. The painter applies only the
// background; the foreground is carried for exporters and themes.
type Band struct {
	Background core.Color
	Foreground core.Color
}

// Config holds the colors the painter draws with.
type Config struct {
	// HeadingBands holds the band pairs for levels 1 through 6,
	// lightest first.
	HeadingBands [6]Band

	// CodeBackground fills code block interiors edge to edge.
	CodeBackground core.Color

	// CodeBorder strokes the code block frame and its language label.
	CodeBorder core.Style

	// RuleStyle strokes horizontal rule glyphs.
	RuleStyle core.Style
}

// DefaultConfig returns the built-in palette.
func DefaultConfig() Config {
	codeBG := core.ColorFromRGB(12, 16, 26)
	return Config{
		HeadingBands: [6]Band{
			{Background: core.ColorFromRGB(48, 52, 70), Foreground: core.ColorFromRGB(235, 235, 245)},
			{Background: core.ColorFromRGB(40, 44, 60), Foreground: core.ColorFromRGB(225, 225, 235)},
			{Background: core.ColorFromRGB(35, 39, 54), Foreground: core.ColorFromRGB(210, 210, 225)},
			{Background: core.ColorFromRGB(30, 34, 48), Foreground: core.ColorFromRGB(200, 200, 215)},
			{Background: core.ColorFromRGB(28, 32, 44), Foreground: core.ColorFromRGB(190, 190, 205)},
			{Background: core.ColorFromRGB(24, 28, 38), Foreground: core.ColorFromRGB(180, 180, 195)},
		},
		CodeBackground: codeBG,
		CodeBorder:     core.NewStyle(core.ColorFromRGB(150, 160, 175)).WithBackground(codeBG),
		RuleStyle:      core.NewStyle(core.ColorDarkGray),
	}
}

// Band returns the color pair for a heading level. Out-of-range levels
// clamp to the nearest defined band.
func (c Config) Band(level int) Band {
	if level < 1 {
		level = 1
	}
	if level > len(c.HeadingBands) {
		level = len(c.HeadingBands)
	}
	return c.HeadingBands[level-1]
}
