package core

import "strings"

// Span is a contiguous run of text sharing one style within a line.
type Span struct {
	Text  string
	Style Style
}

// NewSpan creates a span with the given text and style.
func NewSpan(text string, style Style) Span {
	return Span{Text: text, Style: style}
}

// PlainSpan creates a span with the default style.
func PlainSpan(text string) Span {
	return Span{Text: text, Style: DefaultStyle()}
}

// Width returns the display width of the span in columns.
func (s Span) Width() int {
	return DisplayWidth(s.Text)
}

// Line is one logical document line, pre-wrap.
// A line with zero spans is a blank separator and still occupies
// one physical row.
type Line struct {
	Spans []Span
}

// BlankLine returns an empty line.
func BlankLine() Line {
	return Line{}
}

// PlainLine creates a single-span line with the default style.
func PlainLine(text string) Line {
	return Line{Spans: []Span{PlainSpan(text)}}
}

// LineOf creates a line from the given spans.
func LineOf(spans ...Span) Line {
	return Line{Spans: spans}
}

// IsBlank returns true if the line has no spans.
func (l Line) IsBlank() bool {
	return len(l.Spans) == 0
}

// Width returns the total display width of the line in columns.
func (l Line) Width() int {
	w := 0
	for _, s := range l.Spans {
		w += DisplayWidth(s.Text)
	}
	return w
}

// Text returns the line's text with styling stripped.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Cells flattens the line into terminal cells.
func (l Line) Cells() []Cell {
	cells := make([]Cell, 0, l.Width())
	for _, s := range l.Spans {
		cells = append(cells, CellsFromString(s.Text, s.Style)...)
	}
	return cells
}

// Document is the ordered sequence of styled lines produced by one
// compile pass. Documents are immutable once returned; a new width or
// new source triggers a full recompile.
type Document []Line

// LineCount returns the number of logical lines.
func (d Document) LineCount() int {
	return len(d)
}
