// Package layout maps document lines onto wrapped visual rows for a
// given terminal width and caches the rendered cells per line.
package layout

import (
	"sort"

	"github.com/cdfuller/md-viewer/internal/renderer/core"
)

// RowMap is the offset table from document lines to visual rows at one
// fixed width. It is immutable once built; a width or document change
// requires a new map.
type RowMap struct {
	width int

	// offsets[i] is the first visual row of line i. The extra trailing
	// entry holds the total row count, so line i spans
	// [offsets[i], offsets[i+1]).
	offsets []int
}

// NewRowMap builds the offset table for a document at the given width.
func NewRowMap(doc core.Document, width int) *RowMap {
	offsets := make([]int, len(doc)+1)
	rows := 0
	for i, line := range doc {
		offsets[i] = rows
		rows += LineRowSpan(line, width)
	}
	offsets[len(doc)] = rows
	return &RowMap{width: width, offsets: offsets}
}

// LineRowSpan is the number of visual rows one line occupies at the
// given width: zero when there is no width to render into, one for an
// empty line, otherwise the line's display width divided by the render
// width, rounded up.
func LineRowSpan(line core.Line, width int) int {
	if width <= 0 {
		return 0
	}
	// Per-span width, not the joined text: the renderer expands cells
	// span by span, and the two counts must agree exactly.
	w := line.Width()
	if w == 0 {
		return 1
	}
	return (w + width - 1) / width
}

// Width returns the render width the map was built for.
func (m *RowMap) Width() int {
	return m.width
}

// LineCount returns the number of document lines.
func (m *RowMap) LineCount() int {
	return len(m.offsets) - 1
}

// TotalRows returns the total visual row count.
func (m *RowMap) TotalRows() int {
	return m.offsets[len(m.offsets)-1]
}

// SpanOf returns the row span of one line, or 0 when out of range.
func (m *RowMap) SpanOf(line int) int {
	if line < 0 || line >= m.LineCount() {
		return 0
	}
	return m.offsets[line+1] - m.offsets[line]
}

// RowsOf resolves a half-open line range to its half-open visual row
// range. It reports ok=false when the range is empty or out of bounds.
func (m *RowMap) RowsOf(lineStart, lineEnd int) (start, end int, ok bool) {
	if lineStart < 0 || lineEnd >= len(m.offsets) || lineStart >= lineEnd {
		return 0, 0, false
	}
	return m.offsets[lineStart], m.offsets[lineEnd], true
}

// LineAt resolves a visual row back to its document line and the row's
// offset within that line's wrap.
func (m *RowMap) LineAt(row int) (line, rowInLine int, ok bool) {
	if row < 0 || row >= m.TotalRows() {
		return 0, 0, false
	}
	line = sort.Search(m.LineCount(), func(i int) bool {
		return m.offsets[i+1] > row
	})
	return line, row - m.offsets[line], true
}
