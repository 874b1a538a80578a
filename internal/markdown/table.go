package markdown

import (
	"strings"

	"github.com/cdfuller/md-viewer/internal/renderer/core"
)

// minColumnWidth is the floor for every table column.
const minColumnWidth = 3

// tableCell is the collected content of one cell: explicit sub-lines
// split on hard breaks, each wrapped independently at render time.
type tableCell struct {
	lines []string
}

// tableBuilder accumulates cell text while the compiler consumes a
// table's events, then lays the collected grid out as document lines.
type tableBuilder struct {
	alignments []Alignment
	header     []tableCell
	rows       [][]tableCell

	currentRow []tableCell
	cell       []string
	inHead     bool
	inCell     bool
}

func newTableBuilder(alignments []Alignment) *tableBuilder {
	return &tableBuilder{alignments: alignments}
}

// isCollecting reports whether a cell is currently accumulating text.
func (t *tableBuilder) isCollecting() bool {
	return t.inCell
}

func (t *tableBuilder) startHead() {
	t.inHead = true
}

// endHead commits the pending row as the header row.
func (t *tableBuilder) endHead() {
	if t.inCell {
		t.endCell()
	}
	if len(t.currentRow) > 0 && t.header == nil {
		t.header = t.currentRow
		t.currentRow = nil
	}
	t.inHead = false
}

func (t *tableBuilder) startRow() {
	t.currentRow = nil
}

func (t *tableBuilder) endRow() {
	if t.inCell {
		t.endCell()
	}
	if len(t.currentRow) == 0 {
		return
	}
	if t.inHead && t.header == nil {
		t.header = t.currentRow
	} else {
		t.rows = append(t.rows, t.currentRow)
	}
	t.currentRow = nil
}

func (t *tableBuilder) startCell() {
	t.cell = []string{""}
	t.inCell = true
}

// endCell trims each collected sub-line and appends the cell to the
// current row.
func (t *tableBuilder) endCell() {
	if !t.inCell {
		return
	}
	lines := make([]string, len(t.cell))
	for i, sub := range t.cell {
		lines[i] = strings.TrimSpace(sub)
	}
	t.currentRow = append(t.currentRow, tableCell{lines: lines})
	t.cell = nil
	t.inCell = false
}

func (t *tableBuilder) pushText(text string) {
	if !t.inCell || text == "" {
		return
	}
	t.cell[len(t.cell)-1] += text
}

// pushCode collects an inline code span wrapped in literal backticks.
func (t *tableBuilder) pushCode(text string) {
	if !t.inCell {
		return
	}
	t.cell[len(t.cell)-1] += "`" + text + "`"
}

// pushSoftBreak joins cell text with a single space.
func (t *tableBuilder) pushSoftBreak() {
	if !t.inCell {
		return
	}
	last := t.cell[len(t.cell)-1]
	if last != "" && !strings.HasSuffix(last, " ") {
		t.cell[len(t.cell)-1] = last + " "
	}
}

// pushHardBreak starts a new explicit sub-line within the cell.
func (t *tableBuilder) pushHardBreak() {
	if !t.inCell {
		return
	}
	t.cell = append(t.cell, "")
}

// layout renders the collected grid to bordered document lines. It
// returns nil when no columns were collected; the caller substitutes a
// placeholder.
func (t *tableBuilder) layout(maxWidth int) []core.Line {
	if t.inCell {
		t.endCell()
	}
	if len(t.currentRow) > 0 {
		t.endRow()
	}

	cols := len(t.alignments)
	if len(t.header) > cols {
		cols = len(t.header)
	}
	for _, row := range t.rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 || (t.header == nil && len(t.rows) == 0) {
		return nil
	}

	alignments := make([]Alignment, cols)
	copy(alignments, t.alignments)

	widths := clampWidths(t.naturalWidths(cols), maxWidth)

	var lines []core.Line
	lines = append(lines, separatorLine(widths))
	if t.header != nil {
		lines = append(lines, renderRow(t.header, widths, alignments)...)
		lines = append(lines, separatorLine(widths))
	}
	for i, row := range t.rows {
		if i > 0 {
			lines = append(lines, separatorLine(widths))
		}
		lines = append(lines, renderRow(row, widths, alignments)...)
	}
	// For a header-only table the post-header border doubles as the
	// bottom border.
	if len(t.rows) > 0 {
		lines = append(lines, separatorLine(widths))
	}
	return lines
}

// naturalWidths computes each column's unconstrained width: the largest
// display width over all of its explicit sub-lines, floored at
// minColumnWidth. Double-width glyphs count as two columns.
func (t *tableBuilder) naturalWidths(cols int) []int {
	widths := make([]int, cols)
	for i := range widths {
		widths[i] = minColumnWidth
	}
	measure := func(row []tableCell) {
		for i, cell := range row {
			if i >= cols {
				break
			}
			for _, sub := range cell.lines {
				if w := core.DisplayWidth(sub); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	if t.header != nil {
		measure(t.header)
	}
	for _, row := range t.rows {
		measure(row)
	}
	return widths
}

// clampWidths shrinks natural column widths so the rendered grid fits
// maxWidth. Every column costs width+3 cells ("| " content " ") plus
// one closing "|". Widths scale down proportionally with a floor of
// minColumnWidth; rounding drift is reconciled by shaving the widest
// column (first wins ties) while over budget and growing round-robin
// from the first column while under.
func clampWidths(widths []int, maxWidth int) []int {
	cols := len(widths)
	total := 0
	for _, w := range widths {
		total += w
	}
	overhead := 3*cols + 1
	if overhead+total <= maxWidth {
		return widths
	}

	budget := maxWidth - overhead
	if budget <= cols*minColumnWidth {
		for i := range widths {
			widths[i] = minColumnWidth
		}
		return widths
	}

	scaled := make([]int, cols)
	sum := 0
	for i, w := range widths {
		s := w * budget / total
		if s < minColumnWidth {
			s = minColumnWidth
		}
		scaled[i] = s
		sum += s
	}

	for sum > budget {
		widest := 0
		for i := 1; i < cols; i++ {
			if scaled[i] > scaled[widest] {
				widest = i
			}
		}
		if scaled[widest] <= minColumnWidth {
			break
		}
		scaled[widest]--
		sum--
	}
	for i := 0; sum < budget; i = (i + 1) % cols {
		scaled[i]++
		sum++
	}
	return scaled
}

// renderRow renders one logical row as one or more document lines. All
// columns advance in lockstep; cells shorter than the row's height pad
// with blank segments of their own width.
func renderRow(row []tableCell, widths []int, alignments []Alignment) []core.Line {
	cols := len(widths)
	wrapped := make([][]string, cols)
	height := 1
	for i := 0; i < cols; i++ {
		var cell tableCell
		if i < len(row) {
			cell = row[i]
		}
		wrapped[i] = wrapCell(cell, widths[i])
		if len(wrapped[i]) > height {
			height = len(wrapped[i])
		}
	}

	lines := make([]core.Line, 0, height)
	for r := 0; r < height; r++ {
		var b strings.Builder
		b.WriteString("|")
		for i := 0; i < cols; i++ {
			var segment string
			if r < len(wrapped[i]) {
				segment = wrapped[i][r]
			}
			b.WriteString(" ")
			b.WriteString(padCell(segment, widths[i], alignments[i]))
			b.WriteString(" |")
		}
		lines = append(lines, core.PlainLine(b.String()))
	}
	return lines
}

// wrapCell wraps each explicit sub-line of a cell to the column width.
// A cell with no content still renders one blank segment.
func wrapCell(cell tableCell, width int) []string {
	var out []string
	for _, sub := range cell.lines {
		out = append(out, wrapText(sub, width)...)
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}

// wrapText greedily wraps text at whitespace, force-breaking any single
// word wider than the column.
func wrapText(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	// A column narrower than its widest glyph cannot hold the text at
	// all; widen to the glyph so segments stay within the budget.
	for _, r := range text {
		if rw := core.RuneWidth(r); rw > width {
			width = rw
		}
	}
	if core.DisplayWidth(text) <= width {
		return []string{text}
	}

	var segments []string
	var line strings.Builder
	lineWidth := 0

	flush := func() {
		segments = append(segments, strings.TrimRight(line.String(), " "))
		line.Reset()
		lineWidth = 0
	}

	for _, word := range strings.Fields(text) {
		w := core.DisplayWidth(word)
		if lineWidth > 0 {
			if lineWidth+1+w <= width {
				line.WriteString(" ")
				lineWidth++
			} else {
				flush()
			}
		}
		if w <= width {
			line.WriteString(word)
			lineWidth += w
			continue
		}
		for _, r := range word {
			rw := core.RuneWidth(r)
			if rw == 0 {
				continue
			}
			if lineWidth+rw > width && lineWidth > 0 {
				flush()
			}
			line.WriteRune(r)
			lineWidth += rw
		}
	}
	if lineWidth > 0 || len(segments) == 0 {
		flush()
	}
	return segments
}

// padCell pads a wrapped segment to the column width per its alignment.
// Centering puts the extra space on the right when padding is odd.
func padCell(text string, width int, align Alignment) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return strings.Repeat(" ", width)
	}
	w := core.DisplayWidth(text)
	if w >= width {
		return text
	}
	pad := width - w
	switch align {
	case AlignRight:
		return strings.Repeat(" ", pad) + text
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
	default:
		return text + strings.Repeat(" ", pad)
	}
}

// separatorLine renders a horizontal border with a junction at every
// column boundary.
func separatorLine(widths []int) core.Line {
	var b strings.Builder
	b.WriteString("+")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("+")
	}
	return core.PlainLine(b.String())
}
