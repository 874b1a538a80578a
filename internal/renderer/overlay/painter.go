package overlay

import (
	"github.com/cdfuller/md-viewer/internal/renderer/core"
)

// Frame glyphs for painted decoration.
const (
	glyphRule     = '─'
	glyphBorderH  = '─'
	glyphBorderV  = '│'
	glyphCornerTL = '╭'
	glyphCornerTR = '╮'
	glyphCornerBL = '╰'
	glyphCornerBR = '╯'
)

// RowLookup resolves document line ranges to absolute physical row
// ranges. Implemented by the layout row map.
type RowLookup interface {
	// RowsOf returns the half-open absolute row range [start, end)
	// covering document lines [lineStart, lineEnd). It reports
	// ok=false when the range is out of bounds or inverted.
	RowsOf(lineStart, lineEnd int) (start, end int, ok bool)
}

// Painter applies overlay decoration to already-rendered viewport rows.
// It never reorders or replaces document content; it only layers
// presentation on top of laid-out cells.
type Painter struct {
	config Config
}

// NewPainter creates a painter with the given palette.
func NewPainter(config Config) *Painter {
	return &Painter{config: config}
}

// Config returns the active palette.
func (p *Painter) Config() Config {
	return p.config
}

// SetConfig replaces the palette.
func (p *Painter) SetConfig(config Config) {
	p.config = config
}

// Paint decorates the visible rows in place. rows[i] holds the cells of
// absolute physical row scroll+i; every row slice spans the viewport
// width. Overlays outside the window are skipped; overlays partially
// inside are clipped to the rows that are actually visible.
func (p *Painter) Paint(rows [][]core.Cell, scroll int, overlays Set, lookup RowLookup) {
	if len(rows) == 0 {
		return
	}
	for _, h := range overlays.Headings {
		p.paintHeading(rows, scroll, h, lookup)
	}
	for _, r := range overlays.Rules {
		p.paintRule(rows, scroll, r, lookup)
	}
	for _, cb := range overlays.CodeBlocks {
		p.paintCodeBlock(rows, scroll, cb, lookup)
	}
}

// paintHeading fills the full width of every visible row of the heading
// line with the level's band background. Foreground and attributes set
// by the compiler are preserved.
func (p *Painter) paintHeading(rows [][]core.Cell, scroll int, h Heading, lookup RowLookup) {
	start, end, ok := lookup.RowsOf(h.Line, h.Line+1)
	if !ok {
		return
	}
	band := p.config.Band(h.Level)
	for abs := start; abs < end; abs++ {
		row, ok := visibleRow(rows, scroll, abs)
		if !ok {
			continue
		}
		for col := range row {
			row[col].Style = row[col].Style.WithBackground(band.Background)
		}
	}
}

// paintRule draws a full-width run of horizontal-line glyphs on the
// rule's row. The referenced document line is empty by construction, so
// the row carries no content to preserve.
func (p *Painter) paintRule(rows [][]core.Cell, scroll int, r Rule, lookup RowLookup) {
	start, end, ok := lookup.RowsOf(r.Line, r.Line+1)
	if !ok {
		return
	}
	for abs := start; abs < end; abs++ {
		row, ok := visibleRow(rows, scroll, abs)
		if !ok {
			continue
		}
		for col := range row {
			row[col] = core.NewStyledCell(glyphRule, p.config.RuleStyle)
		}
	}
}

// paintCodeBlock fills the block's visible interior rows with the code
// background and frames them. The horizontal borders sit on the blank
// separator rows directly above and below the block, so the top edge is
// drawn only when the row above the first block row is visible and the
// bottom edge only when the row below the last block row is visible; a
// block continuing past either window edge omits that edge.
func (p *Painter) paintCodeBlock(rows [][]core.Cell, scroll int, cb CodeBlock, lookup RowLookup) {
	start, end, ok := lookup.RowsOf(cb.LineStart, cb.LineEnd)
	if !ok || end <= start {
		return
	}

	for abs := start; abs < end; abs++ {
		row, ok := visibleRow(rows, scroll, abs)
		if !ok {
			continue
		}
		p.fillCodeRow(row)
	}

	if top, ok := visibleRow(rows, scroll, start-1); ok && start > 0 {
		p.drawCodeBorder(top, glyphCornerTL, glyphCornerTR, cb.Language)
	}
	if bottom, ok := visibleRow(rows, scroll, end); ok {
		p.drawCodeBorder(bottom, glyphCornerBL, glyphCornerBR, "")
	}
}

// fillCodeRow extends the code background across the full row and adds
// the vertical frame glyphs where the edge cells are still blank.
func (p *Painter) fillCodeRow(row []core.Cell) {
	for col := range row {
		row[col].Style = row[col].Style.WithBackground(p.config.CodeBackground)
	}
	if len(row) < 2 {
		return
	}
	if row[0].IsBlank() {
		row[0] = core.NewStyledCell(glyphBorderV, p.config.CodeBorder)
	}
	if last := len(row) - 1; row[last].IsBlank() {
		row[last] = core.NewStyledCell(glyphBorderV, p.config.CodeBorder)
	}
}

// drawCodeBorder writes one horizontal frame edge onto a separator row.
// Glyphs land only in cells that are still blank, so a shared separator
// row (or a degenerate non-blank neighbor) is never clobbered. The
// label is placed first and the dash fill skips its extent, since the
// label's padding spaces would otherwise read as blank.
func (p *Painter) drawCodeBorder(row []core.Cell, left, right rune, label string) {
	if len(row) < 2 {
		return
	}
	labelStart, labelEnd := 0, 0
	if label != "" {
		labelStart, labelEnd = p.writeLabel(row, label)
	}
	for col := 1; col < len(row)-1; col++ {
		if col >= labelStart && col < labelEnd {
			continue
		}
		p.writeBorderGlyph(row, col, glyphBorderH)
	}
	p.writeBorderGlyph(row, 0, left)
	p.writeBorderGlyph(row, len(row)-1, right)
}

// writeBorderGlyph writes a frame glyph if the target cell is blank.
func (p *Painter) writeBorderGlyph(row []core.Cell, col int, r rune) {
	if col < 0 || col >= len(row) {
		return
	}
	if !row[col].IsBlank() {
		return
	}
	row[col] = core.NewStyledCell(r, p.config.CodeBorder)
}

// writeLabel embeds the language label into the top border starting two
// cells in, space-padded on both sides. It stops at the first cell that
// is already occupied or at the row's right corner, and returns the
// half-open column range it wrote.
func (p *Painter) writeLabel(row []core.Cell, label string) (start, end int) {
	text := " " + label + " "
	col := 2
	for _, r := range text {
		w := core.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > len(row)-1 {
			return 2, col
		}
		if !row[col].IsBlank() {
			return 2, col
		}
		row[col] = core.NewStyledCell(r, p.config.CodeBorder)
		for k := 1; k < w; k++ {
			row[col+k] = core.ContinuationCell().WithStyle(p.config.CodeBorder)
		}
		col += w
	}
	return 2, col
}

// visibleRow maps an absolute physical row index to the viewport slice
// holding it, reporting ok=false when the row lies outside the window.
func visibleRow(rows [][]core.Cell, scroll, abs int) ([]core.Cell, bool) {
	idx := abs - scroll
	if idx < 0 || idx >= len(rows) {
		return nil, false
	}
	return rows[idx], true
}
