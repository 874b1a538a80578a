package renderer

import (
	"fmt"
	"sync"

	"github.com/cdfuller/md-viewer/internal/renderer/core"
	"github.com/cdfuller/md-viewer/internal/renderer/layout"
	"github.com/cdfuller/md-viewer/internal/renderer/overlay"
	"github.com/cdfuller/md-viewer/internal/renderer/viewport"
)

// statusHints lists the key bindings shown on the status row.
const statusHints = "Space or n: page ↓  p: page ↑  j/k: line  g/G: top/end  r: reload  q: quit"

// statusSeparator sits between the key hints and the current message.
const statusSeparator = "  -  "

// cacheSize bounds the number of laid-out lines kept per view.
const cacheSize = 1024

// Viewer chrome border glyphs.
const (
	borderTL = '┌'
	borderTR = '┐'
	borderBL = '└'
	borderBR = '┘'
	borderH  = '─'
	borderV  = '│'
)

// Surface is the drawing target for a View. *backend.BufferedBackend
// satisfies it; tests can substitute anything cell-addressable.
type Surface interface {
	// Size returns the surface dimensions in cells.
	Size() (width, height int)

	// SetLine writes a run of cells starting at (x, y).
	SetLine(x, y int, cells []core.Cell)

	// Show makes everything written since the last call visible.
	Show()
}

// View renders a document into the viewer chrome: a bordered block
// titled with the file path and line count, the scrolled document rows
// inside it, a one-row status line underneath, and an optional modal
// panel over everything.
type View struct {
	mu      sync.RWMutex
	surface Surface
	painter *overlay.Painter
	cache   *layout.CellCache

	title    string
	doc      core.Document
	overlays overlay.Set
	rowmap   *layout.RowMap
	vp       *viewport.Viewport

	status string
	panel  *overlay.Panel
}

// NewView creates a view sized to the surface. The view holds no
// document until SetDocument is called.
func NewView(surface Surface, config overlay.Config) *View {
	w, h := surface.Size()
	cw, ch := contentSize(w, h)
	v := &View{
		surface: surface,
		painter: overlay.NewPainter(config),
		cache:   layout.NewCellCache(cacheSize),
		vp:      viewport.New(cw, ch),
	}
	v.rowmap = layout.NewRowMap(nil, cw)
	return v
}

// SetDocument replaces the displayed document. The scroll position is
// kept where possible and clamped to the new row count; callers that
// want to jump to the top follow up with ResetScroll.
func (v *View) SetDocument(title string, doc core.Document, overlays overlay.Set) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.title = title
	v.doc = doc
	v.overlays = overlays
	v.cache.InvalidateAll()
	v.rebuild()
}

// Resize adapts the view to a new surface size, rewrapping every line
// at the new content width.
func (v *View) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	cw, ch := contentSize(width, height)
	v.vp.Resize(cw, ch)
	v.rebuild()
}

// rebuild recomputes the row map at the current content width. Callers
// hold the write lock.
func (v *View) rebuild() {
	v.rowmap = layout.NewRowMap(v.doc, v.vp.Width())
	v.vp.SetTotalRows(v.rowmap.TotalRows())
}

// SetStatus replaces the message shown after the key hints.
func (v *View) SetStatus(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = msg
}

// ShowPanel displays a modal panel over the viewer until HidePanel.
func (v *View) ShowPanel(p *overlay.Panel) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.panel = p
}

// HidePanel removes the modal panel.
func (v *View) HidePanel() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.panel = nil
}

// PanelVisible reports whether a modal panel is showing.
func (v *View) PanelVisible() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.panel != nil
}

// ScrollUp moves the viewport up by n physical rows.
func (v *View) ScrollUp(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vp.ScrollBy(-n)
}

// ScrollDown moves the viewport down by n physical rows, stopping at
// the last page.
func (v *View) ScrollDown(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vp.ScrollBy(n)
}

// PageUp scrolls up by one content height.
func (v *View) PageUp() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vp.PageUp()
}

// PageDown scrolls down by one content height.
func (v *View) PageDown() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vp.PageDown()
}

// ScrollToTop jumps to the first row.
func (v *View) ScrollToTop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vp.Top()
}

// ScrollToBottom jumps to the last page.
func (v *View) ScrollToBottom() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vp.Bottom()
}

// ResetScroll returns the viewport to the top of the document.
func (v *View) ResetScroll() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vp.ScrollTo(0)
}

// Scroll returns the current scroll offset in physical rows.
func (v *View) Scroll() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.vp.Scroll()
}

// TotalRows returns the document's wrapped row count at the current
// content width.
func (v *View) TotalRows() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.rowmap.TotalRows()
}

// ContentSize returns the text area dimensions inside the chrome.
func (v *View) ContentSize() (width, height int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.vp.Width(), v.vp.Height()
}

// Render draws a complete frame: chrome, visible document rows with
// overlay decoration, and the modal panel if one is showing.
func (v *View) Render() {
	v.mu.RLock()
	defer v.mu.RUnlock()

	w, h := v.surface.Size()
	if w <= 0 || h <= 0 {
		return
	}

	frame := newFrame(w, h)
	v.drawChrome(frame, w, h)
	v.drawContent(frame, w, h)
	if v.panel != nil {
		v.panel.Paint(frame)
	}

	for y, row := range frame {
		v.surface.SetLine(0, y, row)
	}
	v.surface.Show()
}

// drawChrome draws the bordered block and the status row. The block
// covers every row except the last, which holds the status line.
func (v *View) drawChrome(frame [][]core.Cell, w, h int) {
	bh := h - 1
	if bh >= 2 && w >= 2 {
		top, bottom := 0, bh-1
		left, right := 0, w-1
		for x := left + 1; x < right; x++ {
			frame[top][x] = core.NewCell(borderH)
			frame[bottom][x] = core.NewCell(borderH)
		}
		for y := top + 1; y < bottom; y++ {
			frame[y][left] = core.NewCell(borderV)
			frame[y][right] = core.NewCell(borderV)
		}
		frame[top][left] = core.NewCell(borderTL)
		frame[top][right] = core.NewCell(borderTR)
		frame[bottom][left] = core.NewCell(borderBL)
		frame[bottom][right] = core.NewCell(borderBR)

		v.drawTitle(frame[top], right)
	}
	v.drawStatus(frame[h-1], w)
}

// drawTitle writes the file path and line count into the top border.
func (v *View) drawTitle(row []core.Cell, right int) {
	cells := core.CellsFromString(v.title, core.NewStyle(core.ColorCyan))
	count := fmt.Sprintf(" (%d lines)", v.doc.LineCount())
	cells = append(cells, core.CellsFromString(count, core.NewStyle(core.ColorGray))...)

	x := 1
	for _, cell := range cells {
		if x >= right {
			break
		}
		row[x] = cell
		x++
	}
}

// drawStatus writes the key hints and, when set, the current message.
func (v *View) drawStatus(row []core.Cell, w int) {
	cells := core.CellsFromString(statusHints, core.DefaultStyle())
	if v.status != "" {
		cells = append(cells, core.CellsFromString(statusSeparator, core.DefaultStyle())...)
		cells = append(cells, core.CellsFromString(v.status, core.NewStyle(core.ColorYellow))...)
	}
	for x := 0; x < len(cells) && x < w; x++ {
		row[x] = cells[x]
	}
}

// drawContent lays out the visible document rows, paints overlays on
// them, and copies them inside the border.
func (v *View) drawContent(frame [][]core.Cell, w, h int) {
	cw, ch := w-2, h-3
	if cw < 1 || ch < 1 {
		return
	}

	start, end := v.vp.VisibleRows()
	rows := v.visibleRows(start, end, cw)
	v.painter.Paint(rows, start, v.overlays, v.rowmap)

	for i := 0; i < len(rows) && i < ch; i++ {
		copy(frame[1+i][1:1+cw], rows[i])
	}
}

// visibleRows materializes the absolute row range [start, end) at the
// given width. Cached rows are shared, so each is copied into a fresh
// width-padded row the painter may mutate.
func (v *View) visibleRows(start, end, width int) [][]core.Cell {
	rows := make([][]core.Cell, 0, end-start)

	line, offset, ok := v.rowmap.LineAt(start)
	if !ok {
		for abs := start; abs < end; abs++ {
			rows = append(rows, blankRow(width))
		}
		return rows
	}

	abs := start
	for abs < end && line < v.doc.LineCount() {
		cached := v.cache.Rows(line, v.doc[line], width)
		for ; offset < len(cached) && abs < end; offset++ {
			row := blankRow(width)
			copy(row, cached[offset])
			rows = append(rows, row)
			abs++
		}
		offset = 0
		line++
	}
	for abs < end {
		rows = append(rows, blankRow(width))
		abs++
	}
	return rows
}

// contentSize returns the text area for a surface of the given size:
// the border costs one column per side and two rows, and the status
// line costs one more row.
func contentSize(width, height int) (cw, ch int) {
	cw = width - 2
	if cw < 1 {
		cw = 1
	}
	ch = height - 3
	if ch < 1 {
		ch = 1
	}
	return cw, ch
}

func newFrame(width, height int) [][]core.Cell {
	frame := make([][]core.Cell, height)
	for i := range frame {
		frame[i] = blankRow(width)
	}
	return frame
}

func blankRow(width int) []core.Cell {
	row := make([]core.Cell, width)
	for i := range row {
		row[i] = core.EmptyCell()
	}
	return row
}
