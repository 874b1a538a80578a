package overlay

import (
	"github.com/cdfuller/md-viewer/internal/renderer/core"
	"github.com/cdfuller/md-viewer/internal/renderer/layout"
)

// Panel border glyphs. The panel uses square corners so it reads as a
// window rather than a code frame.
const (
	panelCornerTL = '┌'
	panelCornerTR = '┐'
	panelCornerBL = '└'
	panelCornerBR = '┘'
)

// Panel is a modal box painted over a finished frame, centered and
// covering 80% of the frame in each dimension. The viewer uses it for
// the help screen.
type Panel struct {
	// Title is drawn inside the top border, starting just right of the
	// left corner; overflow is clipped at the right corner.
	Title string

	// Lines hold the panel body. Each line wraps to the panel's inner
	// width; rows past the bottom are dropped.
	Lines []core.Line

	// Style fills the panel background and border. Body spans merge
	// over it, so an unstyled span inherits the panel colors.
	Style core.Style
}

// Paint draws the panel onto rows, which must be a rectangular frame.
// Cells under the panel are overwritten, hiding whatever was there.
func (p *Panel) Paint(rows [][]core.Cell) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return
	}
	frame := core.RectFromSize(0, 0, len(rows), len(rows[0]))
	rect := centeredRect(frame, 80, 80)
	if rect.Width() < 2 || rect.Height() < 2 {
		return
	}

	blank := core.EmptyCell().WithStyle(p.Style)
	for y := rect.Top; y < rect.Bottom; y++ {
		for x := rect.Left; x < rect.Right; x++ {
			rows[y][x] = blank
		}
	}

	p.paintBorder(rows, rect)
	p.paintBody(rows, rect.Inset(1, 1, 1, 1))
}

func (p *Panel) paintBorder(rows [][]core.Cell, rect core.ScreenRect) {
	top, bottom := rect.Top, rect.Bottom-1
	left, right := rect.Left, rect.Right-1

	for x := left + 1; x < right; x++ {
		rows[top][x] = core.NewStyledCell(glyphBorderH, p.Style)
		rows[bottom][x] = core.NewStyledCell(glyphBorderH, p.Style)
	}
	for y := top + 1; y < bottom; y++ {
		rows[y][left] = core.NewStyledCell(glyphBorderV, p.Style)
		rows[y][right] = core.NewStyledCell(glyphBorderV, p.Style)
	}
	rows[top][left] = core.NewStyledCell(panelCornerTL, p.Style)
	rows[top][right] = core.NewStyledCell(panelCornerTR, p.Style)
	rows[bottom][left] = core.NewStyledCell(panelCornerBL, p.Style)
	rows[bottom][right] = core.NewStyledCell(panelCornerBR, p.Style)

	if p.Title == "" {
		return
	}
	x := left + 1
	for _, cell := range core.CellsFromString(p.Title, p.Style) {
		if x >= right {
			break
		}
		rows[top][x] = cell
		x++
	}
}

func (p *Panel) paintBody(rows [][]core.Cell, inner core.ScreenRect) {
	if inner.IsEmpty() {
		return
	}
	y := inner.Top
	for _, line := range p.Lines {
		for _, body := range layout.RenderLine(line, inner.Width()) {
			if y >= inner.Bottom {
				return
			}
			for i, cell := range body {
				rows[y][inner.Left+i] = cell.WithStyle(p.Style.Merge(cell.Style))
			}
			y++
		}
	}
}

// centeredRect returns a rectangle covering the given percentage of the
// outer rect in each dimension, centered within it.
func centeredRect(outer core.ScreenRect, percentX, percentY int) core.ScreenRect {
	w := outer.Width() * percentX / 100
	h := outer.Height() * percentY / 100
	top := outer.Top + (outer.Height()-h)/2
	left := outer.Left + (outer.Width()-w)/2
	return core.RectFromSize(top, left, h, w)
}
