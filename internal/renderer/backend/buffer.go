package backend

import (
	"github.com/cdfuller/md-viewer/internal/renderer/core"
)

// ScreenBuffer provides double-buffered rendering with change tracking.
// It maintains two buffers: front (displayed) and back (drawing).
// On sync, it computes the diff and only updates changed cells.
type ScreenBuffer struct {
	width, height int
	front         [][]core.Cell
	back          [][]core.Cell
	dirty         [][]bool
	fullRedraw    bool
}

// NewScreenBuffer creates a screen buffer with the given dimensions.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	sb := &ScreenBuffer{
		width:      width,
		height:     height,
		fullRedraw: true,
	}
	sb.allocate()
	return sb
}

func (sb *ScreenBuffer) allocate() {
	sb.front = makeCellGrid(sb.width, sb.height)
	sb.back = makeCellGrid(sb.width, sb.height)
	sb.dirty = make([][]bool, sb.height)
	for y := range sb.dirty {
		sb.dirty[y] = make([]bool, sb.width)
	}
}

// Resize resizes the buffer, preserving content where possible.
func (sb *ScreenBuffer) Resize(width, height int) {
	if width == sb.width && height == sb.height {
		return
	}

	oldBack := sb.back
	copyWidth := min(sb.width, width)
	copyHeight := min(sb.height, height)

	sb.width = width
	sb.height = height
	sb.allocate()

	for y := 0; y < copyHeight; y++ {
		for x := 0; x < copyWidth; x++ {
			sb.back[y][x] = oldBack[y][x]
		}
	}

	sb.fullRedraw = true
}

// Size returns the buffer dimensions.
func (sb *ScreenBuffer) Size() (width, height int) {
	return sb.width, sb.height
}

// SetCell sets a cell in the back buffer.
func (sb *ScreenBuffer) SetCell(x, y int, cell core.Cell) {
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return
	}
	sb.back[y][x] = cell
	sb.dirty[y][x] = true
}

// GetCell returns a cell from the back buffer.
func (sb *ScreenBuffer) GetCell(x, y int) core.Cell {
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return core.EmptyCell()
	}
	return sb.back[y][x]
}

// GetFrontCell returns a cell from the front buffer (currently displayed).
func (sb *ScreenBuffer) GetFrontCell(x, y int) core.Cell {
	if x < 0 || x >= sb.width || y < 0 || y >= sb.height {
		return core.EmptyCell()
	}
	return sb.front[y][x]
}

// Fill fills a rectangle with the given cell.
func (sb *ScreenBuffer) Fill(rect core.ScreenRect, cell core.Cell) {
	for y := rect.Top; y < rect.Bottom && y < sb.height; y++ {
		for x := rect.Left; x < rect.Right && x < sb.width; x++ {
			if x >= 0 && y >= 0 {
				sb.back[y][x] = cell
				sb.dirty[y][x] = true
			}
		}
	}
}

// Clear clears the back buffer with empty cells.
func (sb *ScreenBuffer) Clear() {
	empty := core.EmptyCell()
	for y := 0; y < sb.height; y++ {
		for x := 0; x < sb.width; x++ {
			sb.back[y][x] = empty
			sb.dirty[y][x] = true
		}
	}
}

// SetLine sets a row of cells starting at the given position.
func (sb *ScreenBuffer) SetLine(x, y int, cells []core.Cell) {
	if y < 0 || y >= sb.height {
		return
	}
	for i, cell := range cells {
		col := x + i
		if col >= 0 && col < sb.width {
			sb.back[y][col] = cell
			sb.dirty[y][col] = true
		}
	}
}

// SetString writes a string with the given style starting at the position.
// Wide runes occupy two cells.
func (sb *ScreenBuffer) SetString(x, y int, s string, style core.Style) {
	sb.SetLine(x, y, core.CellsFromString(s, style))
}

// DiffChange represents a cell change for synchronization.
type DiffChange struct {
	X, Y int
	Cell core.Cell
}

// ComputeDiff returns the changes needed to update the display.
// Returns nil if no changes are needed.
func (sb *ScreenBuffer) ComputeDiff() []DiffChange {
	var changes []DiffChange

	for y := 0; y < sb.height; y++ {
		for x := 0; x < sb.width; x++ {
			if sb.fullRedraw || sb.dirty[y][x] {
				if sb.fullRedraw || !sb.back[y][x].Equals(sb.front[y][x]) {
					changes = append(changes, DiffChange{
						X:    x,
						Y:    y,
						Cell: sb.back[y][x],
					})
				}
			}
		}
	}

	return changes
}

// Sync copies the back buffer to the front buffer and clears dirty flags.
// Call this after applying changes to the backend.
func (sb *ScreenBuffer) Sync() {
	for y := 0; y < sb.height; y++ {
		for x := 0; x < sb.width; x++ {
			sb.front[y][x] = sb.back[y][x]
			sb.dirty[y][x] = false
		}
	}
	sb.fullRedraw = false
}

// MarkFullRedraw forces a complete redraw on next sync.
func (sb *ScreenBuffer) MarkFullRedraw() {
	sb.fullRedraw = true
}

// IsDirty returns true if there are pending changes.
func (sb *ScreenBuffer) IsDirty() bool {
	if sb.fullRedraw {
		return true
	}
	for y := 0; y < sb.height; y++ {
		for x := 0; x < sb.width; x++ {
			if sb.dirty[y][x] {
				return true
			}
		}
	}
	return false
}

// BufferedBackend wraps a Backend with double-buffered rendering.
// Draw calls land in the back buffer; Show applies only the cells that
// actually changed since the last frame.
type BufferedBackend struct {
	backend Backend
	buffer  *ScreenBuffer
}

// NewBufferedBackend creates a buffered wrapper around a backend.
func NewBufferedBackend(backend Backend) *BufferedBackend {
	width, height := backend.Size()
	return &BufferedBackend{
		backend: backend,
		buffer:  NewScreenBuffer(width, height),
	}
}

func (b *BufferedBackend) Init() error {
	if err := b.backend.Init(); err != nil {
		return err
	}
	width, height := b.backend.Size()
	b.buffer.Resize(width, height)
	b.backend.OnResize(func(w, h int) {
		b.buffer.Resize(w, h)
	})
	return nil
}

func (b *BufferedBackend) Shutdown() {
	b.backend.Shutdown()
}

func (b *BufferedBackend) Size() (int, int) {
	return b.buffer.Size()
}

func (b *BufferedBackend) OnResize(callback func(width, height int)) {
	b.backend.OnResize(func(w, h int) {
		b.buffer.Resize(w, h)
		callback(w, h)
	})
}

func (b *BufferedBackend) SetCell(x, y int, cell core.Cell) {
	b.buffer.SetCell(x, y, cell)
}

func (b *BufferedBackend) GetCell(x, y int) core.Cell {
	return b.buffer.GetCell(x, y)
}

func (b *BufferedBackend) Fill(rect core.ScreenRect, cell core.Cell) {
	b.buffer.Fill(rect, cell)
}

func (b *BufferedBackend) Clear() {
	b.buffer.Clear()
}

// Show computes the diff and applies only changed cells to the backend.
func (b *BufferedBackend) Show() {
	changes := b.buffer.ComputeDiff()
	for _, ch := range changes {
		b.backend.SetCell(ch.X, ch.Y, ch.Cell)
	}
	b.buffer.Sync()
	b.backend.Show()
}

func (b *BufferedBackend) HideCursor() {
	b.backend.HideCursor()
}

func (b *BufferedBackend) PollEvent() Event {
	return b.backend.PollEvent()
}

func (b *BufferedBackend) PostEvent(event Event) {
	b.backend.PostEvent(event)
}

func (b *BufferedBackend) HasTrueColor() bool {
	return b.backend.HasTrueColor()
}

func (b *BufferedBackend) Beep() {
	b.backend.Beep()
}

// SetLine is a convenience method to write a line of cells.
func (b *BufferedBackend) SetLine(x, y int, cells []core.Cell) {
	b.buffer.SetLine(x, y, cells)
}

// SetString is a convenience method to write a string.
func (b *BufferedBackend) SetString(x, y int, s string, style core.Style) {
	b.buffer.SetString(x, y, s, style)
}

// MarkFullRedraw forces a complete redraw on the next Show.
func (b *BufferedBackend) MarkFullRedraw() {
	b.buffer.MarkFullRedraw()
}

// Buffer returns the underlying screen buffer for direct access.
func (b *BufferedBackend) Buffer() *ScreenBuffer {
	return b.buffer
}
