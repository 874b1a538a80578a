// Package viewport tracks the visible window of visual rows over the
// rendered document.
package viewport

import "sync"

// Viewport is the scrollable row window. The scroll offset is the
// first visible visual row; it is always clamped to [0, MaxScroll], so
// the window never scrolls past the last row and a document shorter
// than the window pins to the top.
type Viewport struct {
	mu        sync.RWMutex
	scroll    int
	width     int
	height    int
	totalRows int
}

// New creates a viewport with the given size.
// Width and height are clamped to a minimum of 1.
func New(width, height int) *Viewport {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Viewport{width: width, height: height}
}

// Width returns the viewport width in cells.
func (v *Viewport) Width() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Height returns the viewport height in rows.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// Scroll returns the first visible row.
func (v *Viewport) Scroll() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.scroll
}

// TotalRows returns the row count of the mapped document.
func (v *Viewport) TotalRows() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.totalRows
}

// MaxScroll returns the largest valid scroll offset.
func (v *Viewport) MaxScroll() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.maxScroll()
}

// maxScroll computes the scroll ceiling (internal, no lock). Saturates
// at zero when the document fits in the window.
func (v *Viewport) maxScroll() int {
	m := v.totalRows - v.height
	if m < 0 {
		return 0
	}
	return m
}

// clamp forces the scroll offset back into range (internal, no lock).
func (v *Viewport) clamp() {
	if max := v.maxScroll(); v.scroll > max {
		v.scroll = max
	}
	if v.scroll < 0 {
		v.scroll = 0
	}
}

// Resize updates the window size and reclamps the scroll offset.
// Width and height are clamped to a minimum of 1.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.width = width
	v.height = height
	v.clamp()
}

// SetTotalRows updates the mapped document's row count and reclamps
// the scroll offset.
func (v *Viewport) SetTotalRows(rows int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if rows < 0 {
		rows = 0
	}
	v.totalRows = rows
	v.clamp()
}

// ScrollBy moves the window by delta rows, clamped at both ends.
func (v *Viewport) ScrollBy(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scroll += delta
	v.clamp()
}

// ScrollTo jumps the window to the given row, clamped.
func (v *Viewport) ScrollTo(row int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scroll = row
	v.clamp()
}

// PageUp moves up one full window.
func (v *Viewport) PageUp() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scroll -= v.height
	v.clamp()
}

// PageDown moves down one full window.
func (v *Viewport) PageDown() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scroll += v.height
	v.clamp()
}

// Top jumps to the first row.
func (v *Viewport) Top() {
	v.ScrollTo(0)
}

// Bottom jumps so the last row sits on the window's final line.
func (v *Viewport) Bottom() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scroll = v.maxScroll()
}

// VisibleRows returns the half-open row range currently in the window.
func (v *Viewport) VisibleRows() (start, end int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	start = v.scroll
	end = v.scroll + v.height
	if end > v.totalRows {
		end = v.totalRows
	}
	if end < start {
		end = start
	}
	return start, end
}
