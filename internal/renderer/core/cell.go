package core

import "github.com/rivo/uniseg"

// Cell represents a single terminal cell.
type Cell struct {
	// Rune is the character to display.
	// A value of 0 indicates a continuation cell (for wide characters).
	Rune rune

	// Width is the display width of this cell.
	// 0 for continuation cells, 1 for normal chars, 2 for wide CJK chars.
	Width int

	// Style is the visual style for this cell.
	Style Style
}

// EmptyCell returns an empty cell with default style.
func EmptyCell() Cell {
	return Cell{
		Rune:  ' ',
		Width: 1,
		Style: DefaultStyle(),
	}
}

// NewCell creates a cell with the given rune and default style.
func NewCell(r rune) Cell {
	return Cell{
		Rune:  r,
		Width: RuneWidth(r),
		Style: DefaultStyle(),
	}
}

// NewStyledCell creates a cell with the given rune and style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{
		Rune:  r,
		Width: RuneWidth(r),
		Style: style,
	}
}

// WithStyle returns a new cell with the given style.
func (c Cell) WithStyle(style Style) Cell {
	c.Style = style
	return c
}

// WithRune returns a new cell with the given rune.
func (c Cell) WithRune(r rune) Cell {
	c.Rune = r
	c.Width = RuneWidth(r)
	return c
}

// IsBlank returns true if this is an empty (space) cell.
func (c Cell) IsBlank() bool {
	return c.Rune == ' ' || c.Rune == 0
}

// IsContinuation returns true if this is a continuation cell
// (second cell of a wide character).
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Rune == 0
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c.Rune == other.Rune &&
		c.Width == other.Width &&
		c.Style.Equals(other.Style)
}

// ContinuationCell returns a continuation cell for wide characters.
func ContinuationCell() Cell {
	return Cell{
		Rune:  0,
		Width: 0,
		Style: DefaultStyle(),
	}
}

// RuneWidth returns the display width of a rune.
// Returns 0 for control characters, 1 for normal characters,
// and 2 for wide (CJK) characters.
func RuneWidth(r rune) int {
	if r < 32 || r == 0x7F {
		return 0
	}
	return uniseg.StringWidth(string(r))
}

// DisplayWidth returns the number of terminal columns a string occupies,
// counting double-width glyphs as two columns.
func DisplayWidth(s string) int {
	return uniseg.StringWidth(s)
}

// CellsFromString creates cells from a string.
// Expansion walks grapheme clusters, so the slice length always equals
// the string's display width: a wide cluster (CJK, ZWJ emoji) becomes
// its leading rune followed by continuation cells.
func CellsFromString(s string, style Style) []Cell {
	cells := make([]Cell, 0, len(s))

	g := uniseg.NewGraphemes(s)
	for g.Next() {
		width := g.Width()
		if width == 0 {
			continue
		}
		cells = append(cells, Cell{
			Rune:  g.Runes()[0],
			Width: width,
			Style: style,
		})
		for i := 1; i < width; i++ {
			cells = append(cells, ContinuationCell().WithStyle(style))
		}
	}

	return cells
}

// StringFromCells converts cells back to a string.
// Skips continuation cells.
func StringFromCells(cells []Cell) string {
	runes := make([]rune, 0, len(cells))
	for _, c := range cells {
		if !c.IsContinuation() && c.Rune != 0 {
			runes = append(runes, c.Rune)
		}
	}
	return string(runes)
}
