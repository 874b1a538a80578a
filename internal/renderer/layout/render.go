package layout

import "github.com/cdfuller/md-viewer/internal/renderer/core"

// RenderLine renders one document line into its wrapped visual rows at
// the given width. The row count always equals LineRowSpan for the same
// inputs, so offsets from a RowMap built at this width stay exact.
func RenderLine(line core.Line, width int) [][]core.Cell {
	if width <= 0 {
		return nil
	}

	var cells []core.Cell
	for _, span := range line.Spans {
		cells = append(cells, core.CellsFromString(span.Text, span.Style)...)
	}
	if len(cells) == 0 {
		return [][]core.Cell{nil}
	}

	rows := make([][]core.Cell, 0, (len(cells)+width-1)/width)
	for start := 0; start < len(cells); start += width {
		end := start + width
		if end > len(cells) {
			end = len(cells)
		}
		row := cells[start:end]

		// A wide rune split by the row boundary would leave half a
		// glyph on each side; both halves render blank instead.
		if last := len(row) - 1; end < len(cells) && row[last].Width == 2 {
			row[last] = core.EmptyCell().WithStyle(row[last].Style)
		}
		if row[0].IsContinuation() {
			row[0] = core.EmptyCell().WithStyle(row[0].Style)
		}
		rows = append(rows, row)
	}
	return rows
}
