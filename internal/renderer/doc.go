// Package renderer turns a compiled markdown document into terminal
// frames.
//
// The package is split into focused subpackages:
//   - core: cells, styles, lines, and geometry shared by every layer
//   - layout: width-aware line wrapping, row mapping, and caching
//   - viewport: scroll state over the wrapped row space
//   - overlay: heading bands, rule lines, code frames, and modal panels
//   - backend: terminal abstraction with double buffering
//
// View ties the layers together:
//
//	┌───────────────────────────────────────────┐
//	│               View (facade)               │
//	├───────────────────────────────────────────┤
//	│  Viewport │ RowMap / CellCache │ Painter  │
//	├───────────────────────────────────────────┤
//	│             BufferedBackend               │
//	├───────────────────────────────────────────┤
//	│             Terminal (tcell)              │
//	└───────────────────────────────────────────┘
//
// Each frame the view lays out the visible document rows, paints
// overlay decoration on top, wraps the result in the viewer chrome
// (border, title, status line), and hands the rows to the backend,
// which flushes only the cells that changed since the last frame.
package renderer
