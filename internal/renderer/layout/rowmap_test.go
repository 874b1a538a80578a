package layout

import (
	"strings"
	"testing"

	"github.com/cdfuller/md-viewer/internal/renderer/core"
)

func TestLineRowSpan(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  int
	}{
		{"empty line still occupies a row", "", 5, 1},
		{"exact multiple", strings.Repeat("a", 10), 5, 2},
		{"rounds up", strings.Repeat("a", 10), 3, 4},
		{"fits in one row", strings.Repeat("a", 10), 20, 1},
		{"single cell", "x", 1, 1},
		{"zero width renders nothing", "anything", 0, 0},
		{"negative width renders nothing", "anything", -3, 0},
		{"wide runes count double", "中中中", 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LineRowSpan(core.PlainLine(tt.text), tt.width); got != tt.want {
				t.Errorf("LineRowSpan(%q, %d) = %d, want %d", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestRowMapOffsets(t *testing.T) {
	doc := core.Document{
		core.PlainLine(strings.Repeat("a", 10)),
		core.BlankLine(),
		core.PlainLine(strings.Repeat("b", 7)),
	}
	m := NewRowMap(doc, 4)

	if got := m.LineCount(); got != 3 {
		t.Errorf("LineCount = %d, want 3", got)
	}
	if got := m.TotalRows(); got != 6 {
		t.Errorf("TotalRows = %d, want 6", got)
	}
	wantSpans := []int{3, 1, 2}
	for i, want := range wantSpans {
		if got := m.SpanOf(i); got != want {
			t.Errorf("SpanOf(%d) = %d, want %d", i, got, want)
		}
	}
	if m.SpanOf(-1) != 0 || m.SpanOf(3) != 0 {
		t.Error("SpanOf out of range should be 0")
	}
}

func TestRowMapTotalIsSumOfSpans(t *testing.T) {
	doc := core.Document{
		core.PlainLine("short"),
		core.PlainLine(strings.Repeat("x", 33)),
		core.BlankLine(),
		core.PlainLine("中文 mixed width 内容"),
		core.PlainLine(strings.Repeat("y", 8)),
	}
	for _, width := range []int{1, 3, 8, 80} {
		m := NewRowMap(doc, width)
		sum := 0
		for i := 0; i < m.LineCount(); i++ {
			sum += m.SpanOf(i)
		}
		if sum != m.TotalRows() {
			t.Errorf("width %d: spans sum to %d, TotalRows = %d", width, sum, m.TotalRows())
		}
	}
}

func TestRowMapRowsOf(t *testing.T) {
	doc := core.Document{
		core.PlainLine(strings.Repeat("a", 8)), // rows 0-1
		core.PlainLine("b"),                    // row 2
		core.PlainLine("c"),                    // row 3
	}
	m := NewRowMap(doc, 4)

	start, end, ok := m.RowsOf(0, 1)
	if !ok || start != 0 || end != 2 {
		t.Errorf("RowsOf(0,1) = (%d, %d, %v), want (0, 2, true)", start, end, ok)
	}
	start, end, ok = m.RowsOf(1, 3)
	if !ok || start != 2 || end != 4 {
		t.Errorf("RowsOf(1,3) = (%d, %d, %v), want (2, 4, true)", start, end, ok)
	}

	if _, _, ok := m.RowsOf(-1, 1); ok {
		t.Error("negative start should not resolve")
	}
	if _, _, ok := m.RowsOf(0, 4); ok {
		t.Error("end past the document should not resolve")
	}
	if _, _, ok := m.RowsOf(2, 2); ok {
		t.Error("empty range should not resolve")
	}
	if _, _, ok := m.RowsOf(2, 1); ok {
		t.Error("inverted range should not resolve")
	}
}

func TestRowMapLineAt(t *testing.T) {
	doc := core.Document{
		core.PlainLine(strings.Repeat("a", 8)),
		core.BlankLine(),
		core.PlainLine(strings.Repeat("b", 5)),
	}
	m := NewRowMap(doc, 4)

	// Every row maps back into its line's span.
	for row := 0; row < m.TotalRows(); row++ {
		line, rowInLine, ok := m.LineAt(row)
		if !ok {
			t.Fatalf("LineAt(%d) not ok", row)
		}
		start, end, _ := m.RowsOf(line, line+1)
		if row < start || row >= end {
			t.Errorf("LineAt(%d) = line %d spanning [%d,%d)", row, line, start, end)
		}
		if rowInLine != row-start {
			t.Errorf("LineAt(%d) rowInLine = %d, want %d", row, rowInLine, row-start)
		}
	}

	if _, _, ok := m.LineAt(-1); ok {
		t.Error("negative row should not resolve")
	}
	if _, _, ok := m.LineAt(m.TotalRows()); ok {
		t.Error("row past the end should not resolve")
	}
}

func TestRowMapZeroWidth(t *testing.T) {
	doc := core.Document{core.PlainLine("text")}
	m := NewRowMap(doc, 0)

	if got := m.TotalRows(); got != 0 {
		t.Errorf("TotalRows = %d, want 0", got)
	}
	if _, _, ok := m.LineAt(0); ok {
		t.Error("no rows exist at zero width")
	}
}

func TestRowMapEmptyDocument(t *testing.T) {
	m := NewRowMap(nil, 80)

	if m.LineCount() != 0 || m.TotalRows() != 0 {
		t.Errorf("LineCount = %d, TotalRows = %d, want 0, 0", m.LineCount(), m.TotalRows())
	}
	if _, _, ok := m.RowsOf(0, 1); ok {
		t.Error("RowsOf on empty document should not resolve")
	}
}
