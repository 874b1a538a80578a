package markdown

import (
	"reflect"
	"testing"

	"github.com/cdfuller/md-viewer/internal/renderer/core"
)

func layoutText(t *testing.T, b *tableBuilder, maxWidth int) []string {
	t.Helper()
	lines := b.layout(maxWidth)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = line.Text()
	}
	return out
}

func addCell(b *tableBuilder, text string) {
	b.startCell()
	b.pushText(text)
	b.endCell()
}

func TestTableLayoutHeaderAndBody(t *testing.T) {
	b := newTableBuilder([]Alignment{AlignLeft, AlignLeft})
	b.startHead()
	addCell(b, "A")
	addCell(b, "B")
	b.endHead()
	b.startRow()
	addCell(b, "1")
	addCell(b, "2")
	b.endRow()

	want := []string{
		"+-----+-----+",
		"| A   | B   |",
		"+-----+-----+",
		"| 1   | 2   |",
		"+-----+-----+",
	}
	if got := layoutText(t, b, 80); !reflect.DeepEqual(got, want) {
		t.Errorf("layout = %q, want %q", got, want)
	}
}

func TestTableHeaderCommitViaRowOrHead(t *testing.T) {
	// Header cells may arrive bare or wrapped in a row; both commit the
	// same header.
	bare := newTableBuilder([]Alignment{AlignLeft})
	bare.startHead()
	addCell(bare, "H")
	bare.endHead()

	wrapped := newTableBuilder([]Alignment{AlignLeft})
	wrapped.startHead()
	wrapped.startRow()
	addCell(wrapped, "H")
	wrapped.endRow()
	wrapped.endHead()

	got := layoutText(t, bare, 80)
	want := layoutText(t, wrapped, 80)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("bare header layout %q, row-wrapped %q", got, want)
	}
	if len(got) != 3 {
		t.Errorf("header-only table has %d lines, want border, row, border", len(got))
	}
}

func TestTableBodyWithoutHeader(t *testing.T) {
	b := newTableBuilder([]Alignment{AlignLeft})
	b.startRow()
	addCell(b, "one")
	b.endRow()
	b.startRow()
	addCell(b, "two")
	b.endRow()

	want := []string{
		"+-----+",
		"| one |",
		"+-----+",
		"| two |",
		"+-----+",
	}
	if got := layoutText(t, b, 80); !reflect.DeepEqual(got, want) {
		t.Errorf("layout = %q, want %q", got, want)
	}
}

func TestTableSeparatorBetweenEveryRow(t *testing.T) {
	b := newTableBuilder([]Alignment{AlignLeft})
	for _, text := range []string{"a", "b", "c"} {
		b.startRow()
		addCell(b, text)
		b.endRow()
	}

	got := layoutText(t, b, 80)
	separators := 0
	for _, line := range got {
		if line == "+-----+" {
			separators++
		}
	}
	// Top, bottom, and one between each consecutive pair.
	if separators != 4 {
		t.Errorf("got %d separators for 3 rows, want 4: %q", separators, got)
	}
}

func TestTableLayoutFlushesPendingRow(t *testing.T) {
	b := newTableBuilder([]Alignment{AlignLeft})
	b.startRow()
	b.startCell()
	b.pushText("tail")

	got := layoutText(t, b, 80)
	if len(got) != 3 || got[1] != "| tail |" {
		t.Errorf("layout = %q, want pending cell committed", got)
	}
}

func TestTableLayoutEmptyReturnsNil(t *testing.T) {
	b := newTableBuilder(nil)
	if got := b.layout(80); got != nil {
		t.Errorf("layout = %v, want nil for zero columns", got)
	}

	// Declared columns with no committed cells are just as empty.
	b = newTableBuilder([]Alignment{AlignLeft, AlignRight})
	if got := b.layout(80); got != nil {
		t.Errorf("layout = %v, want nil for empty grid", got)
	}
}

func TestTableAlignmentsZeroFill(t *testing.T) {
	// More columns than declared alignments: extras default to left.
	b := newTableBuilder([]Alignment{AlignRight})
	b.startRow()
	addCell(b, "a")
	addCell(b, "b")
	b.endRow()

	got := layoutText(t, b, 80)
	if got[1] != "|   a | b   |" {
		t.Errorf("row = %q, want right then left alignment", got[1])
	}
}

func TestTableCellInlineCollection(t *testing.T) {
	b := newTableBuilder([]Alignment{AlignLeft})
	b.startRow()
	b.startCell()
	b.pushText("run")
	b.pushSoftBreak()
	b.pushSoftBreak()
	b.pushCode("go test")
	b.endCell()
	b.endRow()

	got := layoutText(t, b, 80)
	if got[1] != "| run `go test` |" {
		t.Errorf("row = %q, want soft breaks collapsed to one space", got[1])
	}
}

func TestTableCellHardBreakSubLines(t *testing.T) {
	b := newTableBuilder([]Alignment{AlignLeft})
	b.startRow()
	b.startCell()
	b.pushText("first")
	b.pushHardBreak()
	b.pushText("second")
	b.endCell()
	addCell(b, "x")
	b.endRow()

	want := []string{
		"+--------+-----+",
		"| first  | x   |",
		"| second |     |",
		"+--------+-----+",
	}
	if got := layoutText(t, b, 80); !reflect.DeepEqual(got, want) {
		t.Errorf("layout = %q, want %q", got, want)
	}
}

func TestTableRowsAdvanceInLockstep(t *testing.T) {
	b := newTableBuilder([]Alignment{AlignLeft, AlignLeft})
	b.startRow()
	addCell(b, "one two three")
	addCell(b, "x")
	b.endRow()

	got := layoutText(t, b, 16)
	// Column widths clamp to keep the grid within 16 cells; the long
	// cell wraps and the short cell pads to the same height.
	if len(got) < 4 {
		t.Fatalf("layout = %q, want wrapped multi-line row", got)
	}
	width := core.DisplayWidth(got[0])
	for i, line := range got {
		if core.DisplayWidth(line) != width {
			t.Errorf("line %d width = %d, want %d: %q", i, core.DisplayWidth(line), width, line)
		}
	}
}

func TestTableClampedWidthsStayUniform(t *testing.T) {
	b := newTableBuilder([]Alignment{AlignLeft, AlignLeft})
	b.startHead()
	addCell(b, "metric")
	addCell(b, "value")
	b.endHead()
	b.startRow()
	addCell(b, "averyveryverylongmetricname")
	addCell(b, "中文中文中文中文")
	b.endRow()

	got := layoutText(t, b, 24)
	if len(got) == 0 {
		t.Fatal("no lines")
	}
	width := core.DisplayWidth(got[0])
	if width != 24 {
		t.Errorf("border width = %d, want clamp to 24", width)
	}
	for i, line := range got {
		if w := core.DisplayWidth(line); w != width {
			t.Errorf("line %d width = %d, want %d: %q", i, w, width, line)
		}
	}
}

func TestNaturalWidths(t *testing.T) {
	b := newTableBuilder([]Alignment{AlignLeft, AlignLeft})
	b.startHead()
	addCell(b, "ab")
	addCell(b, "中文中")
	b.endHead()
	b.startRow()
	addCell(b, "abcdefgh")
	addCell(b, "xy")
	b.endRow()

	got := b.naturalWidths(2)
	// Column 0: body text wins. Column 1: double-width header glyphs
	// count two cells each. Narrow content floors at minColumnWidth.
	want := []int{8, 6}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("naturalWidths = %v, want %v", got, want)
	}
}

func TestClampWidths(t *testing.T) {
	tests := []struct {
		name     string
		widths   []int
		maxWidth int
		want     []int
	}{
		{"fits untouched", []int{5, 8}, 80, []int{5, 8}},
		{"proportional with round-robin growth", []int{30, 10}, 25, []int{14, 4}},
		{"widest column shaved", []int{4, 20}, 17, []int{3, 7}},
		{"tie shaves first column", []int{10, 10, 3}, 22, []int{4, 5, 3}},
		{"budget below floor collapses", []int{50, 60}, 10, []int{3, 3}},
		{"budget at floor collapses", []int{9, 9}, 13, []int{3, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clampWidths(append([]int(nil), tt.widths...), tt.maxWidth)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("clampWidths(%v, %d) = %v, want %v", tt.widths, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestClampWidthsRespectsBudgetExactly(t *testing.T) {
	widths := clampWidths([]int{19, 7, 31, 2}, 40)
	total := 0
	for _, w := range widths {
		if w < minColumnWidth {
			t.Errorf("width %d below floor", w)
		}
		total += w
	}
	overhead := 3*len(widths) + 1
	if overhead+total != 40 {
		t.Errorf("clamped total %d + overhead %d = %d, want exactly 40", total, overhead, overhead+total)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"empty", "", 5, []string{""}},
		{"fits", "hello", 10, []string{"hello"}},
		{"greedy wrap", "alpha beta gamma", 11, []string{"alpha beta", "gamma"}},
		{"force break long word", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"wide runes break on cell boundary", "ab 中文中 cd", 4, []string{"ab", "中文", "中", "cd"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(tt.text, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrapTextNeverExceedsWidth(t *testing.T) {
	for _, text := range []string{
		"plain words of several sizes here",
		"supercalifragilisticexpialidocious",
		"混合 mixed 中文 and ascii 内容 text",
	} {
		// The effective budget floors at the widest glyph: a width-2
		// rune cannot wrap into a width-1 column.
		widest := 0
		for _, r := range text {
			if w := core.RuneWidth(r); w > widest {
				widest = w
			}
		}
		for width := 1; width <= 12; width++ {
			limit := width
			if widest > limit {
				limit = widest
			}
			for _, seg := range wrapText(text, width) {
				if w := core.DisplayWidth(seg); w > limit {
					t.Errorf("wrapText(%q, %d) produced %q (width %d)", text, width, seg, w)
				}
			}
		}
	}
}

func TestPadCell(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		align Alignment
		want  string
	}{
		{"left", "x", 5, AlignLeft, "x    "},
		{"right", "x", 5, AlignRight, "    x"},
		{"center odd favors right", "x", 4, AlignCenter, " x  "},
		{"center even", "xy", 4, AlignCenter, " xy "},
		{"empty is all spaces", "", 3, AlignRight, "   "},
		{"overflow untouched", "toolong", 3, AlignLeft, "toolong"},
		{"wide rune right", "中", 4, AlignRight, "  中"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := padCell(tt.text, tt.width, tt.align); got != tt.want {
				t.Errorf("padCell(%q, %d, %v) = %q, want %q", tt.text, tt.width, tt.align, got, tt.want)
			}
		})
	}
}

func TestSeparatorLine(t *testing.T) {
	if got := separatorLine([]int{3, 5}).Text(); got != "+-----+-------+" {
		t.Errorf("separator = %q", got)
	}
}
