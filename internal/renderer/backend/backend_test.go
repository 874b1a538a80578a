package backend

import (
	"testing"

	"github.com/cdfuller/md-viewer/internal/renderer/core"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	cell := core.NewStyledCell('X', core.DefaultStyle().WithForeground(core.ColorRed))
	b.SetCell(10, 5, cell)

	got := b.GetCell(10, 5)
	if !got.Equals(cell) {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)

	empty := b.GetCell(-1, 0)
	if !empty.Equals(core.EmptyCell()) {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendFill(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	cell := core.NewCell('.')
	rect := core.NewScreenRect(5, 10, 10, 20)
	b.Fill(rect, cell)

	got := b.GetCell(15, 7)
	if !got.Equals(cell) {
		t.Error("cell inside rect should be filled")
	}

	got = b.GetCell(0, 0)
	if got.Equals(cell) {
		t.Error("cell outside rect should not be filled")
	}
}

func TestNullBackendClear(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.SetCell(10, 10, core.NewCell('X'))
	b.SetCell(20, 20, core.NewCell('Y'))

	b.Clear()

	got := b.GetCell(10, 10)
	if !got.Equals(core.EmptyCell()) {
		t.Error("clear should reset all cells")
	}
}

func TestNullBackendHideCursor(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	if b.CursorHidden() {
		t.Error("cursor should start visible")
	}

	b.HideCursor()
	if !b.CursorHidden() {
		t.Error("cursor should be hidden after HideCursor")
	}
}

func TestNullBackendResize(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	resizeCalled := false
	b.OnResize(func(w, h int) {
		resizeCalled = true
		if w != 100 || h != 40 {
			t.Errorf("resize callback: expected (100, 40), got (%d, %d)", w, h)
		}
	})

	b.Resize(100, 40)

	if !resizeCalled {
		t.Error("resize callback was not called")
	}

	w, h := b.Size()
	if w != 100 || h != 40 {
		t.Errorf("expected size (100, 40), got (%d, %d)", w, h)
	}
}

func TestNullBackendPostEvent(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.PostEvent(Event{Type: EventKey, Key: KeyRune, Rune: 'j'})

	got := b.PollEvent()
	if got.Type != EventKey || got.Key != KeyRune || got.Rune != 'j' {
		t.Errorf("expected 'j' key event, got %+v", got)
	}
}

func TestNullBackendShutdownDeliversClosed(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.Shutdown()

	got := b.PollEvent()
	if got.Type != EventClosed {
		t.Errorf("expected EventClosed after Shutdown, got %+v", got)
	}
}

func TestNullBackendRowText(t *testing.T) {
	b := NewNullBackend(20, 4)
	b.Init()

	for i, r := range []rune{'h', 'i', '!'} {
		b.SetCell(i, 1, core.NewCell(r))
	}

	if got := b.RowText(1); got != "hi!" {
		t.Errorf("expected %q, got %q", "hi!", got)
	}
	if got := b.RowText(0); got != "" {
		t.Errorf("blank row should be empty, got %q", got)
	}
	if got := b.RowText(99); got != "" {
		t.Errorf("out of bounds row should be empty, got %q", got)
	}
}

func TestNullBackendRowTextSkipsContinuations(t *testing.T) {
	b := NewNullBackend(20, 2)
	b.Init()

	cells := core.CellsFromString("a中b", core.DefaultStyle())
	for i, cell := range cells {
		b.SetCell(i, 0, cell)
	}

	if got := b.RowText(0); got != "a中b" {
		t.Errorf("expected %q, got %q", "a中b", got)
	}
}

func TestNullBackendBeepCount(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	b.Beep()
	b.Beep()

	if got := b.BeepCount(); got != 2 {
		t.Errorf("expected 2 beeps, got %d", got)
	}
}

func TestNullBackendHasTrueColor(t *testing.T) {
	b := NewNullBackend(80, 24)
	if !b.HasTrueColor() {
		t.Error("null backend should report true color support")
	}
}

func TestModMaskHas(t *testing.T) {
	mod := ModShift | ModCtrl

	if !mod.Has(ModShift) {
		t.Error("should have shift")
	}
	if !mod.Has(ModCtrl) {
		t.Error("should have ctrl")
	}
	if mod.Has(ModAlt) {
		t.Error("should not have alt")
	}
}
