package app

import (
	"fmt"

	"github.com/cdfuller/md-viewer/internal/markdown"
	"github.com/cdfuller/md-viewer/internal/renderer/backend"
	"github.com/cdfuller/md-viewer/internal/renderer/core"
	"github.com/cdfuller/md-viewer/internal/source"
)

// eventLoop renders a frame, then reacts to terminal and watcher
// events until quit.
func (app *Application) eventLoop() error {
	events := make(chan backend.Event)
	done := make(chan struct{})
	defer close(done)
	go app.pumpEvents(events, done)

	var watchEvents <-chan source.Event
	var watchErrors <-chan error
	if app.watcher != nil {
		watchEvents = app.watcher.Events()
		watchErrors = app.watcher.Errors()
	}

	for {
		app.view.Render()

		select {
		case ev := <-events:
			switch ev.Type {
			case backend.EventClosed:
				return nil
			case backend.EventKey:
				if err := app.handleKey(ev); err != nil {
					return err
				}
			case backend.EventResize:
				app.handleResize(ev.Width, ev.Height)
			}

		case ev, ok := <-watchEvents:
			if !ok {
				watchEvents = nil
				continue
			}
			app.handleFileEvent(ev)

		case err, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			app.log.Warn("%v", NewComponentError("watcher", "watch", err))
		}
	}
}

// pumpEvents forwards terminal events to the loop. It exits on
// EventClosed or once the loop stops receiving.
func (app *Application) pumpEvents(events chan<- backend.Event, done <-chan struct{}) {
	for {
		ev := app.backend.PollEvent()
		select {
		case events <- ev:
		case <-done:
			return
		}
		if ev.Type == backend.EventClosed {
			return
		}
	}
}

// handleKey applies one key event. Quitting returns ErrQuit. While the
// help panel is open only its dismiss keys do anything.
func (app *Application) handleKey(ev backend.Event) error {
	if app.view.PanelVisible() {
		if ev.Key == backend.KeyEscape || (ev.Key == backend.KeyRune && ev.Rune == '?') {
			app.view.HidePanel()
		}
		return nil
	}

	switch ev.Key {
	case backend.KeyCtrlC:
		return ErrQuit
	case backend.KeyUp:
		app.view.ScrollUp(1)
	case backend.KeyDown, backend.KeyEnter:
		app.view.ScrollDown(1)
	case backend.KeyPageUp:
		app.view.PageUp()
	case backend.KeyPageDown:
		app.view.PageDown()
	case backend.KeyHome:
		app.view.ScrollToTop()
	case backend.KeyEnd:
		app.view.ScrollToBottom()
	case backend.KeyRune:
		return app.handleRune(ev.Rune)
	}
	return nil
}

// handleRune applies the printable key bindings.
func (app *Application) handleRune(r rune) error {
	switch r {
	case 'q':
		return ErrQuit
	case 'k':
		app.view.ScrollUp(1)
	case 'j':
		app.view.ScrollDown(1)
	case 'p':
		app.view.PageUp()
	case 'n', ' ':
		app.view.PageDown()
	case 'g':
		app.view.ScrollToTop()
	case 'G':
		app.view.ScrollToBottom()
	case 'r':
		app.reload("Reloaded file")
	case '?':
		app.view.ShowPanel(helpPanel())
	}
	return nil
}

// reload re-reads the file and recompiles. On failure the current
// document, overlays, and scroll position all stay put.
func (app *Application) reload(status string) {
	content, err := app.file.Read()
	if err != nil {
		app.log.Error("%v", NewOperationError("reload", app.file.DisplayPath(), err))
		app.view.SetStatus(fmt.Sprintf("Reload failed: %v", err))
		app.backend.Beep()
		return
	}
	app.content = content
	app.recompile()
	app.view.ResetScroll()
	app.view.SetStatus(status)
	app.log.Info("reloaded %s (%d bytes)", app.file.DisplayPath(), len(content))
}

// recompile rebuilds the document from the stored source at the
// current content width and hands it to the view. The view keeps the
// scroll position, so a resize does not lose the reader's place.
func (app *Application) recompile() {
	result := markdown.CompileSource([]byte(app.content), app.compileOptions())
	doc := result.Document
	if len(doc) == 0 {
		doc = core.Document{core.PlainLine("(file is empty)")}
	}
	app.hasTables = result.HasTables
	app.view.SetDocument(app.file.DisplayPath(), doc, result.Overlays)
}

// compileOptions caps table grids at the configured limit or the
// current content width, whichever is narrower.
func (app *Application) compileOptions() markdown.Options {
	opts := markdown.DefaultOptions()
	opts.Styles = app.theme.Styles
	if app.settings.MaxTableWidth > 0 {
		opts.MaxTableWidth = app.settings.MaxTableWidth
	}
	if w, _ := app.view.ContentSize(); w > 0 && w < opts.MaxTableWidth {
		opts.MaxTableWidth = w
	}
	return opts
}

// handleResize adapts the view and, when the document contains tables,
// recompiles them at the new width.
func (app *Application) handleResize(width, height int) {
	app.view.Resize(width, height)
	if app.hasTables {
		app.recompile()
	}
	app.log.Debug("resize %dx%d", width, height)
}

// handleFileEvent reloads after the watcher reports a change.
func (app *Application) handleFileEvent(ev source.Event) {
	app.log.Debug("file event: %s", ev.Op)
	app.reload("Reloaded: file changed")
}
