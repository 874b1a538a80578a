package app

import (
	"sync"
	"sync/atomic"

	"github.com/cdfuller/md-viewer/internal/config"
	"github.com/cdfuller/md-viewer/internal/renderer"
	"github.com/cdfuller/md-viewer/internal/renderer/backend"
	"github.com/cdfuller/md-viewer/internal/source"
)

// statusSeed is shown until the first key or reload replaces it.
const statusSeed = "Press ? for help, q to quit"

// Options configures the application.
type Options struct {
	// Path is the markdown file to view.
	Path string

	// Settings is the loaded viewer configuration.
	Settings config.Settings

	// Theme supplies span styles and overlay colors. The zero value
	// selects the built-in theme.
	Theme config.Theme

	// Backend overrides the terminal backend. Nil selects tcell.
	Backend backend.Backend

	// Logger overrides the application logger. Nil selects the
	// package logger.
	Logger *Logger
}

// Application coordinates the viewer: one file, one view, one event
// loop.
type Application struct {
	mu sync.RWMutex

	file     *source.File
	settings config.Settings
	theme    config.Theme
	log      *Logger

	backend *backend.BufferedBackend
	view    *renderer.View
	watcher *source.Watcher

	// content is the last successfully read source, kept so resizes
	// can recompile tables without touching the file.
	content   string
	hasTables bool

	running atomic.Bool
}

// New creates an application for the given file. The file must exist;
// the terminal is not touched until Run.
func New(opts Options) (*Application, error) {
	if opts.Path == "" {
		return nil, ErrNoDocument
	}
	file, err := source.NewFile(opts.Path)
	if err != nil {
		return nil, err
	}

	b := opts.Backend
	if b == nil {
		term, err := backend.NewTerminal()
		if err != nil {
			return nil, &InitError{Component: "terminal", Err: err}
		}
		b = term
	}

	if opts.Theme == (config.Theme{}) {
		opts.Theme = config.DefaultTheme()
	}

	log := opts.Logger
	if log == nil {
		log = GetLogger()
	}

	return &Application{
		file:     file,
		settings: opts.Settings,
		theme:    opts.Theme,
		log:      log.WithComponent("app"),
		backend:  backend.NewBufferedBackend(b),
	}, nil
}

// Run starts the viewer and blocks until it exits. A user-requested
// quit returns ErrQuit; a Shutdown call returns nil.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	if err := app.load(); err != nil {
		return err
	}
	app.startWatcher()
	defer app.stopWatcher()

	return app.eventLoop()
}

// load builds the view and compiles the initial document.
func (app *Application) load() error {
	app.backend.HideCursor()

	app.mu.Lock()
	app.view = renderer.NewView(app.backend, app.theme.Overlay)
	app.mu.Unlock()

	content, err := app.file.Read()
	if err != nil {
		return NewOperationError("read", app.file.DisplayPath(), err)
	}
	app.content = content
	app.recompile()
	app.view.SetStatus(statusSeed)

	w, h := app.backend.Size()
	app.log.Info("viewing %s (%d bytes, %dx%d)", app.file.DisplayPath(), len(content), w, h)
	return nil
}

// startWatcher begins watching the file when configured. Watch
// failures degrade to manual reloads.
func (app *Application) startWatcher() {
	if !app.settings.Watch {
		return
	}
	watcher, err := source.NewWatcher(app.file.Path())
	if err != nil {
		app.log.Warn("file watching disabled: %v", err)
		return
	}
	app.watcher = watcher
}

func (app *Application) stopWatcher() {
	if app.watcher != nil {
		_ = app.watcher.Close()
		app.watcher = nil
	}
}

// Shutdown stops a running viewer from another goroutine, typically a
// signal handler. The event loop exits cleanly and Run returns nil.
func (app *Application) Shutdown() error {
	if !app.running.Load() {
		return ErrNotRunning
	}
	app.backend.Shutdown()
	return nil
}

// IsRunning reports whether the event loop is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// View returns the renderer view, or nil before Run has loaded the
// document.
func (app *Application) View() *renderer.View {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.view
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.log
}
