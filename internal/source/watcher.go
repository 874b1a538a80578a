package source

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op represents the type of file operation observed.
type Op uint8

// File operations. A coalesced event may carry several.
const (
	OpWrite Op = 1 << iota
	OpCreate
	OpRemove
	OpRename
)

// Has returns true when the operation set contains o.
func (op Op) Has(o Op) bool {
	return op&o != 0
}

// String returns the operation names.
func (op Op) String() string {
	names := ""
	add := func(s string) {
		if names != "" {
			names += "|"
		}
		names += s
	}
	if op.Has(OpWrite) {
		add("write")
	}
	if op.Has(OpCreate) {
		add("create")
	}
	if op.Has(OpRemove) {
		add("remove")
	}
	if op.Has(OpRename) {
		add("rename")
	}
	if names == "" {
		return "unknown"
	}
	return names
}

// Event records one observed change to the watched file. Rapid bursts
// coalesce into a single event with the operations OR-ed together.
type Event struct {
	// Path is the absolute path of the watched file.
	Path string

	// Op is the set of operations seen during the debounce window.
	Op Op

	// Time is when the last operation was observed.
	Time time.Time
}

// Watcher reports changes to a single file. It watches the parent
// directory rather than the file itself, so editors that save by
// writing a temp file and renaming it over the target keep being seen
// after the first save.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration

	events chan Event
	errors chan error

	mu      sync.Mutex
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets how long the watcher waits after the last change
// before emitting a coalesced event. Zero emits every change as it
// arrives.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// NewWatcher starts watching the file at path. The parent directory
// must exist; the file itself may not, in which case its creation is
// reported.
func NewWatcher(path string, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		path:     abs,
		debounce: 100 * time.Millisecond,
		events:   make(chan Event, 16),
		errors:   make(chan error, 16),
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.processLoop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns the event channel. It closes when the watcher does.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel. It closes when the watcher does.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	close(w.events)
	close(w.errors)
	return w.watcher.Close()
}

// processLoop filters directory events down to the watched file and
// debounces bursts into single coalesced events.
func (w *Watcher) processLoop() {
	defer w.wg.Done()

	var (
		pending Op
		last    time.Time
		timer   *time.Timer
		fire    <-chan time.Time
	)

	for {
		select {
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case fsEvent, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			op := convertOp(fsEvent.Op)
			if op == 0 || !w.matches(fsEvent.Name) {
				continue
			}
			pending |= op
			last = time.Now()

			if w.debounce <= 0 {
				w.send(Event{Path: w.path, Op: pending, Time: last})
				pending = 0
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case <-fire:
			if pending != 0 {
				w.send(Event{Path: w.path, Op: pending, Time: last})
				pending = 0
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// matches reports whether a directory event names the watched file.
func (w *Watcher) matches(name string) bool {
	return filepath.Clean(name) == w.path
}

// send delivers an event without blocking; a full channel drops it.
func (w *Watcher) send(event Event) {
	select {
	case w.events <- event:
	default:
	}
}

// sendError delivers an error without blocking; a full channel drops it.
func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}

// convertOp converts fsnotify operations, dropping chmod noise.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}
