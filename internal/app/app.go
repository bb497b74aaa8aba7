// Package app wires configuration, logging, the event bus, an item source
// and a list into a runnable chooser. It owns the terminal event loop.
package app

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/listkit/internal/config"
	"github.com/dshills/listkit/internal/event"
	"github.com/dshills/listkit/internal/list"
	"github.com/dshills/listkit/internal/renderer/backend"
	"github.com/dshills/listkit/internal/renderer/listview"
	"github.com/dshills/listkit/internal/script"
)

// Application is the chooser: one list, its item source and the terminal
// that shows it.
type Application struct {
	mu sync.Mutex

	// Core infrastructure
	eventBus  event.Bus
	config    *config.Config
	logger    *slog.Logger
	logCloser io.Closer

	// List components
	host   *list.SliceHost
	list   *list.List
	view   *listview.View
	script *script.Script
	hooks  *script.Binding
	subs   []event.Subscription

	backend    backend.Backend
	feedSource bool
	looping    bool
	pending    []func()

	// State
	running   atomic.Bool
	finished  atomic.Bool
	cancelled atomic.Bool
	action    atomic.Int64
	closeOnce sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty uses defaults and the
	// environment only.
	ConfigPath string

	// EnvPrefix overrides the LISTKIT_ environment prefix.
	EnvPrefix string

	// Overrides are dot-path settings from the command line.
	Overrides map[string]any

	// ScriptPath is a Lua file providing items and hooks.
	ScriptPath string

	// FeedPath is a JSON item feed. "-" reads Stdin.
	FeedPath string

	// Labels are literal item labels.
	Labels []string

	// Stdin backs FeedPath "-".
	Stdin io.Reader

	// Watch reloads the config file and a FeedPath file when they change.
	Watch bool

	// Logger overrides the logger built from the [log] section.
	Logger *slog.Logger

	// Poster runs functions on a host loop other than the backend's, such
	// as a Bubble Tea program.
	Poster list.Poster
}

// New creates an Application and bootstraps every component. The list is
// mounted on return.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	app.action.Store(-1)

	if err := app.bootstrap(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

// SetBackend sets the terminal backend. It must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run shows the list and blocks until the user chooses, quits, or ctx is
// cancelled.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()
	if app.opts.Watch && app.config.File() != "" {
		if err := app.config.Watch(watchCtx); err != nil {
			app.logger.Warn("config watch failed", "error", err)
		}
	}
	if app.opts.Watch && app.feedSource {
		if err := app.watchFeed(watchCtx); err != nil {
			app.logger.Warn("feed watch failed", "error", err)
		}
	}

	stop := context.AfterFunc(ctx, func() {
		b.Post(func() { app.cancelled.Store(true) })
	})
	defer stop()

	return app.eventLoop(b)
}

// Finish ends the event loop as if the user had chosen. It is safe to call
// from any goroutine.
func (app *Application) Finish() {
	app.finished.Store(true)
	app.post(func() {})
}

// Cancel marks the run as cancelled by the user.
func (app *Application) Cancel() {
	app.cancelled.Store(true)
}

// Ended reports whether the user chose or cancelled.
func (app *Application) Ended() bool {
	return app.ended()
}

// Result reports what the user chose.
func (app *Application) Result() Result {
	r := Result{
		List:      app.list.Name(),
		Cancelled: app.cancelled.Load(),
		Action:    int(app.action.Load()),
	}
	if r.Cancelled {
		return r
	}
	for _, it := range app.list.Selected() {
		r.Items = append(r.Items, resultItem(app.list.IndexOf(it), it))
	}
	if len(r.Items) == 0 && r.Action >= 0 {
		if it, ok := app.list.Item(r.Action); ok {
			r.Items = append(r.Items, resultItem(r.Action, it))
		}
	}
	return r
}

// Shutdown releases every component in reverse bootstrap order. It is
// idempotent.
func (app *Application) Shutdown() {
	app.closeOnce.Do(app.shutdown)
}

func (app *Application) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if app.hooks != nil {
		app.hooks.Detach()
	}
	for _, sub := range app.subs {
		_ = app.eventBus.Unsubscribe(sub)
	}
	if app.list != nil {
		_ = app.list.Close()
	}
	if app.script != nil {
		_ = app.script.Close()
	}
	if app.config != nil {
		_ = app.config.Close()
	}
	if app.eventBus != nil {
		_ = app.eventBus.Stop(ctx)
	}
	if app.logCloser != nil {
		_ = app.logCloser.Close()
	}
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// EventBus returns the event bus.
func (app *Application) EventBus() event.Bus {
	return app.eventBus
}

// Config returns the configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

// List returns the list.
func (app *Application) List() *list.List {
	return app.list
}

// Host returns the list's host container.
func (app *Application) Host() *list.SliceHost {
	return app.host
}

// View returns the list view.
func (app *Application) View() *listview.View {
	return app.view
}

// Logger returns the application logger.
func (app *Application) Logger() *slog.Logger {
	return app.logger
}

// post runs fn on the event loop. Functions posted while the loop is not
// running wait for the next loop to start.
func (app *Application) post(fn func()) {
	if app.opts.Poster != nil {
		app.opts.Poster(fn)
		return
	}
	app.mu.Lock()
	if !app.looping {
		app.pending = append(app.pending, fn)
		app.mu.Unlock()
		return
	}
	b := app.backend
	app.mu.Unlock()
	b.Post(fn)
}

// startLoop marks the loop running and returns what was posted before it.
func (app *Application) startLoop() []func() {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.looping = true
	fns := app.pending
	app.pending = nil
	return fns
}

func (app *Application) stopLoop() {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.looping = false
}
