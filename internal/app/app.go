// Package app runs the interactive glint viewer: it draws a document on a
// terminal backend and routes key presses to editor operations.
package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/glint/internal/config"
	"github.com/dshills/glint/internal/editor"
	"github.com/dshills/glint/internal/renderer/backend"
)

// DefaultPopupRows is the number of suggestions shown at once.
const DefaultPopupRows = 6

// Application is the interactive viewer for a single document.
type Application struct {
	mu sync.Mutex

	session *editor.Session
	doc     *editor.Document
	backend backend.Backend
	logger  *slog.Logger
	metrics *Metrics

	// View state
	status      string
	top, left   int
	popupHidden bool

	running   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file reloaded on change.
	ConfigPath string

	// WatchConfig enables live reload of ConfigPath.
	WatchConfig bool

	// PopupRows caps the visible completion rows. Zero means
	// DefaultPopupRows.
	PopupRows int

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
}

// New creates an application showing doc.
func New(session *editor.Session, doc *editor.Document, opts Options) *Application {
	if opts.PopupRows <= 0 {
		opts.PopupRows = DefaultPopupRows
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Application{
		session: session,
		doc:     doc,
		logger:  logger,
		metrics: NewMetrics(),
		done:    make(chan struct{}),
		opts:    opts,
	}
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Run initializes the backend and processes events until the user quits,
// ctx is canceled or Shutdown is called.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if app.backend == nil {
		return ErrNoBackend
	}
	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer app.backend.Shutdown()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if app.opts.WatchConfig && app.opts.ConfigPath != "" {
		go app.watchConfig(ctx)
	}

	app.logger.Debug("viewer started", "document", app.doc.ID, "name", app.doc.Name, "truecolor", app.backend.HasTrueColor())
	app.Draw()
	return app.eventLoop(ctx)
}

// eventLoop handles events until quit or cancellation.
func (app *Application) eventLoop(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	events := app.startInputPolling(stop)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-app.done:
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			start := time.Now()
			err := app.HandleEvent(ev)
			app.metrics.RecordInput(time.Since(start))
			if errors.Is(err, ErrQuit) {
				app.logger.Debug("viewer quit", "document", app.doc.ID)
				return nil
			}
			if err != nil {
				app.logger.Warn("command failed", "err", err)
				app.setStatus(err.Error())
			}
			app.Draw()
		}
	}
}

// startInputPolling starts a goroutine that polls for input events.
// Events are sent to the returned channel, which is closed once the
// backend shuts down or stop is closed.
func (app *Application) startInputPolling(stop <-chan struct{}) <-chan backend.Event {
	events := make(chan backend.Event, 100)

	go func() {
		defer close(events)

		for {
			// PollEvent is blocking. The backend.Shutdown() call in Run()
			// unblocks it with EventClosed.
			ev := app.backend.PollEvent()
			if ev.Type == backend.EventClosed {
				return
			}
			select {
			case events <- ev:
			case <-stop:
				return
			}
		}
	}()

	return events
}

// configReload carries a reload result from the watcher goroutine to the
// event loop.
type configReload struct {
	cfg *config.Config
	err error
}

func (app *Application) watchConfig(ctx context.Context) {
	err := config.Watch(ctx, app.opts.ConfigPath, app.logger, func(cfg *config.Config, err error) {
		app.backend.PostEvent(backend.Event{
			Type: backend.EventInterrupt,
			Data: configReload{cfg: cfg, err: err},
		})
	})
	if err != nil && ctx.Err() == nil {
		app.logger.Warn("config watch stopped", "path", app.opts.ConfigPath, "err", err)
	}
}

// Shutdown stops a running Run. It is safe to call more than once.
func (app *Application) Shutdown() {
	app.closeOnce.Do(func() { close(app.done) })
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Document returns the document being edited.
func (app *Application) Document() *editor.Document {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.doc
}

// Status returns the current status message.
func (app *Application) Status() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.status
}

func (app *Application) setStatus(msg string) {
	app.mu.Lock()
	app.status = msg
	app.mu.Unlock()
}

// Metrics returns the application's metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}
