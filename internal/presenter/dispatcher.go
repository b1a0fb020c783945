// Package presenter decides how a rendered chart reaches the screen: through
// the default browser, a separate embedded-view process, or an in-process
// embedded view that temporarily replaces the main window.
package presenter

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"chartview/internal/logger"
)

// Artifact is the chart file the server exposes.
type Artifact interface {
	Path() string
	Generate() error
}

type FileServer interface {
	Start(ctx context.Context) (string, error)
}

type URLOpener interface {
	Open(url string) error
}

type ProcessLauncher interface {
	Launch(url string) error
}

// Viewer opens an embedded view and blocks until it is closed or ctx is done.
type Viewer interface {
	Open(ctx context.Context, url string) error
}

// Window is the main application window. Hide returns once the window is
// actually hidden or ctx is done.
type Window interface {
	Hide(ctx context.Context) error
	Show()
}

// ToggleState tracks the main window while a toggled view is in flight.
type ToggleState int

const (
	MainVisible ToggleState = iota
	MainHiddenAwaitingView
	ViewOpen
)

func (s ToggleState) String() string {
	switch s {
	case MainVisible:
		return "main_visible"
	case MainHiddenAwaitingView:
		return "main_hidden_awaiting_view"
	case ViewOpen:
		return "view_open"
	default:
		return fmt.Sprintf("ToggleState(%d)", int(s))
	}
}

type Deps struct {
	Artifact Artifact
	Server   FileServer
	Opener   URLOpener
	Launcher ProcessLauncher
	Viewer   Viewer
	Window   Window
	Logger   logger.Logger
}

// Dispatcher is created once per main window and handed to every handler
// that needs to present the chart.
type Dispatcher struct {
	artifact Artifact
	server   FileServer
	opener   URLOpener
	launcher ProcessLauncher
	viewer   Viewer
	window   Window
	logger   logger.Logger

	mu         sync.Mutex
	state      ToggleState
	cancelView context.CancelFunc
	closed     bool
	views      sync.WaitGroup
}

func New(d Deps) *Dispatcher {
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	if d.Opener == nil {
		d.Opener = SystemOpener{}
	}
	return &Dispatcher{
		artifact: d.Artifact,
		server:   d.Server,
		opener:   d.Opener,
		launcher: d.Launcher,
		viewer:   d.Viewer,
		window:   d.Window,
		logger:   d.Logger,
	}
}

// Show presents the chart using mode. A nil error means the request was
// issued; it does not confirm that anything became visible.
func (d *Dispatcher) Show(ctx context.Context, mode Mode) error {
	d.mu.Lock()
	closed := d.closed
	d.mu.Unlock()
	if closed {
		return ErrClosed
	}

	if err := d.ensureArtifact(); err != nil {
		return err
	}

	switch mode {
	case Browser:
		url, err := d.server.Start(ctx)
		if err != nil {
			return err
		}
		d.logger.Info("Dispatcher", "opening in default browser", map[string]interface{}{"url": url})
		if err := d.opener.Open(url); err != nil {
			return fmt.Errorf("%w: open browser: %w", ErrLaunch, err)
		}
		return nil

	case EmbeddedProcess:
		if d.launcher == nil {
			return fmt.Errorf("%w: no process launcher configured", ErrLaunch)
		}
		url, err := d.server.Start(ctx)
		if err != nil {
			return err
		}
		if err := d.launcher.Launch(url); err != nil {
			return fmt.Errorf("%w: %w", ErrLaunch, err)
		}
		return nil

	case EmbeddedToggled:
		if d.viewer == nil || d.window == nil {
			return fmt.Errorf("%w: embedded view unavailable", ErrLaunch)
		}
		url, err := d.server.Start(ctx)
		if err != nil {
			return err
		}
		return d.showToggled(url)

	default:
		return fmt.Errorf("%w: unsupported mode %s", ErrLaunch, mode)
	}
}

func (d *Dispatcher) ensureArtifact() error {
	path := d.artifact.Path()
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	d.logger.Info("Dispatcher", "chart missing, regenerating", map[string]interface{}{"path": path})
	if err := d.artifact.Generate(); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

func (d *Dispatcher) showToggled(url string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrClosed
	}
	if d.state != MainVisible {
		return ErrViewOpen
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.state = MainHiddenAwaitingView
	d.cancelView = cancel
	d.views.Add(1)

	go d.runToggled(ctx, cancel, url)
	return nil
}

func (d *Dispatcher) runToggled(ctx context.Context, cancel context.CancelFunc, url string) {
	defer d.views.Done()
	defer cancel()
	// Restoring the main window is unconditional.
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Dispatcher", fmt.Errorf("embedded view panicked: %v", r), nil)
		}
		d.window.Show()
		d.setState(MainVisible)
		d.logger.Info("Dispatcher", "main window restored", nil)
	}()

	if err := d.window.Hide(ctx); err != nil {
		d.logger.Warning("Dispatcher", "main window hide interrupted", map[string]interface{}{"error": err.Error()})
		return
	}
	d.setState(ViewOpen)

	if err := d.viewer.Open(ctx, url); err != nil {
		d.logger.Error("Dispatcher", err, map[string]interface{}{"url": url})
	}
}

func (d *Dispatcher) setState(s ToggleState) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state = s
	if s == MainVisible {
		d.cancelView = nil
	}
}

func (d *Dispatcher) State() ToggleState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Wait blocks until any toggled view has closed and the main window has been
// restored.
func (d *Dispatcher) Wait() {
	d.views.Wait()
}

// Close rejects further Show calls, closes an open toggled view and waits for
// the main window to be restored or ctx to expire.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	if d.cancelView != nil {
		d.cancelView()
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.views.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
