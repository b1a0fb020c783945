// Package webview opens a URL in a Chrome-backed app window through lorca.
package webview

import (
	"context"
	"errors"
	"fmt"

	"github.com/zserge/lorca"

	"chartview/internal/logger"
)

// ErrNoBrowser means no Chrome/Chromium installation could be located.
var ErrNoBrowser = errors.New("no Chrome or Chromium installation found")

// View shows a URL in an app-mode browser window. The window title comes
// from the page itself.
type View struct {
	Width  int
	Height int

	logger logger.Logger
	// start is swapped in tests.
	start func(url string, width, height int) (window, error)
}

type window interface {
	Done() <-chan struct{}
	Close() error
}

func New(width, height int, log logger.Logger) *View {
	if log == nil {
		log = logger.Nop()
	}
	return &View{
		Width:  width,
		Height: height,
		logger: log,
		start:  startLorca,
	}
}

// Available reports whether a browser lorca can drive is installed.
func Available() bool {
	return lorca.LocateChrome() != ""
}

func startLorca(url string, width, height int) (window, error) {
	if !Available() {
		return nil, ErrNoBrowser
	}
	ui, err := lorca.New(url, "", width, height)
	if err != nil {
		return nil, err
	}
	return ui, nil
}

// Open shows url and blocks until the user closes the window or ctx is done.
func (v *View) Open(ctx context.Context, url string) error {
	v.logger.Info("WebView", "opening embedded view", map[string]interface{}{
		"url":    url,
		"width":  v.Width,
		"height": v.Height,
	})

	ui, err := v.start(url, v.Width, v.Height)
	if err != nil {
		return fmt.Errorf("open embedded view: %w", err)
	}
	defer ui.Close()

	select {
	case <-ui.Done():
		v.logger.Info("WebView", "embedded view closed by user", nil)
	case <-ctx.Done():
		v.logger.Info("WebView", "embedded view closed by application", nil)
	}
	return nil
}
