package presenter

import (
	"errors"

	"chartview/internal/fileserver"
)

var (
	// ErrRender means the chart artifact could not be produced.
	ErrRender = errors.New("chart could not be generated")
	// ErrBind means the local file server could not be started.
	ErrBind = fileserver.ErrBind
	// ErrLaunch means the browser or the embedded view could not be started.
	ErrLaunch = errors.New("chart viewer could not be started")
	// ErrViewOpen is returned for a toggled show while a toggled view is
	// still open.
	ErrViewOpen = errors.New("an embedded view is already open")
	// ErrClosed is returned once the dispatcher has been closed.
	ErrClosed = errors.New("presenter is closed")
)
