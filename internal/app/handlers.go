package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"chartview/internal/logger"
	"chartview/internal/presenter"
)

// Presenter is the part of presenter.Dispatcher the handlers use.
type Presenter interface {
	Show(ctx context.Context, mode presenter.Mode) error
}

// ChartSource renders named datasets to the chart artifact.
type ChartSource interface {
	Dataset() string
	GenerateDataset(name string) error
}

type StatusView interface {
	UpdateStatus(status string)
	ShowError(title string, err error)
}

// Handlers reacts to user actions on the main window. It owns the selected
// presentation mode.
type Handlers struct {
	presenter Presenter
	source    ChartSource
	view      StatusView
	logger    logger.Logger
	datasets  []string

	mu   sync.Mutex
	mode presenter.Mode

	// async runs slow work off the UI goroutine.
	async func(func())
}

func NewHandlers(p Presenter, src ChartSource, view StatusView, log logger.Logger, mode presenter.Mode, datasets []string) *Handlers {
	return &Handlers{
		presenter: p,
		source:    src,
		view:      view,
		logger:    log,
		datasets:  datasets,
		mode:      mode,
		async:     func(f func()) { go f() },
	}
}

func (h *Handlers) Mode() presenter.Mode {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mode
}

func (h *Handlers) HandleModeChange(mode presenter.Mode) {
	h.mu.Lock()
	h.mode = mode
	h.mu.Unlock()

	h.logger.Info("Handlers", "presentation mode changed", map[string]interface{}{
		"mode": mode.String(),
	})
	h.view.UpdateStatus(fmt.Sprintf("Mode changed: %s", mode))
}

func (h *Handlers) HandleShowChart() {
	mode := h.Mode()
	h.view.UpdateStatus("Loading chart...")

	h.async(func() {
		err := h.presenter.Show(context.Background(), mode)
		if err != nil {
			h.logger.Error("Handlers", err, map[string]interface{}{"mode": mode.String()})
			h.view.UpdateStatus(ShowErrorStatus(err))
			// The user has nothing on screen to look at, so say why.
			if errors.Is(err, presenter.ErrLaunch) {
				h.view.ShowError("Could not open chart", err)
			}
			return
		}
		h.view.UpdateStatus(fmt.Sprintf("Chart opened - mode: %s", mode))
	})
}

// HandleGenerateNew renders the next built-in dataset over the artifact.
func (h *Handlers) HandleGenerateNew() {
	next := h.nextDataset()
	h.view.UpdateStatus("Generating new chart...")

	h.async(func() {
		if err := h.source.GenerateDataset(next); err != nil {
			h.logger.Error("Handlers", err, map[string]interface{}{"dataset": next})
			h.view.UpdateStatus("Error generating new chart")
			return
		}
		h.view.UpdateStatus(fmt.Sprintf("New chart generated! (%s)", next))
	})
}

func (h *Handlers) HandleResponsivenessCheck() {
	h.logger.Info("Handlers", "interface fully responsive", nil)
	h.view.UpdateStatus("Interface working perfectly!")
}

func (h *Handlers) nextDataset() string {
	current := h.source.Dataset()
	for i, name := range h.datasets {
		if name == current {
			return h.datasets[(i+1)%len(h.datasets)]
		}
	}
	if len(h.datasets) > 0 {
		return h.datasets[0]
	}
	return current
}

// ShowErrorStatus turns a presentation failure into the status line text.
func ShowErrorStatus(err error) string {
	switch {
	case errors.Is(err, presenter.ErrRender):
		return "Error opening chart: the chart could not be generated"
	case errors.Is(err, presenter.ErrBind):
		return "Error opening chart: the local server failed to start"
	case errors.Is(err, presenter.ErrViewOpen):
		return "An embedded chart view is already open"
	case errors.Is(err, presenter.ErrLaunch):
		return "Error opening chart: the viewer could not be started"
	case errors.Is(err, presenter.ErrClosed):
		return "Application is shutting down"
	default:
		return "Error opening chart"
	}
}
