package gui

import (
	"context"
	"sync"

	"chartview/internal/gui/components"
	"chartview/internal/logger"
	"chartview/internal/presenter"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
)

const (
	headerTitle    = "Fyne + Charts + Embedded View\n(multiple methods)"
	headerSubtitle = "This window stays responsive!\nChoose a presentation method:"
)

// Manager builds the main window content and exposes it to the handlers. It
// also implements presenter.Window for the toggled presentation mode.
type Manager struct {
	window     fyne.Window
	logger     logger.Logger
	mu         sync.Mutex
	isShutdown bool

	header    *components.Header
	controls  *components.ControlsPanel
	statusBar *components.StatusBar
	help      fyne.CanvasObject

	modeChangeHandler func(presenter.Mode)
}

func NewManager(window fyne.Window, log logger.Logger, initial presenter.Mode) *Manager {
	labels := make([]string, 0, len(presenter.Modes()))
	for _, m := range presenter.Modes() {
		labels = append(labels, m.Label())
	}

	manager := &Manager{
		window:    window,
		logger:    log,
		header:    components.NewHeader(headerTitle, headerSubtitle),
		controls:  components.NewControlsPanel(labels, initial.Label()),
		statusBar: components.NewStatusBar(),
		help:      components.NewHelpText(),
	}
	manager.statusBar.SetMode(initial.String())

	manager.controls.SetModeChangeHandler(func(label string) {
		mode, ok := presenter.ModeForLabel(label)
		if !ok {
			return
		}
		manager.logger.Debug("GUIManager", "mode change requested", map[string]interface{}{
			"mode": mode.String(),
		})
		manager.statusBar.SetMode(mode.String())
		if manager.modeChangeHandler != nil {
			manager.modeChangeHandler(mode)
		}
	})

	log.Info("GUIManager", "initialized", map[string]interface{}{
		"initial_mode": initial.String(),
	})

	return manager
}

func (m *Manager) GetMainContainer() fyne.CanvasObject {
	top := container.NewVBox(
		m.header.GetContainer(),
		m.controls.GetContainer(),
	)

	return container.NewBorder(
		top,
		m.statusBar.GetContainer(),
		nil, nil,
		container.NewVScroll(m.help),
	)
}

func (m *Manager) SetModeChangeHandler(handler func(presenter.Mode)) {
	m.modeChangeHandler = handler
}

func (m *Manager) SetShowChartHandler(handler func()) {
	m.controls.SetShowHandler(func() {
		m.logger.Info("GUIManager", "show chart requested", nil)
		handler()
	})
}

func (m *Manager) SetGenerateHandler(handler func()) {
	m.controls.SetGenerateHandler(handler)
}

func (m *Manager) SetResponsivenessHandler(handler func()) {
	m.controls.SetCheckHandler(handler)
}

// UpdateStatus is safe to call from any goroutine.
func (m *Manager) UpdateStatus(status string) {
	fyne.Do(func() {
		m.statusBar.SetStatus(status)
		m.logger.Debug("GUIManager", "status updated", map[string]interface{}{
			"status": status,
		})
	})
}

func (m *Manager) Status() string {
	return m.statusBar.Status()
}

func (m *Manager) ShowError(title string, err error) {
	m.logger.Error("GUIManager", err, map[string]interface{}{
		"title": title,
	})

	fyne.Do(func() {
		dialog.ShowError(err, m.window)
	})
}

// Hide hides the main window and returns once the UI thread has done so.
func (m *Manager) Hide(ctx context.Context) error {
	hidden := make(chan struct{})
	fyne.Do(func() {
		m.window.Hide()
		close(hidden)
	})

	select {
	case <-hidden:
		m.logger.Debug("GUIManager", "main window hidden", nil)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Show restores the main window. It does not wait for the UI thread.
func (m *Manager) Show() {
	fyne.Do(func() {
		m.window.Show()
		m.window.RequestFocus()
		m.logger.Debug("GUIManager", "main window restored", nil)
	})
}

func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isShutdown {
		return
	}

	m.isShutdown = true
	m.UpdateStatus("Shutting down...")
	m.logger.Info("GUIManager", "shutdown initiated", nil)
}
