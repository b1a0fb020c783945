package components

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestStatusBar(t *testing.T) {
	test.NewApp()
	sb := NewStatusBar()

	assert.Equal(t, "Ready", sb.Status())

	sb.SetStatus("Loading chart...")
	assert.Equal(t, "Loading chart...", sb.Status())
	assert.Equal(t, "Status: Loading chart...", sb.statusLabel.Text)
}

func TestControlsPanelDispatchesEvents(t *testing.T) {
	test.NewApp()
	cp := NewControlsPanel([]string{"A", "B"}, "A")

	var modes []string
	var shows, checks, generates int
	cp.SetModeChangeHandler(func(label string) { modes = append(modes, label) })
	cp.SetShowHandler(func() { shows++ })
	cp.SetCheckHandler(func() { checks++ })
	cp.SetGenerateHandler(func() { generates++ })

	assert.Equal(t, "A", cp.ModeRadio.Selected)
	assert.Empty(t, modes, "initial selection is not a change")

	cp.ModeRadio.SetSelected("B")
	test.Tap(cp.ShowButton)
	test.Tap(cp.CheckButton)
	test.Tap(cp.GenerateButton)
	test.Tap(cp.GenerateButton)

	assert.Equal(t, []string{"B"}, modes)
	assert.Equal(t, 1, shows)
	assert.Equal(t, 1, checks)
	assert.Equal(t, 2, generates)
}

func TestControlsPanelWithoutHandlers(t *testing.T) {
	test.NewApp()
	cp := NewControlsPanel([]string{"A"}, "A")

	assert.NotPanics(t, func() {
		test.Tap(cp.ShowButton)
		test.Tap(cp.CheckButton)
		test.Tap(cp.GenerateButton)
	})
}
