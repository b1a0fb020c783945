package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ControlsPanel holds the mode selector and the action buttons.
type ControlsPanel struct {
	container *fyne.Container

	ModeRadio      *widget.RadioGroup
	ShowButton     *widget.Button
	CheckButton    *widget.Button
	GenerateButton *widget.Button

	modeChangeHandler func(label string)
	showHandler       func()
	checkHandler      func()
	generateHandler   func()
}

func NewControlsPanel(modeLabels []string, selected string) *ControlsPanel {
	panel := &ControlsPanel{}
	panel.setupControls(modeLabels, selected)
	return panel
}

func (cp *ControlsPanel) setupControls(modeLabels []string, selected string) {
	cp.ModeRadio = widget.NewRadioGroup(modeLabels, nil)
	cp.ModeRadio.Required = true
	cp.ModeRadio.SetSelected(selected)
	// Attach after the initial selection so startup does not count as a change.
	cp.ModeRadio.OnChanged = cp.onModeSelected

	modeCard := widget.NewCard("", "Presentation method", cp.ModeRadio)

	cp.ShowButton = widget.NewButton("📊 Show Interactive Chart", cp.onShow)
	cp.ShowButton.Importance = widget.HighImportance
	cp.CheckButton = widget.NewButton("🔍 Responsiveness Check", cp.onCheck)
	cp.GenerateButton = widget.NewButton("🔄 Generate New Chart", cp.onGenerate)

	buttons := container.NewVBox(
		cp.ShowButton,
		cp.CheckButton,
		cp.GenerateButton,
	)

	cp.container = container.NewVBox(
		modeCard,
		container.NewCenter(buttons),
	)
}

func (cp *ControlsPanel) GetContainer() *fyne.Container {
	return cp.container
}

func (cp *ControlsPanel) SetModeChangeHandler(handler func(label string)) {
	cp.modeChangeHandler = handler
}

func (cp *ControlsPanel) SetShowHandler(handler func()) {
	cp.showHandler = handler
}

func (cp *ControlsPanel) SetCheckHandler(handler func()) {
	cp.checkHandler = handler
}

func (cp *ControlsPanel) SetGenerateHandler(handler func()) {
	cp.generateHandler = handler
}

func (cp *ControlsPanel) onModeSelected(label string) {
	if label == "" {
		return
	}
	if cp.modeChangeHandler != nil {
		cp.modeChangeHandler(label)
	}
}

func (cp *ControlsPanel) onShow() {
	if cp.showHandler != nil {
		cp.showHandler()
	}
}

func (cp *ControlsPanel) onCheck() {
	if cp.checkHandler != nil {
		cp.checkHandler()
	}
}

func (cp *ControlsPanel) onGenerate() {
	if cp.generateHandler != nil {
		cp.generateHandler()
	}
}
