package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const statusPrefix = "Status: "

type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	modeLabel   *widget.Label
}

func NewStatusBar() *StatusBar {
	statusLabel := widget.NewLabel(statusPrefix + "Ready")
	statusLabel.Wrapping = fyne.TextWrapWord
	modeLabel := widget.NewLabel("")

	mainContainer := container.NewBorder(
		nil, nil,
		nil,
		modeLabel,
		statusLabel,
	)

	return &StatusBar{
		container:   mainContainer,
		statusLabel: statusLabel,
		modeLabel:   modeLabel,
	}
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(statusPrefix + status)
}

// Status returns the current status text without the prefix.
func (sb *StatusBar) Status() string {
	return sb.statusLabel.Text[len(statusPrefix):]
}

func (sb *StatusBar) SetMode(mode string) {
	sb.modeLabel.SetText(mode)
}
