package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type Header struct {
	container *fyne.Container
}

func NewHeader(title, subtitle string) *Header {
	titleLabel := widget.NewLabelWithStyle(title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	subtitleLabel := widget.NewLabelWithStyle(subtitle, fyne.TextAlignCenter, fyne.TextStyle{})
	subtitleLabel.Wrapping = fyne.TextWrapWord

	return &Header{
		container: container.NewVBox(titleLabel, subtitleLabel),
	}
}

func (h *Header) GetContainer() *fyne.Container {
	return h.container
}
