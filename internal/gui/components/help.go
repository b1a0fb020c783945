package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

const helpText = `Presentation methods

1. Default browser (recommended)
   - Most stable and compatible option.
   - This window stays fully responsive.
   - Full browser features: zoom, save, print.

2. Embedded view in a separate process
   - Opens a dedicated window through a small launcher script.
   - No conflict with this window's event loop.
   - Closed automatically when the application exits.

3. Embedded view, toggled
   - Hides this window while the chart is shown.
   - Restores this window when the chart window closes.
   - Only one of the two windows is usable at a time.

Charts are served from a local address only and are never reachable from
other machines.`

// NewHelpText returns the read-only description of the presentation methods.
func NewHelpText() fyne.CanvasObject {
	text := widget.NewRichTextWithText(helpText)
	text.Wrapping = fyne.TextWrapWord
	return text
}
