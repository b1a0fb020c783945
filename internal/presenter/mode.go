package presenter

import "fmt"

// Mode selects how the served chart is presented.
type Mode int

const (
	// Browser opens the chart URL in the system default browser.
	Browser Mode = iota
	// EmbeddedProcess starts a separate process hosting an embedded view.
	EmbeddedProcess
	// EmbeddedToggled hides the main window while an in-process embedded view
	// is open and restores it afterwards.
	EmbeddedToggled
)

var modeNames = map[Mode]string{
	Browser:         "browser",
	EmbeddedProcess: "webview_process",
	EmbeddedToggled: "webview_separate",
}

var modeLabels = map[Mode]string{
	Browser:         "Default browser (recommended)",
	EmbeddedProcess: "Embedded view in a separate process",
	EmbeddedToggled: "Embedded view, toggled (hides this window temporarily)",
}

// Modes lists every mode in display order.
func Modes() []Mode {
	return []Mode{Browser, EmbeddedProcess, EmbeddedToggled}
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Label is the human-readable name shown next to the mode selector.
func (m Mode) Label() string {
	if label, ok := modeLabels[m]; ok {
		return label
	}
	return m.String()
}

func ParseMode(s string) (Mode, error) {
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown presentation mode %q", s)
}

// ModeForLabel maps a selector label back to its mode.
func ModeForLabel(label string) (Mode, bool) {
	for m, l := range modeLabels {
		if l == label {
			return m, true
		}
	}
	return 0, false
}
