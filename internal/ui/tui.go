// ABOUTME: TUI initialization and control
// ABOUTME: Wraps bubbletea program for player UI
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Request identifies one key-driven action for the app to perform
type Request int

const (
	// RequestQuit asks the app to shut down
	RequestQuit Request = iota
	// RequestCyclePreset asks for the next effect preset
	RequestCyclePreset
	// RequestToggle asks to stop or restart the stream
	RequestToggle
)

// Controls carries key-driven requests from the TUI to the app
type Controls struct {
	Requests chan Request
}

// NewControls creates a new control channel set
func NewControls() *Controls {
	return &Controls{
		Requests: make(chan Request, 10),
	}
}

// request forwards a key action without blocking the update loop
func (m Model) request(r Request) {
	if m.controls == nil {
		return
	}
	select {
	case m.controls.Requests <- r:
	default:
	}
}

// NewModel creates a new TUI model
func NewModel(controls *Controls) Model {
	return Model{
		preset:   "clean",
		controls: controls,
	}
}

// Run starts the TUI
func Run(controls *Controls) (*tea.Program, error) {
	p := tea.NewProgram(NewModel(controls), tea.WithAltScreen())
	return p, nil
}
