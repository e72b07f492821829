// ABOUTME: Bubbletea model for player TUI
// ABOUTME: Defines application state and update logic
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Model represents the TUI state
type Model struct {
	// Playback
	playing bool
	preset  string

	// Station
	station   string
	streamURL string

	// Metadata
	title       string
	artist      string
	album       string
	artworkPath string

	// Errors
	lastError string

	// Dimensions
	width  int
	height int

	controls *Controls
}

// Box layout is a fixed 56 columns; content rows pad to match.
var (
	boxTop    = "┌─ Marconio " + strings.Repeat("─", 43) + "┐\n"
	boxMid    = "├" + strings.Repeat("─", 54) + "┤\n"
	boxBottom = "└" + strings.Repeat("─", 54) + "┘\n"
)

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := m.renderHeader()
	s += m.renderNowPlaying()
	s += m.renderControls()
	s += m.renderHelp()

	return s
}

// renderHeader renders playback and station status
func (m Model) renderHeader() string {
	status := "Stopped"
	if m.playing {
		status = "Playing"
	}

	station := m.station
	if station == "" {
		station = "(none)"
	}

	s := boxTop
	s += row("Status:  " + status)
	s += row("Station: " + station)
	if m.lastError != "" {
		s += row("Error:   " + m.lastError)
	}
	s += boxMid

	return s
}

// renderNowPlaying renders current show metadata
func (m Model) renderNowPlaying() string {
	s := row("Now Playing:")
	if m.title == "" {
		s += row("  (Waiting for show info)")
		return s
	}

	s += row("  Title:  " + m.title)
	if m.artist != "" {
		s += row("  Artist: " + m.artist)
	}
	if m.album != "" {
		s += row("  Album:  " + m.album)
	}

	return s
}

// renderControls renders the active preset and stream source
func (m Model) renderControls() string {
	s := row("")
	s += row("Preset:  " + m.preset)
	if m.streamURL != "" {
		s += row("Stream:  " + m.streamURL)
	}

	return s
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	return boxMid + row("s:Stop/Start  p:Preset  q:Quit") + boxBottom
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.request(RequestQuit)
		return m, tea.Quit
	case "p":
		m.request(RequestCyclePreset)
	case "s":
		m.request(RequestToggle)
	}

	return m, nil
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.Playing != nil {
		m.playing = *msg.Playing
		if m.playing {
			m.lastError = ""
		}
	}
	if msg.Station != "" {
		m.station = msg.Station
	}
	if msg.StreamURL != "" {
		m.streamURL = msg.StreamURL
	}
	if msg.Title != "" {
		m.title = msg.Title
		m.artist = msg.Artist
		m.album = msg.Album
	}
	if msg.ArtworkPath != "" {
		m.artworkPath = msg.ArtworkPath
	}
	if msg.Preset != "" {
		m.preset = msg.Preset
	}
	if msg.Err != "" {
		m.lastError = msg.Err
	}
}

// StatusMsg updates TUI state. Zero fields leave the current value in
// place; Playing is a pointer so false can be delivered.
type StatusMsg struct {
	Playing     *bool
	Station     string
	StreamURL   string
	Title       string
	Artist      string
	Album       string
	ArtworkPath string
	Preset      string
	Err         string
}

// Utility functions
func row(content string) string {
	return fmt.Sprintf("│ %-52s │\n", truncate(content, 52))
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
