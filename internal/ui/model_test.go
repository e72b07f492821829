// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests status updates, message handling, and key requests
package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(key string) tea.KeyMsg {
	if key == "ctrl+c" {
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestNewModel(t *testing.T) {
	model := NewModel(nil) // Controls are optional for testing

	// Check initial state
	if model.playing {
		t.Error("expected playing to be false initially")
	}

	if model.preset != "clean" {
		t.Errorf("expected default preset 'clean', got %q", model.preset)
	}

	if model.lastError != "" {
		t.Errorf("expected no initial error, got %q", model.lastError)
	}
}

func TestStatusMsgPlaying(t *testing.T) {
	model := NewModel(nil)

	playing := true
	model.applyStatus(StatusMsg{Playing: &playing})

	if !model.playing {
		t.Error("expected playing to be true after status update")
	}

	stopped := false
	model.applyStatus(StatusMsg{Playing: &stopped})

	if model.playing {
		t.Error("expected playing to be false after stop update")
	}
}

func TestStatusMsgStation(t *testing.T) {
	model := NewModel(nil)

	model.applyStatus(StatusMsg{
		Station:   "NTS 1",
		StreamURL: "https://stream-relay-geo.ntslive.net/stream",
	})

	if model.station != "NTS 1" {
		t.Errorf("expected station 'NTS 1', got %q", model.station)
	}

	if model.streamURL != "https://stream-relay-geo.ntslive.net/stream" {
		t.Errorf("wrong stream URL: %q", model.streamURL)
	}
}

func TestStatusMsgMetadata(t *testing.T) {
	model := NewModel(nil)

	msg := StatusMsg{
		Title:  "Test Show",
		Artist: "Test Host",
		Album:  "Test Series",
	}

	model.applyStatus(msg)

	if model.title != "Test Show" {
		t.Errorf("expected title 'Test Show', got %q", model.title)
	}

	if model.artist != "Test Host" {
		t.Errorf("expected artist 'Test Host', got %q", model.artist)
	}

	if model.album != "Test Series" {
		t.Errorf("expected album 'Test Series', got %q", model.album)
	}
}

func TestStatusMsgArtworkPath(t *testing.T) {
	model := NewModel(nil)

	model.applyStatus(StatusMsg{ArtworkPath: "/tmp/artwork.jpg"})

	if model.artworkPath != "/tmp/artwork.jpg" {
		t.Errorf("expected artworkPath '/tmp/artwork.jpg', got %q", model.artworkPath)
	}
}

func TestStatusMsgPreset(t *testing.T) {
	model := NewModel(nil)

	model.applyStatus(StatusMsg{Preset: "cassette"})

	if model.preset != "cassette" {
		t.Errorf("expected preset 'cassette', got %q", model.preset)
	}
}

func TestStatusMsgError(t *testing.T) {
	model := NewModel(nil)

	model.applyStatus(StatusMsg{Err: "stream returned status 404"})

	if model.lastError != "stream returned status 404" {
		t.Errorf("expected error to be stored, got %q", model.lastError)
	}

	// A new playing session clears the previous error
	playing := true
	model.applyStatus(StatusMsg{Playing: &playing})

	if model.lastError != "" {
		t.Errorf("expected error cleared on playback start, got %q", model.lastError)
	}
}

func TestMultipleStatusUpdates(t *testing.T) {
	model := NewModel(nil)

	playing := true
	model.applyStatus(StatusMsg{
		Playing: &playing,
		Station: "NTS 2",
	})

	model.applyStatus(StatusMsg{Preset: "bass"})

	// Previous values should be retained
	if model.station != "NTS 2" {
		t.Error("previous station value was lost")
	}

	if !model.playing {
		t.Error("previous playing value was lost")
	}

	if model.preset != "bass" {
		t.Error("new preset not applied")
	}
}

func TestMetadataClearing(t *testing.T) {
	model := NewModel(nil)

	// Set metadata
	model.applyStatus(StatusMsg{
		Title:  "Show",
		Artist: "Host",
		Album:  "Series",
	})

	// Clear metadata with empty strings
	model.applyStatus(StatusMsg{
		Title:  "",
		Artist: "",
		Album:  "",
	})

	// Empty strings should not clear (only non-empty values are applied)
	if model.title != "Show" {
		t.Error("title should not be cleared by empty string")
	}
}

func TestHandleKeyQuit(t *testing.T) {
	controls := NewControls()
	model := NewModel(controls)

	_, cmd := model.handleKey(keyMsg("q"))
	if cmd == nil {
		t.Fatal("expected quit command from q key")
	}

	select {
	case r := <-controls.Requests:
		if r != RequestQuit {
			t.Errorf("expected RequestQuit, got %v", r)
		}
	default:
		t.Error("expected a request on the controls channel")
	}
}

func TestHandleKeyRequests(t *testing.T) {
	controls := NewControls()
	model := NewModel(controls)

	model.handleKey(keyMsg("p"))
	model.handleKey(keyMsg("s"))

	if len(controls.Requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(controls.Requests))
	}

	if r := <-controls.Requests; r != RequestCyclePreset {
		t.Errorf("expected RequestCyclePreset, got %v", r)
	}
	if r := <-controls.Requests; r != RequestToggle {
		t.Errorf("expected RequestToggle, got %v", r)
	}
}

func TestHandleKeyWithoutControls(t *testing.T) {
	model := NewModel(nil)

	// Keys must not panic when no controls are attached
	model.handleKey(keyMsg("p"))
	model.handleKey(keyMsg("s"))
	_, cmd := model.handleKey(keyMsg("ctrl+c"))
	if cmd == nil {
		t.Error("expected quit command from ctrl+c")
	}
}

func TestHandleKeyFullChannel(t *testing.T) {
	controls := NewControls()
	model := NewModel(controls)

	// Fill the channel; further requests are dropped, never block
	for i := 0; i < cap(controls.Requests)+5; i++ {
		model.handleKey(keyMsg("p"))
	}

	if len(controls.Requests) != cap(controls.Requests) {
		t.Errorf("expected channel at capacity, got %d", len(controls.Requests))
	}
}

func TestViewBeforeSize(t *testing.T) {
	model := NewModel(nil)

	if got := model.View(); got != "Loading..." {
		t.Errorf("expected loading placeholder before first size, got %q", got)
	}
}

func TestViewShowsState(t *testing.T) {
	model := NewModel(nil)
	model.width = 80
	model.height = 24

	playing := true
	model.applyStatus(StatusMsg{
		Playing: &playing,
		Station: "NTS 1",
		Title:   "Midday On One",
		Preset:  "radio",
	})

	view := model.View()

	for _, want := range []string{"Marconio", "Playing", "NTS 1", "Midday On One", "radio", "q:Quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewTruncatesLongTitles(t *testing.T) {
	model := NewModel(nil)
	model.width = 80
	model.height = 24

	model.applyStatus(StatusMsg{Title: strings.Repeat("x", 120)})

	view := model.View()
	if strings.Contains(view, strings.Repeat("x", 60)) {
		t.Error("long title should have been truncated")
	}
	if !strings.Contains(view, "...") {
		t.Error("truncated title should end with ellipsis")
	}
}

func TestTruncateFunction(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly ten c", 14, "exactly ten c"},
		{"this is longer than allowed", 10, "this is..."},
		{"this is longer than allowed", 15, "this is long..."},
		{"", 10, ""},
		{"a", 10, "a"},
		{"abc", 3, "abc"},
		{"abcd", 4, "abcd"},
		{"abcde", 4, "a..."},
	}

	for _, tt := range tests {
		result := truncate(tt.input, tt.maxLen)
		if result != tt.expected {
			t.Errorf("truncate(%q, %d) = %q, expected %q",
				tt.input, tt.maxLen, result, tt.expected)
		}
	}
}
