package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState is the top-level state of the accounts screen.
type ViewState int

const (
	// ViewStateLoading shows the spinner until the first fetch returns.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the two level tables.
	ViewStateList
	// ViewStateQuitting renders nothing while the program exits.
	ViewStateQuitting
)

// String returns a short name for logs and tests.
func (s ViewState) String() string {
	switch s {
	case ViewStateLoading:
		return "loading"
	case ViewStateList:
		return "list"
	case ViewStateQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}

// LoadingState is a spinner with a message.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState creates a spinner showing message.
func NewLoadingState(message string) *LoadingState {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle
	return &LoadingState{spinner: s, message: message}
}

// Init starts the spinner.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// SetMessage changes the text next to the spinner.
func (l *LoadingState) SetMessage(message string) {
	l.message = message
}

// Message returns the text next to the spinner.
func (l *LoadingState) Message() string {
	return l.message
}

// Update advances the spinner animation.
func (l *LoadingState) Update(msg spinner.TickMsg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// RenderLoading renders the spinner line.
func RenderLoading(loading *LoadingState) string {
	if loading == nil {
		return ""
	}
	return loading.spinner.View() + " " + loading.message
}
