package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/viewmodel"
)

const (
	// toastTTL is how long a toast stays on screen.
	toastTTL = 5 * time.Second
	// maxToasts caps the stack; the oldest toast is dropped first.
	maxToasts = 6
)

// toast is one notification shown under the tables.
type toast struct {
	id int
	viewmodel.Notification
}

// toastExpiredMsg removes a toast once its TTL has elapsed.
type toastExpiredMsg struct {
	id int
}

// toastStack turns notifications collected by a Recorder into timed toasts.
type toastStack struct {
	inbox  *viewmodel.Recorder
	items  []toast
	nextID int
}

func newToastStack() *toastStack {
	return &toastStack{inbox: &viewmodel.Recorder{}}
}

// Notifier returns the sink the ViewModel should notify.
func (s *toastStack) Notifier() viewmodel.Notifier {
	return s.inbox
}

// drain moves pending notifications onto the stack and schedules their expiry.
func (s *toastStack) drain() tea.Cmd {
	pending := s.inbox.All()
	if len(pending) == 0 {
		return nil
	}
	s.inbox.Reset()

	cmds := make([]tea.Cmd, 0, len(pending))
	for _, n := range pending {
		s.nextID++
		id := s.nextID
		s.items = append(s.items, toast{id: id, Notification: n})
		cmds = append(cmds, tea.Tick(toastTTL, func(time.Time) tea.Msg {
			return toastExpiredMsg{id: id}
		}))
	}
	if len(s.items) > maxToasts {
		s.items = s.items[len(s.items)-maxToasts:]
	}
	return tea.Batch(cmds...)
}

func (s *toastStack) expire(id int) {
	for i, t := range s.items {
		if t.id == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Items returns the visible toasts, oldest first.
func (s *toastStack) Items() []toast {
	return s.items
}

func (s *toastStack) View(width int) string {
	if len(s.items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(s.items))
	for _, t := range s.items {
		style := ToastSuccessStyle
		if t.Severity == account.SeverityError {
			style = ToastErrorStyle
		}
		if width > 0 {
			style = style.MaxWidth(width)
		}
		lines = append(lines, style.Render(LabelStyle.Render(t.Title)+" "+t.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
