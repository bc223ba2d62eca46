package viewmodel

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/rshade/accountdesk/internal/account"
)

// Notification titles and the fixed messages of the update workflow.
const (
	TitleError  = "Error"
	TitleResult = "Result"

	MessageEmptySelection  = "Select at least one account."
	MessageUpdateTransport = "There was a problem updating the accounts."
)

// Notification is a user-visible toast.
type Notification struct {
	Title    string
	Message  string
	Severity account.Severity
}

// Notifier receives notifications. Delivery is fire-and-forget.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notification) { f(n) }

// LogNotifier writes notifications to a zerolog logger.
type LogNotifier struct {
	Logger zerolog.Logger
}

// Notify implements Notifier.
func (l LogNotifier) Notify(n Notification) {
	ev := l.Logger.Info()
	if n.Severity == account.SeverityError {
		ev = l.Logger.Warn()
	}
	ev.Str("component", "notify").
		Str("title", n.Title).
		Str("severity", string(n.Severity)).
		Msg(n.Message)
}

// Recorder keeps every notification it receives. Safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Notify implements Notifier.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Count returns the number of recorded notifications with the given severity.
func (r *Recorder) Count(sev account.Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, item := range r.items {
		if item.Severity == sev {
			n++
		}
	}
	return n
}

// Reset drops all recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}

// multiNotifier fans out to several notifiers.
type multiNotifier []Notifier

func (m multiNotifier) Notify(n Notification) {
	for _, target := range m {
		target.Notify(n)
	}
}

// MultiNotifier returns a Notifier delivering to every non-nil target.
func MultiNotifier(targets ...Notifier) Notifier {
	out := make(multiNotifier, 0, len(targets))
	for _, t := range targets {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}
