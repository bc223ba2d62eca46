package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// defaultBufferSize is the number of extra rows rendered above and below the viewport.
const defaultBufferSize = 2

// halfViewportDivisor centers the cursor in the viewport.
const halfViewportDivisor = 2

// RenderFunc renders one row. current is true for the row under the cursor
// of a focused list.
type RenderFunc[T any] func(item T, current bool) string

// Model is a cursor-driven list over a slice of rows.
type Model[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	cursor  int
	focused bool

	visibleFrom int
	visibleTo   int

	height     int
	bufferSize int

	// empty is rendered when the list has no rows.
	empty string
}

// New creates a list with the given viewport height.
func New[T any](items []T, height int, renderFunc RenderFunc[T]) *Model[T] {
	m := &Model[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     height,
		bufferSize: defaultBufferSize,
	}
	m.updateVisibleRange()
	return m
}

// SetEmptyText sets the placeholder rendered for an empty list.
func (m *Model[T]) SetEmptyText(s string) {
	m.empty = s
}

// SetItems replaces the rows and clamps the cursor into range.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	m.SetCursor(m.cursor)
}

// Items returns the rows.
func (m *Model[T]) Items() []T {
	return m.items
}

// Focus makes the list respond to keys and highlight its cursor row.
func (m *Model[T]) Focus() { m.focused = true }

// Blur removes focus.
func (m *Model[T]) Blur() { m.focused = false }

// Focused reports whether the list has focus.
func (m *Model[T]) Focused() bool { return m.focused }

// Init implements tea.Model.
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys and resizes. Keys are ignored while blurred.
func (m *Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.focused {
			m.HandleKey(msg)
		}
	case tea.WindowSizeMsg:
		m.SetHeight(msg.Height)
	}
	return m, nil
}

// HandleKey moves the cursor for navigation keys and reports whether the key
// was consumed.
//
//nolint:exhaustive // Only navigation keys are handled.
func (m *Model[T]) HandleKey(msg tea.KeyMsg) bool {
	if len(m.items) == 0 {
		return false
	}

	switch msg.Type {
	case tea.KeyUp:
		m.SetCursor(m.cursor - 1)
	case tea.KeyDown:
		m.SetCursor(m.cursor + 1)
	case tea.KeyPgUp:
		m.SetCursor(m.cursor - m.height)
	case tea.KeyPgDown:
		m.SetCursor(m.cursor + m.height)
	case tea.KeyHome:
		m.SetCursor(0)
	case tea.KeyEnd:
		m.SetCursor(len(m.items) - 1)
	case tea.KeyRunes:
		if len(msg.Runes) != 1 {
			return false
		}
		switch msg.Runes[0] {
		case 'j':
			m.SetCursor(m.cursor + 1)
		case 'k':
			m.SetCursor(m.cursor - 1)
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// SetCursor moves the cursor, capping to valid bounds.
func (m *Model[T]) SetCursor(index int) {
	switch {
	case len(m.items) == 0, index < 0:
		m.cursor = 0
	case index >= len(m.items):
		m.cursor = len(m.items) - 1
	default:
		m.cursor = index
	}
	m.updateVisibleRange()
}

// Cursor returns the cursor index.
func (m *Model[T]) Cursor() int {
	return m.cursor
}

// Current returns the row under the cursor.
func (m *Model[T]) Current() (T, bool) {
	var zero T
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return zero, false
	}
	return m.items[m.cursor], true
}

// SetHeight resizes the viewport.
func (m *Model[T]) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	m.height = height
	m.updateVisibleRange()
}

// Height returns the viewport height.
func (m *Model[T]) Height() int {
	return m.height
}

// VisibleFrom returns the first visible row index (inclusive).
func (m *Model[T]) VisibleFrom() int {
	return m.visibleFrom
}

// VisibleTo returns the last visible row index (exclusive).
func (m *Model[T]) VisibleTo() int {
	return m.visibleTo
}

// updateVisibleRange keeps the cursor row inside the viewport.
func (m *Model[T]) updateVisibleRange() {
	if len(m.items) == 0 {
		m.visibleFrom, m.visibleTo = 0, 0
		return
	}

	half := m.height / halfViewportDivisor
	from := m.cursor - half
	to := from + m.height

	if from < 0 {
		from = 0
		to = m.height
	}
	if to > len(m.items) {
		to = len(m.items)
		from = max(to-m.height, 0)
	}

	m.visibleFrom = from
	m.visibleTo = to
}

// View renders the visible rows plus the buffer.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return m.empty
	}

	from := max(m.visibleFrom-m.bufferSize, 0)
	to := min(m.visibleTo+m.bufferSize, len(m.items))

	lines := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		lines = append(lines, m.renderFunc(m.items[i], m.focused && i == m.cursor))
	}
	return strings.Join(lines, "\n")
}
