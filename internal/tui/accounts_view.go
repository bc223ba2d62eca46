package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/engine"
	"github.com/rshade/accountdesk/internal/report"
)

// Row layout.
const (
	cellWidth      = 24
	truncateSuffix = "..."
	borderPadding  = 4
	markSelected   = "[x]"
	markUnselected = "[ ]"
)

// View renders the current view (Bubble Tea interface).
func (m AccountsModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return RenderLoading(m.loading) + "\n"
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m AccountsModel) renderListView() string {
	sections := []string{HeaderStyle.Render("ACCOUNTS")}

	view := m.vm.View()
	for i, level := range m.levels {
		sections = append(sections, m.renderTable(i, view, level))
	}

	if m.vm.Busy() {
		sections = append(sections, RenderLoading(m.loading))
	}
	if toasts := m.toasts.View(m.width - borderPadding); toasts != "" {
		sections = append(sections, toasts)
	}
	if m.showFilter {
		sections = append(sections, m.renderFilterBar())
	}
	if m.status != "" {
		sections = append(sections, m.status)
	}
	sections = append(sections, m.renderStatusBar(), SubtleStyle.Render(helpLine))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m AccountsModel) renderTable(idx int, view engine.View, level account.Level) string {
	border := TableBlurredBorder
	if idx == m.focus {
		border = TableFocusedBorder
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		LabelStyle.Render(report.LevelHeading(view, level)),
		m.renderHeaderRow(),
		m.tables[idx].View(),
	)
	return border.Render(body)
}

func (m AccountsModel) renderHeaderRow() string {
	cols := m.vm.Columns()
	sort := m.vm.Sort()

	cells := make([]string, 0, len(cols)+1)
	cells = append(cells, "   ")
	for _, c := range cols {
		label := c.Label
		if c.FieldName == sort.Field {
			label += sortArrow(sort.Direction)
		}
		cells = append(cells, pad(label))
	}
	return TableHeaderStyle.Render(strings.Join(cells, " "))
}

func sortArrow(d engine.Direction) string {
	if d == engine.Descending {
		return " ▼"
	}
	return " ▲"
}

// renderRow renders one account row with its selection mark.
func (m AccountsModel) renderRow(acc account.Account, current bool) string {
	mark := markUnselected
	if m.vm.Selection().Contains(acc.ID) {
		mark = markSelected
	}

	cols := m.vm.Columns()
	cells := make([]string, 0, len(cols)+1)
	cells = append(cells, mark)
	for _, c := range cols {
		cells = append(cells, pad(report.CellValue(acc, c)))
	}

	line := strings.Join(cells, " ")
	if current {
		return TableSelectedStyle.Render(line)
	}
	return line
}

// pad truncates or right-pads s to cellWidth runes.
func pad(s string) string {
	r := []rune(s)
	if len(r) > cellWidth {
		return string(r[:cellWidth-len(truncateSuffix)]) + truncateSuffix
	}
	return s + strings.Repeat(" ", cellWidth-len(r))
}

func (m AccountsModel) renderFilterBar() string {
	parts := make([]string, 0, len(m.filters)+1)
	parts = append(parts, LabelStyle.Render("Filter:"))
	for _, f := range m.filters {
		parts = append(parts, f.label+" "+f.input.View())
	}
	return strings.Join(parts, "  ")
}

// renderStatusBar shows sort, page, filter and selection state.
func (m AccountsModel) renderStatusBar() string {
	view := m.vm.View()
	sort := m.vm.Sort()
	sortLabel := sort.Field
	if col, ok := account.FindColumn(m.vm.Columns(), sort.Field); ok {
		sortLabel = col.Label
	}

	status := fmt.Sprintf("Sort: %s %s | Page %d | Selected: %d",
		sortLabel, sort.Direction, view.Page.Number, m.vm.Selection().Len())

	if !m.vm.Criteria().IsEmpty() {
		status += fmt.Sprintf(" | Filtered: %d/%d", len(view.Filtered), len(m.vm.Records()))
	}
	return InfoStyle.Render(status)
}
