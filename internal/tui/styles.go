package tui

import "github.com/charmbracelet/lipgloss"

// Colors.
const (
	colorAccent  = lipgloss.Color("63")
	colorSubtle  = lipgloss.Color("241")
	colorSuccess = lipgloss.Color("42")
	colorError   = lipgloss.Color("196")
	colorInfo    = lipgloss.Color("39")
	colorText    = lipgloss.Color("252")
)

// Styles shared by the accounts screen.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	InfoStyle = lipgloss.NewStyle().
			Foreground(colorInfo)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorText).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(colorSubtle)

	TableSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(colorAccent)

	TableFocusedBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorAccent).
				Padding(0, 1)

	TableBlurredBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorSubtle).
				Padding(0, 1)

	ToastSuccessStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(colorSuccess).
				Padding(0, 1)

	ToastErrorStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(colorError).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError)
)
