package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/accountdesk/internal/source"
	"github.com/rshade/accountdesk/internal/viewmodel"
)

// Run shows the accounts screen on the terminal until the user quits.
func Run(ctx context.Context, src source.Source, opts ...viewmodel.Option) error {
	p := tea.NewProgram(NewAccountsModel(ctx, src, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
