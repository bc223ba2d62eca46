package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/rshade/accountdesk/internal/config"
	"github.com/rshade/accountdesk/internal/tui"
)

// ErrNotATerminal is returned by `tui` when stdout is not a terminal.
var ErrNotATerminal = errors.New("interactive mode requires a terminal; use `accountdesk list` instead")

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive account tables",
		Long: `Opens the two account level tables in the terminal.

Keys: space selects a row, a selects the page, u promotes the selection,
s and r change the sort, n and p change the page, / edits the filters,
tab switches tables, ctrl+r refreshes and q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !stdoutIsTerminal() {
				return ErrNotATerminal
			}
			return runTUI(cmd)
		},
	}
}

func runTUI(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	src, closeSrc, err := openSource(ctx, cfg.Source)
	if err != nil {
		return err
	}
	defer func() { _ = closeSrc() }()

	opts, err := viewOptions(ctx, cfg)
	if err != nil {
		return err
	}
	return tui.Run(ctx, src, opts...)
}
