package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/accountdesk/internal/account"
	"github.com/rshade/accountdesk/internal/config"
	"github.com/rshade/accountdesk/internal/viewmodel"
)

// ErrUpdateFailures is returned when at least one account could not be promoted.
var ErrUpdateFailures = errors.New("some accounts were not updated")

func newUpdateCmd() *cobra.Command {
	var noDelay bool

	cmd := &cobra.Command{
		Use:   "update <id>...",
		Short: "Promote the given accounts from Level 1 to Level 2",
		Long: `Selects the given account ids and submits one bulk update for them.
Each account produces one result line; the command fails when any account
could not be updated.`,
		Example: `  # Promote two accounts
  accountdesk update 001 004

  # Skip the configured pre-update delay
  accountdesk update 001 --no-delay`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, args, noDelay)
		},
	}

	cmd.Flags().BoolVar(&noDelay, "no-delay", false, "submit without the configured pre-update delay")
	return cmd
}

func runUpdate(cmd *cobra.Command, ids []string, noDelay bool) error {
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

	printer := &outcomePrinter{w: cmd.OutOrStdout()}
	opts = append(opts, viewmodel.WithNotifier(viewmodel.MultiNotifier(
		printer,
		viewmodel.LogNotifier{Logger: logger},
	)))
	if noDelay {
		opts = append(opts, viewmodel.WithDelay(viewmodel.NoDelay()))
	}

	vm := viewmodel.New(src, opts...)
	if err := vm.Load(ctx); err != nil {
		return err
	}
	vm.SetSelection(ids)

	err = vm.SubmitUpdate(ctx)
	var fetchErr *viewmodel.FetchError
	switch {
	case errors.As(err, &fetchErr):
		// the update itself went through; only the follow-up read failed
		cmd.PrintErrf("Warning: %v\n", err)
	case err != nil:
		return err
	}

	if printer.failed > 0 {
		return fmt.Errorf("%w: %d of %d failed", ErrUpdateFailures, printer.failed, printer.failed+printer.succeeded)
	}
	return nil
}

// outcomePrinter writes result notifications as lines and counts them.
type outcomePrinter struct {
	w         io.Writer
	succeeded int
	failed    int
}

// Notify implements viewmodel.Notifier.
func (p *outcomePrinter) Notify(n viewmodel.Notification) {
	if n.Title == viewmodel.TitleResult {
		if n.Severity == account.SeveritySuccess {
			p.succeeded++
		} else {
			p.failed++
		}
	}
	_, _ = fmt.Fprintln(p.w, n.Message)
}
