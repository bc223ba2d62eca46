package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/accountdesk/internal/config"
	"github.com/rshade/accountdesk/internal/engine"
	"github.com/rshade/accountdesk/internal/report"
	"github.com/rshade/accountdesk/internal/source"
	"github.com/rshade/accountdesk/internal/viewmodel"
)

// Output formats of `list`.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputPDF   = "pdf"
)

// listOptions holds the flags shared by list and export.
type listOptions struct {
	name   string
	phone  string
	owner  string
	sort   string
	page   int
	output string
	title  string
}

func (o *listOptions) bindFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.name, "name", "", "filter by account name (case-insensitive substring)")
	cmd.Flags().StringVar(&o.phone, "phone", "", "filter by phone number (substring)")
	cmd.Flags().StringVar(&o.owner, "owner", "", "filter by exact owner id")
	cmd.Flags().StringVar(&o.sort, "sort", "", "sort as field[:asc|desc], e.g. Name:desc (default from config)")
	cmd.Flags().IntVar(&o.page, "page", 1, "page number shared by both levels")
}

func newListCmd() *cobra.Command {
	opts := listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the Level 1 and Level 2 account tables",
		Example: `  # First page, default sort
  accountdesk list

  # Second page of accounts owned by 005A, newest editor first
  accountdesk list --owner 005A --sort LastModifiedBy.Name:desc --page 2

  # Machine-readable output
  accountdesk list --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}

	opts.bindFilterFlags(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputTable, "output format: table, json or pdf")
	cmd.Flags().StringVar(&opts.title, "title", "Accounts", "document title for pdf output")

	return cmd
}

func runList(cmd *cobra.Command, opts listOptions) error {
	ctx := cmd.Context()
	vm, closeSrc, err := loadViewModel(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = closeSrc() }()

	w := cmd.OutOrStdout()
	view := vm.View()

	switch strings.ToLower(opts.output) {
	case outputJSON:
		return report.RenderJSON(w, view)
	case outputPDF:
		return report.RenderPDF(w, view, vm.Columns(), opts.title)
	case outputTable, "":
		if err := report.RenderText(w, view, vm.Columns()); err != nil {
			return err
		}
		printSummary(w, vm)
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (want table, json or pdf)", opts.output)
	}
}

// loadViewModel opens the configured source, loads it and applies the
// filter, sort and page flags.
func loadViewModel(ctx context.Context, opts listOptions) (*viewmodel.ViewModel, closeFunc, error) {
	cfg := config.GetGlobalConfig()

	src, closeSrc, err := openSource(ctx, cfg.Source)
	if err != nil {
		return nil, nil, err
	}

	vm, err := buildViewModel(ctx, cfg, src, opts)
	if err != nil {
		_ = closeSrc()
		return nil, nil, err
	}
	return vm, closeSrc, nil
}

func buildViewModel(
	ctx context.Context,
	cfg *config.Config,
	src source.Source,
	opts listOptions,
) (*viewmodel.ViewModel, error) {
	vmOpts, err := viewOptions(ctx, cfg)
	if err != nil {
		return nil, err
	}
	vm := viewmodel.New(src, vmOpts...)

	if err := vm.Load(ctx); err != nil {
		return nil, err
	}

	filters := []struct{ field, value string }{
		{engine.FilterFieldName, opts.name},
		{engine.FilterFieldPhone, opts.phone},
		{engine.FilterFieldOwner, opts.owner},
	}
	for _, f := range filters {
		if f.value == "" {
			continue
		}
		if err := vm.SetFilter(f.field, f.value); err != nil {
			return nil, err
		}
	}

	if opts.sort != "" {
		spec, err := engine.ParseSortSpec(opts.sort)
		if err != nil {
			return nil, err
		}
		if err := vm.SetSort(spec.Field, string(spec.Direction)); err != nil {
			return nil, err
		}
	}

	for vm.Page().Number < opts.page {
		if !vm.NextPage() {
			return nil, fmt.Errorf("page %d does not exist (last page is %d)", opts.page, vm.Page().Number)
		}
	}
	return vm, nil
}

// printSummary writes the match counts with locale-aware digit grouping.
func printSummary(w io.Writer, vm *viewmodel.ViewModel) {
	p := message.NewPrinter(language.English)
	view := vm.View()
	_, _ = p.Fprintf(w, "\n%d of %d accounts match (%d Level 1, %d Level 2)\n",
		len(view.Filtered), len(vm.Records()),
		len(view.Levels.Level1()), len(view.Levels.Level2()))
}
