package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/accountdesk/internal/report"
)

// ErrNoExportTarget is returned when export is given no output file.
var ErrNoExportTarget = errors.New("export needs --pdf or --json")

func newExportCmd() *cobra.Command {
	var (
		opts     listOptions
		pdfPath  string
		jsonPath string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current page of both level tables to a file",
		Example: `  # PDF of the first page
  accountdesk export --pdf accounts.pdf

  # JSON of page 2, filtered by owner
  accountdesk export --json page2.json --owner 005A --page 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pdfPath == "" && jsonPath == "" {
				return ErrNoExportTarget
			}
			return runExport(cmd, opts, pdfPath, jsonPath)
		},
	}

	opts.bindFilterFlags(cmd)
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write a PDF report to this file")
	cmd.Flags().StringVar(&jsonPath, "json", "", "write a JSON document to this file")
	cmd.Flags().StringVar(&opts.title, "title", "Accounts", "PDF document title")

	return cmd
}

func runExport(cmd *cobra.Command, opts listOptions, pdfPath, jsonPath string) error {
	ctx := cmd.Context()
	vm, closeSrc, err := loadViewModel(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = closeSrc() }()

	view := vm.View()

	if pdfPath != "" {
		if err := writeFile(pdfPath, func(f *os.File) error {
			return report.RenderPDF(f, view, vm.Columns(), opts.title)
		}); err != nil {
			return err
		}
		cmd.Printf("Wrote %s\n", pdfPath)
	}

	if jsonPath != "" {
		if err := writeFile(jsonPath, func(f *os.File) error {
			return report.RenderJSON(f, view)
		}); err != nil {
			return err
		}
		cmd.Printf("Wrote %s\n", jsonPath)
	}

	logger.Info().Ctx(ctx).
		Str("operation", "export").
		Int("page", view.Page.Number).
		Int("matched", len(view.Filtered)).
		Msg("report exported")
	return nil
}

// writeFile creates path and closes it after render, keeping the first error.
func writeFile(path string, render func(f *os.File) error) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if err := render(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
