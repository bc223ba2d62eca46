package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/accountdesk/internal/config"
	"github.com/rshade/accountdesk/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// stdoutIsTerminal is swapped by tests.
//
//nolint:gochecknoglobals // test seam
var stdoutIsTerminal = func() bool { return isTerminal(os.Stdout) }

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the accountdesk CLI.
// It loads configuration, wires up logging and tracing, and registers the
// subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "accountdesk",
		Short:         "Review and promote accounts across two level tables",
		Long:          "accountdesk: filter, sort and page through Level 1 and Level 2 accounts and promote a selection in bulk",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if stdoutIsTerminal() {
				return runTUI(cmd)
			}
			return runList(cmd, listOptions{output: outputTable, page: 1})
		},
	}

	cmd.PersistentFlags().String("config", "", "config file (default $ACCOUNTDESK_HOME/config.yaml)")
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("source", "", "account source: memory, sql, http or grpc (overrides config)")

	cmd.AddCommand(
		newTUICmd(),
		newListCmd(),
		newUpdateCmd(),
		newServeCmd(),
		newExportCmd(),
		newConfigCmd(),
		newVersionCmd(ver),
	)

	return cmd
}

// loadConfig reads the config file named by --config (or the default path),
// applies the --source override and installs the result globally.
func loadConfig(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err == nil {
			path = defaultPath
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if kind, _ := cmd.Flags().GetString("source"); kind != "" {
		cfg.Source.Kind = kind
	}
	config.SetGlobalConfig(cfg)
	return nil
}

const rootCmdExample = `  # Open the interactive account tables
  accountdesk tui

  # List Level 1 and Level 2 accounts whose name contains "acme"
  accountdesk list --name acme

  # Promote accounts 001 and 004 to Level 2
  accountdesk update 001 004

  # Serve the accounts over HTTP and gRPC
  accountdesk serve --http :8080 --grpc :9090

  # Write the current page to a PDF
  accountdesk export --pdf accounts.pdf

  # Initialize configuration
  accountdesk config init`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigValidateCmd(), NewConfigShowCmd())
	return cmd
}
