package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/accountdesk/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the loaded configuration (file, then environment overrides).

This includes:
- The version satisfies the supported range
- The source kind has the fields it needs
- The page size and default sort are usable
- The update delay policy is well formed`,
		Example: `  # Validate current configuration
  accountdesk config validate

  # Validate and show detailed information
  accountdesk config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg := config.GetGlobalConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	cmd.Printf("✅ Configuration is valid\n")

	if verbose {
		printVerboseDetails(cmd, cfg)
	}
	return nil
}

// printVerboseDetails prints detailed configuration information.
func printVerboseDetails(cmd *cobra.Command, cfg *config.Config) {
	cmd.Println()
	cmd.Println("Configuration details:")
	if cfg.Path() != "" {
		cmd.Printf("  File: %s\n", cfg.Path())
	}
	cmd.Printf("  Version: %s\n", cfg.Version)
	cmd.Printf("  Source: %s\n", cfg.Source.Kind)
	if ttl := cfg.Source.CacheTTL(); ttl > 0 {
		cmd.Printf("  Cache TTL: %s\n", ttl)
	}
	cmd.Printf("  Page size: %d\n", cfg.View.PageSize)
	cmd.Printf("  Default sort: %s\n", cfg.View.Sort)
	cmd.Printf("  Update delay: %s", cfg.Update.Policy)
	if cfg.Update.Policy == config.DelayFixed {
		cmd.Printf(" (%s)", cfg.Update.Delay)
	}
	cmd.Println()
	cmd.Printf("  Logging level: %s\n", cfg.Logging.Level)
}

// NewConfigShowCmd creates the config show command printing the effective configuration.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *config.GetGlobalConfig()
			if cfg.Server.JWTSecret != "" {
				cfg.Server.JWTSecret = "********"
			}
			if cfg.Source.Token != "" {
				cfg.Source.Token = "********"
			}
			out, err := yaml.Marshal(&cfg)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
