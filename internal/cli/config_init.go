package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/accountdesk/internal/config"
)

// NewConfigInitCmd creates the config init command for initializing configuration.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration file with default values",
		Long: `Creates a new configuration file with default values at the path given by
--config, or at $ACCOUNTDESK_HOME/config.yaml (default ~/.accountdesk/config.yaml).`,
		Example: `  # Create the default configuration
  accountdesk config init

  # Create configuration, overwriting existing
  accountdesk config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing configuration file")

	return cmd
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	path, err := configPath(cmd)
	if err != nil {
		return err
	}

	if !force {
		_, statErr := os.Stat(path)
		if statErr == nil {
			return errors.New("configuration file already exists, use --force to overwrite")
		}
		if !os.IsNotExist(statErr) {
			return fmt.Errorf("cannot access config path %s: %w", path, statErr)
		}
	}

	if err := config.New().Save(path); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	cmd.Printf("Configuration initialized successfully\n")
	cmd.Printf("Configuration file: %s\n", path)
	return nil
}

// configPath returns --config or the default config file path.
func configPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, nil
	}
	return config.DefaultConfigPath()
}
