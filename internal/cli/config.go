package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/mdsource/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [path]",
	Short: "Show the effective mdsource.yaml configuration",
	Long: `Print the configuration resolve would use for a project directory: the
content of mdsource.yaml with MDSOURCE_* environment overrides applied.
The configuration is validated; problems are reported together.

Examples:
  # Show the configuration of the current directory
  mdsource config

  # Show the configuration of another project
  mdsource config ./my-project`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeSourcePath,
	RunE:              runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) > 0 {
		targetDir = args[0]
	}

	cfg, err := config.LoadOrDefault(targetDir)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
