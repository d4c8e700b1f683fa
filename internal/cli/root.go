package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mdsource",
	Short: "Resolve metadata source trees into typed components",
	Long: `mdsource maps a metadata source tree (a project directory or a zip archive)
onto the components it contains, using a type registry that describes how each
metadata type lays out its files.

Configuration is read from mdsource.yaml in the project directory, then from
MDSOURCE_* environment variables, then from flags.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or registry
  11 - Path not found
  12 - A file could not be mapped to a metadata type
  13 - A component is missing content or denied by the ignore file`,
	SilenceUsage:      true,
	PersistentPreRunE: loadEnvFile,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("env-file", "", "Load environment variables from a dotenv file before reading configuration")
}

// loadEnvFile loads --env-file. Variables already set in the environment
// are kept.
func loadEnvFile(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("env-file")
	if err != nil || path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
