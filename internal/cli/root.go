// Package cli provides the command-line interface for encfix.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/encfix/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "encfix",
		Short: "Convert ISO-8859-1 comment text in Lisp sources to UTF-8",
		Long: `encfix finds and repairs ISO-8859-1 bytes in Lisp-family source trees
(ACL2 books by default).

It works in three steps:
  scan    - report every non-ASCII byte
  fix     - re-encode non-ASCII bytes inside comments as UTF-8,
            leaving code and strings untouched
  verify  - confirm every file is valid UTF-8

Settings come from --config (YAML), then ENCFIX_ROOT and
ENCFIX_CONTEXT_WIDTH, then the built-in defaults.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := setupLogger(logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			return nil
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug|info|warn|error)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewScanCommand())
	rootCmd.AddCommand(commands.NewFixCommand())
	rootCmd.AddCommand(commands.NewVerifyCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
