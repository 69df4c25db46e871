// Package cli provides the cobra commands of propslint.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/propslint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the propslint command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "propslint",
		Short: "A parser and linter for Java .properties files",
		Long: `propslint parses Java .properties configuration files, including
continuation lines, unicode escapes, dotted keys and bracket subscripts, and
reports syntax errors with the position and the tokens that were expected.

Beyond syntax it checks for duplicate keys, stray whitespace after line
continuations, mixed separators and empty values. Results can be printed as
text, a table, JSON, SARIF or a per-rule summary, and the same diagnostics
are served to editors by the built-in language server.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logging.Default()))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newLintCommand(info))
	rootCmd.AddCommand(newFlattenCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newLSPCommand(info))
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
