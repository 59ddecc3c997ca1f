// Package cli provides the command-line interface for Loggaliza.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loggaliza/loggaliza/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "loggaliza",
		Short: "Analyze server log files",
		Long: `Loggaliza is a batch analyzer for unstructured server log files.

It extracts structured fields (timestamp, level, IP, method, endpoint,
status code, response time, message) from each line via pattern matching,
tolerating unknown and mixed formats, and reports aggregate statistics:
request counts, error rates, latency percentiles and endpoint rankings.

Reports are rendered as colorized console text or exported as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewInspectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
