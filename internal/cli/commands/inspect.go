package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loggaliza/loggaliza/pkg/inspect"
)

// InspectOptions holds command-line options for the inspect command.
type InspectOptions struct {
	SampleSize int
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <log-file>",
		Short: "Measure field extraction coverage of a log file",
		Long: `Sample the head of a log file and report how often each field
pattern matches, so you can judge how well the built-in patterns fit the
file's format before running a full analysis.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 100, "Number of lines to sample")

	return cmd
}

func runInspect(cmd *cobra.Command, args []string, opts *InspectOptions) error {
	path := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ins := inspect.New(inspect.WithSampleSize(opts.SampleSize))
	result, err := ins.InspectFile(ctx, path)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", path, err)
	}

	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Sampled %d line(s) from %s (%d non-blank, %d with extractable fields)\n\n",
		result.SampledLines, path, result.NonBlank, result.Parsed)

	if result.NonBlank == 0 {
		fmt.Fprintln(w, "Nothing to inspect: the sample contains no non-blank lines.")
		return nil
	}

	fmt.Fprintf(w, "%-15s %8s %10s  %s\n", "Field", "Matches", "Coverage", "Sample")
	for _, fc := range result.Coverage {
		sample := fc.Sample
		if runes := []rune(sample); len(runes) > 50 {
			sample = string(runes[:47]) + "..."
		}
		fmt.Fprintf(w, "%-15s %8d %9.1f%%  %s\n",
			fc.Field, fc.Matches, fc.Coverage*100, sample)
	}

	return nil
}
