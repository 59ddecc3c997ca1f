package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loggaliza/loggaliza/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a report configuration file",
		Long: `Validate a Loggaliza report configuration file without running analysis.

Checks:
  - YAML syntax
  - Threshold ordering (high band above moderate, very-slow above slow)
  - Table and bar sizing`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Top endpoints:     %d\n", cfg.TopEndpoints)
	fmt.Fprintf(w, "  Slowest requests:  %d\n", cfg.SlowestRequests)
	fmt.Fprintf(w, "  Error rate bands:  moderate >%.1f%%, high >%.1f%%\n",
		cfg.ErrorRateModerate, cfg.ErrorRateHigh)
	fmt.Fprintf(w, "  Latency bands:     slow >%.0fms, very slow >%.0fms\n",
		cfg.SlowThresholdMs, cfg.VerySlowThresholdMs)

	return nil
}
