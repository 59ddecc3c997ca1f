package commands

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/loggaliza/loggaliza/pkg/config"
	"github.com/loggaliza/loggaliza/pkg/output"
	"github.com/loggaliza/loggaliza/pkg/parser"
	"github.com/loggaliza/loggaliza/pkg/stats"
	"github.com/loggaliza/loggaliza/pkg/webhook"
)

// ExitCode is set by commands to indicate the result.
var ExitCode = 0

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	Output     string
	ConfigFile string
	Export     string
	NoColor    bool

	// Record filters applied before aggregation
	Level    string
	FromDate string
	ToDate   string
	Endpoint string

	// Webhook options
	WebhookURL   string
	WebhookToken string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <log-file>...",
		Short: "Analyze log files and report statistics",
		Long: `Analyze one or more server log files (paths or glob patterns).

Each non-blank line is matched against a fixed set of field patterns;
lines where no field matches at all are reported as warnings while the
scan continues. The report covers counts by level, error-rate banding,
average and percentile latency, endpoint popularity and the slowest
requests.

Exit codes:
  0 - Analysis completed
  1 - Analysis completed, error rate above the high band
  2 - Input, configuration or runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Report configuration file (YAML)")
	cmd.Flags().StringVar(&opts.Export, "export", "", "Also write the JSON report to this file")
	cmd.Flags().BoolVar(&opts.NoColor, "no-color", false, "Disable ANSI colors in text output")

	cmd.Flags().StringVarP(&opts.Level, "level", "l", "", "Only records with this level (INFO|WARNING|ERROR)")
	cmd.Flags().StringVar(&opts.FromDate, "from", "", "Only records on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.ToDate, "to", "", "Only records on or before this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Endpoint, "endpoint", "", "Only records whose endpoint contains this word")

	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "POST the JSON report to this URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(ctx, opts)
	if err != nil {
		return err
	}

	files, err := parser.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding input paths: %w", err)
	}

	// Missing input is fatal before any parsing begins.
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return fmt.Errorf("input file %s: %w", f, err)
		}
	}

	started := time.Now()

	collection := parser.NewCollection()
	parseReport := &parser.ParseReport{}
	for _, f := range files {
		rep, err := collection.ReadFile(ctx, f)
		if err != nil && !errors.Is(err, parser.ErrEmptyLog) {
			return fmt.Errorf("reading %s: %w", f, err)
		}
		if rep != nil {
			parseReport.Merge(rep)
		}
	}

	// Per-file emptiness is tolerated above; zero records overall is the
	// empty log condition.
	if collection.Len() == 0 {
		return parser.ErrEmptyLog
	}

	for _, warning := range parseReport.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), warning)
	}

	records, err := applyFilters(collection, opts)
	if err != nil {
		return err
	}

	st := stats.Compute(records)
	report := output.NewReport(st, files, parseReport, started)

	// Exit code reflects the result
	if st.ErrorRate() > cfg.ErrorRateHigh {
		ExitCode = 1
	}

	formatter, err := createFormatter(opts, cfg)
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if opts.Export != "" {
		if err := exportReport(ctx, report, opts.Export); err != nil {
			return err
		}
	}

	sendWebhook(ctx, cmd, opts, report)

	return nil
}

func loadConfig(ctx context.Context, opts *AnalyzeOptions) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.ConfigFile != "" {
		loaded, err := config.Load(ctx, opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	if opts.NoColor {
		cfg.NoColor = true
	}
	return cfg, nil
}

// applyFilters narrows the record set per the filter flags. Filters chain:
// each view is materialized and becomes the next filter's collection.
func applyFilters(c *parser.Collection, opts *AnalyzeOptions) ([]parser.LogRecord, error) {
	if opts.Level != "" {
		view, err := c.FilterByLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid --level: %w", err)
		}
		c = materialize(view)
	}

	if opts.FromDate != "" || opts.ToDate != "" {
		from, to := opts.FromDate, opts.ToDate
		if from == "" {
			from = "0001-01-01"
		}
		if to == "" {
			to = "9999-12-31"
		}
		view, err := c.FilterByDateRange(from, to)
		if err != nil {
			return nil, fmt.Errorf("invalid date range: %w", err)
		}
		c = materialize(view)
	}

	if opts.Endpoint != "" {
		view, err := c.FilterByEndpoint(opts.Endpoint)
		if err != nil {
			return nil, fmt.Errorf("invalid --endpoint: %w", err)
		}
		c = materialize(view)
	}

	return c.Entries(), nil
}

func materialize(view iter.Seq[*parser.LogRecord]) *parser.Collection {
	var records []parser.LogRecord
	for r := range view {
		records = append(records, *r)
	}
	return parser.NewCollectionFrom(records)
}

func createFormatter(opts *AnalyzeOptions, cfg *config.Config) (output.Formatter, error) {
	switch opts.Output {
	case "text":
		return output.NewTextFormatter(cfg), nil
	case "json":
		return output.NewJSONFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}

func exportReport(ctx context.Context, report *output.Report, path string) error {
	f, err := os.Create(path) // #nosec G304 -- user-provided export path is expected
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := output.NewJSONFormatter().Format(ctx, report, f); err != nil {
		return fmt.Errorf("exporting report: %w", err)
	}
	return nil
}

// sendWebhook pushes the report if a webhook URL was given. Failures are
// logged to stderr and never fail the analysis.
func sendWebhook(ctx context.Context, cmd *cobra.Command, opts *AnalyzeOptions, report *output.Report) {
	if opts.WebhookURL == "" {
		return
	}

	resp := webhook.NewClient().Send(ctx, report, webhook.SendOptions{
		URL:   opts.WebhookURL,
		Token: opts.WebhookToken,
	})

	if resp.Success() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Webhook: sent (%d, %s)\n", resp.StatusCode, resp.Duration)
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "Webhook: failed (%v)\n", resp.Error)
	}
}
