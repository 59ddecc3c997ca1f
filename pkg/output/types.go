// Package output provides formatting and output generation for analysis results.
package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/loggaliza/loggaliza/pkg/parser"
	"github.com/loggaliza/loggaliza/pkg/stats"
)

// Report is the complete analysis output handed to formatters.
type Report struct {
	// Stats is the aggregate statistics snapshot.
	Stats *stats.Stats `json:"stats"`

	// Metadata provides context about the analysis run.
	Metadata Metadata `json:"metadata"`
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// ReportID uniquely identifies this run for programmatic consumers.
	ReportID string `json:"report_id"`

	// Sources lists the log files that were analyzed.
	Sources []string `json:"sources"`

	// GeneratedAt is when the analysis completed.
	GeneratedAt time.Time `json:"generated_at"`

	// Duration is how long ingestion plus aggregation took.
	Duration time.Duration `json:"duration"`

	// EntriesParsed is the number of records ingested.
	EntriesParsed int `json:"entries_parsed"`

	// ParseWarnings is the number of lines that failed extraction.
	ParseWarnings int `json:"parse_warnings"`
}

// NewReport wraps a statistics snapshot with run metadata.
func NewReport(st *stats.Stats, sources []string, parse *parser.ParseReport, started time.Time) *Report {
	report := &Report{
		Stats: st,
		Metadata: Metadata{
			ReportID:    uuid.NewString(),
			Sources:     sources,
			GeneratedAt: time.Now(),
			Duration:    time.Since(started),
		},
	}

	if parse != nil {
		report.Metadata.EntriesParsed = parse.EntriesParsed
		report.Metadata.ParseWarnings = parse.WarningCount()
	}

	return report
}
