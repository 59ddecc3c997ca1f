// Package inspect samples a log file and measures how well the fixed field
// patterns cover it, so users can judge the fit before running a full
// analysis.
package inspect

import (
	"context"
	"io"
	"sort"
	"strings"

	"github.com/loggaliza/loggaliza/pkg/parser"
)

// FieldCoverage reports how often one field was extracted from the sample.
type FieldCoverage struct {
	// Field is the record field name.
	Field string

	// Matches is the number of sampled lines that populated the field.
	Matches int

	// Coverage is Matches over the number of non-blank sampled lines.
	Coverage float64

	// Sample is the first line that populated the field.
	Sample string
}

// Result holds the outcome of sampling a log file.
type Result struct {
	// SampledLines is the number of lines read from the file.
	SampledLines int

	// NonBlank is the number of sampled lines that were not blank.
	NonBlank int

	// Parsed is the number of non-blank lines yielding at least one field.
	Parsed int

	// Coverage lists per-field match statistics, best-covered first.
	Coverage []FieldCoverage
}

// Inspector samples log files and measures field extraction coverage.
type Inspector struct {
	extractor  *parser.Extractor
	sampleSize int
}

// Option configures the Inspector.
type Option func(*Inspector)

// WithSampleSize sets the number of lines to sample (default 100).
func WithSampleSize(n int) Option {
	return func(i *Inspector) {
		if n > 0 {
			i.sampleSize = n
		}
	}
}

// WithExtractor sets the extractor whose patterns are being measured.
func WithExtractor(e *parser.Extractor) Option {
	return func(i *Inspector) {
		if e != nil {
			i.extractor = e
		}
	}
}

// New creates an Inspector with the default pattern set.
func New(opts ...Option) *Inspector {
	ins := &Inspector{
		extractor:  parser.NewExtractor(nil),
		sampleSize: 100,
	}
	for _, opt := range opts {
		opt(ins)
	}
	return ins
}

// InspectFile samples the head of a log file and measures coverage.
func (ins *Inspector) InspectFile(ctx context.Context, path string) (*Result, error) {
	lines, err := ins.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return ins.InspectLines(lines), nil
}

// InspectLines measures field coverage over a slice of raw lines.
func (ins *Inspector) InspectLines(lines []string) *Result {
	result := &Result{SampledLines: len(lines)}

	type fieldStats struct {
		matches int
		sample  string
	}

	fields := []string{
		"timestamp", "level", "ip_address", "method",
		"endpoint", "status_code", "response_time", "message",
	}
	stats := make(map[string]*fieldStats, len(fields))
	for _, f := range fields {
		stats[f] = &fieldStats{}
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		result.NonBlank++

		rec := ins.extractor.Extract(line)
		if rec.IsZero() {
			continue
		}
		result.Parsed++

		mark := func(field string, present bool) {
			if !present {
				return
			}
			s := stats[field]
			s.matches++
			if s.sample == "" {
				s.sample = line
			}
		}

		mark("timestamp", rec.Timestamp != nil)
		mark("level", rec.Level != nil)
		mark("ip_address", rec.IPAddress != nil)
		mark("method", rec.Method != nil)
		mark("endpoint", rec.Endpoint != nil)
		mark("status_code", rec.StatusCode != nil)
		mark("response_time", rec.ResponseTime != nil)
		mark("message", rec.Message != nil)
	}

	for _, f := range fields {
		s := stats[f]
		fc := FieldCoverage{Field: f, Matches: s.matches, Sample: s.sample}
		if result.NonBlank > 0 {
			fc.Coverage = float64(s.matches) / float64(result.NonBlank)
		}
		result.Coverage = append(result.Coverage, fc)
	}

	// Best-covered fields first; equal coverage keeps field order.
	sort.SliceStable(result.Coverage, func(i, j int) bool {
		return result.Coverage[i].Matches > result.Coverage[j].Matches
	})

	return result
}

// sampleFile reads up to sampleSize lines from the head of a file.
func (ins *Inspector) sampleFile(ctx context.Context, path string) ([]string, error) {
	src := parser.NewFileSource([]string{path})
	defer src.Close()

	var lines []string
	for len(lines) < ins.sampleSize {
		line, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line.Content)
	}

	return lines, nil
}
