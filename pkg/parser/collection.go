package parser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"regexp"
	"strings"
	"time"
)

// dateLayout is the calendar-date layout used by date-range filtering.
const dateLayout = "2006-01-02"

// ErrEmptyLog is returned when ingestion produced zero records. It is
// distinct from per-line warnings and from open/read failures.
var ErrEmptyLog = errors.New("no log entries found in file")

// ParseWarning records one recoverable per-line extraction failure.
type ParseWarning struct {
	// LineNum is the 1-based line number in the source.
	LineNum int

	// Content is the raw line text that failed extraction.
	Content string

	// Reason describes why the line was rejected.
	Reason string
}

// String formats the warning for diagnostics output.
func (w ParseWarning) String() string {
	return fmt.Sprintf("Warning: could not parse line %d: %s - %s", w.LineNum, w.Reason, w.Content)
}

// ParseReport summarizes one ingestion pass.
type ParseReport struct {
	// EntriesParsed is the number of records appended by this pass.
	EntriesParsed int

	// Warnings lists the lines that failed extraction, in file order.
	Warnings []ParseWarning
}

// HasWarnings reports whether any line failed extraction.
func (r *ParseReport) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// WarningCount returns the number of failed lines.
func (r *ParseReport) WarningCount() int {
	return len(r.Warnings)
}

// Merge folds another pass's report into this one, for multi-file runs.
func (r *ParseReport) Merge(other *ParseReport) {
	r.EntriesParsed += other.EntriesParsed
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Collection is an append-only ordered sequence of LogRecords, insertion
// order matching file line order. It is mutated only by ingestion; filters
// return read-only views. Not safe for concurrent use.
type Collection struct {
	extractor *Extractor
	entries   []LogRecord
}

// CollectionOption configures a Collection.
type CollectionOption func(*Collection)

// WithExtractor sets the extractor used during ingestion and filtering.
func WithExtractor(e *Extractor) CollectionOption {
	return func(c *Collection) {
		if e != nil {
			c.extractor = e
		}
	}
}

// NewCollection creates an empty Collection using the default pattern set.
func NewCollection(opts ...CollectionOption) *Collection {
	c := &Collection{extractor: NewExtractor(nil)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewCollectionFrom creates a Collection pre-populated with records, e.g.
// from a materialized filter view.
func NewCollectionFrom(records []LogRecord, opts ...CollectionOption) *Collection {
	c := NewCollection(opts...)
	c.entries = append(c.entries, records...)
	return c
}

// Entries returns the underlying records in insertion order.
// Callers must treat the returned slice as read-only.
func (c *Collection) Entries() []LogRecord {
	return c.entries
}

// Len returns the number of records ingested so far.
func (c *Collection) Len() int {
	return len(c.entries)
}

// ReadFile ingests one log file. A missing or unreadable file fails before
// any line is parsed.
func (c *Collection) ReadFile(ctx context.Context, path string) (*ParseReport, error) {
	src := NewFileSource([]string{path})
	defer src.Close()
	return c.ReadFrom(ctx, src)
}

// ReadFrom ingests every line of a source, in order. Blank and
// whitespace-only lines are skipped without a warning. Lines from which no
// field can be extracted are recorded as warnings and the scan continues; a
// single malformed line never discards the rest of the input. If the pass
// appends zero records the error is ErrEmptyLog, and the returned report
// still carries the collected warnings.
func (c *Collection) ReadFrom(ctx context.Context, src LineSource) (*ParseReport, error) {
	report := &ParseReport{}

	for {
		line, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if strings.TrimSpace(line.Content) == "" {
			continue
		}

		rec, err := c.extractor.ExtractStrict(line.Content)
		if err != nil {
			report.Warnings = append(report.Warnings, ParseWarning{
				LineNum: line.LineNum,
				Content: line.Content,
				Reason:  err.Error(),
			})
			continue
		}

		c.entries = append(c.entries, rec)
		report.EntriesParsed++
	}

	if report.EntriesParsed == 0 {
		return report, ErrEmptyLog
	}

	return report, nil
}

// FilterByLevel returns a read-only, order-preserving view over the records
// whose level equals the given canonical level name. An invalid level name
// fails this call only.
func (c *Collection) FilterByLevel(level string) (iter.Seq[*LogRecord], error) {
	want, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	return c.filter(func(r *LogRecord) bool {
		return r.Level != nil && *r.Level == want
	}), nil
}

// FilterByDateRange returns a view over the records whose extracted
// calendar date falls within the closed interval [start, end]. Dates are
// given as YYYY-MM-DD; time-of-day is dropped from record timestamps.
// Records without an extractable date are excluded.
func (c *Collection) FilterByDateRange(start, end string) (iter.Seq[*LogRecord], error) {
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", end, err)
	}

	return c.filter(func(r *LogRecord) bool {
		if r.Timestamp == nil {
			return false
		}
		d, ok := c.extractor.date(*r.Timestamp)
		if !ok {
			return false
		}
		return !d.Before(from) && !d.After(to)
	}), nil
}

// FilterByEndpoint returns a view over the records whose endpoint contains
// the given literal pattern as a whole word. Pattern special characters are
// escaped, not interpreted. Boundaries test the adjacent characters, not
// word transitions, so patterns that start or end on punctuation (such as
// "/api") still anchor.
func (c *Collection) FilterByEndpoint(pattern string) (iter.Seq[*LogRecord], error) {
	if pattern == "" {
		return nil, errors.New("endpoint pattern must not be empty")
	}

	re, err := regexp.Compile(`(?:^|\W)` + regexp.QuoteMeta(pattern) + `(?:\W|$)`)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint pattern %q: %w", pattern, err)
	}

	return c.filter(func(r *LogRecord) bool {
		return r.Endpoint != nil && re.MatchString(*r.Endpoint)
	}), nil
}

// filter builds a lazy view over the entries. The view does not materialize
// a copy; ingestion must complete before views are read.
func (c *Collection) filter(keep func(*LogRecord) bool) iter.Seq[*LogRecord] {
	return func(yield func(*LogRecord) bool) {
		for i := range c.entries {
			r := &c.entries[i]
			if !keep(r) {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}
