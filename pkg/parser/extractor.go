package parser

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// fieldFunc populates a single LogRecord field from a line, or leaves it
// absent. Extraction failures never propagate past the field itself.
type fieldFunc func(line string, rec *LogRecord)

// Extractor turns a raw log line into a partially populated LogRecord by
// running a fixed pipeline of independent per-field extractors over the
// whole line.
type Extractor struct {
	patterns *Patterns
	pipeline []fieldFunc
}

// NewExtractor creates an Extractor using the given pattern set.
// A nil pattern set means DefaultPatterns.
func NewExtractor(patterns *Patterns) *Extractor {
	if patterns == nil {
		patterns = DefaultPatterns()
	}
	e := &Extractor{patterns: patterns}
	e.pipeline = []fieldFunc{
		e.extractTimestamp,
		e.extractLevel,
		e.extractIP,
		e.extractMethod,
		e.extractEndpoint,
		e.extractStatus,
		e.extractResponseTime,
		e.extractMessage,
	}
	return e
}

// Extract applies every field extractor to the line. It never fails: fields
// whose pattern does not match, or whose matched text fails secondary
// parsing, are simply left absent.
func (e *Extractor) Extract(line string) LogRecord {
	var rec LogRecord
	for _, extract := range e.pipeline {
		extract(line, &rec)
	}
	return rec
}

// ExtractStrict is Extract for line-by-line ingestion: a line from which no
// field at all could be extracted is an error carrying the offending text.
// Partially structured lines are still successes.
func (e *Extractor) ExtractStrict(line string) (LogRecord, error) {
	rec := e.Extract(line)
	if rec.IsZero() {
		return rec, fmt.Errorf("no recognizable log fields in %q", line)
	}
	return rec, nil
}

func (e *Extractor) extractTimestamp(line string, rec *LogRecord) {
	if m := e.patterns.Timestamp.FindString(line); m != "" {
		rec.Timestamp = &m
	}
}

func (e *Extractor) extractLevel(line string, rec *LogRecord) {
	m := e.patterns.Level.FindString(line)
	if m == "" {
		return
	}
	// DEBUG and FATAL match the pattern but have no representation;
	// the field stays absent rather than failing the line.
	if level, err := ParseLevel(m); err == nil {
		rec.Level = &level
	}
}

func (e *Extractor) extractIP(line string, rec *LogRecord) {
	m := e.patterns.IP.FindString(line)
	if m == "" {
		return
	}
	// ParseIP rejects out-of-range octets the pattern lets through.
	if ip := net.ParseIP(m); ip != nil {
		rec.IPAddress = ip
	}
}

func (e *Extractor) extractMethod(line string, rec *LogRecord) {
	m := e.patterns.Method.FindString(line)
	if m == "" {
		return
	}
	if method, err := ParseMethod(m); err == nil {
		rec.Method = &method
	}
}

func (e *Extractor) extractEndpoint(line string, rec *LogRecord) {
	if m := e.patterns.Endpoint.FindStringSubmatch(line); m != nil {
		rec.Endpoint = &m[1]
	}
}

func (e *Extractor) extractStatus(line string, rec *LogRecord) {
	m := e.patterns.Status.FindStringSubmatch(line)
	if m == nil {
		return
	}
	if code, err := strconv.ParseUint(m[1], 10, 16); err == nil {
		c := uint16(code)
		rec.StatusCode = &c
	}
}

func (e *Extractor) extractResponseTime(line string, rec *LogRecord) {
	m := e.patterns.ResponseTime.FindStringSubmatch(line)
	if m == nil {
		return
	}
	if rt, err := strconv.ParseFloat(m[1], 64); err == nil {
		rec.ResponseTime = &rt
	}
}

func (e *Extractor) extractMessage(line string, rec *LogRecord) {
	if m := e.patterns.Message.FindStringSubmatch(line); m != nil {
		rec.Message = &m[1]
	}
}

// date extracts the calendar date from a record's raw timestamp text,
// dropping time-of-day. Bracketed Apache timestamps carry no YYYY-MM-DD
// substring and yield no date.
func (e *Extractor) date(timestamp string) (time.Time, bool) {
	m := e.patterns.Date.FindStringSubmatch(timestamp)
	if m == nil {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, m[1])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
