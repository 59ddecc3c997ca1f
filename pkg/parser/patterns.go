package parser

import "regexp"

// Patterns holds the compiled field patterns an Extractor applies to each
// line. Each field has its own independent pattern evaluated against the
// full line; there is no shared tokenization pass. The struct is immutable
// after construction and owned by the Extractor, so tests can build
// alternate sets without process-wide side effects.
type Patterns struct {
	// Timestamp matches either a bracketed Apache-style timestamp
	// (DD/Mon/YYYY:HH:MM:SS +ZZZZ) or an ISO-like one
	// (YYYY-MM-DD HH:MM:SS with optional .fff and Z).
	Timestamp *regexp.Regexp

	// Level matches the broad severity vocabulary. Only a subset of it
	// converts to a Level; see ParseLevel.
	Level *regexp.Regexp

	// IP matches a dotted-quad. Octet range is not validated here;
	// net.ParseIP performs the real validation.
	IP *regexp.Regexp

	// Method matches an HTTP method token, including HEAD and OPTIONS
	// which exist only for boundary detection.
	Method *regexp.Regexp

	// Endpoint captures the token following a method, up to whitespace
	// or a quote.
	Endpoint *regexp.Regexp

	// Status captures a 3-digit token surrounded by whitespace, so parts
	// of timestamps and ports are not picked up.
	Status *regexp.Regexp

	// ResponseTime captures a numeric token immediately followed by a
	// "ms" or "s" unit.
	ResponseTime *regexp.Regexp

	// Message captures everything after a response-time token to end of
	// line. The latency token is the anchor: no latency, no message.
	Message *regexp.Regexp

	// Date captures a YYYY-MM-DD substring from raw timestamp text, used
	// by date-range filtering.
	Date *regexp.Regexp
}

// DefaultPatterns returns the built-in pattern set.
func DefaultPatterns() *Patterns {
	return &Patterns{
		Timestamp: regexp.MustCompile(
			`(?:\[(\d{2}/[A-Za-z]{3}/\d{4}:\d{2}:\d{2}:\d{2} [+-]\d{4})\])|(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:\.\d{3})?Z?)`),
		Level:        regexp.MustCompile(`DEBUG|INFO|WARNING|ERROR|FATAL`),
		IP:           regexp.MustCompile(`\b(?:[0-9]{1,3}\.){3}[0-9]{1,3}\b`),
		Method:       regexp.MustCompile(`\b(GET|POST|PUT|DELETE|PATCH|HEAD|OPTIONS)\b`),
		Endpoint:     regexp.MustCompile(`(?:GET|POST|PUT|DELETE|PATCH|HEAD|OPTIONS) ([^\s"]+)`),
		Status:       regexp.MustCompile(`\s+(\d{3})\s+`),
		ResponseTime: regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:ms|s)`),
		Message:      regexp.MustCompile(`\d+(?:\.\d+)?\s*(?:ms|s)\s+(.+)$`),
		Date:         regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
	}
}
