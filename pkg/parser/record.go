// Package parser provides log line field extraction and log file ingestion.
package parser

import (
	"fmt"
	"net"
)

// Level is the severity of a log record.
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

// ParseLevel converts a token to a Level.
// Only INFO, WARNING and ERROR are representable; other tokens
// (e.g. DEBUG, FATAL) return an error.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "INFO":
		return LevelInfo, nil
	case "WARNING":
		return LevelWarning, nil
	case "ERROR":
		return LevelError, nil
	default:
		return "", fmt.Errorf("invalid log level %q", s)
	}
}

// String returns the canonical level name.
func (l Level) String() string {
	return string(l)
}

// Method is an HTTP request method recognized in log lines.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// ParseMethod converts a token to a Method.
// HEAD and OPTIONS are matched by the method pattern for boundary
// detection but are not representable and return an error.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "GET":
		return MethodGet, nil
	case "POST":
		return MethodPost, nil
	case "PUT":
		return MethodPut, nil
	case "PATCH":
		return MethodPatch, nil
	case "DELETE":
		return MethodDelete, nil
	default:
		return "", fmt.Errorf("invalid HTTP method %q", s)
	}
}

// String returns the canonical method name.
func (m Method) String() string {
	return string(m)
}

// LogRecord is the structured result of field extraction for one log line.
// Every field is independently optional: log formats vary, and each field's
// pattern may fail to match without affecting the others. A nil field means
// the pattern did not match or secondary parsing of the matched text failed.
type LogRecord struct {
	// Timestamp is the raw matched timestamp text, not normalized to a
	// calendar type. Either bracketed Apache style or ISO-like.
	Timestamp *string `json:"timestamp"`

	// Level is the severity, when the line carried a representable one.
	Level *Level `json:"level"`

	// IPAddress is the first dotted-quad in the line that parses as a
	// valid address. Pattern matching alone does not validate octets.
	IPAddress net.IP `json:"ip_address,omitempty"`

	// Method is the HTTP method token.
	Method *Method `json:"method"`

	// Endpoint is the path token immediately following a method token.
	Endpoint *string `json:"endpoint"`

	// StatusCode is a free-standing 3-digit token bounded by whitespace.
	StatusCode *uint16 `json:"status_code"`

	// ResponseTime is the numeric value of a latency token ("123ms", "1.5s").
	ResponseTime *float64 `json:"response_time"`

	// Message is the text after the response-time token, which anchors it.
	Message *string `json:"message"`
}

// IsZero reports whether no field at all was extracted.
func (r *LogRecord) IsZero() bool {
	return r.Timestamp == nil &&
		r.Level == nil &&
		r.IPAddress == nil &&
		r.Method == nil &&
		r.Endpoint == nil &&
		r.StatusCode == nil &&
		r.ResponseTime == nil &&
		r.Message == nil
}
