package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/loggaliza/loggaliza/pkg/parser"
	"github.com/loggaliza/loggaliza/pkg/stats"
)

func TestJSONFormatter_Name(t *testing.T) {
	f := NewJSONFormatter()
	if f.Name() != "json" {
		t.Errorf("Name() = %q, want %q", f.Name(), "json")
	}
}

func TestJSONFormatter_RoundTrip(t *testing.T) {
	st := stats.Compute([]parser.LogRecord{
		{Level: lptr(parser.LevelInfo), Endpoint: sptr("/api/users"), ResponseTime: fptr(120)},
		{Level: lptr(parser.LevelError), Endpoint: sptr("/api/pay"), ResponseTime: fptr(300)},
	})

	parse := &parser.ParseReport{EntriesParsed: 2}
	report := NewReport(st, []string{"a.log", "b.log"}, parse, time.Now())

	var buf bytes.Buffer
	f := NewJSONFormatter()
	if err := f.Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded struct {
		Stats struct {
			TotalRequests     int            `json:"total_requests"`
			ErrorCount        int            `json:"error_count"`
			AvgResponseTime   float64        `json:"avg_response_time"`
			EndpointFrequency map[string]int `json:"endpoint_frequency"`
		} `json:"stats"`
		Metadata struct {
			ReportID      string   `json:"report_id"`
			Sources       []string `json:"sources"`
			EntriesParsed int      `json:"entries_parsed"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.Stats.TotalRequests != 2 {
		t.Errorf("total_requests = %d, want 2", decoded.Stats.TotalRequests)
	}
	if decoded.Stats.ErrorCount != 1 {
		t.Errorf("error_count = %d, want 1", decoded.Stats.ErrorCount)
	}
	if decoded.Stats.EndpointFrequency["/api/users"] != 1 {
		t.Errorf("endpoint_frequency[/api/users] = %d, want 1", decoded.Stats.EndpointFrequency["/api/users"])
	}
	if decoded.Metadata.ReportID == "" {
		t.Error("report_id is empty")
	}
	if len(decoded.Metadata.Sources) != 2 {
		t.Errorf("sources count = %d, want 2", len(decoded.Metadata.Sources))
	}
	if decoded.Metadata.EntriesParsed != 2 {
		t.Errorf("entries_parsed = %d, want 2", decoded.Metadata.EntriesParsed)
	}
}

func TestJSONFormatter_Indented(t *testing.T) {
	st := stats.Compute(nil)
	report := NewReport(st, nil, nil, time.Now())

	var buf bytes.Buffer
	if err := NewJSONFormatter().Format(context.Background(), report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if !strings.Contains(buf.String(), "\n  \"") {
		t.Error("output should be indented")
	}
}
