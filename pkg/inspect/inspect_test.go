package inspect

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/loggaliza/loggaliza/pkg/parser"
)

func coverageFor(t *testing.T, result *Result, field string) FieldCoverage {
	t.Helper()
	for _, fc := range result.Coverage {
		if fc.Field == field {
			return fc
		}
	}
	t.Fatalf("field %q missing from coverage", field)
	return FieldCoverage{}
}

func TestInspectLines(t *testing.T) {
	lines := []string{
		"2024-01-15 10:23:45 INFO 192.168.1.10 GET /api/users 200 123ms Request completed",
		"2024-01-15 10:23:46 ERROR 192.168.1.11 POST /api/orders 500 892ms Internal error",
		"",
		"no structured fields whatsoever",
		"2024-01-15 10:23:47 plain line with only a timestamp",
	}

	result := New().InspectLines(lines)

	if result.SampledLines != 5 {
		t.Errorf("SampledLines = %d, want 5", result.SampledLines)
	}
	if result.NonBlank != 4 {
		t.Errorf("NonBlank = %d, want 4", result.NonBlank)
	}
	if result.Parsed != 3 {
		t.Errorf("Parsed = %d, want 3", result.Parsed)
	}

	ts := coverageFor(t, result, "timestamp")
	if ts.Matches != 3 {
		t.Errorf("timestamp matches = %d, want 3", ts.Matches)
	}
	if ts.Coverage != 0.75 {
		t.Errorf("timestamp coverage = %v, want 0.75", ts.Coverage)
	}
	if ts.Sample != lines[0] {
		t.Errorf("timestamp sample = %q, want first matching line", ts.Sample)
	}

	method := coverageFor(t, result, "method")
	if method.Matches != 2 {
		t.Errorf("method matches = %d, want 2", method.Matches)
	}
}

func TestInspectLines_SortedByMatches(t *testing.T) {
	lines := []string{
		"2024-01-15 10:23:45 INFO startup",
		"2024-01-15 10:23:46 shutdown",
	}

	result := New().InspectLines(lines)

	if len(result.Coverage) != 8 {
		t.Fatalf("coverage fields = %d, want 8", len(result.Coverage))
	}
	for i := 1; i < len(result.Coverage); i++ {
		if result.Coverage[i].Matches > result.Coverage[i-1].Matches {
			t.Errorf("coverage not sorted: %q (%d) after %q (%d)",
				result.Coverage[i].Field, result.Coverage[i].Matches,
				result.Coverage[i-1].Field, result.Coverage[i-1].Matches)
		}
	}
	if result.Coverage[0].Field != "timestamp" {
		t.Errorf("best-covered field = %q, want timestamp", result.Coverage[0].Field)
	}
}

func TestInspectLines_Empty(t *testing.T) {
	result := New().InspectLines(nil)

	if result.SampledLines != 0 || result.NonBlank != 0 || result.Parsed != 0 {
		t.Errorf("empty input should yield zero counts, got %+v", result)
	}
	for _, fc := range result.Coverage {
		if fc.Coverage != 0 {
			t.Errorf("field %q coverage = %v, want 0", fc.Field, fc.Coverage)
		}
	}
}

func TestInspectFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.log")
	content := "2024-01-15 10:23:45 INFO 192.168.1.10 GET /api/users 200 123ms ok\n" +
		"unparseable noise\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing sample file: %v", err)
	}

	result, err := New().InspectFile(context.Background(), path)
	if err != nil {
		t.Fatalf("InspectFile() error = %v", err)
	}

	if result.SampledLines != 2 {
		t.Errorf("SampledLines = %d, want 2", result.SampledLines)
	}
	if result.Parsed != 1 {
		t.Errorf("Parsed = %d, want 1", result.Parsed)
	}
}

func TestInspectFile_SampleSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.log")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating sample file: %v", err)
	}
	for i := 0; i < 50; i++ {
		if _, err := f.WriteString("2024-01-15 10:23:45 INFO line\n"); err != nil {
			t.Fatalf("writing sample file: %v", err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing sample file: %v", err)
	}

	result, err := New(WithSampleSize(10)).InspectFile(context.Background(), path)
	if err != nil {
		t.Fatalf("InspectFile() error = %v", err)
	}
	if result.SampledLines != 10 {
		t.Errorf("SampledLines = %d, want 10", result.SampledLines)
	}
}

func TestInspectFile_Missing(t *testing.T) {
	_, err := New().InspectFile(context.Background(), filepath.Join(t.TempDir(), "absent.log"))
	if err == nil {
		t.Fatal("InspectFile() should fail for a missing file")
	}
}

func TestWithExtractor(t *testing.T) {
	custom := parser.DefaultPatterns()
	ins := New(WithExtractor(parser.NewExtractor(custom)))

	result := ins.InspectLines([]string{"2024-01-15 10:23:45 INFO hello"})
	if result.Parsed != 1 {
		t.Errorf("Parsed = %d, want 1", result.Parsed)
	}
}
