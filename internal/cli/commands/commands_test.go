package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestNewAnalyzeCommand(t *testing.T) {
	cmd := NewAnalyzeCommand()

	if !strings.HasPrefix(cmd.Use, "analyze") {
		t.Errorf("Use = %q, want analyze prefix", cmd.Use)
	}

	for flag, wantDefault := range map[string]string{
		"output":        "text",
		"config":        "",
		"export":        "",
		"no-color":      "false",
		"level":         "",
		"from":          "",
		"to":            "",
		"endpoint":      "",
		"webhook-url":   "",
		"webhook-token": "",
	} {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			t.Errorf("flag --%s not registered", flag)
			continue
		}
		if f.DefValue != wantDefault {
			t.Errorf("flag --%s default = %q, want %q", flag, f.DefValue, wantDefault)
		}
	}
}

func TestNewInspectCommand(t *testing.T) {
	cmd := NewInspectCommand()

	if !strings.HasPrefix(cmd.Use, "inspect") {
		t.Errorf("Use = %q, want inspect prefix", cmd.Use)
	}

	f := cmd.Flags().Lookup("sample")
	if f == nil {
		t.Fatal("flag --sample not registered")
	}
	if f.DefValue != "100" {
		t.Errorf("flag --sample default = %q, want 100", f.DefValue)
	}
}

func TestInspectCommand_Run(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.log")
	content := "2024-01-15 10:23:45 INFO 192.168.1.10 GET /api/users 200 123ms ok\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing log file: %v", err)
	}

	stdout, _, err := runCommand(t, NewInspectCommand(), path)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	for _, want := range []string{"Sampled 1 line(s)", "Field", "timestamp", "100.0%"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}
}

func TestInspectCommand_SampleTruncation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.log")
	line := "2024-01-15 10:23:45 INFO " + strings.Repeat("é", 60) + "\n"
	if err := os.WriteFile(path, []byte(line), 0o644); err != nil {
		t.Fatalf("writing log file: %v", err)
	}

	stdout, _, err := runCommand(t, NewInspectCommand(), path)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	if !strings.Contains(stdout, "...") {
		t.Error("long samples should be truncated")
	}
	if !utf8.ValidString(stdout) {
		t.Errorf("truncated sample is not valid UTF-8:\n%s", stdout)
	}
}

func TestInspectCommand_MissingFile(t *testing.T) {
	_, _, err := runCommand(t, NewInspectCommand(), filepath.Join(t.TempDir(), "absent.log"))
	if err == nil {
		t.Fatal("inspect should fail for a missing file")
	}
}

func TestValidateCommand_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := os.WriteFile(path, []byte("top_endpoints: 5\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	stdout, _, err := runCommand(t, NewValidateCommand(), path)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(stdout, "Configuration valid!") {
		t.Errorf("output missing confirmation:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Top endpoints:     5") {
		t.Errorf("output missing settings summary:\n%s", stdout)
	}
}

func TestValidateCommand_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := os.WriteFile(path, []byte("error_rate_high: 0.5\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	_, _, err := runCommand(t, NewValidateCommand(), path)
	if err == nil {
		t.Fatal("validate should fail for an invalid config")
	}
	if !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("error = %v, want validation failed wrap", err)
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCommand(t, NewVersionCommand())
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(stdout, "loggaliza "+Version) {
		t.Errorf("output = %q, want version string", stdout)
	}
}
