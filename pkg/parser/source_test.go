package parser

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSource_Next(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "test.log")
	content := "first line\nsecond line\n\nfourth line\n"
	if err := os.WriteFile(logFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	source := NewFileSource([]string{logFile})
	defer source.Close()

	ctx := context.Background()
	var lines []*RawLine

	for {
		line, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		lines = append(lines, line)
	}

	// The source reports every line, blanks included; skipping is the
	// collection's concern.
	if len(lines) != 4 {
		t.Fatalf("Got %d lines, want 4", len(lines))
	}
	if lines[0].LineNum != 1 || lines[0].Content != "first line" {
		t.Errorf("lines[0] = %+v", lines[0])
	}
	if lines[2].Content != "" {
		t.Errorf("lines[2].Content = %q, want empty", lines[2].Content)
	}
	if lines[3].LineNum != 4 {
		t.Errorf("lines[3].LineNum = %d, want 4", lines[3].LineNum)
	}
	if lines[0].Source != logFile {
		t.Errorf("Source = %q, want %q", lines[0].Source, logFile)
	}
}

func TestFileSource_MultipleFiles(t *testing.T) {
	dir := t.TempDir()

	files := []struct {
		name    string
		content string
	}{
		{"a.log", "from file a\n"},
		{"b.log", "from file b\nand another\n"},
	}

	var paths []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(f.content), 0644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}

	source := NewFileSource(paths)
	defer source.Close()

	ctx := context.Background()
	var lines []*RawLine
	for {
		line, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		lines = append(lines, line)
	}

	if len(lines) != 3 {
		t.Fatalf("Got %d lines, want 3", len(lines))
	}
	// Line numbers restart per file.
	if lines[1].LineNum != 1 || lines[1].Source != paths[1] {
		t.Errorf("lines[1] = %+v, want line 1 of %s", lines[1], paths[1])
	}
	if lines[2].LineNum != 2 {
		t.Errorf("lines[2].LineNum = %d, want 2", lines[2].LineNum)
	}
}

func TestFileSource_MissingFile(t *testing.T) {
	source := NewFileSource([]string{filepath.Join(t.TempDir(), "nope.log")})
	defer source.Close()

	if _, err := source.Next(context.Background()); err == nil || err == io.EOF {
		t.Errorf("Next() error = %v, want open failure", err)
	}
}

func TestFileSource_ContextCancellation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "test.log")
	if err := os.WriteFile(logFile, []byte("line\n"), 0644); err != nil {
		t.Fatal(err)
	}

	source := NewFileSource([]string{logFile})
	defer source.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := source.Next(ctx); err != context.Canceled {
		t.Errorf("Next() error = %v, want context.Canceled", err)
	}
}
