package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
)

// RawLine is one unparsed line from a log source.
type RawLine struct {
	// Content is the raw line text.
	Content string

	// Source is the file path (or other origin) the line came from.
	Source string

	// LineNum is the 1-based line number within the source.
	LineNum int
}

// LineSource provides sequential access to raw log lines.
// Implementations must be safe for sequential access (not concurrent).
type LineSource interface {
	// Next returns the next raw line.
	// Returns io.EOF when no more lines are available.
	Next(ctx context.Context) (*RawLine, error)

	// Close releases any resources held by the source.
	Close() error
}

// FileSource reads lines from one or more log files in order.
type FileSource struct {
	files []string

	currentFile    *os.File
	currentScanner *bufio.Scanner
	currentSource  string
	currentLine    int
	fileIndex      int
}

// NewFileSource creates a LineSource over the given files. Files are read
// in the order given; line numbers restart at 1 for each file.
func NewFileSource(files []string) *FileSource {
	return &FileSource{
		files:     files,
		fileIndex: -1,
	}
}

// Next returns the next raw line across all files.
// Returns io.EOF when every file has been exhausted.
func (s *FileSource) Next(ctx context.Context) (*RawLine, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.currentScanner == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		if s.currentScanner.Scan() {
			s.currentLine++
			return &RawLine{
				Content: s.currentScanner.Text(),
				Source:  s.currentSource,
				LineNum: s.currentLine,
			}, nil
		}

		if err := s.currentScanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.currentSource, err)
		}

		// Current file exhausted, try next.
		if err := s.closeCurrentFile(); err != nil {
			return nil, err
		}
	}
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", path, err)
	}

	s.currentFile = f
	s.currentScanner = bufio.NewScanner(f)
	s.currentScanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	s.currentSource = path
	s.currentLine = 0

	return nil
}

func (s *FileSource) closeCurrentFile() error {
	if s.currentFile != nil {
		err := s.currentFile.Close()
		s.currentFile = nil
		s.currentScanner = nil
		return err
	}
	s.currentScanner = nil
	return nil
}
