package casetree

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// ErrorSink is the append-only per-stage reject channel. Each record
// becomes one CSV row (identifier, error_kind, detail). The file is
// truncated on open: error reports describe the latest run only,
// never a concatenation of runs.
type ErrorSink struct {
	path string
	file *os.File
	w    *csv.Writer
}

// OpenErrorSink creates (truncating) the error CSV at path, creating
// parent directories as needed.
func OpenErrorSink(path string) (*ErrorSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create error CSV directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open error CSV %s: %w", path, err)
	}
	return &ErrorSink{path: path, file: f, w: csv.NewWriter(f)}, nil
}

// Record appends one error row and flushes it, so a mid-run crash
// still leaves partial diagnostics on disk.
func (s *ErrorSink) Record(identifier string, kind ErrorKind, detail string) error {
	if err := s.w.Write([]string{identifier, kind.String(), detail}); err != nil {
		return fmt.Errorf("failed to write error record for %s: %w", identifier, err)
	}
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		return fmt.Errorf("failed to flush error CSV %s: %w", s.path, err)
	}
	return nil
}

// Path returns the sink's file path
func (s *ErrorSink) Path() string {
	return s.path
}

// Close flushes and closes the sink
func (s *ErrorSink) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.file.Close()
		return fmt.Errorf("failed to flush error CSV %s: %w", s.path, err)
	}
	return s.file.Close()
}
