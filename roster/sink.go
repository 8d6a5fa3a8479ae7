package roster

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DefaultInvalidSinkPath is where rejected records land unless the caller
// configures another destination.
const DefaultInvalidSinkPath = "Errors/errors.json"

// InvalidSink accumulates the records rejected during one run and persists
// them as a single JSON report. It is a best-effort diagnostic: a failed
// flush is logged, never returned.
type InvalidSink struct {
	logger  *zap.Logger
	entries []Record
}

func NewInvalidSink(logger *zap.Logger) *InvalidSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvalidSink{logger: logger}
}

// Record appends a copy of rec augmented with the reserved errors key
// holding the ordered rejection reasons.
func (s *InvalidSink) Record(rec Record, reasons []string) {
	entry := maps.Clone(rec)
	if entry == nil {
		entry = Record{}
	}
	entry[errorsKey] = reasons
	s.entries = append(s.entries, entry)
}

// Len reports how many records have been rejected so far.
func (s *InvalidSink) Len() int {
	return len(s.entries)
}

// Flush writes the accumulated report to path as one indented JSON array,
// creating parent directories as needed and replacing any existing file.
// Nothing is written when no records were rejected.
func (s *InvalidSink) Flush(path string) {
	if len(s.entries) == 0 {
		return
	}
	if path == "" {
		path = DefaultInvalidSinkPath
	}
	if err := s.write(path); err != nil {
		s.logger.Error("write invalid records", zap.String("path", path), zap.Error(err))
		return
	}
	s.logger.Warn("invalid records saved",
		zap.Int("count", len(s.entries)),
		zap.String("path", path))
}

func (s *InvalidSink) write(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create sink directory %s: %w", dir, err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sink file %s: %w", path, err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s.entries); err != nil {
		file.Close()
		return fmt.Errorf("encode %d invalid records: %w", len(s.entries), err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close sink file %s: %w", path, err)
	}
	return nil
}
