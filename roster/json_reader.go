package roster

import (
	"encoding/json"
	"fmt"
	"iter"
	"os"

	"go.uber.org/zap"
)

// DocumentReader parses a whole JSON file as one value. A top-level array
// yields each element as a candidate record; any other top-level value is
// the single candidate. Non-object candidates are skipped with a warning,
// empty ones silently.
type DocumentReader struct {
	Logger *zap.Logger
}

func (r *DocumentReader) Records(path string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		logger := r.Logger
		if logger == nil {
			logger = zap.NewNop()
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			yield(nil, fmt.Errorf("open input %s: %w", path, err))
			return
		}
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			yield(nil, fmt.Errorf("parse %s: %w", path, err))
			return
		}

		items, ok := doc.([]any)
		if !ok {
			items = []any{doc}
		}
		for _, item := range items {
			if isEmpty(item) {
				continue
			}
			obj, ok := item.(map[string]any)
			if !ok {
				logger.Warn("json record is not an object, skipped",
					zap.String("path", path),
					zap.String("type", fmt.Sprintf("%T", item)))
				continue
			}
			if !yield(Record(obj), nil) {
				return
			}
		}
	}
}
