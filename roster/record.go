package roster

import (
	"fmt"
	"strings"
)

// Record is one tabular record. Readers produce records keyed by the field
// names as they appeared in the source; the pipeline rekeys them through
// header normalization before they reach the caller.
type Record map[string]any

// Keys the pipeline reserves for its own bookkeeping. errorsKey carries the
// rejection reasons on sink entries, rawKey the unparseable source line.
const (
	errorsKey = "errors"
	rawKey    = "raw"
)

// GetString returns the first non-blank value among the given field names,
// rendered as trimmed text. Lookup keys are normalized, so callers can use
// the source spelling.
func (r Record) GetString(keys ...string) string {
	for _, key := range keys {
		if value, ok := r[NormalizeHeader(key)]; ok {
			if s := strings.TrimSpace(Text(value)); s != "" {
				return s
			}
		}
	}
	return ""
}

// IsBlank reports whether the record carries no usable values at all.
func (r Record) IsBlank() bool {
	for _, value := range r {
		if !isEmpty(value) {
			return false
		}
	}
	return true
}

// Text renders a scalar record value as a string. Nil renders empty.
func Text(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// isEmpty mirrors the emptiness notion used across the pipeline: nil, the
// empty string, false, numeric zero, and empty containers count as empty.
// Whitespace-only strings do not; trimming happens during normalization.
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case int:
		return v == 0
	case int64:
		return v == 0
	case float64:
		return v == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}
