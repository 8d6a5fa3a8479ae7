package roster

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"gofill/internal/dateutil"
)

// DateFormatter rewrites a single date-flagged value. An error leaves the
// original value in place; the record keeps flowing either way.
type DateFormatter func(value any) (any, error)

// DefaultDateFormatter renders YYYY-MM-DD strings and time values with the
// DD/MM/YYYY pattern. Strings that do not parse come back unchanged. It
// applies whenever date fields are flagged and no custom formatter is set.
func DefaultDateFormatter(value any) (any, error) {
	switch v := value.(type) {
	case string:
		parsed, err := dateutil.ParseISO(v)
		if err != nil {
			return v, nil
		}
		return dateutil.FormatDisplay(parsed), nil
	case time.Time:
		return dateutil.FormatDisplay(v), nil
	default:
		return value, nil
	}
}

// normalizer carries the per-run rename and reformat configuration with all
// field names already canonical.
type normalizer struct {
	columnMap map[string]string
	dateKeys  []string
	format    DateFormatter
	lookup    map[string]string
	logger    *zap.Logger
}

func newNormalizer(opts Options, logger *zap.Logger) *normalizer {
	n := &normalizer{
		format: opts.DateFormatter,
		lookup: opts.DateLookup,
		logger: logger,
	}
	if len(opts.ColumnMap) > 0 {
		n.columnMap = make(map[string]string, len(opts.ColumnMap))
		for key, dest := range opts.ColumnMap {
			n.columnMap[NormalizeHeader(key)] = dest
		}
	}
	for _, field := range opts.DateFields {
		n.dateKeys = append(n.dateKeys, NormalizeHeader(field))
	}
	if len(n.dateKeys) > 0 && n.format == nil && n.lookup == nil {
		n.format = DefaultDateFormatter
	}
	return n
}

// apply turns one raw record into its canonical form: normalized (and
// possibly renamed) field names, trimmed string values, reformatted date
// fields. A reformat failure on one field is logged and leaves that field's
// original value.
func (n *normalizer) apply(raw Record) Record {
	rec := make(Record, len(raw))
	for key, value := range raw {
		name := NormalizeHeader(key)
		if mapped, ok := n.columnMap[name]; ok {
			name = mapped
		}
		if s, ok := value.(string); ok {
			value = strings.TrimSpace(s)
		}
		rec[name] = value
	}

	for _, key := range n.dateKeys {
		value, ok := rec[key]
		if !ok || isEmpty(value) {
			continue
		}
		switch {
		case n.format != nil:
			formatted, err := n.format(value)
			if err != nil {
				n.logger.Warn("date reformat failed",
					zap.String("field", key),
					zap.Error(err))
				continue
			}
			rec[key] = formatted
		case n.lookup != nil:
			if s, ok := value.(string); ok {
				if mapped, ok := n.lookup[s]; ok {
					rec[key] = mapped
				}
			}
		}
	}
	return rec
}
