package roster

import (
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrUnsupportedFormat reports a source extension outside the four formats
// the pipeline reads.
var ErrUnsupportedFormat = errors.New("unsupported file format: use .csv, .xlsx, .json or .jsonl")

// Reader yields the raw records of one source file as a lazy one-pass
// sequence. A non-nil error in the sequence is a file-level failure and the
// sequence ends after yielding it. Implementations release their resources
// when the sequence ends, including when the caller stops early.
type Reader interface {
	Records(path string) iter.Seq2[Record, error]
}

// readerForPath selects the reader by file extension, case-insensitive.
func readerForPath(path string, opts Options, sink *InvalidSink, logger *zap.Logger) (Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return &DelimitedReader{Delimiter: opts.CSVDelimiter, Encoding: opts.CSVEncoding}, nil
	case ".xlsx":
		return &WorkbookReader{}, nil
	case ".json":
		return &DocumentReader{Logger: logger}, nil
	case ".jsonl":
		return &LinesReader{Sink: sink}, nil
	default:
		return nil, fmt.Errorf("select reader for %s: %w", path, ErrUnsupportedFormat)
	}
}
