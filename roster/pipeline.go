package roster

import (
	"iter"

	"go.uber.org/zap"
)

// Options configures one pipeline run. The zero value reads comma-delimited
// UTF-8 text, accepts every non-blank record, and logs nothing.
type Options struct {
	// Logger receives the run's leveled diagnostics. Nil discards them.
	Logger *zap.Logger

	// ColumnMap renames fields: normalized source name to destination name.
	ColumnMap map[string]string

	// RequiredFields must be present and non-empty in every accepted
	// record. Rejected records go to the invalid sink.
	RequiredFields []string

	// DateFields are reformatted after renaming. With neither DateFormatter
	// nor DateLookup set, the default DD/MM/YYYY policy applies.
	DateFields []string

	// DateFormatter rewrites date-flagged values. Wins over DateLookup.
	DateFormatter DateFormatter

	// DateLookup statically maps date-flagged string values.
	DateLookup map[string]string

	// CSVDelimiter separates delimited-text fields. Zero means comma.
	CSVDelimiter rune

	// CSVEncoding is the IANA name of the delimited-text encoding. Empty
	// means UTF-8.
	CSVEncoding string

	// InvalidSinkPath receives the rejection report. Empty means
	// DefaultInvalidSinkPath.
	InvalidSinkPath string

	// Sink collects rejected records. Nil means a private sink; supply one
	// to inspect rejections after the run.
	Sink *InvalidSink

	// Progress observes raw records as they are read. Nil means none.
	Progress Progress
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) progress() Progress {
	if o.Progress == nil {
		return noProgress{}
	}
	return o.Progress
}

// Stream lazily produces the accepted records of the file at path, in
// source order. The returned error is non-nil only when the extension is
// not one of the four supported formats, before the source is opened.
// File-level failures during the read are logged and end the sequence;
// everything yielded before the failure stands. The sequence is one-pass:
// when it ends, including when the caller stops early, the source is
// released and the invalid-record report is flushed exactly once.
func Stream(path string, opts Options) (iter.Seq[Record], error) {
	logger := opts.logger()
	sink := opts.Sink
	if sink == nil {
		sink = NewInvalidSink(logger)
	}
	reader, err := readerForPath(path, opts, sink, logger)
	if err != nil {
		return nil, err
	}

	norm := newNormalizer(opts, logger)
	progress := opts.progress()
	consumed := false

	seq := func(yield func(Record) bool) {
		if consumed {
			return
		}
		consumed = true
		defer sink.Flush(opts.InvalidSinkPath)
		defer progress.Done()

		accepted := 0
		for raw, err := range reader.Records(path) {
			if err != nil {
				logger.Error("read aborted", zap.Error(err))
				return
			}
			progress.Tick()
			if raw.IsBlank() {
				continue
			}
			rec := norm.apply(raw)
			ok, missing := Validate(rec, opts.RequiredFields)
			if !ok {
				reasons := make([]string, len(missing))
				for i, field := range missing {
					reasons[i] = "missing: " + field
				}
				sink.Record(rec, reasons)
				continue
			}
			if !yield(rec) {
				return
			}
			accepted++
		}
		logger.Info("read complete",
			zap.String("path", path),
			zap.Int("accepted", accepted),
			zap.Int("invalid", sink.Len()))
	}
	return seq, nil
}

// Collect materializes the accepted records of the file at path, in order.
// Same error contract as Stream: file-level failures are logged and the
// records accepted before the failure are still returned.
func Collect(path string, opts Options) ([]Record, error) {
	seq, err := Stream(path, opts)
	if err != nil {
		return nil, err
	}
	var records []Record
	for rec := range seq {
		records = append(records, rec)
	}
	return records, nil
}

// CollectTable materializes like Collect and converts the result to a
// Table. Conversion happens only after the full collection is built.
func CollectTable(path string, opts Options) (*Table, error) {
	records, err := Collect(path, opts)
	if err != nil {
		return nil, err
	}
	return NewTable(records), nil
}
