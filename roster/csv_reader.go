package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DelimitedReader reads header-keyed rows from a delimited text file. The
// first row names the fields; later rows become one record each.
type DelimitedReader struct {
	// Delimiter separates fields. Zero means comma.
	Delimiter rune
	// Encoding is the IANA name of the text encoding. Empty means UTF-8.
	// A leading byte-order mark always wins over the declared encoding.
	Encoding string
}

func (r *DelimitedReader) Records(path string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		file, err := os.Open(path)
		if err != nil {
			yield(nil, fmt.Errorf("open input %s: %w", path, err))
			return
		}
		defer file.Close()

		decoded, err := decodeText(file, r.Encoding)
		if err != nil {
			yield(nil, fmt.Errorf("decode %s: %w", path, err))
			return
		}

		reader := csv.NewReader(decoded)
		reader.FieldsPerRecord = -1
		if r.Delimiter != 0 {
			reader.Comma = r.Delimiter
		}

		header, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			yield(nil, fmt.Errorf("read header of %s: %w", path, err))
			return
		}

		for {
			row, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, fmt.Errorf("read row of %s: %w", path, err))
				return
			}
			if !yield(rowRecord(header, row), nil) {
				return
			}
		}
	}
}

// rowRecord zips one data row with the header. Short rows leave trailing
// fields absent; cells beyond the header are dropped.
func rowRecord(header, row []string) Record {
	rec := make(Record, len(header))
	for i, name := range header {
		if i < len(row) {
			rec[name] = row[i]
		}
	}
	return rec
}

// decodeText wraps the source in a decoder for the named encoding. The
// default passes UTF-8 through while stripping a byte-order mark.
func decodeText(r io.Reader, name string) (io.Reader, error) {
	decoder := unicode.UTF8.NewDecoder()
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		enc, err := ianaindex.IANA.Encoding(trimmed)
		if err != nil || enc == nil {
			return nil, fmt.Errorf("unknown text encoding %q", name)
		}
		decoder = enc.NewDecoder()
	}
	return transform.NewReader(r, unicode.BOMOverride(decoder)), nil
}
