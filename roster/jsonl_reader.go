package roster

import (
	"bufio"
	"encoding/json"
	"fmt"
	"iter"
	"os"
	"strings"
)

// LinesReader parses one JSON value per non-blank line, each independently.
// Lines that fail to parse, or that hold a non-object value, are routed to
// the sink under the raw key and never reach normalization.
type LinesReader struct {
	Sink *InvalidSink
}

func (r *LinesReader) Records(path string) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		file, err := os.Open(path)
		if err != nil {
			yield(nil, fmt.Errorf("open input %s: %w", path, err))
			return
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			var value any
			if err := json.Unmarshal([]byte(line), &value); err != nil {
				r.Sink.Record(Record{rawKey: line}, []string{fmt.Sprintf("json_decode:%v", err)})
				continue
			}
			obj, ok := value.(map[string]any)
			if !ok {
				r.Sink.Record(Record{rawKey: line}, []string{"json_not_object"})
				continue
			}
			if !yield(Record(obj), nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(nil, fmt.Errorf("read %s: %w", path, err))
		}
	}
}
