package roster

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readSinkReport(t *testing.T, path string) []map[string]any {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sink report: %v", err)
	}
	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		t.Fatalf("parse sink report: %v", err)
	}
	return entries
}

func TestCollect_CSVEndToEnd(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := writeSource(t, dir, "clients.csv",
		"Name,Surname,Birth Date\n"+
			"Ayşe,Yılmaz,1990-05-01\n"+
			",,\n")
	sinkPath := filepath.Join(dir, "errors.json")

	records, err := Collect(path, Options{
		RequiredFields:  []string{"name", "surname"},
		DateFields:      []string{"birth_date"},
		InvalidSinkPath: sinkPath,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if got := rec["name"]; got != "Ayşe" {
		t.Errorf("name = %v, want Ayşe", got)
	}
	if got := rec["surname"]; got != "Yılmaz" {
		t.Errorf("surname = %v, want Yılmaz", got)
	}
	if got := rec["birth_date"]; got != "01/05/1990" {
		t.Errorf("birth_date = %v, want 01/05/1990", got)
	}

	if _, err := os.Stat(sinkPath); !os.IsNotExist(err) {
		t.Fatalf("expected empty sink, stat err = %v", err)
	}
}

func TestCollect_JSONLinesQuarantine(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := writeSource(t, dir, "clients.jsonl",
		`{"name":"A"}`+"\n"+
			`{bad json`+"\n")
	sinkPath := filepath.Join(dir, "errors.json")

	records, err := Collect(path, Options{
		RequiredFields:  []string{"name", "surname"},
		InvalidSinkPath: sinkPath,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no accepted records, got %d", len(records))
	}

	entries := readSinkReport(t, sinkPath)
	if len(entries) != 2 {
		t.Fatalf("expected 2 sink entries, got %d", len(entries))
	}

	var sawMissing, sawDecode bool
	for _, entry := range entries {
		reasons, ok := entry["errors"].([]any)
		if !ok || len(reasons) == 0 {
			t.Fatalf("sink entry without reasons: %v", entry)
		}
		reason := reasons[0].(string)
		switch {
		case reason == "missing: surname":
			sawMissing = true
		case strings.HasPrefix(reason, "json_decode:"):
			sawDecode = true
			if entry["raw"] != `{bad json` {
				t.Errorf("decode entry raw = %v, want original line", entry["raw"])
			}
		}
	}
	if !sawMissing || !sawDecode {
		t.Fatalf("expected one missing and one decode entry, got %v", entries)
	}
}

func TestCollect_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	_, err := Collect("clients.txt", Options{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}

	if _, err := Stream("clients.txt", Options{}); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat from Stream, got %v", err)
	}
}

func TestCollect_BlankRecordsNeverSurface(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	cases := []struct {
		name     string
		content  string
		accepted int
	}{
		// The whitespace-only CSV row is not blank; it normalizes to empty
		// strings and passes because nothing is required here.
		{"blank.csv", "name,surname\nA,B\n,\n   ,\n", 2},
		{"blank.json", `[{"name":"A","surname":"B"}, {}, {"name":"","surname":null}]`, 1},
		{"blank.jsonl", `{"name":"A","surname":"B"}` + "\n{}\n" + `{"name":""}` + "\n", 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeSource(t, dir, tc.name, tc.content)
			sinkPath := filepath.Join(dir, tc.name+".errors.json")

			records, err := Collect(path, Options{InvalidSinkPath: sinkPath})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(records) != tc.accepted {
				t.Fatalf("expected %d accepted records, got %d: %v", tc.accepted, len(records), records)
			}
			if _, err := os.Stat(sinkPath); !os.IsNotExist(err) {
				t.Fatalf("expected empty sink for %s, stat err = %v", tc.name, err)
			}
		})
	}
}

func TestCollect_JSONDocumentShapes(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	core, logs := observer.New(zap.WarnLevel)
	path := writeSource(t, dir, "mixed.json",
		`[{"name":"A"}, 5, "text", [], {"name":""}]`)

	records, err := Collect(path, Options{
		Logger:          zap.New(core),
		InvalidSinkPath: filepath.Join(dir, "errors.json"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	// The two truthy non-objects warn; the empty array is dropped silently.
	warned := logs.FilterMessage("json record is not an object, skipped").Len()
	if warned != 2 {
		t.Fatalf("expected 2 skip warnings, got %d", warned)
	}
}

func TestCollect_SingleJSONObject(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := writeSource(t, dir, "single.json", `{"Name":"Ayşe","Surname":"Yılmaz"}`)
	records, err := Collect(path, Options{
		RequiredFields:  []string{"name"},
		InvalidSinkPath: filepath.Join(dir, "errors.json"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0]["name"] != "Ayşe" {
		t.Fatalf("unexpected records: %v", records)
	}
}

func TestStream_EarlyAbandonStillFlushesSink(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	// The invalid row comes first so it is sunk before the caller breaks.
	path := writeSource(t, dir, "clients.csv",
		"name,surname\n"+
			",missing-name\n"+
			"A,B\n"+
			"C,D\n")
	sinkPath := filepath.Join(dir, "errors.json")

	seq, err := Stream(path, Options{
		RequiredFields:  []string{"name"},
		InvalidSinkPath: sinkPath,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	taken := 0
	for range seq {
		taken++
		break
	}
	if taken != 1 {
		t.Fatalf("expected to take 1 record, got %d", taken)
	}

	entries := readSinkReport(t, sinkPath)
	if len(entries) != 1 {
		t.Fatalf("expected 1 sink entry after abandonment, got %d", len(entries))
	}
}

func TestStream_IsOnePass(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := writeSource(t, dir, "clients.csv", "name\nA\nB\n")
	seq, err := Stream(path, Options{InvalidSinkPath: filepath.Join(dir, "e.json")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	if first != 2 || second != 0 {
		t.Fatalf("expected one-pass sequence, got %d then %d", first, second)
	}
}

func TestCollect_MissingFileIsGraceful(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	core, logs := observer.New(zap.ErrorLevel)
	records, err := Collect(filepath.Join(dir, "nope.csv"), Options{Logger: zap.New(core)})
	if err != nil {
		t.Fatalf("file-level failure must not surface, got %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	if logs.FilterMessage("read aborted").Len() != 1 {
		t.Fatalf("expected one read-aborted error log")
	}
}

func TestCollect_PartialResultsSurviveMidFileFailure(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	// The unterminated quote aborts the read after two good rows.
	path := writeSource(t, dir, "broken.csv",
		"name\nA\nB\n\"unterminated\n")

	records, err := Collect(path, Options{InvalidSinkPath: filepath.Join(dir, "e.json")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected the 2 records before the failure, got %d", len(records))
	}
}

func TestCollect_DelimiterAndEncoding(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	// ISO-8859-9 bytes: 0xFD is dotless i, 0xFE is s-cedilla.
	content := []byte("Ad\xfd;Soyad\xfd\nAy\xfee;Y\xfdlmaz\n")
	path := filepath.Join(dir, "latin5.csv")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	records, err := Collect(path, Options{
		CSVDelimiter:    ';',
		CSVEncoding:     "ISO-8859-9",
		InvalidSinkPath: filepath.Join(dir, "e.json"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if got := records[0]["adi"]; got != "Ayşe" {
		t.Errorf("adi = %v, want decoded Ayşe", got)
	}
	if got := records[0]["soyadi"]; got != "Yılmaz" {
		t.Errorf("soyadi = %v, want decoded Yılmaz", got)
	}
}

func TestCollect_ColumnMapRenames(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := writeSource(t, dir, "clients.csv",
		"Adı Soyadı,Doğum Tarihi\nAyşe Yılmaz,1990-05-01\n")

	records, err := Collect(path, Options{
		ColumnMap:       map[string]string{"Adı Soyadı": "full_name", "Doğum Tarihi": "birth_date"},
		RequiredFields:  []string{"full_name"},
		DateFields:      []string{"birth_date"},
		InvalidSinkPath: filepath.Join(dir, "e.json"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if got := records[0]["full_name"]; got != "Ayşe Yılmaz" {
		t.Errorf("full_name = %v", got)
	}
	if got := records[0]["birth_date"]; got != "01/05/1990" {
		t.Errorf("birth_date = %v, want 01/05/1990", got)
	}
}

type countingProgress struct {
	ticks int
	done  int
}

func (p *countingProgress) Tick() { p.ticks++ }
func (p *countingProgress) Done() { p.done++ }

func TestStream_ProgressObservesEveryRawRecord(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := writeSource(t, dir, "clients.csv", "name\nA\n\nB\n")
	progress := &countingProgress{}

	records, err := Collect(path, Options{
		Progress:        progress,
		InvalidSinkPath: filepath.Join(dir, "e.json"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// encoding/csv drops the fully empty line, so two raw rows tick.
	if progress.ticks != 2 {
		t.Fatalf("expected 2 ticks, got %d", progress.ticks)
	}
	if progress.done != 1 {
		t.Fatalf("expected Done once, got %d", progress.done)
	}
}

func TestCollect_DefaultSinkPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := writeSource(t, dir, "clients.csv", "name,surname\nA,\n")
	if _, err := Collect(path, Options{RequiredFields: []string{"surname"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := readSinkReport(t, filepath.Join(dir, "Errors", "errors.json"))
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry at the default sink path, got %d", len(entries))
	}
}

func TestCollectTable_SortedColumns(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := writeSource(t, dir, "clients.json",
		`[{"b":"2","a":"1"},{"c":"3"}]`)

	table, err := CollectTable(path, Options{InvalidSinkPath: filepath.Join(dir, "e.json")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Columns) != 3 || table.Columns[0] != "a" || table.Columns[1] != "b" || table.Columns[2] != "c" {
		t.Fatalf("unexpected columns: %v", table.Columns)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}
	if table.Rows[1][2] != "3" {
		t.Fatalf("unexpected cell value: %v", table.Rows[1])
	}
	if table.Rows[1][0] != nil {
		t.Fatalf("absent cells should be nil, got %v", table.Rows[1][0])
	}
}

func TestStream_CallerSuppliedSinkObservesRejections(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	path := writeSource(t, dir, "roster.csv",
		"name,surname\n"+
			"Ayşe,Yılmaz\n"+
			",Demir\n")

	sink := NewInvalidSink(nil)
	seq, err := Stream(path, Options{
		RequiredFields:  []string{"name"},
		InvalidSinkPath: filepath.Join(dir, "errors.json"),
		Sink:            sink,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	accepted := 0
	for range seq {
		accepted++
	}
	if accepted != 1 {
		t.Fatalf("expected 1 accepted record, got %d", accepted)
	}
	if sink.Len() != 1 {
		t.Fatalf("expected 1 rejection in the caller sink, got %d", sink.Len())
	}

	entries := readSinkReport(t, filepath.Join(dir, "errors.json"))
	if len(entries) != 1 {
		t.Fatalf("expected the caller sink to flush 1 entry, got %d", len(entries))
	}
}
