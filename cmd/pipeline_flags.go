package cmd

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gofill/config"
	"gofill/roster"
)

// pipelineFlags are the roster pipeline overrides shared by fill, read,
// and verify. A value only applies when its flag was set; otherwise the
// configuration wins.
type pipelineFlags struct {
	required   []string
	dateFields []string
	columnMap  []string
	delimiter  string
	encoding   string
	sink       string
	progress   bool
}

func addPipelineFlags(cmd *cobra.Command) *pipelineFlags {
	flags := &pipelineFlags{}
	cmd.Flags().StringArrayVar(&flags.required, "required", nil, "Field that must be present and non-empty (repeatable)")
	cmd.Flags().StringArrayVar(&flags.dateFields, "date-field", nil, "Field reformatted as DD/MM/YYYY (repeatable)")
	cmd.Flags().StringArrayVar(&flags.columnMap, "map", nil, "Column rename source=target (repeatable)")
	cmd.Flags().StringVar(&flags.delimiter, "delimiter", "", "CSV field delimiter (single character)")
	cmd.Flags().StringVar(&flags.encoding, "encoding", "", "CSV text encoding by IANA name, e.g. iso-8859-9")
	cmd.Flags().StringVar(&flags.sink, "sink", "", "Invalid-record report path (default Errors/errors.json)")
	cmd.Flags().BoolVar(&flags.progress, "progress", false, "Show a progress spinner while reading")
	return flags
}

// options merges configuration values with the flags set on cmd.
func (f *pipelineFlags) options(cmd *cobra.Command, cfg *config.Config, logger *zap.Logger) (roster.Options, error) {
	opts := roster.Options{
		Logger:          logger,
		ColumnMap:       cfg.Roster.ColumnMap,
		RequiredFields:  cfg.Roster.RequiredFields,
		DateFields:      cfg.Roster.DateFields,
		CSVDelimiter:    cfg.Roster.DelimiterRune(),
		CSVEncoding:     cfg.Roster.CSVEncoding,
		InvalidSinkPath: cfg.Roster.InvalidSink,
	}
	progress := cfg.Roster.Progress

	set := cmd.Flags()
	if set.Changed("required") {
		opts.RequiredFields = f.required
	}
	if set.Changed("date-field") {
		opts.DateFields = f.dateFields
	}
	if set.Changed("map") {
		columnMap, err := parseColumnMap(f.columnMap)
		if err != nil {
			return roster.Options{}, err
		}
		opts.ColumnMap = columnMap
	}
	if set.Changed("delimiter") {
		delimiter, err := parseDelimiter(f.delimiter)
		if err != nil {
			return roster.Options{}, err
		}
		opts.CSVDelimiter = delimiter
	}
	if set.Changed("encoding") {
		opts.CSVEncoding = f.encoding
	}
	if set.Changed("sink") {
		opts.InvalidSinkPath = f.sink
	}
	if set.Changed("progress") {
		progress = f.progress
	}
	if progress {
		opts.Progress = newProgressSpinner("reading roster")
	}

	return opts, nil
}

func parseColumnMap(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	columnMap := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		source, target, found := strings.Cut(pair, "=")
		source = strings.TrimSpace(source)
		target = strings.TrimSpace(target)
		if !found || source == "" || target == "" {
			return nil, fmt.Errorf("invalid --map value %q (expected source=target)", pair)
		}
		columnMap[source] = target
	}
	return columnMap, nil
}

func parseDelimiter(value string) (rune, error) {
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("invalid --delimiter value %q (expected a single character)", value)
	}
	delimiter, _ := utf8.DecodeRuneInString(value)
	return delimiter, nil
}
