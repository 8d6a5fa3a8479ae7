package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"golang.org/x/text/encoding/ianaindex"
)

const (
	KeyFillTemplate         = "fill.template"
	KeyFillData             = "fill.data"
	KeyFillOut              = "fill.out"
	KeyFillLogo             = "fill.logo"
	KeyFillPDF              = "fill.pdf"
	KeyRosterCSVDelimiter   = "roster.csv_delimiter"
	KeyRosterCSVEncoding    = "roster.csv_encoding"
	KeyRosterRequiredFields = "roster.required_fields"
	KeyRosterDateFields     = "roster.date_fields"
	KeyRosterColumnMap      = "roster.column_map"
	KeyRosterInvalidSink    = "roster.invalid_sink"
	KeyRosterProgress       = "roster.progress"
	KeyHistoryDatabase      = "history.database"
)

type Config struct {
	Fill    FillConfig    `mapstructure:"fill" validate:"required"`
	Roster  RosterConfig  `mapstructure:"roster"`
	History HistoryConfig `mapstructure:"history"`
}

type FillConfig struct {
	Template string `mapstructure:"template" validate:"required"`
	Data     string `mapstructure:"data" validate:"required"`
	Out      string `mapstructure:"out" validate:"required"`
	Logo     string `mapstructure:"logo"`
	PDF      bool   `mapstructure:"pdf"`
}

type RosterConfig struct {
	CSVDelimiter   string            `mapstructure:"csv_delimiter"`
	CSVEncoding    string            `mapstructure:"csv_encoding"`
	RequiredFields []string          `mapstructure:"required_fields"`
	DateFields     []string          `mapstructure:"date_fields"`
	ColumnMap      map[string]string `mapstructure:"column_map"`
	InvalidSink    string            `mapstructure:"invalid_sink"`
	Progress       bool              `mapstructure:"progress"`
}

type HistoryConfig struct {
	Database string `mapstructure:"database" validate:"required"`
}

// DelimiterRune returns the configured CSV delimiter as a rune, or 0 when
// unset.
func (c RosterConfig) DelimiterRune() rune {
	if c.CSVDelimiter == "" {
		return 0
	}
	delim, _ := utf8.DecodeRuneInString(c.CSVDelimiter)
	return delim
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# gofill configuration
fill:
  template: "contract_template.docx"
  data: "client.xlsx"
  out: "contract"
  logo: ""
  pdf: true

roster:
  csv_delimiter: ","
  csv_encoding: ""
  required_fields: []
  date_fields: []
  column_map: {}
  invalid_sink: "Errors/errors.json"
  progress: false

history:
  database: ".gofill.db"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validateSettings(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyFillTemplate, "contract_template.docx")
	v.SetDefault(KeyFillData, "client.xlsx")
	v.SetDefault(KeyFillOut, "contract")
	v.SetDefault(KeyFillLogo, "")
	v.SetDefault(KeyFillPDF, true)
	v.SetDefault(KeyRosterCSVDelimiter, ",")
	v.SetDefault(KeyRosterCSVEncoding, "")
	v.SetDefault(KeyRosterRequiredFields, []string{})
	v.SetDefault(KeyRosterDateFields, []string{})
	v.SetDefault(KeyRosterColumnMap, map[string]string{})
	v.SetDefault(KeyRosterInvalidSink, "Errors/errors.json")
	v.SetDefault(KeyRosterProgress, false)
	v.SetDefault(KeyHistoryDatabase, ".gofill.db")
}

func validateSettings(cfg *Config) error {
	ext := strings.ToLower(filepath.Ext(cfg.Fill.Template))
	if ext != ".docx" && ext != ".html" {
		return fmt.Errorf("validation failed: fill.template must be a .docx or .html file, got %q", cfg.Fill.Template)
	}

	if utf8.RuneCountInString(cfg.Roster.CSVDelimiter) > 1 {
		return fmt.Errorf("validation failed: roster.csv_delimiter must be a single character, got %q", cfg.Roster.CSVDelimiter)
	}

	if name := strings.TrimSpace(cfg.Roster.CSVEncoding); name != "" {
		enc, err := ianaindex.IANA.Encoding(name)
		if err != nil || enc == nil {
			return fmt.Errorf("validation failed: unknown roster.csv_encoding %q", name)
		}
	}

	return nil
}
