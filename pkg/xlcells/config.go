package xlcells

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk form of the CLI settings.
type Config struct {
	// Output is the file to write to. Empty means stdout.
	Output string `yaml:"output"`
	// Format is "json" or "csv".
	Format string `yaml:"format" validate:"omitempty,oneof=json csv"`
	// Pretty indents JSON output.
	Pretty bool `yaml:"pretty"`
	// BOM prefixes CSV output with a UTF-8 byte-order mark.
	BOM bool `yaml:"bom"`
	// SheetsDir receives one <sheet>.json file per decoded sheet.
	SheetsDir string `yaml:"sheets_dir"`

	IncludeBlankCells bool     `yaml:"include_blank_cells"`
	Sheets            []string `yaml:"sheets" validate:"dive,required"`
	Workers           int      `yaml:"workers" validate:"gte=0,lte=1024"`
	Verbose           bool     `yaml:"verbose"`
}

// LoadConfig reads and validates a YAML configuration file. Unknown keys
// are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed on '%s'", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
}

// Options returns the extraction options the configuration selects.
func (c *Config) Options() Options {
	return Options{
		IncludeBlankCells: c.IncludeBlankCells,
		Sheets:            c.Sheets,
		Workers:           c.Workers,
	}
}
