// Package config loads optional ticketscan settings from a file.
//
// Three formats are accepted, selected by file extension:
//   - .yaml / .yml via gopkg.in/yaml.v3
//   - .json / .jsonc via github.com/tidwall/jsonc and encoding/json
//   - .toml via github.com/pelletier/go-toml/v2
//
// A missing config file is not an error: Defaults are used. Values read from
// a file only replace the defaults they name; command-line flags are applied
// on top by the cli package.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/ticketscan/internal/model"
	"github.com/shinji-kodama/ticketscan/internal/notes"
	"github.com/shinji-kodama/ticketscan/internal/report"
	"github.com/shinji-kodama/ticketscan/internal/resolve"
)

// candidateNames lists the config file names searched by Find, in priority order.
var candidateNames = []string{
	".ticketscan.yaml",
	".ticketscan.yml",
	".ticketscan.jsonc",
	".ticketscan.json",
	".ticketscan.toml",
}

// Config holds the settings of a ticketscan run.
type Config struct {
	// Input is the path of the notes file.
	Input string `json:"input" yaml:"input" toml:"input"`

	// Match is the substring selecting the fields multiplied into the
	// resolution product.
	Match string `json:"match" yaml:"match" toml:"match"`

	// Strict makes the resolver fail on ambiguous columns.
	Strict bool `json:"strict" yaml:"strict" toml:"strict"`

	// Format is the report format: text, json or yaml.
	Format string `json:"format" yaml:"format" toml:"format"`

	// Verbose enables debug logging.
	Verbose bool `json:"verbose" yaml:"verbose" toml:"verbose"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	return &Config{
		Input:  notes.DefaultPath,
		Match:  resolve.DefaultMatch,
		Strict: false,
		Format: string(report.FormatText),
	}
}

// Validate checks the values that have a closed set of options.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Input) == "" {
		return errors.New("input must not be empty")
	}
	if c.Match == "" {
		return errors.New("match must not be empty")
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}
	return nil
}

// Find returns the first config file present in dir, or "" when none exists.
func Find(dir string) string {
	for _, name := range candidateNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load reads the config file at path and merges it onto Defaults.
//
// Unknown keys are rejected so that a misspelled setting does not silently
// fall back to its default. Errors are returned as *model.CLIError with
// ExitConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, fmt.Sprintf("failed to read config %s", path), err)
	}

	cfg := Defaults()
	if err := decode(path, data, cfg); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, fmt.Sprintf("failed to parse config %s", path), err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigError, fmt.Sprintf("invalid config %s", path), err)
	}
	return cfg, nil
}

// LoadDir loads the config file discovered in dir, or returns Defaults when
// there is none.
func LoadDir(dir string) (*Config, string, error) {
	path := Find(dir)
	if path == "" {
		return Defaults(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// decode picks the decoder matching the file extension.
func decode(path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty YAML document decodes to io.EOF; keep the defaults.
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case ".json", ".jsonc":
		// Strip comments and trailing commas before handing the document to
		// encoding/json.
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(cfg)
	default:
		return fmt.Errorf("unsupported config extension %q (valid: .yaml, .yml, .json, .jsonc, .toml)", ext)
	}
}
