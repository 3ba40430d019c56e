package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/piotrekio/mquery/internal/statement"
)

// Config represents the mquery config.yaml file. Command-line flags override it.
type Config struct {
	Statement StatementConfig `yaml:"statement"`
	Summary   SummaryConfig   `yaml:"summary"`
	Output    OutputConfig    `yaml:"output"`
}

// StatementConfig describes the export being read.
type StatementConfig struct {
	Encoding     string `yaml:"encoding"`
	HeaderMarker string `yaml:"header_marker"`
}

// SummaryConfig controls the --summary totals.
type SummaryConfig struct {
	Currency string `yaml:"currency"`
}

// OutputConfig controls how histories are printed.
type OutputConfig struct {
	Color   string `yaml:"color"` // auto, always or never
	Reverse bool   `yaml:"reverse"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Statement: StatementConfig{
			Encoding:     statement.DefaultEncoding,
			HeaderMarker: statement.DefaultHeaderMarker,
		},
		Summary: SummaryConfig{
			Currency: "PLN",
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/mquery/config.yaml or its platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config dir: %w", err)
	}
	return filepath.Join(dir, "mquery", "config.yaml"), nil
}

// Load reads a config file from disk. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is like Load but returns Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file, creating its directory.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ReaderOptions returns the statement options described by the config.
func (c *Config) ReaderOptions() statement.Options {
	return statement.Options{
		Encoding:     c.Statement.Encoding,
		HeaderMarker: c.Statement.HeaderMarker,
	}
}
