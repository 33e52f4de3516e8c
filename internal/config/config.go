// Package config loads sqlfrag settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/roach88/sqlfrag/internal/escape"
)

// Config holds all configuration for sqlfrag.
// Environment variables override YAML values.
type Config struct {
	Catalog     CatalogConfig     `yaml:"catalog"`
	Identifiers IdentifiersConfig `yaml:"identifiers"`
	Output      OutputConfig      `yaml:"output"`
}

// CatalogConfig names the sources references are resolved against.
// Both empty means references pass through unchecked.
type CatalogConfig struct {
	Path     string `yaml:"path" env:"SQLFRAG_CATALOG" env-default:""`
	Database string `yaml:"database" env:"SQLFRAG_DATABASE" env-default:""`
}

// IdentifiersConfig controls how table and column names are escaped.
type IdentifiersConfig struct {
	Fold     string   `yaml:"fold" env:"SQLFRAG_FOLD" env-default:"lower"`
	Quote    string   `yaml:"quote" env:"SQLFRAG_QUOTE" env-default:"\""`
	Reserved []string `yaml:"reserved" env:"SQLFRAG_RESERVED" env-separator:","`
}

// OutputConfig holds CLI output defaults.
type OutputConfig struct {
	Format string `yaml:"format" env:"SQLFRAG_FORMAT" env-default:"text"`
}

// ValidFormats lists the accepted output formats.
var ValidFormats = []string{"text", "json"}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Identifiers: IdentifiersConfig{Fold: string(escape.FoldLower), Quote: `"`},
		Output:      OutputConfig{Format: "text"},
	}
}

// Load reads path when it is set and applies environment overrides.
// With no path only the environment and defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if !slices.Contains(escape.ValidFolds, escape.Fold(c.Identifiers.Fold)) {
		return fmt.Errorf("identifiers.fold must be one of %v, got %q", escape.ValidFolds, c.Identifiers.Fold)
	}
	if n := len(c.Identifiers.Quote); n < 1 || n > 2 {
		return fmt.Errorf("identifiers.quote must be one or two characters, got %q", c.Identifiers.Quote)
	}
	if !slices.Contains(ValidFormats, c.Output.Format) {
		return fmt.Errorf("output.format must be one of %s, got %q", strings.Join(ValidFormats, ", "), c.Output.Format)
	}
	return nil
}

// Escaper builds the identifier escaper described by the configuration.
func (c *Config) Escaper() *escape.Escaper {
	return escape.New(
		escape.WithFold(escape.Fold(c.Identifiers.Fold)),
		escape.WithQuote(c.Identifiers.Quote),
		escape.WithReserved(c.Identifiers.Reserved...),
	)
}
