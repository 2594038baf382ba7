// Package config loads and stores analyser settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KGKallasmaa/bank-statement-analyser/internal/analyzer"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/document"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/integrity"
	"github.com/KGKallasmaa/bank-statement-analyser/internal/understanding"
)

// Config carries the model name and the document limits the analysis
// enforces.
type Config struct {
	Model           string `yaml:"model"`
	MaxTransactions int    `yaml:"max_transactions"`
	MaxFileSizeMB   int    `yaml:"max_file_size_mb"`
	MaxPages        int    `yaml:"max_pages"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Model:           understanding.DefaultModel,
		MaxTransactions: analyzer.DefaultMaxTransactions,
		MaxFileSizeMB:   document.DefaultMaxFileSizeMB,
		MaxPages:        integrity.DefaultMaxPages,
	}
}

// Load reads a YAML config file. Keys the file does not set keep their
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

// Save writes the configuration as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
