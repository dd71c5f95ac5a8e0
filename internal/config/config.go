package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level qifconv.yaml configuration.
type Config struct {
	// TemplatesDir is where CSV template YAML files live.
	TemplatesDir string `yaml:"templates_dir"`
	// DefaultTemplate is used when --template is not given.
	DefaultTemplate string `yaml:"default_template,omitempty"`
	// DateFormat overrides the output date pattern for generated CSV.
	DateFormat string `yaml:"date_format,omitempty"`
}

// Load reads a qifconv.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
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

// Default returns a Config with sensible defaults.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		TemplatesDir: filepath.Join(home, ".qifconv", "templates"),
	}
}

// DefaultPath is the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".qifconv", "qifconv.yaml")
}

// LoadOrDefault reads the config at path, falling back to defaults when the
// file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = Default().TemplatesDir
	}
	return cfg, nil
}
