// Package config handles loading and saving user configuration for hanzinum.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/hanzinum/internal/batch"
	"github.com/f3rmion/hanzinum/internal/numeral"
	"gopkg.in/yaml.v3"
)

// FileName is the config file inside the config directory.
const FileName = "config.yaml"

// Config holds the user's rendering defaults. Flags and HANZINUM_*
// environment variables override these values.
type Config struct {
	Script   string `yaml:"script"`   // traditional or simplified
	Currency bool   `yaml:"currency"` // capital form with 元/角/分 by default
	Format   string `yaml:"format"`   // batch output: text, json, csv, yaml
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Script: numeral.Traditional.String(),
		Format: string(batch.FormatText),
	}
}

// Validate checks that every value is one the renderer understands.
func (c *Config) Validate() error {
	if _, err := numeral.ParseScript(c.Script); err != nil {
		return fmt.Errorf("config script: %w", err)
	}
	if _, err := batch.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config format: %w", err)
	}
	return nil
}

// Options converts the config to renderer options.
func (c *Config) Options() (numeral.Options, error) {
	script, err := numeral.ParseScript(c.Script)
	if err != nil {
		return numeral.Options{}, err
	}
	return numeral.Options{Currency: c.Currency, Script: script}, nil
}

// Load reads a config file. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDir loads FileName from dir. A missing file yields the defaults.
func LoadDir(dir string) (*Config, error) {
	cfg, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// GetConfigDir returns the default configuration directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hanzinum"), nil
}

// EnsureDir creates dir if it doesn't exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
