package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoConfig is returned when no config file exists yet
var ErrNoConfig = errors.New("no config file found")

// Config holds application configuration
type Config struct {
	Provider ProviderConfig `json:"provider"`
	Analysis AnalysisConfig `json:"analysis"`
}

// ProviderConfig holds API credentials for the activity provider
type ProviderConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// AnalysisConfig tunes goal analysis behavior
type AnalysisConfig struct {
	// Workers bounds concurrent goal analyses. 0 means the default.
	Workers int `json:"workers"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Workers: 4,
		},
	}
}

// Dir returns the application data directory, creating it if needed
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	dir := filepath.Join(home, ".stridetrack")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	return dir, nil
}

func configPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config file, returning ErrNoConfig if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadPath(path)
}

// LoadPath reads a config file from an explicit location
func LoadPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoConfig
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config file
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	return c.SavePath(path)
}

// SavePath writes the config to an explicit location
func (c *Config) SavePath(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks the config for obvious mistakes
func (c *Config) Validate() error {
	if c.Analysis.Workers < 0 {
		return errors.New("analysis.workers must not be negative")
	}
	return nil
}
