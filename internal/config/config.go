// Package config loads the optional ~/.bloom.yaml file and folds in
// environment overrides. Everything has a working default; the file only
// exists for people who want to pin a model or move the database.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	EnvAPIKey = "ANTHROPIC_API_KEY"
	EnvDBPath = "BLOOM_DB"
)

// Config holds everything the CLI and server read at startup.
type Config struct {
	// APIKey authenticates against the Anthropic API. Empty means the
	// mock generator is used.
	APIKey string `yaml:"api_key"`

	// Model names the Anthropic model for roadmap generation.
	Model string `yaml:"model"`

	// DBPath overrides the default sqlite location.
	DBPath string `yaml:"db_path"`

	// ListenAddr is the bind address for `bloom serve`.
	ListenAddr string `yaml:"listen_addr"`
}

func defaults() Config {
	return Config{ListenAddr: "127.0.0.1:8420"}
}

// DefaultPath returns ~/.bloom.yaml, or a relative fallback when the home
// directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bloom.yaml"
	}
	return filepath.Join(home, ".bloom.yaml")
}

// Load reads the config file at path (DefaultPath when empty). A missing
// file yields defaults. Environment variables win over file values.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := defaults()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file is the common case.
	case err != nil:
		return cfg, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
		if cfg.ListenAddr == "" {
			cfg.ListenAddr = defaults().ListenAddr
		}
	}

	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.DBPath = v
	}
	return cfg, nil
}
