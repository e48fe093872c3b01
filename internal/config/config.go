// Package config loads application configuration from an optional YAML file
// and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvAPIURL overrides the API base URL at deployment time.
const EnvAPIURL = "SWEETSHOP_API_URL"

// Config represents the application configuration.
type Config struct {
	APIURL      string `yaml:"api_url"`
	SessionPath string `yaml:"session_path"`
	LogFile     string `yaml:"log_file"`
	LogLevel    string `yaml:"log_level"`
}

// Load builds the configuration: defaults, then the YAML file at path (if
// given and present), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.APIURL = v
	}

	return cfg, nil
}

func defaults() *Config {
	dir := stateDir()
	return &Config{
		APIURL:      "http://localhost:8000",
		SessionPath: filepath.Join(dir, "session.db"),
		LogFile:     filepath.Join(dir, "sweetshop.log"),
		LogLevel:    "info",
	}
}

// stateDir is where the session store and log file live.
func stateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sweetshop"
	}
	return filepath.Join(home, ".sweetshop")
}
