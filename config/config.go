package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const DefaultBaseURL = "https://app.leapter.com"

type Config struct {
	// BaseURL is the Leapter platform URL, without a trailing slash.
	BaseURL string `yaml:"base_url"`
	// APIKey authenticates every platform call. Overridable via LEAPTER_API_KEY.
	APIKey string `yaml:"api_key"`
	// RequestTimeoutSeconds applies to each HTTP call independently.
	RequestTimeoutSeconds int `yaml:"request_timeout_seconds"`
	// ExposeBlueprints registers one MCP tool per discovered blueprint at startup.
	ExposeBlueprints bool `yaml:"expose_blueprints"`
}

func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "leapter-mcp", "config.yaml")
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case os.IsNotExist(err) && os.Getenv("LEAPTER_API_KEY") != "":
		// Config file is optional when the key comes from the environment.
	default:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if key := os.Getenv("LEAPTER_API_KEY"); key != "" {
		cfg.APIKey = key
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RequestTimeoutSeconds <= 0 {
		cfg.RequestTimeoutSeconds = 30
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key: set api_key in %s or LEAPTER_API_KEY", path)
	}

	return cfg, nil
}
