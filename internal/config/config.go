package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Dashboard DashboardConfig `yaml:"dashboard"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Theme     string          `yaml:"theme"`
	LogLevel  string          `yaml:"log_level"`
}

type DashboardConfig struct {
	// URL is the dashboard link; its tg_id query parameter is the identifier.
	URL string `yaml:"url"`
	// APIBase is where /api/auth lives. Defaults to the scheme and host of URL.
	APIBase string `yaml:"api_base"`
	// RequestTimeout bounds the auth call. Zero means no timeout.
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// AuthBase returns the base URL for the auth API.
func (d DashboardConfig) AuthBase() string {
	if d.APIBase != "" {
		return d.APIBase
	}
	u, err := url.Parse(d.URL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

type TelegramConfig struct {
	APIID   int    `yaml:"api_id"`
	APIHash string `yaml:"api_hash"`
}

// Enabled reports whether Telegram credentials are present.
func (t TelegramConfig) Enabled() bool {
	return t.APIID != 0 && t.APIHash != ""
}

func Dir() string {
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		cfgDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(cfgDir, "contestdash")
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Theme == "" {
		cfg.Theme = "default"
	}

	return &cfg, nil
}
