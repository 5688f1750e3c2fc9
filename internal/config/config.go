package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env    string `yaml:"env"`
	Locale string `yaml:"locale"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Content struct {
		BaseURL      string `yaml:"base_url"`
		Dir          string `yaml:"dir"`
		LookbackDays *int   `yaml:"lookback_days"`
		Timeout      string `yaml:"timeout"`
	} `yaml:"content"`
	Storage struct {
		SlotPrefix string `yaml:"slot_prefix"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"storage"`
}

// Load reads YAML config from path.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields the zero config.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if os.IsNotExist(err) {
		return Config{}, nil
	}
	return cfg, err
}

// Lookback returns the configured lookback window or fallback when unset.
func (c Config) Lookback(fallback int) int {
	if c.Content.LookbackDays == nil || *c.Content.LookbackDays < 0 {
		return fallback
	}
	return *c.Content.LookbackDays
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
