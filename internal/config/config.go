// Package config loads application settings from YAML files and SMD_*
// environment variables. Environment variables win over file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ytget/smd/internal/quality"
)

// DownloadConfig holds download related settings
type DownloadConfig struct {
	DefaultQuality string `yaml:"default_quality"`
	DefaultFormat  string `yaml:"default_format"`
	OutputDir      string `yaml:"output_dir"`
	MaxConcurrent  int    `yaml:"max_concurrent_downloads"`
	TimeoutSec     int    `yaml:"download_timeout"`
	Remux          bool   `yaml:"remux"`
}

// APIConfig holds HTTP server settings
type APIConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
	JSON  bool   `yaml:"json"`
}

// Config is the root application configuration
type Config struct {
	Download DownloadConfig `yaml:"download"`
	API      APIConfig      `yaml:"api"`
	Logging  LoggingConfig  `yaml:"logging"`
	EnvDir   string         `yaml:"env_dir"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Download: DownloadConfig{
			DefaultQuality: quality.DefaultName,
			DefaultFormat:  "mp4",
			OutputDir:      "./downloads",
			MaxConcurrent:  3,
			TimeoutSec:     300,
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		EnvDir: ".smd-env",
	}
}

// Load reads the config file at path on top of defaults, then applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault searches the usual config locations and loads the first hit.
// When no file exists it returns defaults with environment overrides.
func LoadDefault() (*Config, error) {
	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	cfg := Default()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func searchPaths() []string {
	paths := []string{"smd.yaml", ".smd.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "smd", "config.yaml"))
	}
	return paths
}

// applyEnv overrides settings from SMD_* environment variables
func (c *Config) applyEnv() {
	if v := os.Getenv("SMD_DEFAULT_QUALITY"); v != "" {
		c.Download.DefaultQuality = v
	}
	if v := os.Getenv("SMD_DEFAULT_FORMAT"); v != "" {
		c.Download.DefaultFormat = v
	}
	if v := os.Getenv("SMD_OUTPUT_DIR"); v != "" {
		c.Download.OutputDir = v
	}
	if v := os.Getenv("SMD_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Download.MaxConcurrent = n
		}
	}
	if v := os.Getenv("SMD_API_HOST"); v != "" {
		c.API.Host = v
	}
	if v := os.Getenv("SMD_API_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.API.Port = n
		}
	}
	if v := os.Getenv("SMD_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("SMD_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("SMD_ENV_DIR"); v != "" {
		c.EnvDir = v
	}
}

// Validate checks the configuration for obvious mistakes
func (c *Config) Validate() error {
	if !quality.Validate(c.Download.DefaultQuality) {
		return fmt.Errorf("unknown default quality: %s", c.Download.DefaultQuality)
	}
	if c.Download.MaxConcurrent < 1 {
		return fmt.Errorf("max_concurrent_downloads must be at least 1, got %d", c.Download.MaxConcurrent)
	}
	if c.API.Port < 1 || c.API.Port > 65535 {
		return fmt.Errorf("invalid API port: %d", c.API.Port)
	}
	return nil
}

// Addr returns the host:port the API server listens on
func (c *APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
