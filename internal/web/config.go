package web

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iskolar-ocr/internal/config"
)

// Config represents the web server configuration
type Config struct {
	Server   ServerConfig  `yaml:"server"`
	Auth     AuthConfig    `yaml:"auth"`
	Features FeatureConfig `yaml:"features"`
	CORS     CORSConfig    `yaml:"cors"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// AuthConfig contains API key settings
type AuthConfig struct {
	Enabled bool     `yaml:"enabled"`
	APIKeys []string `yaml:"api_keys"`
}

// FeatureConfig contains feature toggles
type FeatureConfig struct {
	// BatchLimit caps documents per /api/validate/batch request
	BatchLimit int `yaml:"batch_limit"`
	// Parallelism bounds concurrent validations inside one batch
	Parallelism int `yaml:"parallelism"`
}

// CORSConfig lists allowed browser origins; empty allows none
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LoadConfig loads configuration from a YAML file on top of the defaults
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read server config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse server config %s: %w", filename, err)
	}
	return cfg, nil
}

// DefaultConfig returns a configuration built from ISKOLAR_* variables
func DefaultConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port: config.GetEnvInt("ISKOLAR_PORT", 8080),
			Host: config.GetEnv("ISKOLAR_HOST", "0.0.0.0"),
		},
		Auth: AuthConfig{
			Enabled: config.GetEnvBool("ISKOLAR_AUTH_ENABLED", false),
		},
		Features: FeatureConfig{
			BatchLimit:  config.GetEnvInt("ISKOLAR_BATCH_LIMIT", 50),
			Parallelism: config.GetEnvInt("ISKOLAR_PARALLELISM", 4),
		},
	}
	if keys := config.GetEnv("ISKOLAR_API_KEYS", ""); keys != "" {
		for _, k := range strings.Split(keys, ",") {
			if k = strings.TrimSpace(k); k != "" {
				cfg.Auth.APIKeys = append(cfg.Auth.APIKeys, k)
			}
		}
	}
	if origins := config.GetEnv("ISKOLAR_CORS_ORIGINS", ""); origins != "" {
		cfg.CORS.AllowedOrigins = strings.Split(origins, ",")
	}
	return cfg
}
