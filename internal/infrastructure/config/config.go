// Package config loads engine configuration from environment variables, with
// an optional YAML overlay file for canvas tuning.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"

	"github.com/hansfischmann-pm/planner-test-sub004/internal/shared/types"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
	Canvas    CanvasConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string        `envconfig:"PORT" default:"8000" yaml:"port"`
	Host         string        `envconfig:"HOST" default:"0.0.0.0" yaml:"host"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"15s" yaml:"read_timeout"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s" yaml:"write_timeout"`
	CORSOrigins  []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:5173,http://localhost:3000" yaml:"cors_origins"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" yaml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" yaml:"development"`
}

// StorageConfig holds layout persistence configuration.
type StorageConfig struct {
	Path string `envconfig:"STORAGE_PATH" default:"/tmp/canvas-desktop" yaml:"path"`
}

// RateLimitConfig holds request rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100" yaml:"requests_per_second"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200" yaml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true" yaml:"enabled"`
}

// CanvasConfig holds canvas and window layout tuning.
type CanvasConfig struct {
	// Padding expands the virtual-canvas bounding box on all sides.
	Padding int `envconfig:"CANVAS_PADDING" default:"64" yaml:"padding"`
	// CascadeStep is the diagonal offset between cascaded windows.
	CascadeStep int `envconfig:"CANVAS_CASCADE_STEP" default:"32" yaml:"cascade_step"`

	DefaultWidth  int `envconfig:"WINDOW_DEFAULT_WIDTH" default:"800" yaml:"default_width"`
	DefaultHeight int `envconfig:"WINDOW_DEFAULT_HEIGHT" default:"600" yaml:"default_height"`

	ChatDockedWidth    int `envconfig:"CHAT_DOCKED_WIDTH" default:"360" yaml:"chat_docked_width"`
	ChatMinWidth       int `envconfig:"CHAT_MIN_WIDTH" default:"240" yaml:"chat_min_width"`
	ChatMaxWidth       int `envconfig:"CHAT_MAX_WIDTH" default:"640" yaml:"chat_max_width"`
	ChatCollapsedWidth int `envconfig:"CHAT_COLLAPSED_WIDTH" default:"48" yaml:"chat_collapsed_width"`

	// Viewport size assumed until a client reports the real one.
	ViewportWidth  int `envconfig:"VIEWPORT_WIDTH" default:"1920" yaml:"viewport_width"`
	ViewportHeight int `envconfig:"VIEWPORT_HEIGHT" default:"1080" yaml:"viewport_height"`
}

// DefaultViewport returns the configured fallback viewport size.
func (c CanvasConfig) DefaultViewport() types.Size {
	return types.Size{Width: c.ViewportWidth, Height: c.ViewportHeight}
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadWithFile loads environment configuration, then overlays values from a
// YAML file if path is non-empty. File values win over environment defaults.
func LoadWithFile(path string) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns default configuration without consulting the environment.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "8000",
			Host:         "0.0.0.0",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			CORSOrigins:  []string{"http://localhost:5173", "http://localhost:3000"},
		},
		Logging:   LogConfig{Level: "info"},
		Storage:   StorageConfig{Path: "/tmp/canvas-desktop"},
		RateLimit: RateLimitConfig{RequestsPerSecond: 100, Burst: 200, Enabled: true},
		Canvas: CanvasConfig{
			Padding:            64,
			CascadeStep:        32,
			DefaultWidth:       800,
			DefaultHeight:      600,
			ChatDockedWidth:    360,
			ChatMinWidth:       240,
			ChatMaxWidth:       640,
			ChatCollapsedWidth: 48,
			ViewportWidth:      1920,
			ViewportHeight:     1080,
		},
	}
}
