// Package config provides configuration loading from environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Static errors for configuration validation.
var (
	// ErrAPIKeyRequired is returned when API_KEY is not set.
	ErrAPIKeyRequired = errors.New("config: API_KEY is required")
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	Port   int    `env:"PORT, default=8080" json:"port"`
	APIKey string `env:"API_KEY, required" json:"-"` // Masked in JSON

	// Directory layout: TempDir holds downloaded inputs and concat
	// manifests, FilesDir holds published artifacts served at /files/.
	TempDir  string `env:"TEMP_DIR, default=/tmp/media-toolkit/tmp" json:"temp_dir"`
	FilesDir string `env:"FILES_DIR, default=/tmp/media-toolkit/files" json:"files_dir"`

	// Engine settings
	FFmpegPath              string        `env:"FFMPEG_PATH, default=ffmpeg" json:"ffmpeg_path"`
	FFprobePath             string        `env:"FFPROBE_PATH, default=ffprobe" json:"ffprobe_path"`
	MaxConcurrentTransforms int           `env:"MAX_CONCURRENT_TRANSFORMS, default=4" json:"max_concurrent_transforms"`
	EngineTimeout           time.Duration `env:"ENGINE_TIMEOUT, default=15m" json:"engine_timeout"`

	// Fetch settings
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT, default=5m" json:"fetch_timeout"`

	// Retention settings. An empty schedule disables the sweep.
	CleanupSchedule string        `env:"CLEANUP_SCHEDULE" json:"cleanup_schedule,omitempty"`
	RetentionMaxAge time.Duration `env:"RETENTION_MAX_AGE, default=24h" json:"retention_max_age"`

	// Optional S3 mirror settings
	S3Bucket           string `env:"S3_BUCKET" json:"s3_bucket,omitempty"`
	S3Region           string `env:"S3_REGION" json:"s3_region,omitempty"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" json:"-"`     // Masked in JSON
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" json:"-"` // Masked in JSON

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" json:"log_format"` // "json" or "text"
	LogLevel  string `env:"LOG_LEVEL, default=info" json:"log_level"`   // "debug", "info", "warn", "error"
}

// S3Enabled returns true if S3 mirror configuration is provided.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

// CleanupEnabled returns true if a retention sweep schedule is configured.
func (c *Config) CleanupEnabled() bool {
	return c.CleanupSchedule != ""
}

// Load reads configuration from environment variables using go-envconfig.
// It returns an error if required variables are not set.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process(context.Background(), cfg); err != nil {
		// Map envconfig errors to our domain errors for required fields
		if strings.Contains(err.Error(), "API_KEY") {
			return nil, ErrAPIKeyRequired
		}
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrAPIKeyRequired
	}
	return nil
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs suitable for production.
// Otherwise, it outputs human-readable text logs.
func (c *Config) NewLogger() *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// String returns a string representation of the config with sensitive values masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Port: %d, TempDir: %s, FilesDir: %s, FFmpegPath: %s, FFprobePath: %s, MaxConcurrentTransforms: %d, EngineTimeout: %s, FetchTimeout: %s, CleanupSchedule: %s, RetentionMaxAge: %s, S3Bucket: %s, S3Region: %s, LogFormat: %s, LogLevel: %s}",
		c.Port,
		c.TempDir,
		c.FilesDir,
		c.FFmpegPath,
		c.FFprobePath,
		c.MaxConcurrentTransforms,
		c.EngineTimeout,
		c.FetchTimeout,
		c.CleanupSchedule,
		c.RetentionMaxAge,
		c.S3Bucket,
		c.S3Region,
		c.LogFormat,
		c.LogLevel,
	)
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
