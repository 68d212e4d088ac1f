// Package config loads app configuration from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the noteninja terminal app.
type Config struct {
	// Analysis engine configuration. The API key is deliberately not required
	// at load time: the app starts without it and surfaces the engine's
	// missing-key failure when an analysis is submitted.
	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY" default:""`
	GeminiModel   string `envconfig:"GEMINI_MODEL" default:"gemini-3-flash-preview"`
	GeminiBaseURL string `envconfig:"GEMINI_BASE_URL" default:""` // empty selects the public endpoint

	// Capture configuration
	CaptureBinary string `envconfig:"CAPTURE_BINARY" default:"ffmpeg"` // external capture process
	CaptureDevice string `envconfig:"CAPTURE_DEVICE" default:""`       // empty selects the platform default mic

	// Playback configuration
	PlayerBinary string `envconfig:"PLAYER_BINARY" default:"ffplay"` // external preview player

	// Export configuration
	ExportDir string `envconfig:"EXPORT_DIR" default:"."` // where TXT exports land

	// Observability configuration. The TUI owns stdout, so logs go to a file.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"` // debug, info, warn, error
	LogFile  string `envconfig:"LOG_FILE" default:""`      // empty disables logging
}

// Load reads configuration from the environment, first attempting to load a
// .env file if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
