// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Frontends the binary can run.
const (
	FrontendTerminal = "terminal"
	FrontendWindow   = "window"
)

const prefix = "PIXEL"

// Config is the full runtime configuration.
type Config struct {
	Game      GameConfig
	Display   DisplayConfig
	Log       LogConfig
	Telemetry TelemetryConfig
}

// GameConfig holds gameplay tunables.
type GameConfig struct {
	Seed       int64         `envconfig:"SEED" default:"0"`         // 0 picks a random seed
	TextSpeed  float64       `envconfig:"TEXT_SPEED" default:"2"`   // Characters per frame unit
	EnemyDelay time.Duration `envconfig:"ENEMY_DELAY" default:"1s"` // Pause before the enemy acts
	FrameRate  int           `envconfig:"FRAME_RATE" default:"60"`  // Ticks per second
}

// DisplayConfig selects and tunes the frontend.
type DisplayConfig struct {
	Frontend     string        `envconfig:"FRONTEND" default:"terminal"`
	WindowScale  int           `envconfig:"WINDOW_SCALE" default:"3"`
	ReleaseDelay time.Duration `envconfig:"KEY_RELEASE_DELAY" default:"150ms"` // Terminal only
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level    string `envconfig:"LEVEL" default:"info"`
	Encoding string `envconfig:"ENCODING" default:"json"`
	File     string `envconfig:"FILE" default:"pixeladventure.log"` // "stdout" only suits the window frontend
}

// TelemetryConfig toggles trace export.
type TelemetryConfig struct {
	Enabled bool `envconfig:"ENABLED" default:"false"`
}

// Load reads the environment into a Config and validates it. Variables are
// named PIXEL_<SECTION>_<FIELD>, for example PIXEL_GAME_SEED or
// PIXEL_DISPLAY_FRONTEND.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges envconfig cannot express.
func (c *Config) Validate() error {
	switch c.Display.Frontend {
	case FrontendTerminal, FrontendWindow:
	default:
		return fmt.Errorf("config: unknown frontend %q", c.Display.Frontend)
	}
	if c.Game.FrameRate <= 0 {
		return fmt.Errorf("config: frame rate must be positive, got %d", c.Game.FrameRate)
	}
	if c.Game.TextSpeed <= 0 {
		return fmt.Errorf("config: text speed must be positive, got %g", c.Game.TextSpeed)
	}
	if c.Display.WindowScale < 1 {
		return fmt.Errorf("config: window scale must be at least 1, got %d", c.Display.WindowScale)
	}
	return nil
}

// FrameDuration is the wall-clock length of one tick.
func (c *Config) FrameDuration() time.Duration {
	return time.Second / time.Duration(c.Game.FrameRate)
}
