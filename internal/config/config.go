// Package config provides YAML-based configuration loading for the
// cometfall game.
package config

import "fmt"

// Config contains all tunable parameters for the game.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Ship     ShipConfig     `yaml:"ship"`
	Comet    CometConfig    `yaml:"comet"`
	Textures TexturesConfig `yaml:"textures"`
	Sound    SoundConfig    `yaml:"sound"`
}

// WindowConfig defines the logical playfield size in pixels.
// The terminal renderer projects this space onto the available cells.
type WindowConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ShipConfig defines spaceship parameters.
type ShipConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	StartY float64 `yaml:"start_y"` // Vertical center of the ship, from the bottom
}

// CometConfig defines comet parameters.
type CometConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	FallSpeed     float64 `yaml:"fall_speed"`     // Logical pixels per second
	RespawnMargin float64 `yaml:"respawn_margin"` // Off-screen distance for despawn and respawn
}

// TexturesConfig selects sprite art by texture name.
type TexturesConfig struct {
	Dir   string `yaml:"dir"`   // Optional directory with PNG overrides
	Ship  string `yaml:"ship"`  // Texture name for the spaceship
	Comet string `yaml:"comet"` // Texture name for the comet
}

// SoundConfig controls the sound board.
type SoundConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Validate checks that the configuration describes a playable game.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("config: window size must be positive, got %gx%g", c.Window.Width, c.Window.Height)
	}
	if c.Ship.Width <= 0 || c.Ship.Height <= 0 {
		return fmt.Errorf("config: ship size must be positive, got %gx%g", c.Ship.Width, c.Ship.Height)
	}
	if c.Comet.Width <= 0 || c.Comet.Height <= 0 {
		return fmt.Errorf("config: comet size must be positive, got %gx%g", c.Comet.Width, c.Comet.Height)
	}
	if c.Comet.FallSpeed <= 0 {
		return fmt.Errorf("config: comet fall speed must be positive, got %g", c.Comet.FallSpeed)
	}
	if c.Comet.RespawnMargin < 0 {
		return fmt.Errorf("config: comet respawn margin must not be negative, got %g", c.Comet.RespawnMargin)
	}
	return nil
}
