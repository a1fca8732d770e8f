package config

import (
	_ "embed"
)

//go:embed defaults/cometfall.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It mirrors the embedded
// defaults/cometfall.yaml and serves as the base for partial overrides
// and as the last-resort fallback.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
		},
		Ship: ShipConfig{
			Width:  50,
			Height: 50,
			StartY: 50,
		},
		Comet: CometConfig{
			Width:         50,
			Height:        50,
			FallSpeed:     300,
			RespawnMargin: 50,
		},
		Textures: TexturesConfig{
			Ship:  "spaceship",
			Comet: "comet",
		},
		Sound: SoundConfig{
			Enabled: true,
		},
	}
}
