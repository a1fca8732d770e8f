package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.cometfall/cometfall.yaml -> ./configs/cometfall.yaml -> embedded default.
// The second return value names the source the config came from.
//
// An explicit customPath that cannot be read, parsed, or validated is an
// error. Discovered configs that fail are skipped in favor of the next
// source. Partial files are merged over the built-in defaults.
func Load(customPath string) (Config, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, "", fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, "", fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory
	if userPath := userConfigPath("cometfall.yaml"); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, userPath, nil
			}
		}
	}

	// Try local configs directory
	localPath := filepath.Join("configs", "cometfall.yaml")
	if data, err := os.ReadFile(localPath); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, localPath, nil
		}
	}

	// Use embedded default YAML
	if cfg, err := parse(defaultYAML); err == nil {
		return cfg, "embedded", nil
	}
	return Default(), "builtin", nil // Fallback to hardcoded if embed fails
}

// parse unmarshals YAML over the built-in defaults and validates the result.
func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cometfall", filename)
}
