// cometfall is a lane-dodging arcade game for the terminal.
//
// Usage:
//
//	cometfall play       - Play in the current terminal
//	cometfall serve      - Serve the game over SSH
//	cometfall preview    - Print the converted sprite art
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible runs
//	--config <path>  - Path to custom config YAML
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/cometfall/cometfall/internal/config"
	"github.com/cometfall/cometfall/internal/core"
	"github.com/cometfall/cometfall/internal/game"
	"github.com/cometfall/cometfall/internal/texture"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagConfig string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cometfall",
	Short: "Cometfall - dodge falling comets in your terminal",
	Long: `Cometfall is a terminal arcade game: steer a spaceship across three
lanes and dodge the comets falling from above. One hit ends the run;
the clock is your score.

Available commands:
  play     - Play in the current terminal
  serve    - Serve the game over SSH
  preview  - Print the converted sprite art

Examples:
  cometfall play
  cometfall play --seed 42 --fps 30
  cometfall serve --port 2222
  cometfall preview comet`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (simulation steps per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(previewCmd)
}

// newLogger builds the CLI's structured logger.
func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "cometfall",
	})
}

// loadConfig loads the game config, honoring the --config flag.
func loadConfig(logger *log.Logger) (config.Config, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	logger.Debug("config loaded", "source", source)
	return cfg, nil
}

// loadTextures builds the sprite store: embedded art first, then image
// overrides from the configured directory. Failures downgrade to the
// solid-block fallback instead of stopping the game.
func loadTextures(cfg config.Config, logger *log.Logger) (*texture.Store, game.Sprites) {
	store, err := texture.Builtin()
	if err != nil {
		logger.Warn("builtin textures unavailable", "error", err)
		store = texture.NewStore()
	}

	if cfg.Textures.Dir != "" {
		loadOverrides(store, cfg.Textures.Dir, logger)
	}

	return store, game.Sprites{
		Ship:  spriteHandle(store, cfg.Textures.Ship, logger),
		Comet: spriteHandle(store, cfg.Textures.Comet, logger),
	}
}

// loadOverrides loads image files from dir over the embedded sprites.
func loadOverrides(store *texture.Store, dir string, logger *log.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("cannot read textures directory", "dir", dir, "error", err)
		return
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg":
		default:
			continue
		}

		path := filepath.Join(dir, e.Name())
		if _, loadErr := store.LoadFile(path); loadErr != nil {
			logger.Warn("cannot load texture", "path", path, "error", loadErr)
			continue
		}
		logger.Debug("texture loaded", "path", path)
	}
}

// spriteHandle resolves a configured texture name, warning when the
// game will have to draw the fallback block instead.
func spriteHandle(store *texture.Store, name string, logger *log.Logger) core.TextureHandle {
	h := store.Handle(name)
	if h == core.InvalidTexture {
		logger.Warn("texture not found, using fallback block", "name", name)
	}
	return h
}
