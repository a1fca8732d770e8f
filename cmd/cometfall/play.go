package main

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cometfall/cometfall/internal/audio"
	"github.com/cometfall/cometfall/internal/core"
	"github.com/cometfall/cometfall/internal/game"
	"github.com/cometfall/cometfall/internal/platform/tui"
)

var (
	flagTextures string
	flagMute     bool
	flagProfile  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play cometfall in the current terminal",
	Long: `Start a run in the current terminal.

Controls:
  Left/A/H   - Move one lane left
  Right/D/L  - Move one lane right
  R          - Restart (after game over)
  M          - Toggle sound
  Q/Ctrl+C   - Quit

Examples:
  cometfall play
  cometfall play --seed 42
  cometfall play --textures ./art --mute
  cometfall play --config ./my-cometfall.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagTextures, "textures", "", "Directory with sprite image overrides")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sound off")
	playCmd.Flags().BoolVar(&flagProfile, "profile", false, "Write a CPU profile to the working directory")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger := newLogger()

	if flagProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	cfg, err := loadConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagTextures != "" {
		cfg.Textures.Dir = flagTextures
	}

	store, sprites := loadTextures(cfg, logger)

	// Sound board failure downgrades to a silent game
	var sounds *audio.Board
	if cfg.Sound.Enabled {
		sounds = audio.NewBoard()
		if initErr := sounds.Init(); initErr != nil {
			logger.Warn("sound unavailable, continuing silent", "error", initErr)
		}
		sounds.SetMuted(flagMute)
	}

	// Get terminal size for the initial frame
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	state, runErr := tui.Run(game.New(cfg, store, sprites), runtime, tui.Options{Sounds: sounds})
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	logger.Info("run finished",
		"survived", fmt.Sprintf("%.1fs", state.Elapsed),
		"lane", state.Lane,
		"game_over", state.GameOver,
	)
}
