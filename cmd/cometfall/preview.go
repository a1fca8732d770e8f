package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cometfall/cometfall/internal/core"
	"github.com/cometfall/cometfall/internal/platform/tui"
)

var previewCmd = &cobra.Command{
	Use:   "preview [texture...]",
	Short: "Print the converted sprite art",
	Long: `Print textures as they will appear in the game, after image
decoding and half-block cell conversion. With no arguments, every
loaded texture is shown.

Examples:
  cometfall preview
  cometfall preview comet
  cometfall preview --textures ./art rocket`,
	Run: runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&flagTextures, "textures", "", "Directory with sprite image overrides")
}

func runPreview(_ *cobra.Command, args []string) {
	logger := newLogger()

	cfg, err := loadConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagTextures != "" {
		cfg.Textures.Dir = flagTextures
	}

	store, _ := loadTextures(cfg, logger)

	names := args
	if len(names) == 0 {
		names = store.Names()
	}
	if len(names) == 0 {
		fmt.Println("No textures loaded.")
		return
	}

	renderer := tui.NewRenderer()
	for _, name := range names {
		h := store.Handle(name)
		img := store.Lookup(h)
		if img == nil {
			fmt.Fprintf(os.Stderr, "Error: unknown texture %q\n", name)
			os.Exit(1)
		}

		screen := core.NewScreen(img.W, img.H)
		store.Draw(screen, h, core.NewRect(0, 0, img.W, img.H), 0)

		fmt.Printf("%s (%dx%d cells)\n", name, img.W, img.H)
		fmt.Println(renderer.RenderScreen(screen))
		fmt.Println()
	}
}
