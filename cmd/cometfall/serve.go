package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cometfall/cometfall/internal/core"
	"github.com/cometfall/cometfall/internal/game"
	"github.com/cometfall/cometfall/internal/platform/tui"
)

var (
	flagHost        string
	flagPort        string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve cometfall over SSH",
	Long: `Start an SSH server so players can connect and play remotely.
Each connection gets its own run, sized to its terminal.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.cometfall/host_key

Examples:
  cometfall serve                          # Listen on :23234
  cometfall serve --port 2222              # Listen on port 2222
  cometfall serve --host-key ./host_key    # Use specific host key

Players connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHost, "host", "", "Host to bind (empty = all interfaces)")
	serveCmd.Flags().StringVar(&flagPort, "port", "23234", "Port to listen on")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := newLogger()

	cfg, err := loadConfig(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, sprites := loadTextures(cfg, logger)

	// Sessions simulate independently, so each one gets a fresh game
	// over the shared read-only texture store.
	newGame := func() core.Game {
		return game.New(cfg, store, sprites)
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     net.JoinHostPort(flagHost, flagPort),
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
	}, newGame)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Serving cometfall on %s\n", server.Addr())
	fmt.Printf("Connect with: ssh localhost -p %s\n", flagPort)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
