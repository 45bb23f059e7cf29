package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/platform/tui"
	"github.com/vovakirdan/tui-lander/internal/telemetry"
)

var (
	flagSSHAddr        string
	flagHostKey        string
	flagIdleTimeout    int
	flagServeConfig    string
	flagServeTelemetry string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the lander SSH server",
	Long: `Start an SSH server that allows users to connect and fly.

Each SSH connection gets its own session with a difficulty menu and its
own physics world. Scores are stored per-server (all pilots share the
same leaderboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.lander/host_key

Examples:
  lander serve                           # Listen on :23234 with auto-generated key
  lander serve --ssh :2222               # Listen on port 2222
  lander serve --host-key ./my_host_key  # Use specific host key
  lander serve --telemetry :8080         # Also stream telemetry of every session

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", config.EnvOr(config.EnvConfig, ""), "Path to custom lander config YAML")
	serveCmd.Flags().StringVar(&flagServeTelemetry, "telemetry", "", "Serve live telemetry over WebSocket on this address")
}

func runServe(_ *cobra.Command, _ []string) {
	if flagServeConfig != "" {
		if _, err := config.LoadLander(flagServeConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	logger := newLogger(os.Stderr, "lander-ssh")
	lander.SetLogger(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var hub *telemetry.Hub
	if flagServeTelemetry != "" {
		hub = telemetry.NewHub(telemetry.DefaultBuffer, logger)
		go hub.Run(ctx)
		go func() {
			if err := telemetry.ListenAndServe(ctx, flagServeTelemetry, hub); err != nil {
				logger.Error("telemetry server stopped", "err", err)
			}
		}()
		logger.Info("telemetry listening", "address", flagServeTelemetry)
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		ConfigPath:  flagServeConfig,
		TickRate:    flagFPS,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg, hub, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting lander SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// portOf returns the port part of a host:port address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
