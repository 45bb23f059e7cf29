package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/platform/tui"
	"github.com/vovakirdan/tui-lander/internal/registry"
	"github.com/vovakirdan/tui-lander/internal/storage"
	"github.com/vovakirdan/tui-lander/internal/telemetry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagRecord     string
	flagTelemetry  string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Fly a single level",
	Long: `Start a level of Lunar Lander.

Controls:
  Left/A, Right/D  - Rotate
  Space/Up/W       - Main engine
  P                - Pause
  Enter            - Continue after landing or crashing
  Esc/B            - Leave the level
  Q/Ctrl+C         - Quit

Land upright and slowly on a pad and hold still to win. Your score is the
fuel left plus a landing bonus, times the pad multiplier.

Difficulty options:
  easy   - Forgiving touchdowns, terrain roughens slowly
  normal - Standard thresholds, starts at 30% difficulty
  hard   - Less fuel, strict thresholds, starts at 70% difficulty
  fixed  - No progression with distance

Examples:
  lander play
  lander play --difficulty hard
  lander play --seed 42 --record ./flight.lrp
  lander play --config ./my-lander.yaml
  lander play --telemetry :8080`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", config.EnvOr(config.EnvConfig, ""), "Path to custom lander config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Write a replay of the flight to this file")
	playCmd.Flags().StringVar(&flagTelemetry, "telemetry", "", "Serve live telemetry over WebSocket on this address (e.g. :8080)")
}

func runPlay(_ *cobra.Command, _ []string) {
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	// An explicit config must load; discovery failures fall back to defaults.
	if flagConfig != "" {
		if _, err := config.LoadLander(flagConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	logger, closeLog := fileLogger("lander")
	defer closeLog()

	lander.SetConfigPath(flagConfig)
	lander.SetDifficultyPreset(flagDifficulty)
	lander.SetLogger(logger)

	game, err := registry.Create(lander.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("playing without scores database", "err", err)
		// Continue without storage - game still works
		store = nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var hub *telemetry.Hub
	if flagTelemetry != "" {
		hub = telemetry.NewHub(telemetry.DefaultBuffer, logger)
		go hub.Run(ctx)
		go func() {
			if err := telemetry.ListenAndServe(ctx, flagTelemetry, hub); err != nil {
				logger.Error("telemetry server stopped", "err", err)
			}
		}()
		logger.Info("telemetry listening", "address", flagTelemetry)
	}

	runErr := tui.Run(game, cfg, tui.PlayOptions{
		Store:      store,
		Hub:        hub,
		RecordPath: flagRecord,
		ConfigPath: flagConfig,
		Logger:     logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	if flagRecord != "" {
		if _, err := os.Stat(flagRecord); err == nil {
			fmt.Printf("Replay saved to %s\n", flagRecord)
		}
	}
}
