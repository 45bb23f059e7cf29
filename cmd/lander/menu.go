package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/platform/tui"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

var flagMenuConfig string

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a difficulty picker menu",
	Long: `Start Lunar Lander in interactive menu mode.

Use arrow keys or j/k to pick a difficulty, Enter to launch.
After a level ends, you return to the menu to fly again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Launch
  Tab          - Scores and flight history
  Q            - Quit

Examples:
  lander menu
  lander menu --fps 30
  lander menu --db ./scores.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagMenuConfig, "config", config.EnvOr(config.EnvConfig, ""), "Path to custom lander config YAML")
}

func runMenu(_ *cobra.Command, _ []string) {
	if flagMenuConfig != "" {
		if _, err := config.LoadLander(flagMenuConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	logger, closeLog := fileLogger("lander")
	defer closeLog()
	lander.SetLogger(logger)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	runErr := tui.RunSession(tui.SessionOptions{
		Store:      store,
		ConfigPath: flagMenuConfig,
		Logger:     logger,
	}, cfg, os.Getenv("USER"))

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running menu: %v\n", runErr)
		os.Exit(1)
	}
}
