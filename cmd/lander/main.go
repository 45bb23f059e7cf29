// lander is a terminal lunar lander over endless procedurally generated terrain.
//
// Usage:
//
//	lander play              - Fly a single level
//	lander menu              - Pick a difficulty interactively
//	lander list              - List registered games
//	lander scores            - Show high scores and flight history
//	lander serve             - Start SSH server for remote play
//	lander replay <file>     - Re-simulate a recorded flight
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set terrain seed for reproducible levels
//	--db <path>          - Set database path (default: ~/.lander/scores.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Log destination for the terminal UI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/config"
	// Import the game to register it
	_ "github.com/vovakirdan/tui-lander/internal/games/lander"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lander",
	Short: "Lunar Lander - Land on procedurally generated terrain in your terminal",
	Long: `Lunar Lander is a physics-driven lander game for the terminal.

Fly over endless terrain, manage your fuel and touch down gently on a
landing pad. Narrow pads further from the start pay a higher multiplier.

Available commands:
  play     - Fly a single level
  menu     - Interactive difficulty picker
  list     - Show registered games
  scores   - View high scores and recent flights
  serve    - Start SSH server for remote play
  replay   - Re-simulate a recorded flight

Examples:
  lander play
  lander play --difficulty hard --seed 42
  lander play --record ./flight.lrp --telemetry :8080
  lander replay ./flight.lrp
  lander serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Terrain seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db",
		config.EnvOr(config.EnvDB, "~/.lander/scores.db"), "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level",
		config.EnvOr(config.EnvLogLevel, "info"), "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file",
		config.EnvOr(config.EnvLogFile, "~/.lander/lander.log"), "Log file used while the terminal UI runs")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
}
