package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Re-simulate a recorded flight",
	Long: `Load a replay written by 'lander play --record' and run it headlessly.

The level is rebuilt from the recorded seed, difficulty and config, then
every recorded input frame is fed back. The final state and its hash are
printed, so two machines can compare flights.

Examples:
  lander replay ./flight.lrp
  lander replay ./flight.lrp --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	logger := newLogger(os.Stderr, "lander-replay")
	lander.SetLogger(logger)

	rec, err := replay.Load(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("recording loaded",
		"seed", rec.Seed,
		"difficulty", rec.Difficulty,
		"config", rec.ConfigPath,
		"frames", len(rec.Frames),
	)

	res, err := replay.Run(rec)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out := res.Outcome
	fmt.Printf("Seed:       %d\n", rec.Seed)
	if rec.Difficulty != "" {
		fmt.Printf("Difficulty: %s\n", rec.Difficulty)
	}
	fmt.Printf("Frames:     %d of %d\n", res.Frames, len(rec.Frames))
	fmt.Printf("Phase:      %s\n", out.Phase)
	fmt.Printf("Score:      %d\n", out.Score)
	fmt.Printf("Fuel left:  %d\n", out.Fuel)
	fmt.Printf("Multiplier: x%g\n", out.Multiplier)
	fmt.Printf("Distance:   %.1f\n", out.Distance)
	fmt.Printf("Position:   (%.2f, %.2f)\n", res.Snapshot.X, res.Snapshot.Y)
	fmt.Printf("Hash:       %016x\n", res.Hash)
}
