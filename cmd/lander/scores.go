package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/games/lander"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

var flagFlights int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and flight history",
	Long: `Display the top 10 scores, overall flight statistics and,
with --flights, the most recent flight records.

Examples:
  lander scores
  lander scores --flights 20`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagFlights, "flights", 0, "Also list this many recent flights")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	scores, err := store.TopScores(lander.ID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("High Scores - Lunar Lander")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'lander play' and land on a pad to set the first high score!")
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	stats, err := store.FlightStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving flight stats: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Printf("Flights: %d  Landed: %d  Crashed: %d  Best: %d  Farthest: %.0f\n",
		stats.Attempts, stats.Landings, stats.Crashes, stats.BestScore, stats.Longest)

	if flagFlights <= 0 {
		return
	}

	flights, err := store.RecentFlights(flagFlights)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving flights: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Printf("  %-9s  %-6s  %-5s  %-4s  %-8s  %-7s  %-20s  %s\n",
		"Outcome", "Score", "Fuel", "x", "Distance", "Mode", "Seed", "Date")
	for _, f := range flights {
		mode := f.Difficulty
		if mode == "" {
			mode = "-"
		}
		fmt.Printf("  %-9s  %-6d  %-5d  %-4g  %-8.0f  %-7s  %-20d  %s\n",
			f.Outcome, f.Score, f.FuelLeft, f.Multiplier, f.Distance, mode, f.Seed,
			f.CreatedAt.Format("2006-01-02 15:04"))
	}
}
