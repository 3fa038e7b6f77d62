package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores <level>",
	Short: "Show the best runs of a level",
	Long: `Display the best runs of a level. Completed runs rank first, by time,
then the rest by score.

Examples:
  platformer scores meadow
  platformer scores factory --limit 25`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) {
	l, err := resolveLevel(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'platformer list' to see available levels.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.TopRuns(l.ID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		return
	}

	fmt.Printf("Best runs - %s\n", l.Title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'platformer play %s' to set the first one!\n", l.ID)
		return
	}

	fmt.Printf("  %-4s  %-12s  %-10s  %-7s  %-8s  %s\n", "Rank", "Player", "Result", "Score", "Mode", "Date")
	fmt.Printf("  %-4s  %-12s  %-10s  %-7s  %-8s  %s\n", "----", "------", "------", "-----", "----", "----")

	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "local"
		}
		result := "failed"
		if r.Completed {
			result = formatMs(r.TimeMs)
		}
		fmt.Printf("  %-4d  %-12s  %-10s  %-7d  %-8s  %s\n",
			i+1, player, result, r.Score, r.Difficulty, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetLevelStats(l.ID)
	if err != nil || stats == nil {
		return
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Completed: %d  High score: %d  Avg score: %.1f\n",
		stats.Runs, stats.Completed, stats.HighScore, stats.AvgScore)
	if stats.BestTimeMs > 0 {
		fmt.Printf("Best time: %s\n", formatMs(stats.BestTimeMs))
	}
}
