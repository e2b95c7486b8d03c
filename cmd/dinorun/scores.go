package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/dinorun/internal/games/dino"
	"github.com/vovakirdan/dinorun/internal/games/dino/engine"
	"github.com/vovakirdan/dinorun/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [runner]",
	Short: "Show high scores",
	Long: `Display the top high scores, for every runner or just one.

Examples:
  dinorun scores
  dinorun scores vita --limit 20
  dinorun scores mort --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded scores instead of showing them")
}

func runScores(_ *cobra.Command, args []string) error {
	filter, title := "", "All runners"
	if len(args) == 1 {
		c, err := engine.ParseCharacter(args[0])
		if err != nil {
			return err
		}
		filter, title = c.String(), dino.SkinFor(c).Name
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(filter); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Printf("Cleared scores for %s.\n", title)
		return nil
	}

	scores, err := store.TopScores(filter, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'dinorun play' to set the first high score!")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  Rank\tRunner\tScore\tDate")
	fmt.Fprintln(w, "  ----\t------\t-----\t----")
	for i, entry := range scores {
		name := entry.Character
		if c, err := engine.ParseCharacter(entry.Character); err == nil {
			name = dino.SkinFor(c).Name
		}
		fmt.Fprintf(w, "  %d\t%s\t%d\t%s\n", i+1, name, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()

	stats, err := store.GetStats(filter)
	if err == nil && stats.RunsCount > 0 {
		fmt.Println()
		fmt.Printf("Best: %d  Runs: %d  Average: %.1f\n", stats.HighScore, stats.RunsCount, stats.AvgScore)
	}
	return nil
}
