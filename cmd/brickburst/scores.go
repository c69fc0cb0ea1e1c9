package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/brickburst/internal/storage"
)

var flagReset bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the persisted high score",
	Long: `Display the best score recorded in the database.

Examples:
  brickburst scores
  brickburst scores --reset
  brickburst scores --db ./brickburst.db`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Clear the recorded high score")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagReset {
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("High score cleared.")
		return nil
	}

	rec, err := store.Record()
	if err != nil {
		return err
	}

	if rec.Score == 0 {
		fmt.Println("No high score recorded yet.")
		fmt.Println()
		fmt.Println("Play 'brickburst play' to set the first one!")
		return nil
	}

	fmt.Printf("Best: %d\n", rec.Score)
	if !rec.UpdatedAt.IsZero() {
		fmt.Printf("Set:  %s\n", rec.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
