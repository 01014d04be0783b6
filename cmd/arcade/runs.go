package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigame-arcade/internal/storage"
)

var (
	flagRunsGame  string
	flagRunsLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	Long: `Shows recorded runs, newest first. Runs are recorded with
'arcade play <game> --record' and can be re-simulated with 'arcade replay'.

Examples:
  arcade runs
  arcade runs --game turtle --limit 5`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&flagRunsGame, "game", "", "Only show runs of this game")
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum number of runs to show")
}

func runRuns(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs(flagRunsGame, flagRunsLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-36s  %-12s  %-16s  %8s  %-10s  %6s\n", "Run", "Game", "Started", "Ticks", "Result", "Score")
	for _, r := range runs {
		fmt.Printf("  %-36s  %-12s  %-16s  %8d  %-10s  %6d\n",
			r.ID, r.GameID, r.StartedAt.Format("2006-01-02 15:04"), r.Ticks, r.Phase, r.Score)
	}
	return nil
}
