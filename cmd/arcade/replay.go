package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minigame-arcade/internal/core"
	"github.com/vovakirdan/minigame-arcade/internal/platform/tui"
	"github.com/vovakirdan/minigame-arcade/internal/registry"
	"github.com/vovakirdan/minigame-arcade/internal/storage"
)

var (
	flagReplayDelete bool
	flagReplayShow   bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Re-simulate a recorded run",
	Long: `Re-simulates a recorded run headless from its seed and input journal
and compares the result with what was recorded.

Examples:
  arcade replay 3f2a9c1e-0d7b-4d8e-9a61-2b5c7e1f0a44
  arcade replay 3f2a9c1e-0d7b-4d8e-9a61-2b5c7e1f0a44 --show
  arcade replay 3f2a9c1e-0d7b-4d8e-9a61-2b5c7e1f0a44 --delete`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagReplayShow, "show", false, "Print the final frame")
	replayCmd.Flags().BoolVar(&flagReplayDelete, "delete", false, "Delete the run instead of replaying it")
}

func runReplay(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	id := args[0]
	if flagReplayDelete {
		if err := store.DeleteRun(id); err != nil {
			return err
		}
		fmt.Printf("Deleted run %s\n", id)
		return nil
	}

	run, entries, err := store.LoadRun(id)
	if err != nil {
		return err
	}
	final, err := tui.ReplayRun(run, entries)
	if err != nil {
		return err
	}

	fmt.Printf("Run %s (%s, seed %d, %d ticks, %d events)\n", run.ID, run.GameID, run.Seed, run.Ticks, len(entries))
	fmt.Printf("  recorded: %-10s score %d\n", run.Phase, run.Score)
	fmt.Printf("  replayed: %-10s score %d\n", final.Phase, final.Score)

	if flagReplayShow {
		game, err := registry.Create(run.GameID)
		if err != nil {
			return err
		}
		cfg := terminalConfig()
		screen := core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-4, 1))
		game.Render(final, screen)
		fmt.Println(tui.RenderScreen(screen))
	}

	if run.Finished() && (final.Phase.String() != run.Phase || final.Score != run.Score) {
		return fmt.Errorf("replay of %s does not match the recording", run.ID)
	}
	return nil
}
